package httpx

import (
	"fmt"
	"net/http"
)

// MethodMux chooses a handler based on the incoming HTTP method. Methods
// without a handler get 501, like a server that does not implement them.
func MethodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		TextError(w, http.StatusNotImplemented, fmt.Sprintf("Unsupported method ('%s')", r.Method))
	})
}
