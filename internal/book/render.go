package book

import (
	"bytes"
	"html/template"
)

var listingTmpl = template.Must(template.New("listing").Funcs(template.FuncMap{
	"titlecase": TitleCase,
}).Parse(`<html><body><h1>Finished Books {{len .}}</h1>{{range .}}<p>{{titlecase .Title}}, {{titlecase .Author}}</p>{{end}}</body></html>`))

// RenderListing renders the collection as an HTML page, one paragraph per book.
func RenderListing(books []Book) ([]byte, error) {
	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, books); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
