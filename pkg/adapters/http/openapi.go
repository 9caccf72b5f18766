package http

import (
	"context"
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiSpec []byte

// validateSpec loads and validates the embedded OpenAPI document.
func validateSpec() error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return err
	}
	return doc.Validate(context.Background())
}
