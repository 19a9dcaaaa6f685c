package api

import (
	"context"
	_ "embed"
	"fmt"
	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// GetSwagger returns the parsed and validated OpenAPI document of the API.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("error loading spec: %w", err)
	}

	if err = swagger.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("error validating spec: %w", err)
	}

	return swagger, nil
}
