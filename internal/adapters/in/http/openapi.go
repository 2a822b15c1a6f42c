package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// APIPrefix is the server url declared by the document.
const APIPrefix = "/api/v1"

//go:embed openapi.yaml
var openapiYAML []byte

// LoadOpenAPI parses and validates the embedded API document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// swaggerDoc serves the document to the swagger UI.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// registerSwagger makes doc the document of the default swag instance.
// swag panics on a second registration, so only the first document wins.
func registerSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode openapi document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}

// mountOpenAPI exposes the raw document and the swagger UI.
func mountOpenAPI(e *echo.Echo, doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode openapi document: %w", err)
	}
	if err = registerSwagger(doc); err != nil {
		return err
	}

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, raw)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
