package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/dinepay/internal/interfaces/rest/docs"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/swaggo/swag"
)

// APIDocs serves the registered Swagger 2.0 document and its validated
// OpenAPI 3 conversion.
type APIDocs struct {
	swagger []byte
	openapi []byte
}

// LoadAPIDocs reads the swag registry, converts the document to OpenAPI 3
// and validates it. A broken document fails startup.
func LoadAPIDocs(ctx context.Context) (*APIDocs, error) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return nil, fmt.Errorf("read swagger doc: %w", err)
	}

	var v2 openapi2.T
	if err := json.Unmarshal([]byte(raw), &v2); err != nil {
		return nil, fmt.Errorf("parse swagger doc: %w", err)
	}

	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("convert to openapi3: %w", err)
	}
	if err := v3.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi3 doc: %w", err)
	}

	openapi, err := json.Marshal(v3)
	if err != nil {
		return nil, fmt.Errorf("encode openapi3 doc: %w", err)
	}

	return &APIDocs{swagger: []byte(raw), openapi: openapi}, nil
}

func (d *APIDocs) HandleSwagger(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(d.swagger)
}

func (d *APIDocs) HandleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(d.openapi)
}
