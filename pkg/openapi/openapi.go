// Package openapi serves an OpenAPI 3 document as JSON or YAML.
//
//	doc := docs.Build() // *openapi3.T
//	r.Get("/api/docs.json", "docs.json", openapi.Handler(doc, openapi.JSON))
package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/bilemo/api/pkg/response"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ContentType is the media type a document is served with in format.
func (f Format) ContentType() string {
	if f == YAML {
		return "application/yaml"
	}
	return "application/json"
}

// Encode renders doc in format. YAML keeps the key order of the JSON
// encoding.
func Encode(doc *openapi3.T, format Format) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode: %w", err)
	}
	switch format {
	case JSON:
		return raw, nil
	case YAML:
		return toYAML(raw)
	}
	return nil, fmt.Errorf("openapi: unknown format %q", format)
}

// toYAML re-emits a JSON document in block style.
func toYAML(raw []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("openapi: yaml: %w", err)
	}
	blockStyle(&root)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("openapi: yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("openapi: yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Handler serves doc in format. The document is encoded on first request
// and reused afterwards.
func Handler(doc *openapi3.T, format Format) http.HandlerFunc {
	var (
		once sync.Once
		body []byte
		err  error
	)
	return func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { body, err = Encode(doc, format) })
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}
