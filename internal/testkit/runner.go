package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// Runner fires scenarios at an http.Handler. Tokens maps the actingAs names
// used in scenario files to bearer tokens.
type Runner struct {
	Handler http.Handler
	Tokens  map[string]string
}

// RunFile runs every scenario of one JSON file, in order, as subtests.
// Scenarios in a file share state: a create followed by a read sees the row.
func (r *Runner) RunFile(t *testing.T, path string) {
	t.Helper()

	scenarios, err := LoadScenarioArray(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			r.run(t, s)
		})
	}
}

// RunDir runs every *.json file in dir, one subtest per file.
func (r *Runner) RunDir(t *testing.T, dir string) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
	for _, f := range files {
		t.Run(strings.TrimSuffix(filepath.Base(f), ".json"), func(t *testing.T) {
			r.RunFile(t, f)
		})
	}
}

func (r *Runner) run(t *testing.T, s *Scenario) {
	t.Helper()

	body, err := s.requestBody()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if s.ActingAs != "" {
		token, ok := r.Tokens[s.ActingAs]
		if !ok {
			t.Fatalf("[%s] no token for actingAs %q", s.Name, s.ActingAs)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.Handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.String())

	expected, err := s.expectedBody()
	if err != nil {
		t.Fatalf("[%s] read expected body: %v", s.Name, err)
	}
	AssertJSONSubset(t, s.Name, expected, rec.Body.Bytes())
}
