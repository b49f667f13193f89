package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single API call and its expected outcome, loaded from
// a JSON array file under testdata/:
//
//	[
//	  {
//	    "name": "admin lists own users",
//	    "actingAs": "acmeAdmin",
//	    "requestMethod": "GET",
//	    "requestUrl": "/api/users",
//	    "expectedCode": 200,
//	    "expectedBody": {"data": {"pagination": {"total": 2}}}
//	  }
//	]
//
// expectedBody is matched as a subset: every key it names must be present
// with the same value, extra keys in the response are ignored.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	Headers         map[string]string `json:"headers"`
	ActingAs        string            `json:"actingAs"` // key into Runner.Tokens

	ExpectedCode     int             `json:"expectedCode"`
	ExpectedBody     json.RawMessage `json:"expectedBody"`
	ResponseFileName string          `json:"responseFileName"` // relative to the scenario file

	dir string
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("%s: requestUrl is required", s.Name)
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("%s: expectedCode is required", s.Name)
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

func (s *Scenario) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// requestBody returns the inline body, or the contents of requestFileName.
func (s *Scenario) requestBody() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if p := s.resolve(s.RequestFileName); p != "" {
		return os.ReadFile(p)
	}
	return nil, nil
}

// expectedBody returns the inline expectation, or the contents of
// responseFileName.
func (s *Scenario) expectedBody() ([]byte, error) {
	if len(s.ExpectedBody) > 0 {
		return s.ExpectedBody, nil
	}
	if p := s.resolve(s.ResponseFileName); p != "" {
		return os.ReadFile(p)
	}
	return nil, nil
}

// LoadScenarioArray reads and validates the scenarios of one JSON file.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	for i, s := range scenarios {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: %q item %d: %w", abs, i, err)
		}
		s.dir = filepath.Dir(abs)
	}
	return scenarios, nil
}
