// Package testkit runs JSON-described HTTP scenarios against an http.Handler.
//
// A scenario file holds an array of cases:
//
//	[
//	  {
//	    "name": "customer cannot list users",
//	    "as": "buyer@x.com",
//	    "requestMethod": "GET",
//	    "requestUrl": "/all-users/buyer@x.com",
//	    "expectedCode": 401,
//	    "expectedBody": {"status": 401, "message": "unauthorized access"}
//	  }
//	]
//
// Example _test.go:
//
//	func TestGuards(t *testing.T) {
//	    testkit.Runner{Handler: newHandler, Authenticate: login}.RunFile(t, "testdata/guards.json")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario describes a single request and what it must produce.
type Scenario struct {
	Name string `json:"name"`

	// As names the user the request is made for; empty means anonymous.
	As string `json:"as"`

	RequestMethod string            `json:"requestMethod"`
	RequestURL    string            `json:"requestUrl"`
	RequestBody   json.RawMessage   `json:"requestBody"`
	Headers       map[string]string `json:"headers"`

	ExpectedCode int `json:"expectedCode"`
	// ExpectedBody, when set, must equal the response after both are decoded.
	ExpectedBody json.RawMessage `json:"expectedBody"`
}

// LoadScenarios reads and validates the scenario array in path.
func LoadScenarios(path string) ([]*Scenario, error) {
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
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}
