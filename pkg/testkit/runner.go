package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Runner fires scenarios at a fresh handler each.
type Runner struct {
	// Handler builds the handler under test. It runs once per scenario so
	// cases never see each other's writes.
	Handler func(t *testing.T) http.Handler

	// Authenticate attaches credentials for Scenario.As. It is not called
	// for anonymous scenarios.
	Authenticate func(t *testing.T, r *http.Request, as string)
}

// RunFile loads path and runs each scenario as a subtest.
func (rn Runner) RunFile(t *testing.T, path string) {
	t.Helper()

	scenarios, err := LoadScenarios(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) { rn.Run(t, s) })
	}
}

// Run executes one scenario and returns the recorded response.
func (rn Runner) Run(t *testing.T, s *Scenario) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if len(s.RequestBody) > 0 {
		body = bytes.NewReader(s.RequestBody)
	}
	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}
	if s.As != "" && rn.Authenticate != nil {
		rn.Authenticate(t, req, s.As)
	}

	rec := httptest.NewRecorder()
	rn.Handler(t).ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	AssertJSONBody(t, s, s.ExpectedBody, rec.Body.Bytes())
	return rec
}
