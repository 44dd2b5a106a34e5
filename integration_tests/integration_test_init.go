package integrationtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// MockResponse is what the fake OpenWeatherMap answers for one endpoint.
type MockResponse struct {
	Code int
	Body string
}

// mockOWM is a fake of the OpenWeatherMap data/2.5 API that records every
// request it receives.
type mockOWM struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]MockResponse
	requests  []*url.URL
}

func newMockOWM() *mockOWM {
	m := &mockOWM{responses: make(map[string]MockResponse)}
	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/", m.serve)
	m.Server = httptest.NewServer(mux)
	return m
}

// APIURL is the value for openweathermap.api_url.
func (m *mockOWM) APIURL() string {
	return m.URL + "/data/2.5"
}

func (m *mockOWM) serve(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests = append(m.requests, r.URL)
	resp, ok := m.responses[r.URL.Path]
	m.mu.Unlock()

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Query().Get("appid") != "test_api_key" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"cod":401, "message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"cod":"404","message":"Internal error"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	_, _ = io.WriteString(w, resp.Body)
}

// Stub sets the answer for an endpoint ("weather" or "forecast").
func (m *mockOWM) Stub(endpoint string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses["/data/2.5/"+endpoint] = resp
}

// Requests returns the URLs received since the last Reset.
func (m *mockOWM) Requests() []*url.URL {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*url.URL(nil), m.requests...)
}

func (m *mockOWM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.responses = make(map[string]MockResponse)
}
