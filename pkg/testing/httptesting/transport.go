package httptesting

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

// MockTransport dispatches requests to handlers registered by method and URL path.
type MockTransport struct {
	mu       sync.Mutex
	handlers map[string]map[string]RoundTripFunc
}

func (transport *MockTransport) handle(method, path string, f RoundTripFunc) {
	transport.mu.Lock()
	defer transport.mu.Unlock()

	if transport.handlers == nil {
		transport.handlers = make(map[string]map[string]RoundTripFunc)
	}

	if transport.handlers[method] == nil {
		transport.handlers[method] = make(map[string]RoundTripFunc)
	}

	transport.handlers[method][path] = f
}

func (transport *MockTransport) GET(path string, f RoundTripFunc) {
	transport.handle(http.MethodGet, path, f)
}

func (transport *MockTransport) POST(path string, f RoundTripFunc) {
	transport.handle(http.MethodPost, path, f)
}

func (transport *MockTransport) DELETE(path string, f RoundTripFunc) {
	transport.handle(http.MethodDelete, path, f)
}

func (transport *MockTransport) PUT(path string, f RoundTripFunc) {
	transport.handle(http.MethodPut, path, f)
}

func (transport *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport.mu.Lock()
	f, ok := transport.handlers[strings.ToUpper(req.Method)][req.URL.Path]
	transport.mu.Unlock()

	if !ok {
		return nil, errors.Errorf("roundtrip mock to %s %s is not defined", req.Method, req.URL.Path)
	}

	return f(req)
}

// RecorderEntry records a single request and response pair.
type RecorderEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Request   *RequestRecord  `json:"request"`
	Response  *ResponseRecord `json:"response"`
	Error     string          `json:"error,omitempty"`
}

type RequestRecord struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header"`
	Body   string      `json:"body,omitempty"`
}

type ResponseRecord struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       string      `json:"body,omitempty"`
}

// Recorder saves request and response pairs to a file and plays them back
// through a MockTransport.
type Recorder struct {
	mu        sync.Mutex
	entries   []RecorderEntry
	transport http.RoundTripper
}

func NewRecorder(transport http.RoundTripper) *Recorder {
	return &Recorder{
		transport: transport,
	}
}

var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^authorization$`),
	regexp.MustCompile(`(?i)^api[-_]key$`),
	regexp.MustCompile(`(?i)^api[-_]signature$`),
	regexp.MustCompile(`(?i)^cookie$`),
	regexp.MustCompile(`(?i)^secret$`),
}

func isCredential(key string) bool {
	for _, re := range credentialPatterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// filterCredentials drops credential headers and masks credential query parameters.
func filterCredentials(header http.Header, u *url.URL) {
	for key := range header {
		if isCredential(key) {
			header.Del(key)
		}
	}

	pairs := strings.Split(u.RawQuery, "&")
	for i, pair := range pairs {
		key, _, found := strings.Cut(pair, "=")
		if found && isCredential(key) {
			pairs[i] = key + "=******"
		}
	}
	u.RawQuery = strings.Join(pairs, "&")
}

// RecordEntry records a request and response pair without credentials.
func (r *Recorder) RecordEntry(req *http.Request, resp *http.Response, err error) {
	u := *req.URL
	entry := RecorderEntry{
		Timestamp: time.Now(),
		Request: &RequestRecord{
			Method: req.Method,
			Header: req.Header.Clone(),
		},
	}
	filterCredentials(entry.Request.Header, &u)
	entry.Request.URL = u.String()

	if resp != nil {
		entry.Response = &ResponseRecord{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
		}
		if resp.Body != nil {
			bodyBytes, _ := io.ReadAll(resp.Body)
			entry.Response.Body = string(bodyBytes)
			resp.Body = io.NopCloser(strings.NewReader(entry.Response.Body))
		}
	}

	if err != nil {
		entry.Error = err.Error()
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}

// RoundTrip forwards to the underlying transport and records the exchange.
func (r *Recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.transport.RoundTrip(req)
	r.RecordEntry(req, resp, err)
	return resp, err
}

func (r *Recorder) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	defer file.Close()

	r.mu.Lock()
	defer r.mu.Unlock()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.entries)
}

func (r *Recorder) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}

	defer file.Close()

	var entries []RecorderEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return err
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

func BuildResponseFromRecord(respRec *ResponseRecord) *http.Response {
	return &http.Response{
		Status:     respRec.Status,
		StatusCode: respRec.StatusCode,
		Header:     respRec.Header.Clone(),
		Body:       io.NopCloser(strings.NewReader(respRec.Body)),
	}
}

// LoadFromRecorder registers a handler per recorded method and path that
// replies with the recorded response.
func (transport *MockTransport) LoadFromRecorder(recorder *Recorder) error {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	for _, entry := range recorder.entries {
		if entry.Request == nil || entry.Response == nil {
			continue
		}

		u, err := url.Parse(entry.Request.URL)
		if err != nil {
			return err
		}

		respRec := entry.Response
		transport.handle(strings.ToUpper(entry.Request.Method), u.Path, func(_ *http.Request) (*http.Response, error) {
			return BuildResponseFromRecord(respRec), nil
		})
	}
	return nil
}
