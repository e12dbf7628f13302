package httptesting

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Saver answers every request with fixed content and keeps the requests it saw,
// including a copy of each request body.
type Saver struct {
	StatusCode int
	Content    string
	Err        error

	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

func (s *Saver) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.bodies = append(s.bodies, body)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	statusCode := s.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	resp := BuildResponseString(statusCode, s.Content)
	resp.Request = req
	return resp, nil
}

// Requests returns the requests seen so far.
func (s *Saver) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

// LastRequest returns the most recent request and its body.
func (s *Saver) LastRequest() (*http.Request, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil, nil
	}

	i := len(s.requests) - 1
	return s.requests[i], s.bodies[i]
}

func HttpClientWithContent(content string) (*http.Client, *Saver) {
	saver := &Saver{Content: content}
	return &http.Client{Transport: saver}, saver
}

func HttpClientWithStatus(statusCode int, content string) (*http.Client, *Saver) {
	saver := &Saver{StatusCode: statusCode, Content: content}
	return &http.Client{Transport: saver}, saver
}

func HttpClientWithError(err error) (*http.Client, *Saver) {
	saver := &Saver{Err: err}
	return &http.Client{Transport: saver}, saver
}

func HttpClientWithJson(jsonData interface{}) (*http.Client, *Saver) {
	jsonBytes, err := json.Marshal(jsonData)
	saver := &Saver{Err: err, Content: string(jsonBytes)}
	return &http.Client{Transport: saver}, saver
}

func HttpClientFromFile(filename string) (*http.Client, *Saver) {
	rawBytes, err := os.ReadFile(filename)
	saver := &Saver{Err: err, Content: string(rawBytes)}
	return &http.Client{Transport: saver}, saver
}

func BuildResponseString(statusCode int, content string) *http.Response {
	return &http.Response{
		Status:        http.StatusText(statusCode),
		StatusCode:    statusCode,
		Header:        http.Header{},
		Body:          io.NopCloser(strings.NewReader(content)),
		ContentLength: int64(len(content)),
	}
}

func BuildResponseJson(statusCode int, data interface{}) *http.Response {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return BuildResponseString(http.StatusInternalServerError, `{"error": "`+err.Error()+`"}`)
	}

	resp := BuildResponseString(statusCode, string(jsonBytes))
	SetHeader(resp, "Content-Type", "application/json")
	return resp
}

func SetHeader(resp *http.Response, name, value string) *http.Response {
	if resp.Header == nil {
		resp.Header = http.Header{}
	}
	resp.Header.Set(name, value)
	return resp
}
