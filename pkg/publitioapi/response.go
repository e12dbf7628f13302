package publitioapi

import (
	"encoding/json"

	"github.com/valyala/fastjson"
)

// Response is the parsed JSON body of an API call.
// The body may be any JSON value; callers index into it by key path.
type Response struct {
	StatusCode int
	Body       []byte

	value *fastjson.Value
}

func parseResponse(statusCode int, body []byte) (*Response, error) {
	val, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: statusCode,
		Body:       body,
		value:      val,
	}, nil
}

// Value returns the root of the JSON tree.
func (r *Response) Value() *fastjson.Value {
	return r.value
}

func (r *Response) Type() fastjson.Type {
	return r.value.Type()
}

// Get returns the value at the given key path, or nil if it does not exist.
// Array elements are addressed by their decimal index.
func (r *Response) Get(keys ...string) *fastjson.Value {
	return r.value.Get(keys...)
}

func (r *Response) Exists(keys ...string) bool {
	return r.value.Exists(keys...)
}

func (r *Response) GetString(keys ...string) string {
	return string(r.value.GetStringBytes(keys...))
}

func (r *Response) GetInt(keys ...string) int {
	return r.value.GetInt(keys...)
}

func (r *Response) GetInt64(keys ...string) int64 {
	return r.value.GetInt64(keys...)
}

func (r *Response) GetFloat64(keys ...string) float64 {
	return r.value.GetFloat64(keys...)
}

func (r *Response) GetBool(keys ...string) bool {
	return r.value.GetBool(keys...)
}

func (r *Response) GetArray(keys ...string) []*fastjson.Value {
	return r.value.GetArray(keys...)
}

// DecodeJSON decodes the raw body into v.
func (r *Response) DecodeJSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Success reports the "success" flag of the body.
// Bodies without the flag are treated as successful.
func (r *Response) Success() bool {
	s := r.value.Get("success")
	if s == nil {
		return true
	}

	return s.Type() != fastjson.TypeFalse
}

// Err returns an *APIError when the body reports "success": false.
func (r *Response) Err() error {
	if r.Success() {
		return nil
	}

	apiErr := &APIError{
		StatusCode: r.StatusCode,
		Code:       r.GetInt("code"),
		Message:    r.GetString("message"),
	}

	if e := r.value.Get("error"); e != nil {
		switch e.Type() {
		case fastjson.TypeObject:
			if msg := e.GetStringBytes("message"); len(msg) > 0 {
				apiErr.Message = string(msg)
			}
			if code := e.GetInt("code"); code != 0 {
				apiErr.Code = code
			}
		case fastjson.TypeString:
			apiErr.Message = string(e.GetStringBytes())
		}
	}

	if apiErr.Code == 0 {
		apiErr.Code = r.StatusCode
	}

	return apiErr
}

func (r *Response) String() string {
	return r.value.String()
}
