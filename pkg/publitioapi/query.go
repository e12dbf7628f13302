package publitioapi

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnsupportedQueryValue = errors.New("unsupported query value")

// Param is a single query parameter. Value is stringified at encoding time.
type Param struct {
	Key   string
	Value interface{}
}

// Query is an ordered list of query parameters. The order is kept on the wire.
type Query []Param

// Add appends a parameter and returns the extended query.
func (q Query) Add(key string, value interface{}) Query {
	return append(q, Param{Key: key, Value: value})
}

// QueryFromMap converts a map into a Query with keys in sorted order.
func QueryFromMap(m map[string]interface{}) Query {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := make(Query, 0, len(m))
	for _, k := range keys {
		q = append(q, Param{Key: k, Value: m[k]})
	}
	return q
}

// encodeQuery renders the parameters as "?&k1=v1&k2=v2".
// The leading '?' is always present, even for an empty query.
func encodeQuery(queries ...Query) (string, error) {
	var sb strings.Builder
	sb.WriteByte('?')
	for _, q := range queries {
		for _, p := range q {
			value, err := stringifyValue(p.Value)
			if err != nil {
				return "", errors.Wrapf(err, "query parameter %q", p.Key)
			}

			sb.WriteByte('&')
			sb.WriteString(escape(p.Key))
			sb.WriteByte('=')
			sb.WriteString(escape(value))
		}
	}
	return sb.String(), nil
}

// escape percent-encodes everything outside the RFC 3986 unreserved set.
func escape(s string) string {
	// QueryEscape only leaves the unreserved set as is, but writes spaces as '+'
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func stringifyValue(v interface{}) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return "", errors.Wrapf(ErrUnsupportedQueryValue, "nil %T", v)
	}

	switch tv := v.(type) {
	case nil:
		return "", errors.Wrap(ErrUnsupportedQueryValue, "nil value")
	case string:
		return tv, nil
	case []byte:
		return string(tv), nil
	case fmt.Stringer:
		return tv.String(), nil
	case bool:
		return strconv.FormatBool(tv), nil
	case float32:
		return strconv.FormatFloat(float64(tv), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	}

	return "", errors.Wrapf(ErrUnsupportedQueryValue, "type %T", v)
}
