package cmdutil

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/publitio/publitio-go/pkg/publitioapi"
)

// ParseParams converts "key=value" arguments into a query, keeping their order.
func ParseParams(args []string) (publitioapi.Query, error) {
	var query publitioapi.Query
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || len(key) == 0 {
			return nil, errors.Errorf("invalid parameter %q, expecting key=value", arg)
		}

		query = query.Add(key, value)
	}

	return query, nil
}
