package testutil

import (
	"os"
	"regexp"
	"testing"
)

var secretPattern = regexp.MustCompile(`\b(\w{4})\w+\b`)

func maskSecret(s string) string {
	return secretPattern.ReplaceAllString(s, "$1******")
}

// IntegrationTestConfigured reads <prefix>_API_KEY and <prefix>_API_SECRET and
// reports whether live tests are enabled with TEST_<prefix>=1.
func IntegrationTestConfigured(t *testing.T, prefix string) (key, secret string, ok bool) {
	var hasKey, hasSecret bool
	key, hasKey = os.LookupEnv(prefix + "_API_KEY")
	secret, hasSecret = os.LookupEnv(prefix + "_API_SECRET")
	ok = hasKey && hasSecret && os.Getenv("TEST_"+prefix) == "1"
	if ok {
		t.Logf(prefix+" api integration test enabled, key = %s, secret = %s", maskSecret(key), maskSecret(secret))
	}

	return key, secret, ok
}
