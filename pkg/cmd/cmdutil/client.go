package cmdutil

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/publitio/publitio-go/pkg/publitioapi"
)

// NewClient creates an authenticated client from the viper config,
// i.e. the --publitio-* flags or the PUBLITIO_* environment variables.
func NewClient() (*publitioapi.RestClient, error) {
	key := viper.GetString("publitio-api-key")
	secret := viper.GetString("publitio-api-secret")
	if len(key) == 0 || len(secret) == 0 {
		return nil, errors.New("publitio: empty key or secret, set PUBLITIO_API_KEY and PUBLITIO_API_SECRET")
	}

	client := publitioapi.NewClient()
	client.Auth(key, secret)

	if baseURL := viper.GetString("publitio-base-url"); len(baseURL) > 0 {
		if err := client.SetBaseURL(baseURL); err != nil {
			return nil, err
		}
	}

	if timeout := viper.GetDuration("http-timeout"); timeout > 0 {
		client.HttpClient.Timeout = timeout
	}

	return client, nil
}
