package publitioapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/c9s/requestgen"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultHTTPTimeout = 2 * time.Minute

const RestBaseURL = "https://api.publit.io/v1/"

var log = logrus.WithField("api", "publitio")

// RestClient is the Publitio API client. All calls are independent and the
// client is safe for concurrent use once Auth has been called.
type RestClient struct {
	requestgen.BaseAPIClient

	key, secret string

	clock  Clock
	nonces NonceSource
	signer *SignatureBuilder
}

func NewClient() *RestClient {
	u, err := url.Parse(RestBaseURL)
	if err != nil {
		panic(err)
	}

	return &RestClient{
		BaseAPIClient: requestgen.BaseAPIClient{
			BaseURL: u,
			HttpClient: &http.Client{
				Timeout: defaultHTTPTimeout,
			},
		},
	}
}

// Auth sets the API key and secret found on the Publitio dashboard.
func (c *RestClient) Auth(key, secret string) {
	c.key = key
	// pragma: allowlist nextline secret
	c.secret = secret
	c.signer = NewSignatureBuilder(c.key, c.secret, c.clock, c.nonces)
}

// SetClock replaces the clock used for api_timestamp.
func (c *RestClient) SetClock(clock Clock) {
	c.clock = clock
	c.signer = NewSignatureBuilder(c.key, c.secret, c.clock, c.nonces)
}

// SetNonceSource replaces the random source used for api_nonce.
func (c *RestClient) SetNonceSource(nonces NonceSource) {
	c.nonces = nonces
	c.signer = NewSignatureBuilder(c.key, c.secret, c.clock, c.nonces)
}

// SetBaseURL points the client at another API origin, e.g. a test server.
func (c *RestClient) SetBaseURL(rawURL string) error {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrapf(err, "invalid base url %q", rawURL)
	}

	c.BaseURL = u
	return nil
}

// Get sends a GET request, e.g. Get(ctx, "/files/list", Query{}.Add("limit", 2)).
func (c *RestClient) Get(ctx context.Context, path string, query Query) (*Response, error) {
	return c.call(ctx, http.MethodGet, path, query, nil, "")
}

// Put sends a PUT request, e.g. Put(ctx, "files/update/<id>", Query{}.Add("title", "x")).
func (c *RestClient) Put(ctx context.Context, path string, query Query) (*Response, error) {
	return c.call(ctx, http.MethodPut, path, query, nil, "")
}

// Delete sends a DELETE request, e.g. Delete(ctx, "files/delete/<id>").
func (c *RestClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.call(ctx, http.MethodDelete, path, nil, nil, "")
}

// UploadFile posts data as a multipart body with the single field "file".
// Only "files/create" and "watermarks/create" accept uploads.
func (c *RestClient) UploadFile(ctx context.Context, path string, query Query, data io.Reader) (*Response, error) {
	if !isCreationPath(trimLeadingSlashes(path)) {
		return nil, errors.Wrapf(ErrNotCreationPath, "path %q", path)
	}

	if data == nil {
		return nil, ErrEmptyUpload
	}

	body, contentType, err := newUploadBody(data)
	if err != nil {
		return nil, err
	}

	return c.call(ctx, http.MethodPost, path, query, body, contentType)
}

func (c *RestClient) call(
	ctx context.Context, method, path string, query Query, body io.Reader, contentType string,
) (*Response, error) {
	req, err := c.newAuthenticatedRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.sendRequest(req)
}

// newAuthenticatedRequest builds base + path + "?&api_key=..&api_timestamp=..&api_nonce=..&api_signature=.." + caller params.
func (c *RestClient) newAuthenticatedRequest(
	ctx context.Context, method, path string, query Query, body io.Reader,
) (*http.Request, error) {
	if c.signer == nil || len(c.key) == 0 || len(c.secret) == 0 {
		return nil, ErrEmptyCredentials
	}

	rel, err := parseRelativePath(path)
	if err != nil {
		return nil, err
	}

	rawQuery, err := encodeQuery(c.signer.Build().Query(), query)
	if err != nil {
		return nil, err
	}

	pathURL := c.BaseURL.ResolveReference(rel)
	pathURL.RawQuery = strings.TrimPrefix(rawQuery, "?")
	pathURL.ForceQuery = true

	req, err := http.NewRequestWithContext(ctx, method, pathURL.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")
	return req, nil
}

// sendRequest performs the call and parses the body as JSON regardless of
// the status code. Transport errors are returned unchanged.
func (c *RestClient) sendRequest(req *http.Request) (*Response, error) {
	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		recordLatencyMetrics(req.Method, 0, float64(time.Since(start).Milliseconds()))
		return nil, err
	}

	defer resp.Body.Close()

	response, err := requestgen.NewResponse(resp)
	if err != nil {
		return nil, err
	}

	recordLatencyMetrics(req.Method, resp.StatusCode, float64(time.Since(start).Milliseconds()))

	log.WithFields(logrus.Fields{
		"method":      req.Method,
		"path":        req.URL.Path,
		"status_code": resp.StatusCode,
	}).Debugf("publitio api response in %s", time.Since(start))

	result, err := parseResponse(resp.StatusCode, response.Body)
	if err != nil {
		invalidResponseMetrics.WithLabelValues(req.Method).Inc()
		return nil, &InvalidResponseError{
			Body: string(response.Body),
			URI:  req.URL.String(),
			Err:  err,
		}
	}

	return result, nil
}

// parseRelativePath only accepts a plain path below the base address.
// Query parameters belong in the Query argument.
func parseRelativePath(path string) (*url.URL, error) {
	rel, err := url.Parse(trimLeadingSlashes(path))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPath, "%q: %v", path, err)
	}

	if rel.IsAbs() || rel.Host != "" || rel.Opaque != "" || rel.User != nil {
		return nil, errors.Wrapf(ErrInvalidPath, "%q is not relative to the base url", path)
	}

	if rel.RawQuery != "" || rel.ForceQuery || rel.Fragment != "" {
		return nil, errors.Wrapf(ErrInvalidPath, "%q carries a query or fragment", path)
	}

	return rel, nil
}

func trimLeadingSlashes(path string) string {
	return strings.TrimLeft(path, "/")
}
