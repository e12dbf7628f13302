package publitioapi

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publitio/publitio-go/pkg/nonce"
	"github.com/publitio/publitio-go/pkg/testing/httptesting"
)

type fixedNonce int64

func (n fixedNonce) Nonce() int64 {
	return int64(n)
}

const fixedAuthQuery = "&api_key=K&api_timestamp=1000&api_nonce=12345678&api_signature=94c6b1294c236d2145cb9ac104039f5e5551b4a3"

func newTestClient(t *testing.T, httpClient *http.Client) *RestClient {
	t.Helper()

	client := NewClient()
	client.HttpClient = httpClient
	client.SetClock(nonce.FixedClock(time.Unix(1000, 0)))
	client.SetNonceSource(fixedNonce(12345678))
	client.Auth("K", "s3cr3t")
	return client
}

func TestRestClient_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("auth parameters come first and caller order is kept", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{"success": true, "files_total": 0}`)
		client := newTestClient(t, httpClient)

		resp, err := client.Get(ctx, "/files/list", Query{}.Add("offset", 0).Add("limit", 2))
		require.NoError(t, err)
		assert.True(t, resp.Success())
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		req, _ := saver.LastRequest()
		require.NotNil(t, req)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "https://api.publit.io/v1/files/list?"+fixedAuthQuery+"&offset=0&limit=2", req.URL.String())
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
	})

	t.Run("nil query sends only auth parameters", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{}`)
		client := newTestClient(t, httpClient)

		_, err := client.Get(ctx, "files/list", nil)
		require.NoError(t, err)

		req, _ := saver.LastRequest()
		assert.Equal(t, fixedAuthQuery, req.URL.RawQuery)
	})

	t.Run("leading slashes are stripped", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{}`)
		client := newTestClient(t, httpClient)

		for _, path := range []string{"//files/list", "files/list", "///files/list"} {
			_, err := client.Get(ctx, path, nil)
			require.NoError(t, err)
		}

		requests := saver.Requests()
		require.Len(t, requests, 3)
		for _, req := range requests {
			assert.Equal(t, "api.publit.io", req.URL.Host)
			assert.Equal(t, "/v1/files/list", req.URL.Path)
		}
	})

	t.Run("parses the JSON body", func(t *testing.T) {
		httpClient, _ := httptesting.HttpClientWithContent(`{"id": 1}`)
		client := newTestClient(t, httpClient)

		resp, err := client.Get(ctx, "files/show/abc", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.GetInt("id"))
	})

	t.Run("error status with a JSON body is still a result", func(t *testing.T) {
		httpClient, _ := httptesting.HttpClientWithStatus(http.StatusUnauthorized,
			`{"success": false, "error": {"message": "Unauthorized", "code": 401}}`)
		client := newTestClient(t, httpClient)

		resp, err := client.Get(ctx, "files/list", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, resp.Success())
		assert.Error(t, resp.Err())
	})

	t.Run("non-JSON body is an invalid response error", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithStatus(http.StatusInternalServerError, "not json")
		client := newTestClient(t, httpClient)

		before := promtestutil.ToFloat64(invalidResponseMetrics.WithLabelValues(http.MethodGet))

		resp, err := client.Get(ctx, "files/list", Query{}.Add("limit", 1))
		assert.Nil(t, resp)

		var invalidErr *InvalidResponseError
		require.True(t, errors.As(err, &invalidErr))

		req, _ := saver.LastRequest()
		assert.Equal(t, "not json", invalidErr.Body)
		assert.Equal(t, req.URL.String(), invalidErr.URI)
		assert.Contains(t, err.Error(), "not json")
		assert.Contains(t, err.Error(), "https://api.publit.io/v1/files/list?"+fixedAuthQuery+"&limit=1")
		assert.Contains(t, err.Error(), "internal server error")
		assert.Contains(t, err.Error(), "wrong HTTP method")
		assert.Error(t, errors.Unwrap(err))

		after := promtestutil.ToFloat64(invalidResponseMetrics.WithLabelValues(http.MethodGet))
		assert.Equal(t, before+1, after)
	})

	t.Run("transport errors are not translated", func(t *testing.T) {
		transportErr := errors.New("connection refused")
		httpClient, _ := httptesting.HttpClientWithError(transportErr)
		client := newTestClient(t, httpClient)

		_, err := client.Get(ctx, "files/list", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, transportErr))

		var invalidErr *InvalidResponseError
		assert.False(t, errors.As(err, &invalidErr))
	})

	t.Run("unsupported query value fails before sending", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{}`)
		client := newTestClient(t, httpClient)

		_, err := client.Get(ctx, "files/list", Query{}.Add("limit", nil))
		assert.True(t, errors.Is(err, ErrUnsupportedQueryValue))
		assert.Empty(t, saver.Requests())
	})

	t.Run("paths must stay below the base url", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{}`)
		client := newTestClient(t, httpClient)

		for _, path := range []string{
			"https://evil.example/collect",
			"abc:def/x",
			"files/list?limit=2",
			"files/list?",
			"files/a#b",
		} {
			_, err := client.Get(ctx, path, Query{}.Add("x", 1))
			assert.True(t, errors.Is(err, ErrInvalidPath), "path %q", path)
		}

		_, err := client.Delete(ctx, "http://evil.example/files/delete/abc")
		assert.True(t, errors.Is(err, ErrInvalidPath))

		assert.Empty(t, saver.Requests())
	})

	t.Run("missing credentials", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{}`)
		client := NewClient()
		client.HttpClient = httpClient

		_, err := client.Get(ctx, "files/list", nil)
		assert.Equal(t, ErrEmptyCredentials, err)

		client.Auth("K", "")
		_, err = client.Get(ctx, "files/list", nil)
		assert.Equal(t, ErrEmptyCredentials, err)
		assert.Empty(t, saver.Requests())
	})
}

func TestRestClient_PutAndDelete(t *testing.T) {
	ctx := context.Background()

	transport := &httptesting.MockTransport{}
	transport.PUT("/v1/files/update/abc", func(req *http.Request) (*http.Response, error) {
		assert.True(t, strings.HasSuffix(req.URL.RawQuery, "&title=new%20title&privacy=1"))
		return httptesting.BuildResponseJson(http.StatusOK, map[string]interface{}{"success": true, "title": "new title"}), nil
	})
	transport.DELETE("/v1/files/delete/abc", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, fixedAuthQuery, req.URL.RawQuery)
		return httptesting.BuildResponseJson(http.StatusOK, map[string]interface{}{"success": true}), nil
	})

	client := newTestClient(t, &http.Client{Transport: transport})

	resp, err := client.Put(ctx, "/files/update/abc", Query{}.Add("title", "new title").Add("privacy", 1))
	require.NoError(t, err)
	assert.Equal(t, "new title", resp.GetString("title"))

	resp, err = client.Delete(ctx, "files/delete/abc")
	require.NoError(t, err)
	assert.True(t, resp.GetBool("success"))
}

func TestRestClient_UploadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("single multipart part named file", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{"success": true, "id": "xyz"}`)
		client := newTestClient(t, httpClient)

		data := []byte("\x00\x01 binary media payload")
		resp, err := client.UploadFile(ctx, "/files/create", Query{}.Add("title", "clip"), bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "xyz", resp.GetString("id"))

		req, body := saver.LastRequest()
		require.NotNil(t, req)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/v1/files/create", req.URL.Path)
		assert.Equal(t, fixedAuthQuery+"&title=clip", req.URL.RawQuery)

		mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
		part, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "file", part.FormName())
		assert.Equal(t, "file", part.FileName())

		content, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, data, content)

		_, err = reader.NextPart()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("watermarks/create is a creation path", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{"success": true}`)
		client := newTestClient(t, httpClient)

		_, err := client.UploadFile(ctx, "watermarks/create", nil, strings.NewReader("png"))
		require.NoError(t, err)
		assert.Len(t, saver.Requests(), 1)
	})

	t.Run("rejects non-creation paths", func(t *testing.T) {
		httpClient, saver := httptesting.HttpClientWithContent(`{}`)
		client := newTestClient(t, httpClient)

		_, err := client.UploadFile(ctx, "files/update/abc", nil, strings.NewReader("data"))
		assert.True(t, errors.Is(err, ErrNotCreationPath))

		_, err = client.UploadFile(ctx, "files/create", nil, nil)
		assert.Equal(t, ErrEmptyUpload, err)
		assert.Empty(t, saver.Requests())
	})
}

func TestRestClient_Concurrent(t *testing.T) {
	httpClient, saver := httptesting.HttpClientWithContent(`{"success": true}`)

	client := NewClient()
	client.HttpClient = httpClient
	client.Auth("K", "S")

	const calls = 200

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Get(context.Background(), "files/list", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	requests := saver.Requests()
	require.Len(t, requests, calls)

	seen := make(map[string]struct{})
	for _, req := range requests {
		q := req.URL.Query()
		assert.Len(t, q.Get("api_nonce"), 8)
		assert.Regexp(t, signaturePattern, q.Get("api_signature"))
		seen[q.Get("api_timestamp")+"/"+q.Get("api_nonce")] = struct{}{}
	}

	assert.GreaterOrEqual(t, len(seen), calls-1)
}
