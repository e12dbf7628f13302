package publitioapi

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"

	"github.com/pkg/errors"
)

const uploadFieldName = "file"

// creationPaths are the only endpoints that accept a file body.
var creationPaths = map[string]struct{}{
	"files/create":      {},
	"watermarks/create": {},
}

func isCreationPath(path string) bool {
	path = strings.TrimSuffix(path, "/")
	_, ok := creationPaths[path]
	return ok
}

// newUploadBody wraps data as a multipart/form-data body holding the single part "file".
func newUploadBody(data io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(uploadFieldName, uploadFieldName)
	if err != nil {
		return nil, "", err
	}

	if _, err := io.Copy(part, data); err != nil {
		return nil, "", errors.Wrap(err, "unable to read upload data")
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
