package httptesting

import (
	"net/http"
	"os"
	"testing"
)

var RecordIfFileNotFound = false

// RunHttpTestWithRecorder records live traffic into recordFile when
// TEST_HTTP_RECORD=1, and otherwise replays recordFile through a MockTransport.
// It returns whether the test runs against the live API, and a function that
// saves the recording.
func RunHttpTestWithRecorder(t *testing.T, client *http.Client, recordFile string) (bool, func()) {
	_, fErr := os.Stat(recordFile)
	notFound := fErr != nil && os.IsNotExist(fErr)

	if os.Getenv("TEST_HTTP_RECORD") == "1" || (RecordIfFileNotFound && notFound) {
		underlying := client.Transport
		if underlying == nil {
			underlying = http.DefaultTransport
		}

		recorder := NewRecorder(underlying)
		client.Transport = recorder
		return true, func() {
			if err := recorder.Save(recordFile); err != nil {
				t.Errorf("failed to save recorded requests: %v", err)
			}
		}
	}

	recorder := NewRecorder(nil)
	if err := recorder.Load(recordFile); err != nil {
		t.Fatalf("failed to load recorded requests: %v", err)
	}

	mockTransport := &MockTransport{}
	if err := mockTransport.LoadFromRecorder(recorder); err != nil {
		t.Fatalf("failed to load recordings: %v", err)
	}

	client.Transport = mockTransport
	return false, func() {}
}
