//go:build staging

package staging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL string
	apiKey  string
	httpc   *http.Client
)

func TestMain(m *testing.M) {
	baseURL = envOr("API_URL", "http://localhost:8080")
	apiKey = envOr("API_KEY", "test-api-key")
	httpc = &http.Client{Timeout: 10 * time.Second}

	os.Exit(m.Run())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// dataEnvelope is the engine's standard success wrapper.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// do issues one authenticated request and returns status and raw body.
func do(t *testing.T, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-API-Key", apiKey)

	resp, err := httpc.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, raw
}

// getData unwraps a GET response's data envelope into out.
func getData(t *testing.T, path string, out interface{}) int {
	t.Helper()
	status, raw := do(t, "GET", path, nil)
	if status == http.StatusOK {
		unwrap(t, raw, out)
	}
	return status
}

// postData unwraps a POST response's data envelope into out.
func postData(t *testing.T, path string, body, out interface{}) int {
	t.Helper()
	status, raw := do(t, "POST", path, body)
	if status < 300 && out != nil {
		unwrap(t, raw, out)
	}
	return status
}

func unwrap(t *testing.T, raw []byte, out interface{}) {
	t.Helper()
	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, raw)
	}
	if out == nil {
		return
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v (body: %s)", err, raw)
	}
}
