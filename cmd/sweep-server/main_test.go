package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/njchilds90/gosweep/mcp"
)

func TestTool_Presets(t *testing.T) {
	srv := httptest.NewServer(newMux(time.Second))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/tool", "application/json", strings.NewReader(`{"tool":"presets"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if _, err := uuid.Parse(res.Header.Get("X-Request-ID")); err != nil {
		t.Errorf("bad request id: %v", err)
	}
	var resp mcp.ToolResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "" || !strings.Contains(resp.String, "torus") {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTool_KeepsRequestID(t *testing.T) {
	srv := httptest.NewServer(newMux(time.Second))
	defer srv.Close()

	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/tool", strings.NewReader(`{"tool":"mcp_spec"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Request-ID", id)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if got := res.Header.Get("X-Request-ID"); got != id {
		t.Errorf("want id %s, got %s", id, got)
	}
}

func TestTool_RejectsBadRequests(t *testing.T) {
	srv := httptest.NewServer(newMux(time.Second))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/tool")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET: want 405, got %d", res.StatusCode)
	}
	for _, body := range []string{`{"tool":"presets","extra":1}`, `{"tool":"presets"} {}`, `not json`} {
		res, err := http.Post(srv.URL+"/tool", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: want 400, got %d", body, res.StatusCode)
		}
	}
}

func TestHealthAndSchema(t *testing.T) {
	srv := httptest.NewServer(newMux(time.Second))
	defer srv.Close()

	for _, path := range []string{"/health", "/schema"} {
		res, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]interface{}
		err = json.NewDecoder(res.Body).Decode(&body)
		res.Body.Close()
		if err != nil {
			t.Errorf("%s: %v", path, err)
		}
	}
}
