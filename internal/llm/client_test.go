package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompleteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k1" {
			t.Errorf("auth=%q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Model != "m" || len(req.Messages) != 1 || req.Messages[0].Content != "hi" {
			t.Errorf("req=%+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello back"}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/v1", "k1", "m")
	out, err := c.Complete(context.Background(), "hi")
	if err != nil { t.Fatalf("complete: %v", err) }
	if out != "hello back" { t.Fatalf("out=%q", out) }
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "m")
	_, err := c.Complete(context.Background(), "hi")
	if err == nil { t.Fatalf("expected error") }
	if !strings.Contains(err.Error(), "502") { t.Fatalf("err=%v", err) }
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "m")
	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestCompleteUnconfigured(t *testing.T) {
	c := New("", "", "m")
	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for missing base URL")
	}
}
