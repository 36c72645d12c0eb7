package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tu "github.com/curatecli/curate/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("with custom base URL and client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com", customClient)

			if srv.baseURL != "http://example.com" {
				t.Errorf("baseURL = %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected the custom client to be used")
			}
		})

		t.Run("defaults", func(t *testing.T) {
			srv := NewAPIService("", nil)
			if srv.baseURL != "http://localhost:8080" {
				t.Errorf("baseURL = %s, want the proxy default", srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("json response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("method = %s", r.Method)
				}
				if r.URL.Path != "/api/library/playlists" {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/api/library/playlists")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d", resp.StatusCode)
			}
			if !resp.IsJSON || resp.JSONData == nil {
				t.Error("expected a decoded JSON response")
			}
		})

		t.Run("non-json response", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Header:     http.Header{"Content-Type": []string{"text/plain"}},
					Body:       tu.NopCloser(strings.NewReader("pong")),
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			resp, err := srv.Get(context.Background(), "/ping")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if resp.IsJSON || resp.JSONData != nil {
				t.Error("plain text must not be decoded as JSON")
			}
			if string(resp.Body) != "pong" {
				t.Errorf("body = %q", resp.Body)
			}
		})

		t.Run("malformed json body", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Header:     http.Header{"Content-Type": []string{"application/json"}},
					Body:       tu.NopCloser(strings.NewReader("{not json")),
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			resp, err := srv.Get(context.Background(), "/broken")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if resp.IsJSON {
				t.Error("undecodable body must not be flagged as JSON")
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/down")
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("error = %v, want a request failure", err)
			}
		})

		t.Run("body read failure", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Header:     http.Header{},
					Body:       &tu.FCloser{},
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/unreadable")
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("error = %v, want a body read failure", err)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("json body and response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s", r.Method)
				}
				if got := r.Header.Get("Content-Type"); got != "application/json" {
					t.Errorf("Content-Type = %q", got)
				}
				body, _ := io.ReadAll(r.Body)
				if string(body) != `{"video_ids":["vid1"]}` {
					t.Errorf("body = %s", body)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"status": "SUCCEEDED"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Post(context.Background(), "/api/playlists/PL1/items", []byte(`{"video_ids":["vid1"]}`))
			if err != nil {
				t.Fatalf("Post() error = %v", err)
			}
			if !resp.IsJSON {
				t.Error("expected a JSON response")
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Post(context.Background(), "/down", []byte(`{}`))
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("error = %v, want a request failure", err)
			}
		})
	})
}
