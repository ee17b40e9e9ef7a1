package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCompleteSendsChatRequest(t *testing.T) {
	t.Parallel()

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"score\":0.7}"}}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{URL: srv.URL, APIKey: " secret ", Model: "test-model"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"score":0.7}` {
		t.Fatalf("unexpected content %q", out)
	}

	if got.Model != "test-model" {
		t.Fatalf("unexpected model %q", got.Model)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if client.Model() != "test-model" {
		t.Fatalf("unexpected Model() %q", client.Model())
	}
}

func TestCompleteFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		assert func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   "upstream down",
			assert: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected StatusError, got %v", err)
				}
				if statusErr.StatusCode != http.StatusBadGateway || statusErr.Body != "upstream down" {
					t.Fatalf("unexpected status error %+v", statusErr)
				}
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":"bad key"}`,
			assert: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
					t.Fatalf("expected 401 StatusError, got %v", err)
				}
			},
		},
		{
			name:   "missing choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			assert: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "no choices") {
					t.Fatalf("expected missing choices error, got %v", err)
				}
			},
		},
		{
			name:   "invalid body",
			status: http.StatusOK,
			body:   `not json`,
			assert: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "decode chat response") {
					t.Fatalf("expected decode error, got %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls++
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := NewClient(Options{URL: srv.URL, APIKey: "k"}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, err = client.Complete(context.Background(), "prompt")
			tc.assert(t, err)

			if calls != 1 {
				t.Fatalf("expected exactly one request, got %d", calls)
			}
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewClient(Options{URL: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Options{APIKey: "  "}, nil); err == nil {
		t.Fatalf("expected error for empty api key")
	}

	client, err := NewClient(Options{APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.url != defaultURL || client.model != defaultModel {
		t.Fatalf("unexpected defaults: %s %s", client.url, client.model)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("unexpected timeout %s", client.httpClient.Timeout)
	}
}
