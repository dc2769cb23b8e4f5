package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/goverify/internal/notification/entity"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		SenderID:    "GoVerify",
		Timeout:     2 * time.Second,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	}, instrument.NewNoop())
}

func TestGatewaySendSuccess(t *testing.T) {
	// Arrange
	var got sendRequest
	var auth string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	})

	// Act
	err := gw.Send(context.Background(), entity.SMSMessage{
		To:   "+6281234567890",
		Body: "Your verification code is 123456.",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", auth)
	}
	if got.To != "+6281234567890" || got.From != "GoVerify" || got.APIKey != "test-key" {
		t.Fatalf("unexpected request payload %+v", got)
	}

	sent, failed := gw.Stats()
	if sent != 1 || failed != 0 {
		t.Fatalf("expected stats 1/0, got %d/%d", sent, failed)
	}
}

func TestGatewaySendRetriesServerErrors(t *testing.T) {
	attempts := 0
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	err := gw.Send(context.Background(), entity.SMSMessage{To: "+6281234567890", Body: "hi"})
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestGatewaySendClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})

	err := gw.Send(context.Background(), entity.SMSMessage{To: "+6281234567890", Body: "hi"})
	if err == nil {
		t.Fatal("expected error for 4xx response")
	}
	if attempts != 1 {
		t.Fatalf("expected no retries on 4xx, got %d attempts", attempts)
	}

	_, failed := gw.Stats()
	if failed != 1 {
		t.Fatalf("expected one failed delivery, got %d", failed)
	}
}

func TestGatewaySendExhaustsRetries(t *testing.T) {
	attempts := 0
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := gw.Send(context.Background(), entity.SMSMessage{To: "+6281234567890", Body: "hi"})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected initial attempt plus 2 retries, got %d", attempts)
	}
}
