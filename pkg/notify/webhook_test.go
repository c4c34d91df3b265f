package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNotifySaleDeliversEvent(t *testing.T) {
	var received SaleEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode event: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(2 * time.Second)
	event := SaleEvent{
		InvoiceNo: "INV-1001",
		SaleID:    "6f1c2b34-0000-0000-0000-000000000001",
		Amount:    90.00,
		SoldBy:    "Sam Kariuki",
	}

	if err := notifier.NotifySale(context.Background(), server.URL, event); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if received != event {
		t.Errorf("delivered event %+v, want %+v", received, event)
	}
}

func TestNotifySaleFailsOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(2 * time.Second)
	err := notifier.NotifySale(context.Background(), server.URL, SaleEvent{InvoiceNo: "INV-1002"})
	if err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestNotifySaleSkipsEmptyURL(t *testing.T) {
	notifier := NewWebhookNotifier(2 * time.Second)
	if err := notifier.NotifySale(context.Background(), "", SaleEvent{}); err != nil {
		t.Fatalf("expected empty URL to be a no-op, got %v", err)
	}
}

func TestNullNotifierDiscards(t *testing.T) {
	notifier := NewNullNotifier()
	if err := notifier.NotifySale(context.Background(), "http://unreachable.invalid", SaleEvent{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
