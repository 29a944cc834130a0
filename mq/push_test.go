package mq

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendPush(t *testing.T) {
	var got PushPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Setenv("PUSH_RELAY_URL", srv.URL)
	t.Setenv("PUSH_RELAY_KEY", "relay-key")

	SendPush("usr_abc", "Order update", "Your order is on the way.")

	if got.To != "usr_abc" || got.Title != "Order update" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if auth != "key=relay-key" {
		t.Fatalf("unexpected auth header: %q", auth)
	}
}

func TestSendPushNoRelayConfigured(t *testing.T) {
	t.Setenv("PUSH_RELAY_URL", "")
	// must be a no-op, not a panic or a dial attempt
	SendPush("usr_abc", "t", "m")
}
