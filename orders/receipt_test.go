package orders

import (
	"strings"
	"testing"
)

func TestReceiptPayloadRoundTrip(t *testing.T) {
	payload := ReceiptPayload("ord_abcdef1234567890", "usr_owner")

	orderID, err := VerifyReceiptPayload(payload)
	if err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if orderID != "ord_abcdef1234567890" {
		t.Fatalf("expected order id back, got %q", orderID)
	}
}

func TestVerifyReceiptPayloadRejectsTampering(t *testing.T) {
	payload := ReceiptPayload("ord_abcdef1234567890", "usr_owner")
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		t.Fatalf("unexpected payload shape: %q", payload)
	}

	// swap the order id, keep the signature
	tampered := "ord_0000000000000000|" + parts[1] + "|" + parts[2]
	if _, err := VerifyReceiptPayload(tampered); err == nil {
		t.Fatal("tampered order id accepted")
	}

	// swap the user id
	tampered = parts[0] + "|usr_attacker|" + parts[2]
	if _, err := VerifyReceiptPayload(tampered); err == nil {
		t.Fatal("tampered user id accepted")
	}
}

func TestVerifyReceiptPayloadRejectsMalformed(t *testing.T) {
	for _, payload := range []string{"", "ord_x", "a|b", "a|b|c|d"} {
		if _, err := VerifyReceiptPayload(payload); err == nil {
			t.Fatalf("malformed payload %q accepted", payload)
		}
	}
}
