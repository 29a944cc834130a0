package checkout

import "testing"

func TestValidatePaymentCashOnDelivery(t *testing.T) {
	if err := ValidatePayment(PaymentCashOnDelivery, nil); err != nil {
		t.Fatalf("COD should always pass, got %v", err)
	}
}

func TestValidatePaymentTestCard(t *testing.T) {
	card := &CardDetails{Number: "4242424242424242", Expiry: "12/26", CVV: "123"}
	if err := ValidatePayment(PaymentCard, card); err != nil {
		t.Fatalf("test card should pass, got %v", err)
	}

	// spaces in the number are tolerated
	card.Number = "4242 4242 4242 4242"
	if err := ValidatePayment(PaymentCard, card); err != nil {
		t.Fatalf("spaced test card should pass, got %v", err)
	}
}

func TestValidatePaymentDeclines(t *testing.T) {
	cases := []*CardDetails{
		nil,
		{Number: "4111111111111111", Expiry: "12/26", CVV: "123"},
		{Number: "4242424242424242", Expiry: "01/25", CVV: "123"},
		{Number: "4242424242424242", Expiry: "12/26", CVV: "999"},
	}
	for i, card := range cases {
		if err := ValidatePayment(PaymentCard, card); err != ErrCardDeclined {
			t.Fatalf("case %d: expected ErrCardDeclined, got %v", i, err)
		}
	}
}

func TestValidatePaymentUnknownMethod(t *testing.T) {
	if err := ValidatePayment("Bank Transfer", nil); err != ErrUnknownPaymentMethod {
		t.Fatalf("expected ErrUnknownPaymentMethod, got %v", err)
	}
}
