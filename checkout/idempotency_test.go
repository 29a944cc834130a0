package checkout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vitrin/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

func stubIdempotencyStore() func() {
	in, fi, st := insertIdempotencyRecord, findIdempotencyRecord, storeIdempotentResponse
	return func() {
		insertIdempotencyRecord, findIdempotencyRecord, storeIdempotentResponse = in, fi, st
	}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

func TestComputeRequestHashDeterministic(t *testing.T) {
	body := []byte(`{"paymentMethod":"Cash On Delivery"}`)
	a := computeRequestHash("POST", "/api/checkout/cart", "usr_abc", body)
	b := computeRequestHash("POST", "/api/checkout/cart", "usr_abc", body)
	if a != b {
		t.Fatalf("same inputs must hash equal: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %q", a)
	}
}

func TestComputeRequestHashVariesByInput(t *testing.T) {
	body := []byte(`{"paymentMethod":"Cash On Delivery"}`)
	base := computeRequestHash("POST", "/api/checkout/cart", "usr_abc", body)

	if computeRequestHash("POST", "/api/checkout/cart", "usr_xyz", body) == base {
		t.Fatal("different user must change the hash")
	}
	if computeRequestHash("POST", "/api/checkout/buynow", "usr_abc", body) == base {
		t.Fatal("different path must change the hash")
	}
	if computeRequestHash("POST", "/api/checkout/cart", "usr_abc", []byte(`{}`)) == base {
		t.Fatal("different body must change the hash")
	}
}

func TestIdempotentFirstArrivalStoresResponse(t *testing.T) {
	defer stubIdempotencyStore()()

	var storedKey string
	var storedStatus int
	var storedBody []byte
	insertIdempotencyRecord = func(ctx context.Context, rec models.IdempotencyRecord) error {
		return nil
	}
	storeIdempotentResponse = func(ctx context.Context, key string, status int, body []byte) error {
		storedKey, storedStatus, storedBody = key, status, body
		return nil
	}

	handler := Idempotent(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	})

	req := httptest.NewRequest("POST", "/api/checkout/cart", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "k1")
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusCreated || rec.Body.String() != `{"ok":true}` {
		t.Fatalf("client response lost: %d %q", rec.Code, rec.Body.String())
	}
	if storedKey != "k1" || storedStatus != http.StatusCreated || string(storedBody) != `{"ok":true}` {
		t.Fatalf("stored %q %d %q", storedKey, storedStatus, storedBody)
	}
}

func TestIdempotentReplayReturnsCachedResponse(t *testing.T) {
	defer stubIdempotencyStore()()

	body := `{"paymentMethod":"Cash On Delivery"}`
	insertIdempotencyRecord = func(ctx context.Context, rec models.IdempotencyRecord) error {
		return duplicateKeyErr()
	}
	findIdempotencyRecord = func(ctx context.Context, key string) (models.IdempotencyRecord, error) {
		return models.IdempotencyRecord{
			Key:            key,
			RequestHash:    computeRequestHash("POST", "/api/checkout/cart", "", []byte(body)),
			ResponseStatus: http.StatusOK,
			ResponseBody:   []byte(`{"cached":true}`),
		}, nil
	}

	handlerRan := false
	handler := Idempotent(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handlerRan = true
	})

	req := httptest.NewRequest("POST", "/api/checkout/cart", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "k1")
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if handlerRan {
		t.Fatal("replay must not re-run the handler")
	}
	if rec.Code != http.StatusOK || rec.Body.String() != `{"cached":true}` {
		t.Fatalf("expected cached response, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestIdempotentConflictOnDifferentBody(t *testing.T) {
	defer stubIdempotencyStore()()

	insertIdempotencyRecord = func(ctx context.Context, rec models.IdempotencyRecord) error {
		return duplicateKeyErr()
	}
	findIdempotencyRecord = func(ctx context.Context, key string) (models.IdempotencyRecord, error) {
		return models.IdempotencyRecord{Key: key, RequestHash: "other-request"}, nil
	}

	handlerRan := false
	handler := Idempotent(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handlerRan = true
	})

	req := httptest.NewRequest("POST", "/api/checkout/cart", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "k1")
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if handlerRan || rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without handler run, got %d", rec.Code)
	}
}

func TestIdempotentResponseDeliveredWhenStoreFails(t *testing.T) {
	defer stubIdempotencyStore()()

	insertIdempotencyRecord = func(ctx context.Context, rec models.IdempotencyRecord) error {
		return nil
	}
	storeIdempotentResponse = func(ctx context.Context, key string, status int, body []byte) error {
		return errors.New("store down")
	}

	handler := Idempotent(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	})

	req := httptest.NewRequest("POST", "/api/checkout/cart", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "k1")
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusCreated || rec.Body.String() != `{"ok":true}` {
		t.Fatalf("client response lost on store failure: %d %q", rec.Code, rec.Body.String())
	}
}

func TestCaptureResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := newCaptureResponseWriter(rec)

	cw.WriteHeader(201)
	cw.WriteHeader(500) // second call ignored
	cw.Write([]byte(`{"ok":true}`))

	if cw.statusCode != 201 {
		t.Fatalf("expected captured status 201, got %d", cw.statusCode)
	}
	if cw.buf.String() != `{"ok":true}` {
		t.Fatalf("expected captured body, got %q", cw.buf.String())
	}
	if rec.Code != 201 {
		t.Fatalf("expected underlying status 201, got %d", rec.Code)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Fatalf("body not forwarded: %q", rec.Body.String())
	}
}
