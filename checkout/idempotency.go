package checkout

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Seams over the idempotency collection so replay behavior can be
// exercised without a live store.
var (
	insertIdempotencyRecord = func(ctx context.Context, rec models.IdempotencyRecord) error {
		_, err := db.IdempotencyCollection.InsertOne(ctx, rec)
		return err
	}
	findIdempotencyRecord = func(ctx context.Context, key string) (models.IdempotencyRecord, error) {
		var rec models.IdempotencyRecord
		err := db.IdempotencyCollection.FindOne(ctx, bson.M{"key": key}).Decode(&rec)
		return rec, err
	}
	storeIdempotentResponse = func(ctx context.Context, key string, status int, body []byte) error {
		_, err := db.IdempotencyCollection.UpdateOne(ctx,
			bson.M{"key": key},
			bson.M{"$set": bson.M{
				"response_status": status,
				"response_body":   body,
			}},
		)
		return err
	}
)

func computeRequestHash(method, path, userID string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method + ":" + path + ":" + userID + ":"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// captureResponseWriter wraps http.ResponseWriter to capture status and body.
type captureResponseWriter struct {
	w           http.ResponseWriter
	statusCode  int
	buf         bytes.Buffer
	wroteHeader bool
}

func newCaptureResponseWriter(w http.ResponseWriter) *captureResponseWriter {
	return &captureResponseWriter{w: w, statusCode: http.StatusOK}
}

func (c *captureResponseWriter) Header() http.Header {
	return c.w.Header()
}

func (c *captureResponseWriter) WriteHeader(statusCode int) {
	if !c.wroteHeader {
		c.statusCode = statusCode
		c.w.WriteHeader(statusCode)
		c.wroteHeader = true
	}
}

func (c *captureResponseWriter) Write(b []byte) (int, error) {
	c.buf.Write(b)
	return c.w.Write(b)
}

// helper to detect duplicate key errors from Mongo insert
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}

// Idempotent ensures safe replay behavior when the client provides an
// Idempotency-Key header. No header: pass-through. First arrival inserts a
// placeholder record, runs the handler, and stores the response. Replays
// with the same body return the cached response; a different body under
// the same key is a 409.
func Idempotent(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		key := r.Header.Get("Idempotency-Key")
		if key == "" {
			next(w, r, ps)
			return
		}

		userID := utils.GetUserIDFromRequest(r)

		// Limit body size to 1 MB to prevent memory issues
		bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		reqHash := computeRequestHash(r.Method, r.URL.Path, userID, bodyBytes)
		now := time.Now()
		rec := models.IdempotencyRecord{
			Key:         key,
			Method:      r.Method,
			Path:        r.URL.Path,
			UserID:      userID,
			RequestHash: reqHash,
			CreatedAt:   now,
			ExpiresAt:   now.Add(24 * time.Hour),
		}

		ctx := r.Context()
		err = insertIdempotencyRecord(ctx, rec)
		if err == nil {
			// First arrival: run the handler and store its response.
			cw := newCaptureResponseWriter(w)
			next(cw, r, ps)

			// A lost response turns the next replay into a re-run, so a
			// store failure is worth the log line.
			if serr := storeIdempotentResponse(ctx, key, cw.statusCode, cw.buf.Bytes()); serr != nil {
				log.Printf("idempotency: response store failed for key %s: %v", key, serr)
			}
			return
		}

		if !isDuplicateKeyError(err) {
			http.Error(w, "idempotency lookup error", http.StatusInternalServerError)
			return
		}

		existing, err := findIdempotencyRecord(ctx, key)
		if err != nil {
			http.Error(w, "idempotency lookup error", http.StatusInternalServerError)
			return
		}

		if existing.RequestHash != reqHash {
			http.Error(w, "idempotency-key conflict", http.StatusConflict)
			return
		}

		if existing.ResponseStatus != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(existing.ResponseStatus)
			w.Write(existing.ResponseBody)
			return
		}

		// In-flight request; the handler must be idempotent at the DB level.
		next(w, r, ps)
	}
}
