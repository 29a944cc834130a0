package models

import "time"

// IdempotencyRecord caches the response of a keyed mutating request so
// replays return the original result instead of re-running the handler.
type IdempotencyRecord struct {
	Key            string    `json:"key" bson:"key"`
	Method         string    `json:"method" bson:"method"`
	Path           string    `json:"path" bson:"path"`
	UserID         string    `json:"userId" bson:"userId"`
	RequestHash    string    `json:"requestHash" bson:"request_hash"`
	ResponseStatus int       `json:"responseStatus,omitempty" bson:"response_status,omitempty"`
	ResponseBody   []byte    `json:"-" bson:"response_body,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	ExpiresAt      time.Time `json:"expiresAt" bson:"expires_at"`
}
