package utils

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// ParsePagination reads skip/limit query params with a default and a cap.
func ParsePagination(r *http.Request, defLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit <= 0 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	skip, _ = strconv.ParseInt(q.Get("skip"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

// ParseSort maps a query value to a sort document, falling back to def.
func ParseSort(value string, def bson.D, allowed map[string]bson.D) bson.D {
	if value == "" {
		return def
	}
	if allowed != nil {
		if d, ok := allowed[value]; ok {
			return d
		}
		return def
	}
	switch value {
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	case "newest":
		return bson.D{{Key: "createdAt", Value: -1}}
	default:
		return def
	}
}
