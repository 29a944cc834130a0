package catalog

import (
	"fmt"

	"vitrin/db"

	"go.mongodb.org/mongo-driver/mongo"
)

// ResolveBucket maps a category name to its catalog collection. Unknown
// categories are an error; there is no default bucket.
func ResolveBucket(category string) (*mongo.Collection, error) {
	coll, ok := db.CatalogBuckets[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return coll, nil
}

// ValidCategory reports whether category names a fixed bucket.
func ValidCategory(category string) bool {
	_, ok := db.CatalogBuckets[category]
	return ok
}
