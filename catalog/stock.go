package catalog

import (
	"context"
	"fmt"
	"time"

	"vitrin/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClampStock applies the decrement rule: stock never goes below zero.
func ClampStock(stock, quantity int) int {
	if quantity >= stock {
		return 0
	}
	return stock - quantity
}

// ReserveStock decrements a product's stock by quantity in both its
// category bucket and the AllProducts aggregate, clamped at zero, and
// returns the units actually reserved. When stock is short the remainder
// is sold and the product flips out of stock, so the reserved count can
// be less than quantity. Undoing a reservation must release exactly the
// returned amount. The full decrement is conditional on sufficient stock
// so two concurrent checkouts cannot drive it negative.
func ReserveStock(ctx context.Context, category, productID string, quantity int) (int, error) {
	bucket, err := ResolveBucket(category)
	if err != nil {
		return 0, err
	}

	filter := bson.M{"productid": productID, "stock": bson.M{"$gte": quantity}}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	res, err := bucket.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("stock decrement failed: %w", err)
	}
	if res.ModifiedCount == 0 {
		// Less stock than requested: sell what is left, clamp at zero.
		var p struct {
			Stock int `bson:"stock"`
		}
		if err := bucket.FindOne(ctx, bson.M{"productid": productID}).Decode(&p); err != nil {
			return 0, fmt.Errorf("product %s not found in %s: %w", productID, category, err)
		}
		remaining := ClampStock(p.Stock, quantity)
		reserved := p.Stock - remaining
		if _, err := bucket.UpdateOne(ctx,
			bson.M{"productid": productID},
			bson.M{"$set": bson.M{"stock": remaining, "outOfStock": true, "updatedAt": time.Now()}},
		); err != nil {
			return 0, fmt.Errorf("stock clamp failed: %w", err)
		}
		mirrorStock(ctx, productID, remaining, true)
		return reserved, nil
	}

	// Post-read for the out-of-stock flag and the aggregate mirror; the
	// reservation stands even if this read fails.
	var p struct {
		Stock int `bson:"stock"`
	}
	if err := bucket.FindOne(ctx, bson.M{"productid": productID}).Decode(&p); err == nil {
		if p.Stock == 0 {
			bucket.UpdateOne(ctx, bson.M{"productid": productID},
				bson.M{"$set": bson.M{"outOfStock": true}})
		}
		mirrorStock(ctx, productID, p.Stock, p.Stock == 0)
	}
	return quantity, nil
}

// ReleaseStock undoes a reservation after a failed order write. The
// quantity must be the reserved count ReserveStock returned; releasing
// zero is a no-op.
func ReleaseStock(ctx context.Context, category, productID string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	bucket, err := ResolveBucket(category)
	if err != nil {
		return err
	}

	update := bson.M{
		"$inc": bson.M{"stock": quantity},
		"$set": bson.M{"outOfStock": false, "updatedAt": time.Now()},
	}
	if _, err := bucket.UpdateOne(ctx, bson.M{"productid": productID}, update); err != nil {
		return fmt.Errorf("stock release failed: %w", err)
	}

	var p struct {
		Stock int `bson:"stock"`
	}
	if err := bucket.FindOne(ctx, bson.M{"productid": productID}).Decode(&p); err == nil {
		mirrorStock(ctx, productID, p.Stock, false)
	}
	return nil
}

// mirrorStock copies the bucket's stock value to the AllProducts aggregate
// and drops the cached product. A miss here leaves the aggregate stale
// until the next write; the bucket stays authoritative.
func mirrorStock(ctx context.Context, productID string, stock int, outOfStock bool) {
	db.AllProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": bson.M{"stock": stock, "outOfStock": outOfStock, "updatedAt": time.Now()}},
	)
	InvalidateProduct(productID)
}

// LookupProduct reads a product from its category bucket.
func LookupProduct(ctx context.Context, category, productID string) (*mongo.SingleResult, error) {
	bucket, err := ResolveBucket(category)
	if err != nil {
		return nil, err
	}
	return bucket.FindOne(ctx, bson.M{"productid": productID}), nil
}
