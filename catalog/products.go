package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/mq"
	"vitrin/rdx"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCachePrefix = "product:"

// InvalidateProduct drops the cached product document. Called after any
// stock or rating write so cached reads never serve stale aggregates.
func InvalidateProduct(productID string) {
	if err := rdx.RdxDel(productCachePrefix + productID); err != nil {
		log.Printf("product cache invalidate failed for %s: %v", productID, err)
	}
}

// POST /api/catalog/products (admin/employee)
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil || price < 0 {
		http.Error(w, "Invalid price", http.StatusBadRequest)
		return
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		http.Error(w, "Invalid stock", http.StatusBadRequest)
		return
	}

	product := models.Product{
		ProductID:   "prd_" + utils.GenerateRandomString(12),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Stock:       stock,
		OutOfStock:  stock == 0,
		Category:    r.FormValue("category"),
		ShopID:      r.FormValue("shopId"),
		ShopName:    r.FormValue("shopName"),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if product.Title == "" || !ValidCategory(product.Category) {
		http.Error(w, "Missing title or unknown category", http.StatusBadRequest)
		return
	}

	if file, header, ferr := r.FormFile("image"); ferr == nil {
		defer file.Close()
		if !utils.ValidateImageFileType(w, header) {
			return
		}
		imageURL, thumbURL, err := saveProductImage(product.ProductID, file)
		if err != nil {
			log.Printf("CreateProduct image save error: %v", err)
			http.Error(w, "Failed to save image", http.StatusInternalServerError)
			return
		}
		product.ImageURL = imageURL
		product.ThumbURL = thumbURL
	}

	bucket, err := ResolveBucket(product.Category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Write the bucket first; the aggregate mirrors it.
	if _, err := bucket.InsertOne(ctx, product); err != nil {
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}
	if _, err := db.AllProductsCollection.InsertOne(ctx, product); err != nil {
		log.Printf("CreateProduct aggregate insert error: %v", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	go mq.Emit(context.Background(), "product-added", models.Event{
		Name:      "product-added",
		EntityID:  product.ProductID,
		ProductID: product.ProductID,
		Title:     "New arrival",
		Message:   product.Title,
	})

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// GET /api/catalog/products?category=&search=&skip=&limit=
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"), bson.D{{Key: "createdAt", Value: -1}}, nil)

	filter := bson.M{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	products, err := utils.FindAndDecode[models.Product](ctx, db.AllProductsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GET /api/catalog/products/:productid
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	if cached, err := rdx.RdxGet(productCachePrefix + productID); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	var product models.Product
	err := db.AllProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if data, err := json.Marshal(product); err == nil {
		if err := rdx.RdxSet(productCachePrefix+productID, string(data)); err != nil {
			log.Printf("product cache store failed for %s: %v", productID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GET /api/catalog/categories
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, db.BucketNames)
}
