package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

var receiptSecret = []byte(receiptSecretFromEnv())

func receiptSecretFromEnv() string {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return s
	}
	return "receipt-signing-key"
}

// ReceiptPayload builds the signed QR payload: orderId|userId|signature.
func ReceiptPayload(orderID, userID string) string {
	data := orderID + "|" + userID
	h := hmac.New(sha256.New, receiptSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// VerifyReceiptPayload checks the HMAC on a scanned payload and returns
// the order id it names.
func VerifyReceiptPayload(payload string) (string, error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed payload")
	}
	data := parts[0] + "|" + parts[1]
	h := hmac.New(sha256.New, receiptSecret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(parts[2])) {
		return "", fmt.Errorf("bad signature")
	}
	return parts[0], nil
}

// GET /api/orders/order/:orderid/receipt — PDF receipt with a verification QR.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if order.UserID != userID && !isStaff(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptPayload(order.OrderID, order.UserID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", order.OrderDate))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Product: %s", order.Title))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Quantity: %d", order.Quantity))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Payment: %s", order.PaymentMethod))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %d", order.Total))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.DeliveryStatus))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("receipt-qr", 10, pdf.GetY(), 50, 50, false, imageOpts, 0, "")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", order.OrderID))
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Failed to render receipt", http.StatusInternalServerError)
	}
}

// GET /api/orders/verify?payload= — staff scan of a receipt QR.
func VerifyReceipt(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := VerifyReceiptPayload(r.URL.Query().Get("payload"))
	if err != nil {
		http.Error(w, "Invalid receipt", http.StatusBadRequest)
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "order": order})
}
