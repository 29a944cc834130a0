package qna

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vitrin/db"
	"vitrin/models"
	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/qna/product/:productid
func ListQuestions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	questions, err := utils.FindAndDecode[models.Question](ctx, db.QuestionCollection,
		bson.M{"productId": ps.ByName("productid")},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve questions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, questions)
}

// GET /api/qna/product/:productid/answers?questionid=
func ListAnswers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"productId": ps.ByName("productid")}
	if qid := r.URL.Query().Get("questionid"); qid != "" {
		filter = bson.M{"questionId": qid}
	}

	answers, err := utils.FindAndDecode[models.Answer](ctx, db.AnswerCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve answers")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, answers)
}

// POST /api/qna/product/:productid
// Stores the question and immediately files an assistant answer drawn
// from the product record.
func AskQuestion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var q models.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil || strings.TrimSpace(q.Text) == "" {
		http.Error(w, "Invalid question", http.StatusBadRequest)
		return
	}

	q.QuestionID = "qst_" + utils.GenerateRandomString(12)
	q.ProductID = ps.ByName("productid")
	q.UserID = userID
	q.CreatedAt = time.Now()

	if _, err := db.QuestionCollection.InsertOne(ctx, q); err != nil {
		http.Error(w, "Failed to store question", http.StatusInternalServerError)
		return
	}

	if answer := assistantAnswer(ctx, q); answer != nil {
		if _, err := db.AnswerCollection.InsertOne(ctx, *answer); err != nil {
			log.Printf("AskQuestion: assistant answer insert failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, q)
}

// POST /api/qna/product/:productid/:questionid/answers (staff)
func AnswerQuestion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var a models.Answer
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil || strings.TrimSpace(a.Text) == "" {
		http.Error(w, "Invalid answer", http.StatusBadRequest)
		return
	}

	a.AnswerID = "ans_" + utils.GenerateRandomString(12)
	a.QuestionID = ps.ByName("questionid")
	a.ProductID = ps.ByName("productid")
	a.UserID = userID
	a.CreatedAt = time.Now()

	if _, err := db.AnswerCollection.InsertOne(ctx, a); err != nil {
		http.Error(w, "Failed to store answer", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, a)
}

// POST /api/qna/answers/:answerid/vote
func VoteAnswer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Type string `json:"type"`
	}
	json.NewDecoder(r.Body).Decode(&payload)

	inc := 1
	if payload.Type == "down" {
		inc = -1
	}
	_, err := db.AnswerCollection.UpdateOne(ctx,
		bson.M{"answerid": ps.ByName("answerid")},
		bson.M{"$inc": bson.M{"votes": inc}},
	)
	if err != nil {
		http.Error(w, "Failed to vote", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// assistantAnswer builds the canned product-page answer from the catalog
// record. Stand-in for the hosted Q&A model relay.
func assistantAnswer(ctx context.Context, q models.Question) *models.Answer {
	var product models.Product
	err := db.AllProductsCollection.FindOne(ctx, bson.M{"productid": q.ProductID}).Decode(&product)
	if err != nil {
		return nil
	}

	text := product.Description
	if text == "" {
		text = "No details are available for this product yet."
	}
	lower := strings.ToLower(q.Text)
	switch {
	case strings.Contains(lower, "price"):
		text = product.Title + " is listed at " + formatMinorUnits(product.Price) + "."
	case strings.Contains(lower, "stock"), strings.Contains(lower, "available"):
		if product.OutOfStock {
			text = product.Title + " is currently out of stock."
		} else {
			text = product.Title + " is in stock."
		}
	}

	return &models.Answer{
		AnswerID:   "ans_" + utils.GenerateRandomString(12),
		QuestionID: q.QuestionID,
		ProductID:  q.ProductID,
		UserName:   "assistant",
		Text:       text,
		CreatedAt:  time.Now(),
	}
}

func formatMinorUnits(v int64) string {
	units := v / 100
	cents := v % 100
	if cents == 0 {
		return strconv.FormatInt(units, 10)
	}
	return fmt.Sprintf("%d.%02d", units, cents)
}
