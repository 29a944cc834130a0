package models

import "time"

type Question struct {
	QuestionID string    `json:"questionId" bson:"questionid"`
	ProductID  string    `json:"productId" bson:"productId"`
	UserID     string    `json:"userId" bson:"userId"`
	UserName   string    `json:"userName" bson:"userName"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type Answer struct {
	AnswerID   string    `json:"answerId" bson:"answerid"`
	QuestionID string    `json:"questionId" bson:"questionId"`
	ProductID  string    `json:"productId" bson:"productId"`
	UserID     string    `json:"userId,omitempty" bson:"userId,omitempty"`
	UserName   string    `json:"userName" bson:"userName"` // "assistant" for generated answers
	Text       string    `json:"text" bson:"text"`
	Votes      int       `json:"votes" bson:"votes"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
