package domain

import "time"

// Message is a contact message that passed email verification.
type Message struct {
	MessageID string    `json:"id" dynamodbav:"message_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Subject   string    `json:"subject" dynamodbav:"subject"`
	Content   string    `json:"content" dynamodbav:"content"`
	Read      bool      `json:"read" dynamodbav:"read"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type UpdateMessageRequest struct {
	Read *bool `json:"read" validate:"required"`
}

type ReplyMessageRequest struct {
	Content string `json:"content" validate:"required"`
}
