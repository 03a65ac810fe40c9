// Package message models the support messages drivers send to the admin
// inbox (the `messages` table).
package message

import (
	"strings"
	"time"

	"charide/internal/general/errs"
)

const defaultSubject = "Driver message"

// Message is the domain entity corresponding to the `messages` table.
type Message struct {
	ID        string
	UserID    string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// NewMessage constructs a support message. The subject defaults when absent;
// the body is required.
func NewMessage(userID, subject, body string) (*Message, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errs.Validationf("user id is required")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errs.Validationf("message is required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = defaultSubject
	}

	return &Message{
		UserID:    userID,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}, nil
}
