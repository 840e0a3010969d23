package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxContentLength bounds a single message body in bytes.
const MaxContentLength = 4096

var (
	ErrUserIDRequired   = fmt.Errorf("%w: User ID parameter is required", apperr.ErrValidation)
	ErrReceiverRequired = fmt.Errorf("%w: receiverId is required", apperr.ErrValidation)
	ErrEmptyContent     = fmt.Errorf("%w: content is required", apperr.ErrValidation)
	ErrContentTooLong   = fmt.Errorf("%w: content exceeds %d bytes", apperr.ErrValidation, MaxContentLength)
)

// Message is a direct message between two users, addressed by their
// identity-provider subject ids.
type Message struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderID   string             `json:"senderId" bson:"senderId"`
	ReceiverID string             `json:"receiverId" bson:"receiverId"`
	Content    string             `json:"content" bson:"content"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewMessage validates and builds an unsaved message.
func NewMessage(senderID, receiverID, content string, now time.Time) (*Message, error) {
	senderID = strings.TrimSpace(senderID)
	receiverID = strings.TrimSpace(receiverID)
	if senderID == "" || receiverID == "" {
		return nil, ErrReceiverRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > MaxContentLength {
		return nil, ErrContentTooLong
	}
	return &Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// Conversation returns messages exchanged between a and b in either
	// direction, oldest first.
	Conversation(ctx context.Context, a, b string) ([]Message, error)
}
