package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/messaging/domain"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
)

const (
	EventMessage = "message"
	EventError   = "error"

	frameTimeout = 10 * time.Second
)

// Notifier pushes a payload to a user's live connections.
type Notifier interface {
	SendToUser(userID string, message []byte)
}

// SendRequest is the frame a client writes to send a message.
type SendRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// Event is the frame pushed to clients.
type Event struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type MessageService struct {
	repo     domain.MessageRepository
	notifier Notifier
	now      func() time.Time
}

func NewMessageService(repo domain.MessageRepository, notifier Notifier) *MessageService {
	return &MessageService{
		repo:     repo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Conversation returns the messages between me and other, oldest first.
func (s *MessageService) Conversation(ctx context.Context, me, other string) ([]domain.Message, error) {
	other = strings.TrimSpace(other)
	if other == "" {
		return nil, domain.ErrUserIDRequired
	}
	return s.repo.Conversation(ctx, me, other)
}

// Send stores a message and pushes it to both participants.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	msg, err := domain.NewMessage(senderID, receiverID, content, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(Event{Type: EventMessage, Message: msg})
	if err != nil {
		log.Error().Err(err).Msg("encode message event")
		return msg, nil
	}
	s.notifier.SendToUser(msg.ReceiverID, payload)
	if msg.SenderID != msg.ReceiverID {
		s.notifier.SendToUser(msg.SenderID, payload)
	}
	return msg, nil
}

// HandleFrame processes a frame read from senderID's websocket. It returns
// an error event for the sender when the frame is rejected.
func (s *MessageService) HandleFrame(senderID string, frame []byte) []byte {
	var req SendRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return errorEvent("invalid message frame")
	}

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()

	if _, err := s.Send(ctx, senderID, req.ReceiverID, req.Content); err != nil {
		if apperr.IsClientError(err) {
			return errorEvent(err.Error())
		}
		log.Error().Err(err).Str("sender_id", senderID).Msg("send message failed")
		return errorEvent("Internal server error")
	}
	return nil
}

func errorEvent(msg string) []byte {
	payload, _ := json.Marshal(Event{Type: EventError, Error: msg})
	return payload
}
