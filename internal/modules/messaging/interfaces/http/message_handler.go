package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/gateway/middleware"
	"github.com/saransh1220/soundwave/internal/modules/messaging/domain"
	"github.com/saransh1220/soundwave/internal/modules/messaging/infrastructure/websocket"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"github.com/saransh1220/soundwave/internal/shared/utils"
)

type MessageService interface {
	Conversation(ctx context.Context, me, other string) ([]domain.Message, error)
	HandleFrame(senderID string, frame []byte) []byte
}

type MessageHandler struct {
	service MessageService
	hub     *websocket.Hub
}

func NewMessageHandler(service MessageService, hub *websocket.Hub) *MessageHandler {
	return &MessageHandler{service: service, hub: hub}
}

// GetMessages returns the caller's conversation with the user in the path.
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized - you must be logged in")
		return
	}

	messages, err := h.service.Conversation(r.Context(), me, r.PathValue("userId"))
	if err != nil {
		if apperr.IsClientError(err) {
			utils.WriteError(w, apperr.HTTPStatus(err), "User ID parameter is required")
			return
		}
		log.Error().Err(err).Str("user_id", me).Msg("get messages failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Messages retrieved successfully", map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// Subscribe upgrades to a websocket that receives new messages and accepts
// outgoing ones.
func (h *MessageHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized - you must be logged in")
		return
	}

	websocket.ServeWs(h.hub, w, r, userID, h.service.HandleFrame)
}
