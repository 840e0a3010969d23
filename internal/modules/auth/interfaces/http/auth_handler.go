package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/gateway/middleware"
	"github.com/saransh1220/soundwave/internal/modules/auth/application"
	"github.com/saransh1220/soundwave/internal/modules/auth/domain"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"github.com/saransh1220/soundwave/internal/shared/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService defines the interface for auth operations
type AuthService interface {
	Callback(ctx context.Context, req application.CallbackRequest) (*application.CallbackResult, error)
	GetUser(ctx context.Context, clerkID string) (*domain.User, error)
	ListUsers(ctx context.Context, clerkID string) ([]domain.User, error)
}

// UserResponse is the user projection returned to clients.
type UserResponse struct {
	ID        primitive.ObjectID `json:"id"`
	ClerkID   string             `json:"clerkId"`
	FullName  string             `json:"fullName"`
	ImageURL  string             `json:"imageUrl"`
	Role      domain.Role        `json:"role"`
	CreatedAt time.Time          `json:"createdAt"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		ClerkID:   u.ClerkID,
		FullName:  u.FullName,
		ImageURL:  u.ImageURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type callbackResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Callback provisions the caller from an identity assertion.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req application.CallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Callback(r.Context(), req)
	if err != nil {
		h.fail(w, err, "callback failed")
		return
	}

	body := callbackResponse{User: toUserResponse(res.User), Token: res.Token}
	if res.Created {
		utils.WriteSuccess(w, http.StatusCreated, "User created successfully", body)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "User already exists", body)
}

func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	clerkID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized - you must be logged in")
		return
	}

	user, err := h.service.GetUser(r.Context(), clerkID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.fail(w, err, "get user failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "User retrieved successfully", toUserResponse(user))
}

// ListUsers returns everyone except the caller.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	clerkID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized - you must be logged in")
		return
	}

	users, err := h.service.ListUsers(r.Context(), clerkID)
	if err != nil {
		h.fail(w, err, "list users failed")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	utils.WriteSuccess(w, http.StatusOK, "Users retrieved successfully", map[string]interface{}{
		"users": out,
		"count": len(out),
	})
}

func (h *AuthHandler) fail(w http.ResponseWriter, err error, msg string) {
	if apperr.IsClientError(err) {
		utils.WriteError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	log.Error().Err(err).Msg(msg)
	utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
