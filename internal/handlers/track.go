package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/metrics"
	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

// TrackHandler records every sender in the user directory. It runs as
// middleware ahead of the role chains and never consumes the update.
type TrackHandler struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(users repository.UserRepository, logger *logrus.Logger) *TrackHandler {
	return &TrackHandler{users: users, logger: logger}
}

// Handle upserts the sender's identity, admin or subscriber alike.
func (h *TrackHandler) Handle(ctx context.Context, update tgbotapi.Update) (bool, error) {
	from := update.SentFrom()
	if from == nil {
		return false, nil
	}

	err := h.users.Track(ctx, &models.User{
		ID:        from.ID,
		FirstName: from.FirstName,
		LastName:  from.LastName,
		Username:  from.UserName,
	})
	if err != nil {
		return false, fmt.Errorf("track user: %w", err)
	}

	metrics.TrackedUpdates.Inc()
	return false, nil
}
