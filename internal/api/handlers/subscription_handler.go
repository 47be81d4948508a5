package handlers

import (
	"encoding/json"
	"net/http"

	"contentcraft-api/internal/logger"
	apperrors "contentcraft-api/internal/pkg/errors"
	"contentcraft-api/internal/services"

	"github.com/sirupsen/logrus"
)

type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
	quotaService        services.QuotaService
}

func NewSubscriptionHandler(subscriptionService services.SubscriptionService, quotaService services.QuotaService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		quotaService:        quotaService,
	}
}

// HandleCheckSubscription reconciles the user's snapshot with the
// billing provider and returns the fresh state. A failed refresh is an
// error, not a silent fallback to stale data.
func (h *SubscriptionHandler) HandleCheckSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, apperrors.Sanitize(apperrors.ErrNotAuthenticated))
		return
	}

	snapshot, err := h.subscriptionService.Refresh(r.Context(), user)
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Subscription refresh failed", logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(err))
		return
	}

	response := map[string]interface{}{
		"subscribed":        snapshot.Subscribed,
		"subscription_tier": snapshot.SubscriptionTier,
	}
	if snapshot.SubscriptionEnd != nil {
		response["subscription_end"] = snapshot.SubscriptionEnd
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleGetUsage returns today's prompt count against the user's
// tier-derived limit, for the workspace usage meter.
func (h *SubscriptionHandler) HandleGetUsage(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, apperrors.Sanitize(apperrors.ErrNotAuthenticated))
		return
	}

	stats, err := h.quotaService.CurrentUsage(r.Context(), user)
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Usage lookup failed", logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
