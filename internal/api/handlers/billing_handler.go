package handlers

import (
	"encoding/json"
	"net/http"

	"contentcraft-api/internal/logger"
	"contentcraft-api/internal/models"
	apperrors "contentcraft-api/internal/pkg/errors"
	"contentcraft-api/internal/services"

	"github.com/sirupsen/logrus"
)

type planPricing struct {
	Amount int64
	Name   string
}

var planPrices = map[models.SubscriptionTier]planPricing{
	models.ProTier:        {Amount: services.ProPlanAmount, Name: "Pro Plan"},
	models.EnterpriseTier: {Amount: services.EnterprisePlanAmount, Name: "Enterprise Plan"},
}

type BillingHandler struct {
	billing services.BillingProvider
}

func NewBillingHandler(billing services.BillingProvider) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// HandleCreateCheckout starts a subscription checkout session for the
// requested paid plan and returns its redirect URL.
func (h *BillingHandler) HandleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, apperrors.Sanitize(apperrors.ErrNotAuthenticated))
		return
	}

	var payload struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid plan specified")
		return
	}

	tier, ok := models.ParseSubscriptionTier(payload.Plan)
	if !ok || tier == models.FreeTier {
		respondWithError(w, http.StatusBadRequest, "Invalid plan specified")
		return
	}
	pricing := planPrices[tier]

	cust, err := h.billing.FindCustomerByEmail(r.Context(), user.Email)
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Customer lookup failed", logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(err))
		return
	}

	params := services.CheckoutParams{
		PlanName:   pricing.Name,
		UnitAmount: pricing.Amount,
		SuccessURL: requestOrigin(r) + "/dashboard?checkout=success",
		CancelURL:  requestOrigin(r) + "/dashboard?checkout=cancel",
	}
	if cust != nil {
		params.CustomerID = cust.ID
	} else {
		params.CustomerEmail = user.Email
	}

	url, err := h.billing.CreateCheckoutSession(r.Context(), params)
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Checkout session creation failed", logrus.Fields{
			"user_id": user.ID,
			"plan":    payload.Plan,
			"error":   err.Error(),
		})
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(err))
		return
	}

	logger.LogEvent(logrus.InfoLevel, "Checkout session created", logrus.Fields{
		"user_id": user.ID,
		"plan":    payload.Plan,
		"amount":  pricing.Amount,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// HandleCustomerPortal opens a self-service billing portal session.
// Unlike checkout, it requires a pre-existing billing customer.
func (h *BillingHandler) HandleCustomerPortal(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, apperrors.Sanitize(apperrors.ErrNotAuthenticated))
		return
	}

	cust, err := h.billing.FindCustomerByEmail(r.Context(), user.Email)
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Customer lookup failed", logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(err))
		return
	}
	if cust == nil {
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(apperrors.ErrNoBillingCustomer))
		return
	}

	url, err := h.billing.CreatePortalSession(r.Context(), cust.ID, requestOrigin(r)+"/dashboard")
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Portal session creation failed", logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}

func requestOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	return "http://localhost:3000"
}
