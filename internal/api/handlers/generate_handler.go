package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"contentcraft-api/internal/logger"
	"contentcraft-api/internal/metrics"
	"contentcraft-api/internal/models"
	apperrors "contentcraft-api/internal/pkg/errors"
	"contentcraft-api/internal/services"

	"github.com/sirupsen/logrus"
)

const (
	maxPromptLength = 2000
	minPromptLength = 3
)

// Heuristics for prompt-injection attempts: instruction overrides,
// role-play hijacking, jailbreaks. Matched before any external call.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(previous|above|all)\s+(instructions?|prompts?|rules?)`),
	regexp.MustCompile(`(?i)system\s*:\s*you\s+are\s+now`),
	regexp.MustCompile(`(?i)\bprompt\s+injection\b`),
	regexp.MustCompile(`(?i)\bjailbreak\b`),
	regexp.MustCompile(`(?i)roleplay\s+as\s+`),
	regexp.MustCompile(`(?i)pretend\s+(to\s+be|you\s+are)`),
	regexp.MustCompile(`(?i)forget\s+(everything|all|previous)`),
	regexp.MustCompile(`(?i)new\s+instruction`),
	regexp.MustCompile(`(?i)override\s+(previous|security|safety)`),
}

func containsSuspiciousContent(prompt string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(prompt) {
			return true
		}
	}
	return false
}

type generatePayload struct {
	Prompt               string  `json:"prompt"`
	ContentType          string  `json:"contentType"`
	Tone                 *string `json:"tone"`
	EnablePostProcessing *bool   `json:"enablePostProcessing"`
}

type GenerateHandler struct {
	quotaService      services.QuotaService
	generationService services.GenerationService
}

func NewGenerateHandler(quotaService services.QuotaService, generationService services.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		quotaService:      quotaService,
		generationService: generationService,
	}
}

func (h *GenerateHandler) HandleGenerateContent(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, apperrors.Sanitize(apperrors.ErrNotAuthenticated))
		return
	}

	var payload generatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := validateGenerationRequest(payload)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, apperrors.Sanitize(err))
		return
	}

	if !h.quotaService.CheckAndReserve(r.Context(), user) {
		metrics.QuotaDenialsTotal.Inc()
		respondWithError(w, http.StatusTooManyRequests, apperrors.Sanitize(apperrors.ErrQuotaExceeded))
		return
	}

	result, err := h.generationService.Generate(r.Context(), *req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, apperrors.Sanitize(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-XSS-Protection", "1; mode=block")
	json.NewEncoder(w).Encode(result)
}

// validateGenerationRequest screens and normalizes the payload:
// injection heuristics on the raw prompt, then trim and cap, then the
// enum checks. Tone defaults to professional and post-processing to
// enabled when omitted.
func validateGenerationRequest(payload generatePayload) (*models.GenerationRequest, error) {
	if payload.Prompt == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "valid prompt is required")
	}

	if containsSuspiciousContent(payload.Prompt) {
		metrics.BlockedPromptsTotal.Inc()
		logger.LogEvent(logrus.WarnLevel, "Blocked suspicious prompt", logrus.Fields{
			"prompt_prefix": truncate(payload.Prompt, 100),
		})
		return nil, apperrors.ErrSuspiciousPrompt
	}

	prompt := strings.TrimSpace(payload.Prompt)
	prompt = truncate(prompt, maxPromptLength)
	if utf8.RuneCountInString(prompt) < minPromptLength {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "prompt must be at least 3 characters long")
	}

	contentType, ok := models.ParseContentType(payload.ContentType)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid content type")
	}

	tone := models.DefaultTone
	if payload.Tone != nil {
		tone, ok = models.ParseTone(*payload.Tone)
		if !ok {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid tone")
		}
	}

	enablePostProcessing := true
	if payload.EnablePostProcessing != nil {
		enablePostProcessing = *payload.EnablePostProcessing
	}

	return &models.GenerationRequest{
		Prompt:               prompt,
		ContentType:          contentType,
		Tone:                 tone,
		EnablePostProcessing: enablePostProcessing,
	}, nil
}

// truncate caps s at max characters, never splitting a multi-byte
// rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
