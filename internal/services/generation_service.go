package services

import (
	"context"
	"fmt"
	"time"

	"contentcraft-api/internal/logger"
	"contentcraft-api/internal/metrics"
	"contentcraft-api/internal/models"
	"contentcraft-api/internal/pkg/errors"

	"github.com/sirupsen/logrus"
)

const initialMaxTokens = 1024

// GenerationService runs the multi-stage content pipeline: one initial
// generation followed by the optional post-processing passes. Stages
// run strictly in order, each consuming the previous stage's output.
type GenerationService interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

// pipelineStage describes one post-processing pass: when it runs, what
// instruction it carries, and how it wraps the draft into the user
// message.
type pipelineStage struct {
	name         string
	runIf        func(req models.GenerationRequest) bool
	systemPrompt func(req models.GenerationRequest) string
	userMessage  func(req models.GenerationRequest, draft string) string
	temperature  float32
}

type generationService struct {
	model  ModelClient
	stages []pipelineStage
}

func NewGenerationService(model ModelClient) GenerationService {
	return &generationService{
		model:  model,
		stages: postProcessingStages(),
	}
}

// postProcessingStages returns the ordered post-processing passes:
// style rewrite, tone adjustment, grammar refinement. The tone pass is
// skipped for the default professional tone since initial generation
// already leans professional.
func postProcessingStages() []pipelineStage {
	return []pipelineStage{
		{
			name: "style_rewrite",
			runIf: func(req models.GenerationRequest) bool {
				return req.EnablePostProcessing
			},
			systemPrompt: func(req models.GenerationRequest) string {
				return fmt.Sprintf(
					"You are an expert content editor. Your job is to make AI-generated content sound more human, natural, and engaging. %s",
					req.ContentType.StylePrompt(),
				)
			},
			userMessage: func(req models.GenerationRequest, draft string) string {
				return fmt.Sprintf("Please rewrite this content to make it more natural and engaging:\n\n%s", draft)
			},
			temperature: 0.8,
		},
		{
			name: "tone_adjustment",
			runIf: func(req models.GenerationRequest) bool {
				return req.EnablePostProcessing && req.Tone != models.DefaultTone
			},
			systemPrompt: func(req models.GenerationRequest) string {
				return fmt.Sprintf(
					"You are a tone specialist. Adjust the given content to match the specified tone while preserving the core message and information. The tone should be %s.",
					req.Tone.Description(),
				)
			},
			userMessage: func(req models.GenerationRequest, draft string) string {
				return fmt.Sprintf("Please adjust this content to have a %s tone:\n\n%s", req.Tone, draft)
			},
			temperature: 0.7,
		},
		{
			name: "grammar_refinement",
			runIf: func(req models.GenerationRequest) bool {
				return req.EnablePostProcessing
			},
			systemPrompt: func(req models.GenerationRequest) string {
				return "You are an expert editor and writing coach. Edit this content to be clear, concise, and engaging for a human reader. Improve grammar, flow, readability, and overall impact while maintaining the original message and tone. Make it sound natural and polished."
			},
			userMessage: func(req models.GenerationRequest, draft string) string {
				return fmt.Sprintf("Please edit this content for clarity, grammar, and engagement:\n\n%s", draft)
			},
			temperature: 0.6,
		},
	}
}

func (s *generationService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	draft, err := s.callModel(ctx, "initial_generation", req.ContentType.SystemPrompt(), req.Prompt, CompletionOptions{
		Temperature: 0.8,
		MaxTokens:   initialMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	for _, stage := range s.stages {
		if !stage.runIf(req) {
			continue
		}
		draft, err = s.callModel(ctx, stage.name, stage.systemPrompt(req), stage.userMessage(req, draft), CompletionOptions{
			Temperature: stage.temperature,
			MaxTokens:   initialMaxTokens,
		})
		if err != nil {
			// No partial results: a failed pass aborts the whole
			// pipeline.
			return nil, err
		}
	}

	return &models.GenerationResult{
		Content:         draft,
		ProcessedWithAI: req.EnablePostProcessing,
		Tone:            req.Tone,
	}, nil
}

func (s *generationService) callModel(ctx context.Context, stage, systemPrompt, userMessage string, opts CompletionOptions) (string, error) {
	start := time.Now()
	text, err := s.model.Complete(ctx, systemPrompt, userMessage, opts)
	metrics.ModelCallDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ModelCallsTotal.WithLabelValues(stage, "error").Inc()
		logger.LogEvent(logrus.ErrorLevel, "Model call failed", logrus.Fields{
			"stage": stage,
			"error": err.Error(),
		})
		return "", errors.ErrServiceUnavailable
	}

	metrics.ModelCallsTotal.WithLabelValues(stage, "success").Inc()
	return text, nil
}
