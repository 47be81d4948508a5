package config

const (
	ModelProviderHuggingFace = "huggingface"
	ModelProviderGemini      = "gemini"
)

// ModelConfig selects and configures the hosted text-generation
// backend. HuggingFace inference (DeepSeek) is the default; Gemini is
// available behind MODEL_PROVIDER=gemini.
type ModelConfig struct {
	Provider  string
	APIKey    string
	Model     string
	MaxTokens int
}

func NewModelConfig() *ModelConfig {
	provider := getEnv("MODEL_PROVIDER", ModelProviderHuggingFace)

	switch provider {
	case ModelProviderGemini:
		return &ModelConfig{
			Provider:  provider,
			APIKey:    getEnv("GEMINI_API_KEY", ""),
			Model:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			MaxTokens: 1024,
		}
	default:
		return &ModelConfig{
			Provider:  ModelProviderHuggingFace,
			APIKey:    getEnv("HUGGING_FACE_API_KEY", ""),
			Model:     getEnv("HUGGING_FACE_MODEL", "deepseek-ai/DeepSeek-V3"),
			MaxTokens: 1024,
		}
	}
}
