package service

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/lcavallin/gradelens/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// EmbeddingService turns text into fixed-length vectors. Deterministic for a
// fixed model: the same text always embeds to the same vector.
type EmbeddingService interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type geminiEmbeddingService struct {
	model *genai.EmbeddingModel
	cfg   *config.Config
}

func NewGeminiEmbeddingService(cfg *config.Config) (EmbeddingService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. EmbeddingService will be non-functional.")
		return &geminiEmbeddingService{cfg: cfg, model: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.EmbeddingModel(cfg.Grading.EmbeddingModel)
	return &geminiEmbeddingService{model: model, cfg: cfg}, nil
}

func (s *geminiEmbeddingService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if s.model == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	batch := s.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := s.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		log.Error().Err(err).Int("texts", len(texts)).Msg("Gemini API error during embedding")
		return nil, fmt.Errorf("gemini embedding failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("gemini returned an empty embedding at index %d", i)
		}
		vectors[i] = e.Values
	}
	return vectors, nil
}
