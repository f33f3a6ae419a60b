package main

import (
	"context"
	"flag"
	"os"

	"github.com/lcavallin/gradelens/config"
	"github.com/lcavallin/gradelens/database"
	"github.com/lcavallin/gradelens/internal/logger"
	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/lcavallin/gradelens/internal/service"
	"github.com/rs/zerolog/log"
)

// Batch corpus synchronization over CSV exports. Runs as a single-operator
// job: never invoke concurrently with itself or with a live server instance,
// the dedup check is not atomic across writers.
func main() {
	logger.Init()

	dir := flag.String("dir", "./export_data", "directory containing export_domande*/export_risposte* CSV files")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(&model.Question{}, &model.Answer{}); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}

	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)

	embedder, err := service.NewGeminiEmbeddingService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize embedding service")
	}

	sync := service.NewSyncService(questionRepo, answerRepo, embedder)

	reports, err := sync.SyncDirectory(context.Background(), *dir)
	if err != nil {
		log.Error().Err(err).Msg("Corpus synchronization failed")
		os.Exit(1)
	}

	for _, r := range reports {
		log.Info().Str("file", r.File).Int("inserted", r.Inserted).
			Int("skipped", r.Skipped).Int("malformed", r.Malformed).Msg("Sync report")
	}

	questions, _ := questionRepo.Count()
	answers, _ := answerRepo.Count()
	log.Info().Int64("questions", questions).Int64("answers", answers).Msg("Corpus synchronized")
}
