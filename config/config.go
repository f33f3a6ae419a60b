package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Grading      Grading
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Grading holds the tunables of the prediction pipeline.
type Grading struct {
	EmbeddingModel string
	Neighbors      int
	ReductionStart float64
	ReductionEnd   float64
	Workers        int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("EMBEDDING_MODEL", "text-embedding-004")
	viper.SetDefault("GRADING_NEIGHBORS", 10)
	viper.SetDefault("GRADING_REDUCTION_START", 0.1)
	viper.SetDefault("GRADING_REDUCTION_END", 0.6)
	viper.SetDefault("GRADING_WORKERS", 4)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	config.Grading.EmbeddingModel = viper.GetString("EMBEDDING_MODEL")
	config.Grading.Neighbors = viper.GetInt("GRADING_NEIGHBORS")
	config.Grading.ReductionStart = viper.GetFloat64("GRADING_REDUCTION_START")
	config.Grading.ReductionEnd = viper.GetFloat64("GRADING_REDUCTION_END")
	config.Grading.Workers = viper.GetInt("GRADING_WORKERS")

	log.Info().Str("port", config.Server.Port).Str("embedding_model", config.Grading.EmbeddingModel).Msg("Config loaded")
	return &config, nil
}
