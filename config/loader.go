package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables as raw strings
// Components handle validation and defaults during initialization
func Load() *Config {
	// A missing .env file is fine - environment variables win either way
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         os.Getenv("SERVER_PORT"),
			Environment:  os.Getenv("SERVER_ENV"),
			ReadTimeout:  os.Getenv("SERVER_READ_TIMEOUT"),
			WriteTimeout: os.Getenv("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Path: os.Getenv("QUERYLOG_DB_PATH"),
		},
		Catalog: CatalogConfig{
			IndexPath: os.Getenv("CATALOG_INDEX_PATH"),
		},
		OpenAI: OpenAIConfig{
			APIKey:             os.Getenv("OPENAI_API_KEY"),
			BaseURL:            os.Getenv("OPENAI_BASE_URL"),
			ChatModel:          os.Getenv("OPENAI_CHAT_MODEL"),
			EmbeddingModel:     os.Getenv("OPENAI_EMBEDDING_MODEL"),
			TranscriptionModel: os.Getenv("OPENAI_TRANSCRIPTION_MODEL"),
			Temperature:        os.Getenv("OPENAI_TEMPERATURE"),
			HTTPTimeout:        os.Getenv("OPENAI_HTTP_TIMEOUT"),
		},
		Worker: WorkerConfig{
			CleanupInterval: os.Getenv("WORKER_CLEANUP_INTERVAL"),
			RetentionPeriod: os.Getenv("WORKER_RETENTION_PERIOD"),
		},
		Logging: LoggingConfig{
			Level:       os.Getenv("LOG_LEVEL"),
			Format:      os.Getenv("LOG_FORMAT"),
			ServiceName: os.Getenv("SERVICE_NAME"),
		},
		Retriever: RetrieverConfig{
			DefaultK: os.Getenv("RETRIEVER_DEFAULT_K"),
			MaxK:     os.Getenv("RETRIEVER_MAX_K"),
		},
	}
}
