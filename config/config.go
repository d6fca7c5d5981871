package config

// Config contains all configuration grouped by domain
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
	OpenAI    OpenAIConfig
	Worker    WorkerConfig
	Logging   LoggingConfig
	Retriever RetrieverConfig
}

// All config structs use string fields only - packages handle conversion during initialization
type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  string
	WriteTimeout string
}

type DatabaseConfig struct {
	Path string
}

type CatalogConfig struct {
	IndexPath string
}

type OpenAIConfig struct {
	APIKey             string
	BaseURL            string
	ChatModel          string
	EmbeddingModel     string
	TranscriptionModel string
	Temperature        string
	HTTPTimeout        string
}

type WorkerConfig struct {
	CleanupInterval string
	RetentionPeriod string
}

type LoggingConfig struct {
	Level       string
	Format      string
	ServiceName string
}

type RetrieverConfig struct {
	DefaultK string
	MaxK     string
}
