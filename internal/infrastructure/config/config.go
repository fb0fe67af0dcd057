package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Service identity reported by the metadata endpoints
const (
	ServiceName    = "Content Intelligence ML Service"
	ServiceVersion = "1.0.0"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Models    ModelsConfig
	Inference InferenceConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// ModelsConfig names the model pipelines and where their files live
type ModelsConfig struct {
	Dir          string
	Sentiment    string
	Emotion      string
	NER          string
	ZeroShot     string `mapstructure:"zero_shot"`
	AutoDownload bool   `mapstructure:"auto_download"`
}

// InferenceConfig selects the inference backend. "onnx" runs models
// in-process; "remote" delegates classification to a sidecar over HTTP.
// SentimentBackend can override sentiment alone with the lexicon analyzer.
type InferenceConfig struct {
	Backend          string
	SentimentBackend string        `mapstructure:"sentiment_backend"`
	RemoteURL        string        `mapstructure:"remote_url"`
	RemoteTimeout    time.Duration `mapstructure:"remote_timeout"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("INTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; environment variables and defaults suffice
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8001)
	v.SetDefault("server.mode", "debug")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Model defaults
	v.SetDefault("models.dir", "./models")
	v.SetDefault("models.sentiment", "distilbert-base-uncased-finetuned-sst-2-english")
	v.SetDefault("models.emotion", "j-hartmann/emotion-english-distilroberta-base")
	v.SetDefault("models.ner", "dslim/bert-base-NER")
	v.SetDefault("models.zero_shot", "facebook/bart-large-mnli")
	v.SetDefault("models.auto_download", true)

	// Inference defaults
	v.SetDefault("inference.backend", "onnx")
	v.SetDefault("inference.sentiment_backend", "")
	v.SetDefault("inference.remote_url", "http://localhost:8501")
	v.SetDefault("inference.remote_timeout", "30s")
}
