package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	NATS        NATSConfig        `yaml:"nats"`
	MinIO       MinIOConfig       `yaml:"minio"`
	Vision      VisionConfig      `yaml:"vision"`
	SocialGraph SocialGraphConfig `yaml:"social_graph"`
	History     HistoryConfig     `yaml:"history"`
	Insight     InsightConfig     `yaml:"insight"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	// PresignExpiry bounds how long upload/download URLs stay valid.
	PresignExpiry time.Duration `yaml:"presign_expiry"`
}

type VisionConfig struct {
	ModelsDir          string  `yaml:"models_dir"`
	FaceThreshold      float64 `yaml:"face_threshold"`
	ObjectThreshold    float64 `yaml:"object_threshold"`
	WorkerCount        int     `yaml:"worker_count"`
	EmbeddingDimension int     `yaml:"embedding_dimension"`
}

// SocialGraphConfig tunes the population comparison. MinPublicUsers is the
// cold-start threshold: below it the percentile is computed against a
// synthetic gaussian population instead of real peers.
type SocialGraphConfig struct {
	MinPublicUsers  int     `yaml:"min_public_users"`
	SyntheticSize   int     `yaml:"synthetic_size"`
	SyntheticMean   float64 `yaml:"synthetic_mean"`
	SyntheticStddev float64 `yaml:"synthetic_stddev"`
}

type HistoryConfig struct {
	RecentLimit    int `yaml:"recent_limit"`
	FeedWindowDays int `yaml:"feed_window_days"`
}

// InsightConfig points at the OpenAI-compatible text-generation service used
// for vibe summaries and trend analysis.
type InsightConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = 15 * time.Minute
	}
	if cfg.Vision.FaceThreshold == 0 {
		cfg.Vision.FaceThreshold = 0.5
	}
	if cfg.Vision.ObjectThreshold == 0 {
		cfg.Vision.ObjectThreshold = 0.4
	}
	if cfg.Vision.WorkerCount == 0 {
		cfg.Vision.WorkerCount = 4
	}
	if cfg.Vision.EmbeddingDimension == 0 {
		cfg.Vision.EmbeddingDimension = 512
	}
	if cfg.SocialGraph.MinPublicUsers == 0 {
		cfg.SocialGraph.MinPublicUsers = 25
	}
	if cfg.SocialGraph.SyntheticSize == 0 {
		cfg.SocialGraph.SyntheticSize = 1000
	}
	if cfg.SocialGraph.SyntheticMean == 0 {
		cfg.SocialGraph.SyntheticMean = 60
	}
	if cfg.SocialGraph.SyntheticStddev == 0 {
		cfg.SocialGraph.SyntheticStddev = 15
	}
	if cfg.History.RecentLimit == 0 {
		cfg.History.RecentLimit = 5
	}
	if cfg.History.FeedWindowDays == 0 {
		cfg.History.FeedWindowDays = 30
	}
	if cfg.Insight.BaseURL == "" {
		cfg.Insight.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Insight.Model == "" {
		cfg.Insight.Model = "gpt-4o-mini"
	}
	if cfg.Insight.Timeout == 0 {
		cfg.Insight.Timeout = 60 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("VC_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("VC_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("VC_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("VC_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("VC_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("VC_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("VC_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("VC_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("VC_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("VC_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("VC_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("VC_MODELS_DIR"); v != "" {
		cfg.Vision.ModelsDir = v
	}
	if v := os.Getenv("VC_VISION_WORKER_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Vision.WorkerCount = n
		}
	}
	if v := os.Getenv("VC_SOCIAL_GRAPH_MIN_PUBLIC_USERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SocialGraph.MinPublicUsers = n
		}
	}
	if v := os.Getenv("VC_HISTORY_RECENT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.RecentLimit = n
		}
	}
	if v := os.Getenv("VC_INSIGHT_BASE_URL"); v != "" {
		cfg.Insight.BaseURL = v
	}
	if v := os.Getenv("VC_INSIGHT_API_KEY"); v != "" {
		cfg.Insight.APIKey = v
	}
	if v := os.Getenv("VC_INSIGHT_MODEL"); v != "" {
		cfg.Insight.Model = v
	}
}
