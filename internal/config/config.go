package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible
// embedding provider (works against Ollama as well).
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// SemanticConfig configures the embedding-retrieval backend. The
// threshold is tuned independently from the classifier's.
type SemanticConfig struct {
	Threshold  float64 `yaml:"threshold"`
	BundlePath string  `yaml:"bundle_path"`
}

// ClassifierConfig configures the intent-classification backend.
type ClassifierConfig struct {
	Threshold   float64 `yaml:"threshold"`
	WeightsPath string  `yaml:"weights_path"`
	DatasetPath string  `yaml:"dataset_path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Backend     string           `yaml:"backend"`
	Embedder    EmbedderConfig   `yaml:"embedder"`
	Semantic    SemanticConfig   `yaml:"semantic"`
	Classifier  ClassifierConfig `yaml:"classifier"`
	HistoryDir  string           `yaml:"history_dir"`
	DatasetPath string           `yaml:"dataset_path"`
	LogLevel    string           `yaml:"log_level"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/solobot/config.yaml.
// If neither exists, it writes defaults to ~/.config/solobot/config.yaml
// and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "solobot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Backend:  "semantic",
		Embedder: EmbedderConfig{Type: "tfidf"},
		Semantic: SemanticConfig{
			Threshold:  0.65,
			BundlePath: "modelo_semantico.bundle",
		},
		Classifier: ClassifierConfig{
			Threshold:   0.70,
			WeightsPath: "modelo_intencao.json",
			DatasetPath: "Dados/dataset_intencao.csv",
		},
		HistoryDir:  "historico",
		DatasetPath: "Dados/dataset.csv",
		LogLevel:    "info",
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Backend == "" {
		cfg.Backend = "semantic"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "tfidf"
	}
	// The two thresholds are deliberately separate tuning knobs; they are
	// defaulted independently and never unified.
	if cfg.Semantic.Threshold == 0 {
		cfg.Semantic.Threshold = 0.65
	}
	if cfg.Semantic.BundlePath == "" {
		cfg.Semantic.BundlePath = "modelo_semantico.bundle"
	}
	if cfg.Classifier.Threshold == 0 {
		cfg.Classifier.Threshold = 0.70
	}
	if cfg.Classifier.WeightsPath == "" {
		cfg.Classifier.WeightsPath = "modelo_intencao.json"
	}
	if cfg.Classifier.DatasetPath == "" {
		cfg.Classifier.DatasetPath = "Dados/dataset_intencao.csv"
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = "historico"
	}
	if cfg.DatasetPath == "" {
		cfg.DatasetPath = "Dados/dataset.csv"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
}
