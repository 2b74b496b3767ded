package main

import (
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"solobot/internal/bundle"
	"solobot/internal/config"
	"solobot/internal/dataset"
	"solobot/internal/embedding"
	"solobot/internal/embedding/openai"
	"solobot/internal/embedding/tfidf"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, datasetPath, outPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&datasetPath, "dataset", "", "Dataset CSV (overrides config)")
	flag.StringVar(&outPath, "out", "", "Bundle output path (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if datasetPath == "" {
		datasetPath = cfg.DatasetPath
	}
	if outPath == "" {
		outPath = cfg.Semantic.BundlePath
	}

	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	entries, err := dataset.LoadResponses(datasetPath)
	if err != nil {
		log.Fatalf("dataset not available (%s): %v", datasetPath, err)
	}

	emb := buildEmbedder(cfg)
	logger.Info("building model bundle",
		zap.String("dataset", datasetPath),
		zap.Int("entries", len(entries)),
		zap.String("embedder", emb.Name()))

	b, err := bundle.Build(emb, entries)
	if err != nil {
		log.Fatalf("failed to build bundle: %v", err)
	}
	if err := bundle.Save(outPath, b); err != nil {
		log.Fatalf("failed to save bundle: %v", err)
	}
	logger.Info("model bundle saved",
		zap.String("path", outPath),
		zap.Int("dimension", emb.Dimension()))
}

func buildEmbedder(cfg *config.AppConfig) embedding.Embedder {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		return client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}
	return nil
}
