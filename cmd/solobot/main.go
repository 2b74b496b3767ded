package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"solobot/internal/bundle"
	"solobot/internal/chat"
	"solobot/internal/classifier"
	"solobot/internal/config"
	"solobot/internal/dataset"
	"solobot/internal/embedding"
	"solobot/internal/embedding/openai"
	"solobot/internal/embedding/tfidf"
	"solobot/internal/session"
	"solobot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/solobot/config.yaml if not provided)")
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

	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	responder := buildResponder(cfg, logger)
	store, err := session.NewStore(cfg.HistoryDir, logger)
	if err != nil {
		log.Fatalf("failed to open history dir: %v", err)
	}
	engine := chat.NewEngine(responder, logger)

	m := tui.New(engine, store)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

func buildResponder(cfg *config.AppConfig, logger *zap.Logger) chat.Responder {
	switch cfg.Backend {
	case "semantic", "":
		emb := buildEmbedder(cfg)
		b, err := bundle.Load(cfg.Semantic.BundlePath)
		if err != nil {
			log.Fatalf("model bundle not available (%s): %v\nrun solobundle to build it from the dataset", cfg.Semantic.BundlePath, err)
		}
		if err := b.Restore(emb); err != nil {
			log.Fatalf("failed to restore embedder from bundle: %v", err)
		}
		logger.Info("model bundle loaded",
			zap.String("path", cfg.Semantic.BundlePath),
			zap.Int("corpus", len(b.Questions)),
			zap.String("embedder", b.EmbedderName))
		return chat.NewSemanticResponder(emb, b, cfg.Semantic.Threshold, logger)
	case "classifier":
		model, err := classifier.LoadModel(cfg.Classifier.WeightsPath)
		if err != nil {
			log.Fatalf("classifier weights not available (%s): %v", cfg.Classifier.WeightsPath, err)
		}
		entries, err := dataset.LoadIntents(cfg.Classifier.DatasetPath)
		if err != nil {
			log.Fatalf("intent dataset not available (%s): %v", cfg.Classifier.DatasetPath, err)
		}
		return chat.NewIntentResponder(model, entries, cfg.Classifier.Threshold, logger)
	default:
		log.Fatalf("unknown backend: %s", cfg.Backend)
	}
	return nil
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
