package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"solobot/internal/bundle"
	"solobot/internal/chat"
	"solobot/internal/classifier"
	"solobot/internal/config"
	"solobot/internal/dataset"
	"solobot/internal/domain"
	"solobot/internal/embedding"
	"solobot/internal/embedding/openai"
	"solobot/internal/embedding/tfidf"
	"solobot/internal/session"
	"solobot/internal/summary"
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

	fmt.Println("\nChatbot de Fertilidade do Solo")
	fmt.Println("Digite uma frase sobre seu solo. Ex: 'meu solo está fraco e seco'")
	fmt.Println("Digite 'sair' para encerrar.")
	fmt.Println()

	in := bufio.NewScanner(os.Stdin)
	state, turns := offerResume(in, store)

	id := session.NewID()
	for {
		fmt.Print("Você: ")
		if !in.Scan() {
			break
		}
		entrada := strings.TrimSpace(in.Text())
		if entrada == "" {
			continue
		}
		if strings.EqualFold(entrada, "sair") {
			break
		}
		var turn domain.Turn
		state, turn, err = engine.Process(state, entrada)
		if err != nil {
			fmt.Println("Erro ao processar a mensagem:", err)
			continue
		}
		turns = append(turns, turn)
		fmt.Println("Bot:", turn.Resposta)
		fmt.Printf("Confiança: %.2f\n\n", turn.Confianca)
	}

	if err := store.Save(id, turns); err != nil {
		log.Fatalf("failed to save session: %v", err)
	}
	fmt.Printf("\nHistórico salvo na sessão: %s\n", id)
	fmt.Println("Até logo!")
}

// offerResume lets the user continue a previous session. Invalid menu
// choices reprompt; an empty answer starts a new session.
func offerResume(in *bufio.Scanner, store *session.Store) (chat.State, []domain.Turn) {
	infos := store.List()
	if len(infos) == 0 {
		return chat.State{}, nil
	}
	fmt.Print("Deseja continuar uma sessão anterior? (sim/não): ")
	if !in.Scan() {
		return chat.State{}, nil
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "sim", "s", "yes", "y":
	default:
		return chat.State{}, nil
	}

	fmt.Println("\nSessões disponíveis:")
	for i, info := range infos {
		fmt.Printf("[%d] %s - %s (%d mensagens)\n", i+1, info.SavedAt, info.ID, info.Turns)
	}
	for {
		fmt.Print("Escolha o número da sessão (vazio para nova): ")
		if !in.Scan() {
			return chat.State{}, nil
		}
		answer := strings.TrimSpace(in.Text())
		if answer == "" {
			return chat.State{}, nil
		}
		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > len(infos) {
			fmt.Println("Opção inválida. Tente novamente.")
			continue
		}
		rec, err := store.Load(infos[choice-1].ID)
		if err != nil {
			fmt.Println("Não foi possível carregar a sessão:", err)
			continue
		}
		fmt.Printf("\nHistórico da sessão %s (%s):\n", rec.ID, rec.Data)
		for _, t := range rec.Conversas {
			fmt.Println("Você:", t.Entrada)
			fmt.Println("Bot:", t.Resposta)
			fmt.Println(strings.Repeat("-", 30))
		}
		if recap := summary.New().Recap(rec.Conversas, 3); recap != "" {
			fmt.Println("Resumo:", recap)
			fmt.Println()
		}
		return chat.ResumeState(rec.Conversas), rec.Conversas
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
