package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"equiptrack/inventory/schema"
	"equiptrack/inventory/services"
	"equiptrack/inventory/store"
	"equiptrack/llmgen"

	"github.com/caarlos0/env/v10"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

/**
 * ==========================================================================
 * ==== All variables used by equiptrack must be loaded here. This is to ====
 * ==== make the data flow clear so that a user can see what variables   ====
 * ==== are exposed, and how the values are propagated through the       ====
 * ==== system.                                                          ====
 * ==========================================================================
 */
type equipTrackEnv struct {
	AllowedOrigin string `env:"EQUIPTRACK_ALLOWED_ORIGIN" envDefault:"*"`

	GenAiProvider string `env:"GENAI_PROVIDER" envDefault:"openai"`
	GenAiKey      string `env:"GENAI_API_KEY"`
	GenAiModel    string `env:"GENAI_MODEL" envDefault:"gpt-4o-mini"`

	DemoData bool `env:"EQUIPTRACK_DEMO_DATA" envDefault:"false"`
}

func loadEnv(envFile string) equipTrackEnv {
	if envFile != "" {
		slog.Info(fmt.Sprintf("loading env from file %v", envFile))
		if err := godotenv.Load(envFile); err != nil {
			log.Fatalf("error loading .env file '%v': %v", envFile, err)
		}
	}

	cfg := equipTrackEnv{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing environment: %v", err)
	}
	return cfg
}

func newCompleter(cfg equipTrackEnv) llmgen.Completer {
	if cfg.GenAiKey == "" {
		slog.Warn("no generative AI key configured, generation endpoints disabled")
		return nil
	}

	completer, err := llmgen.NewCompleter(cfg.GenAiProvider, llmgen.CompleterConfig{
		APIKey: cfg.GenAiKey,
		Model:  cfg.GenAiModel,
	})
	if err != nil {
		log.Fatalf("error creating generation provider: %v", err)
	}
	return completer
}

func main() {
	envFile := flag.String("env", "", "File to load env variables from. If not specified will just load them from the environment variables already defined.")
	port := flag.Int("port", 8080, "Port to run server on")
	flag.Parse()

	cfg := loadEnv(*envFile)

	var seed []schema.Equipment
	if cfg.DemoData {
		seed = store.DemoEquipment()
	}
	equipmentStore := store.New(seed...)

	equipTrack := services.NewEquipTrack(equipmentStore, newCompleter(cfg))

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Mount("/api/v1", equipTrack.Routes())

	slog.Info("starting server", "port", *port, "records", equipmentStore.Len())
	err := http.ListenAndServe(fmt.Sprintf(":%d", *port), r)
	if err != nil {
		log.Fatalf("listen and serve returned error: %v", err.Error())
	}
}
