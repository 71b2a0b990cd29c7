package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"magpie/data"
	"magpie/logger"
	"magpie/models"
	ollama_model "magpie/models/ollama"
	"magpie/prompts"
	"magpie/search"
	"magpie/services"
	"magpie/tui"
)

var (
	mode         string
	single_model string
	db_name      string
	log_file     string
	use_tui      bool
	copy_code    bool
)

func init() {
	flag.StringVar(
		&mode,
		"mode",
		"dual",
		"Assistant variant: dual (coordinated), single (one model + memory), compare (both side by side)",
	)
	flag.StringVar(
		&single_model,
		"model",
		"gpt",
		"Model for single mode: qwen or gpt",
	)
	flag.StringVar(&db_name, "db", "", "Local transcript database name")
	flag.StringVar(&log_file, "log", "magpie.log", "Debug log file")
	flag.BoolVar(&use_tui, "tui", false, "Run the chat TUI instead of the plain loop (dual mode)")
	flag.BoolVar(&copy_code, "copy", false, "Copy code blocks from answers to the clipboard")
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Print("Error loading .env file")
	}

	flag.Parse()

	if err := logger.Init(log_file); err != nil {
		log.Printf("could not open log file %s: %v", log_file, err)
	}

	if err := prompts.Validate(); err != nil {
		log.Fatalf("prompt templates failed validation: %v", err)
	}

	qwen := ollama_model.NewOllamaModel("Qwen3-VL", "qwen3-vl:235b-cloud")
	gpt := ollama_model.NewOllamaModel("GPT-OSS", "gpt-oss:120b-cloud")

	workflow := &services.Workflow{
		Qwen:   qwen,
		GPT:    gpt,
		Search: search.NewProvider(),
	}

	repository := getRepository()
	handler := CliResponseHandler{Repository: repository, Mode: mode, CopyCode: copy_code}

	trapInterrupt()

	switch mode {
	case "single":
		// conversation_log.json carries no models_used field, so the single
		// session tracks none.
		session := data.NewSession(nil, 200)
		runSingle(workflow, modelForSingle(workflow), session, handler)
	case "compare":
		runCompare(workflow)
	default:
		session := data.NewSession([]string{qwen.Name(), gpt.Name()}, 300)
		if use_tui {
			if err := tui.Run(tui.TUIConfig{
				Workflow:   workflow,
				Session:    session,
				Repository: repository,
				SavePath:   dualSaveFile,
			}); err != nil {
				log.Fatalf("tui error: %v", err)
			}
			return
		}
		runDual(workflow, session, handler)
	}
}

func modelForSingle(workflow *services.Workflow) models.Model {
	if single_model == "qwen" {
		return workflow.Qwen
	}
	return workflow.GPT
}

// getRepository picks Postgres when DB_CONNECTION_STRING is set, local SQLite
// otherwise. A broken Postgres connection degrades to SQLite rather than
// refusing to start.
func getRepository() data.TranscriptRepository {
	if connectionString := os.Getenv("DB_CONNECTION_STRING"); connectionString != "" {
		repository := &data.PostgresTranscript{}
		err := repository.Init(connectionString)
		if err == nil {
			return repository
		}
		log.Println("Error initializing db", err)
	}

	name := db_name
	if name == "" {
		name = os.Getenv("MAGPIE_LOCAL_DATABASE")
	}
	if name == "" {
		name = "magpie"
	}

	return &data.SqliteTranscript{Name: name}
}
