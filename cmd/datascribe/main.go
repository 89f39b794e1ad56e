package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/hgrant/datascribe/internal/agent"
	"github.com/hgrant/datascribe/internal/dbagent"
	"github.com/hgrant/datascribe/internal/governance"
	"github.com/hgrant/datascribe/internal/observability"
	"github.com/hgrant/datascribe/internal/schema"
	"github.com/hgrant/datascribe/internal/store"
	"github.com/hgrant/datascribe/internal/supervisor"
	"github.com/hgrant/datascribe/pkg/config"
)

const historyWindow = 20

func main() {
	var (
		question      = flag.String("q", "", "the question to answer")
		statement     = flag.String("sql", "", "run a raw SQL statement instead of a question (mutations are denied)")
		configPath    = flag.String("config", "config.json", "path to config file")
		refreshSchema = flag.Bool("refresh-schema", false, "rediscover the schema even when a cache exists")
	)
	flag.Parse()

	if *question == "" && *statement == "" && !*refreshSchema {
		observability.PrintBanner()
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig(*configPath)
	if cfg.App.Database == "" {
		log.Fatal("No database configured (app.database)")
	}

	// Initialize LLM (using default enabled provider)
	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		log.Fatal("No enabled provider found in config")
	}

	var llm llms.Model
	var err error
	switch pName {
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(pCfg.APIKey),
			openai.WithModel(pCfg.Model),
		}
		if pCfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(pCfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	default:
		log.Fatalf("Provider %s not yet implemented in main", pName)
	}
	if err != nil {
		log.Fatal(err)
	}

	gov := governance.NewDefaultPolicyEngine()
	// Read-only by default: raw statements that modify data are rejected.
	_ = gov.DenyStatements(`(?i)^\s*(insert|update|delete|drop|alter|truncate)\b`)

	db, err := dbagent.New(llm, cfg.App.Database, gov)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if *statement != "" {
		out, err := db.Run(context.Background(), *statement)
		if err != nil {
			log.Fatalf("statement failed: %v", err)
		}
		fmt.Println(out)
		return
	}

	history, err := store.NewHistoryStore(cfg.Memory.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer history.Close()

	research, err := agent.NewResearchAgent()
	if err != nil {
		log.Fatal(err)
	}

	logger := observability.NewLogger()
	completer := agent.NewModelCompleter(llm)
	completer.Log = logger
	discovery := schema.NewDiscoveryAgent(completer, db, cfg.App.GraphCache)

	prompts := agent.NewPromptManager("./prompts")
	classifier := agent.NewClassifier(completer)
	classifier.Prompt = prompts.ClassifierPrompt()
	planner := agent.NewPlanner(completer)
	planner.Prompt = prompts.PlannerPrompt()
	composer := agent.NewComposer(completer)
	composer.Prompt = prompts.ComposerPrompt()
	composer.ChatPrompt = prompts.ChatPrompt()

	sup, err := supervisor.New(
		classifier,
		planner,
		agent.NewDispatcher(db, research),
		composer,
		discovery,
		db,
		logger,
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *refreshSchema {
		if _, err := discovery.Discover(ctx, true); err != nil {
			log.Fatalf("schema refresh failed: %v", err)
		}
		log.Printf("schema graph refreshed into %s", cfg.App.GraphCache)
		if *question == "" {
			return
		}
	}

	conv, err := history.LoadContext(historyWindow)
	if err != nil {
		log.Printf("Warning: failed to load conversation history: %v", err)
	}

	answer, updated, err := sup.Answer(ctx, *question, conv)
	if err != nil {
		log.Fatalf("failed to answer: %v", err)
	}
	if err := history.SaveTurn(updated.LastQuestion, updated.LastResponse); err != nil {
		log.Printf("Warning: failed to persist turn: %v", err)
	}

	fmt.Println(answer)
}
