// Command quiz plays a generated multiple-choice quiz in the terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mcq-quiz/internal/adapter/quizgen"
	"mcq-quiz/internal/config"
	"mcq-quiz/internal/logger"

	"go.uber.org/zap"
)

func main() {
	topic := flag.String("topic", "", "quiz topic (prompted when empty)")
	count := flag.Int("count", 0, "number of questions (prompted when zero)")
	verbose := flag.Bool("v", false, "log at debug level, including the raw model response")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := cfg.Logger
	logCfg.Level = "error"
	if *verbose {
		logCfg.Level = "debug"
	}
	if err := logger.Initialize(logCfg); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, err := quizgen.NewModel(ctx, cfg.LLM)
	if err != nil {
		logger.Get().Fatal("Failed to create LLM client", zap.Error(err))
	}
	source, err := quizgen.NewLLMQuestionSource(llm, cfg.LLM)
	if err != nil {
		logger.Get().Fatal("Failed to create question source", zap.Error(err))
	}

	p := newPlayer(os.Stdin, os.Stdout, source, cfg.Quiz)
	if err := p.run(ctx, *topic, *count); err != nil {
		logger.Get().Error("Quiz ended with an error", zap.Error(err))
		os.Exit(1)
	}
}
