package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatinsight/chat-insight-bot/internal/analysis"
	"github.com/chatinsight/chat-insight-bot/internal/core/domain"
	"github.com/chatinsight/chat-insight-bot/internal/core/llm"
	"github.com/chatinsight/chat-insight-bot/internal/platform/config"
	"github.com/chatinsight/chat-insight-bot/internal/platform/observability"
)

func main() {
	input := flag.String("input", "-", "Path to a JSON file with the message window, or - for stdin")
	output := flag.String("output", "-", "Path to write the analysis result, or - for stdout")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsPort > 0 {
		metricsServer := observability.NewServer(cfg.MetricsPort, &logger)

		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	messages, err := readMessages(*input)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read messages")
	}

	analyzer := analysis.New(cfg, llm.New(cfg, &logger), &logger)

	result, err := analyzer.Analyze(ctx, messages)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("analysis cancelled")
			return
		}

		logger.Fatal().Err(err).Msg("analysis failed")
	}

	if err := writeResult(*output, result); err != nil {
		logger.Fatal().Err(err).Msg("failed to write result")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func readMessages(path string) ([]domain.Message, error) {
	var reader io.Reader = os.Stdin

	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer file.Close()

		reader = file
	}

	var messages []domain.Message
	if err := json.NewDecoder(reader).Decode(&messages); err != nil {
		return nil, fmt.Errorf("decoding messages: %w", err)
	}

	return messages, nil
}

func writeResult(path string, result *domain.AnalysisResult) error {
	var writer io.Writer = os.Stdout

	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer file.Close()

		writer = file
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}
