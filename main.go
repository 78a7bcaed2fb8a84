package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"study_notes_generator/config"
	"study_notes_generator/generator"
	"study_notes_generator/pipeline"
	"study_notes_generator/publisher"
	"study_notes_generator/server"
)

var verbose bool

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ./config.yaml if present)")
	topic := flag.String("topic", "", "generate notes for a single topic and exit")
	serve := flag.Bool("serve", false, "start web server (default when no -topic is given)")
	addr := flag.String("addr", "", "http listen address (overrides server.addr)")
	flag.BoolVar(&verbose, "v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, "config:", e.Error())
		}
		os.Exit(1)
	}

	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	pipe, err := buildPipeline(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *topic != "" && !*serve {
		if err := runOnce(ctx, pipe, *topic); err != nil {
			color.Red("✗ %s", pipeline.Message(err))
			os.Exit(1)
		}
		return
	}

	if err := runServer(ctx, cfg, pipe, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg *config.Config, pipe *pipeline.Pipeline, logger *slog.Logger) error {
	srv, err := server.New(pipe, server.Options{
		PublicBaseURL: cfg.Server.PublicBaseURL,
		CORSOrigins:   cfg.Server.CORSOrigins,
		RateLimit:     cfg.Server.RateLimit,
		RateBurst:     cfg.Server.RateBurst,
		MCP:           cfg.Server.MCP,
	}, logger)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "addr", cfg.Server.Addr, "provider", cfg.LLM.Provider, "model", cfg.LLM.Model, "output_dir", cfg.Output.Dir)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func runOnce(ctx context.Context, pipe *pipeline.Pipeline, topic string) error {
	spinner := getSpinner(fmt.Sprintf("Generating study notes for %q", strings.TrimSpace(topic)))
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				_ = spinner.Add(1)
			}
		}
	}()

	res, err := pipe.Run(ctx, topic)
	close(done)
	_ = spinner.Finish()
	if err != nil {
		return err
	}

	color.Green("\n✓ %s", res.Digest)
	fmt.Printf("PDF: %s (%d page(s))\n", res.Document.Path, res.Document.Pages)
	return nil
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(os.Stderr),
	)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func buildPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		return nil, err
	}
	pub, err := publisher.New(publisher.Config{Dir: cfg.Output.Dir, Creator: "study-notes-generator"}, nil, logger)
	if err != nil {
		return nil, err
	}
	return pipeline.New(agent, pub, logger)
}

func buildLLM(cfg *config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}
	switch cfg.LLM.Provider {
	case "mistral":
		// Mistral speaks the OpenAI chat completions protocol.
		if settings.BaseURL == "" {
			settings.BaseURL = generator.MistralBaseURL
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "ollama":
		return generator.NewOllamaLLMFromConfig(settings)
	case "mock":
		return generator.MockLLM{}, nil
	case "":
		return nil, fmt.Errorf("llm config missing; please set llm.provider in config")
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
