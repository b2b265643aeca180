package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings. Environment variables provide the
// defaults and command-line flags override them.
type Config struct {
	Port              string
	Classifier        string // "http" or "gemini"
	ClassifierURL     string
	ClassifierTimeout time.Duration
	ProjectID         string
	Region            string
	LogLevel          string
	LogFormat         string // "json" or "console"
	Window            bool
	Thresholds        Thresholds
}

// LoadConfig reads the environment and parses args on top of it.
func LoadConfig(args []string) (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("CLASSIFIER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("CLASSIFIER_TIMEOUT: %w", err)
	}

	cfg := &Config{Thresholds: DefaultThresholds}
	var ink, block int

	fs := flag.NewFlagSet("digitpad", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.Port, "port", getEnv("PORT", "8080"), "HTTP listen port.")
	fs.StringVar(&cfg.Classifier, "classifier", getEnv("CLASSIFIER", "http"), "Classifier backend: http or gemini.")
	fs.StringVar(&cfg.ClassifierURL, "classifier-url", getEnv("CLASSIFIER_URL", "http://localhost:3000/"), "Prediction service endpoint.")
	fs.DurationVar(&cfg.ClassifierTimeout, "classifier-timeout", timeout, "Deadline for one prediction request.")
	fs.StringVar(&cfg.ProjectID, "gcp-project", os.Getenv("GCP_PROJECT_ID"), "GCP project for the gemini classifier.")
	fs.StringVar(&cfg.Region, "gcp-region", os.Getenv("GCP_REGION"), "GCP region for the gemini classifier.")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level.")
	fs.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "json"), "Log format: json or console.")
	fs.BoolVar(&cfg.Window, "window", false, "Open a desktop drawing window instead of serving HTTP.")
	fs.IntVar(&ink, "ink-threshold", int(DefaultThresholds.Ink), "Opacity a pixel must exceed to count as ink.")
	fs.IntVar(&block, "block-threshold", DefaultThresholds.Block, "Ink pixels a 10x10 block must exceed to be set.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if ink < 0 || ink > 255 {
		return nil, fmt.Errorf("ink-threshold %d out of range 0-255", ink)
	}
	if block < 0 || block >= DefaultThresholds.BlockSize*DefaultThresholds.BlockSize {
		return nil, fmt.Errorf("block-threshold %d out of range 0-%d", block, DefaultThresholds.BlockSize*DefaultThresholds.BlockSize-1)
	}
	cfg.Thresholds.Ink = uint8(ink)
	cfg.Thresholds.Block = block

	switch cfg.Classifier {
	case "http", "gemini":
	default:
		return nil, fmt.Errorf("unknown classifier %q", cfg.Classifier)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port %q", cfg.Port)
	}

	return cfg, nil
}

// setupLogging configures the global zerolog logger.
func setupLogging(level, format string, out io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)

	switch format {
	case "console":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	case "json", "":
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
