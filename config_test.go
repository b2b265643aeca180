package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CLASSIFIER", "CLASSIFIER_URL", "CLASSIFIER_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Classifier != "http" || cfg.ClassifierURL != "http://localhost:3000/" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ClassifierTimeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.ClassifierTimeout)
	}
	if cfg.Thresholds != DefaultThresholds {
		t.Fatalf("expected default thresholds, got %+v", cfg.Thresholds)
	}
	if cfg.Window {
		t.Fatal("window mode should be off by default")
	}
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CLASSIFIER_URL", "http://env:5000/")
	t.Setenv("CLASSIFIER_TIMEOUT", "3s")

	cfg, err := LoadConfig([]string{"-classifier-url", "http://flag:5000/", "-block-threshold", "30", "-ink-threshold", "8"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("expected port from env, got %s", cfg.Port)
	}
	if cfg.ClassifierURL != "http://flag:5000/" {
		t.Fatalf("expected flag to override env, got %s", cfg.ClassifierURL)
	}
	if cfg.ClassifierTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.ClassifierTimeout)
	}
	if cfg.Thresholds.Block != 30 || cfg.Thresholds.Ink != 8 || cfg.Thresholds.BlockSize != 10 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Thresholds)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string][]string{
		"unknown classifier": {"-classifier", "tensorflow"},
		"ink out of range":   {"-ink-threshold", "300"},
		"block out of range": {"-block-threshold", "100"},
		"bad port":           {"-port", "http"},
		"unknown flag":       {"-nope"},
	}
	for name, args := range tests {
		if _, err := LoadConfig(args); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	t.Setenv("CLASSIFIER_TIMEOUT", "soon")
	if _, err := LoadConfig(nil); err == nil {
		t.Error("expected error for invalid CLASSIFIER_TIMEOUT")
	}
}

func TestSetupLogging(t *testing.T) {
	defer func(l zerolog.Logger, lvl zerolog.Level) {
		log.Logger = l
		zerolog.SetGlobalLevel(lvl)
	}(log.Logger, zerolog.GlobalLevel())

	var buf bytes.Buffer
	if err := setupLogging("warn", "json", &buf); err != nil {
		t.Fatalf("setup: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("pad", "p1").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("info message should be filtered at warn level")
	}
	if !strings.Contains(out, `"pad":"p1"`) || !strings.Contains(out, `"message":"shown"`) {
		t.Fatalf("unexpected log output: %s", out)
	}

	if err := setupLogging("loud", "json", &buf); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if err := setupLogging("info", "xml", &buf); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
