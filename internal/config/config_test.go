package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "> " {
		t.Errorf("got prompt %q, want %q", cfg.Prompt, "> ")
	}
	if cfg.EchoExpressionResults {
		t.Error("expected EchoExpressionResults to default to false")
	}
	if cfg.MaxCallDepth != 255 {
		t.Errorf("got max call depth %d, want 255", cfg.MaxCallDepth)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GOLOX_PROMPT", "lox> ")
	t.Setenv("GOLOX_ECHO_RESULTS", "true")
	t.Setenv("GOLOX_MAX_CALL_DEPTH", "64")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "lox> " {
		t.Errorf("got prompt %q, want %q", cfg.Prompt, "lox> ")
	}
	if !cfg.EchoExpressionResults {
		t.Error("expected EchoExpressionResults to be true")
	}
	if cfg.MaxCallDepth != 64 {
		t.Errorf("got max call depth %d, want 64", cfg.MaxCallDepth)
	}
}
