package config

import (
	"testing"
	"time"
)

func TestReadDefaults(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "GPT_CHAT_KEY", "GPT_CHAT_ENDPOINT", "ELEVENLABS_API_KEY", "AZURE_SPEECH_KEY", "AZURE_SPEECH_REGION"} {
		t.Setenv(k, "")
	}

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if cfg.HasClaude() || cfg.HasChat() || cfg.HasElevenLabs() || cfg.HasAzure() {
		t.Fatalf("no backend should be configured: %+v", cfg)
	}
	if cfg.NudgeAfter != 90*time.Second || cfg.RecordWindow != 5*time.Second {
		t.Errorf("unexpected durations: nudge=%s record=%s", cfg.NudgeAfter, cfg.RecordWindow)
	}
	if !cfg.DiskCache || cfg.CacheDir != ".fuelquest-cache" {
		t.Errorf("unexpected cache settings: %+v", cfg)
	}
}

func TestReadOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("AZURE_SPEECH_KEY", "key")
	t.Setenv("AZURE_SPEECH_REGION", "")
	t.Setenv("FUELQUEST_NUDGE_AFTER", "2m")
	t.Setenv("FUELQUEST_DISK_CACHE", "false")

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !cfg.HasClaude() {
		t.Error("expected Claude to be configured")
	}
	if cfg.HasAzure() {
		t.Error("Azure needs both key and region")
	}
	if cfg.NudgeAfter != 2*time.Minute || cfg.DiskCache {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestReadRejectsBadDuration(t *testing.T) {
	t.Setenv("FUELQUEST_NUDGE_AFTER", "soon")
	if _, err := Read(); err == nil {
		t.Fatal("expected an error for a malformed duration")
	}
}
