package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/crisislab/crisisnet/pkg/crisisnet/internalerr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crisis_config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
crises:
  - id: flood2023
    name: July 2023 floods
    start_date: "2023-07-01"
    end_date: "2023-07-31"
    subreddits: [floods, weather]
    primary_keywords: [flood, evacuation]
    secondary_keywords: [river, rain]
analysis:
  similarity_threshold: 0.4
  time_window_hours: 12
  top_k: 5
  betweenness_sample: 50
  hub_percentile: 0.85
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ev, ok := cfg.Crisis("flood2023")
	if !ok {
		t.Fatal("crisis not found")
	}
	if len(ev.Subreddits) != 2 || ev.Subreddits[0] != "floods" {
		t.Errorf("subreddits = %v", ev.Subreddits)
	}
	if kw := ev.Keywords(); len(kw) != 4 || kw[0] != "flood" || kw[2] != "river" {
		t.Errorf("keywords = %v", kw)
	}

	start, end, err := ev.Window()
	if err != nil {
		t.Fatal(err)
	}
	if start.Month() != 7 || end.Day() != 31 {
		t.Errorf("window = %v .. %v", start, end)
	}

	if cfg.Analysis.SimilarityThreshold != 0.4 {
		t.Errorf("threshold = %v", cfg.Analysis.SimilarityThreshold)
	}
	if cfg.Analysis.TimeWindow().Hours() != 12 {
		t.Errorf("window = %v", cfg.Analysis.TimeWindow())
	}
	if cfg.Analysis.HubPercentile != 0.85 {
		t.Errorf("hub percentile = %v", cfg.Analysis.HubPercentile)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := writeConfig(t, `
crises:
  - id: flood
  - id: flood
`)
	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestLoadRejectsEmptyID(t *testing.T) {
	path := writeConfig(t, `
crises:
  - name: nameless
`)
	if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadRejectsBadDate(t *testing.T) {
	path := writeConfig(t, `
crises:
  - id: flood
    start_date: "July 1st"
`)
	if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "REDDIT_CLIENT_ID=abc\nREDDIT_CLIENT_SECRET=xyz\nREDDIT_USER_AGENT=research-bot/2.0\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set, even
	// to the empty string, so clear them outright. t.Setenv registers
	// the restore.
	for _, key := range []string{"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USER_AGENT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	creds, err := LoadCredentials(path)
	if err != nil {
		t.Fatal(err)
	}
	if creds.ClientID != "abc" || creds.ClientSecret != "xyz" {
		t.Errorf("creds = %+v", creds)
	}
	if creds.UserAgent != "research-bot/2.0" {
		t.Errorf("user agent = %q", creds.UserAgent)
	}
}

func TestLoadCredentialsDefaultUserAgent(t *testing.T) {
	t.Setenv("REDDIT_USER_AGENT", "")
	creds, err := LoadCredentials("")
	if err != nil {
		t.Fatal(err)
	}
	if creds.UserAgent == "" {
		t.Error("expected a fallback user agent")
	}
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	if _, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected an error for a named but missing env file")
	}
}
