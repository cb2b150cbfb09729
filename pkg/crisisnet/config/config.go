// Package config loads the toolkit's explicit configuration: crisis
// event definitions and analysis parameters from YAML, Reddit API
// credentials from a dotenv file. Configuration is loaded once at
// startup and passed by reference into component constructors; there
// are no package-level settings.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/crisislab/crisisnet/pkg/crisisnet/internalerr"
)

// CrisisEvent defines one crisis under study: where to collect and
// which keywords mark relevance.
type CrisisEvent struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	StartDate         string   `yaml:"start_date"`
	EndDate           string   `yaml:"end_date"`
	Subreddits        []string `yaml:"subreddits"`
	PrimaryKeywords   []string `yaml:"primary_keywords"`
	SecondaryKeywords []string `yaml:"secondary_keywords"`
}

// Keywords returns primary then secondary keywords as one list.
func (c CrisisEvent) Keywords() []string {
	out := make([]string, 0, len(c.PrimaryKeywords)+len(c.SecondaryKeywords))
	out = append(out, c.PrimaryKeywords...)
	out = append(out, c.SecondaryKeywords...)
	return out
}

// Window parses the event's date range. A missing end date means the
// window is open-ended.
func (c CrisisEvent) Window() (start, end time.Time, err error) {
	if c.StartDate != "" {
		start, err = time.Parse("2006-01-02", c.StartDate)
		if err != nil {
			return start, end, fmt.Errorf("crisis %s: bad start_date: %w", c.ID, err)
		}
	}
	if c.EndDate != "" {
		end, err = time.Parse("2006-01-02", c.EndDate)
		if err != nil {
			return start, end, fmt.Errorf("crisis %s: bad end_date: %w", c.ID, err)
		}
	}
	return start, end, nil
}

// Analysis holds the tunable analysis parameters. Zero values mean the
// component defaults.
type Analysis struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	TimeWindowHours     int     `yaml:"time_window_hours"`
	TopK                int     `yaml:"top_k"`
	BetweennessSample   int     `yaml:"betweenness_sample"`
	HubPercentile       float64 `yaml:"hub_percentile"`
}

// TimeWindow converts the configured hours to a duration, zero when
// unset.
func (a Analysis) TimeWindow() time.Duration {
	return time.Duration(a.TimeWindowHours) * time.Hour
}

// Config is the full analysis configuration file.
type Config struct {
	Crises   []CrisisEvent `yaml:"crises"`
	Analysis Analysis      `yaml:"analysis"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cfg.Crises))
	for _, c := range cfg.Crises {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: crisis with empty id", internalerr.ErrInvalidConfig)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: %w: crisis id %q", internalerr.ErrInvalidConfig, internalerr.ErrDuplicate, c.ID)
		}
		seen[c.ID] = true
		if _, _, err := c.Window(); err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
		}
	}
	return &cfg, nil
}

// Crisis returns the event with the given id.
func (c *Config) Crisis(id string) (CrisisEvent, bool) {
	for _, ev := range c.Crises {
		if ev.ID == id {
			return ev, true
		}
	}
	return CrisisEvent{}, false
}

// Credentials are the Reddit API settings read from the environment.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// LoadCredentials reads credentials from a dotenv file merged over the
// process environment. The path may be empty to use the environment
// alone; a named file that does not exist is an error.
func LoadCredentials(path string) (Credentials, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return Credentials{}, fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	creds := Credentials{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		UserAgent:    os.Getenv("REDDIT_USER_AGENT"),
	}
	if creds.UserAgent == "" {
		creds.UserAgent = "crisisnet-collector/1.0"
	}
	return creds, nil
}
