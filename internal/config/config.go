package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sift-dev/sift/internal/rules"
)

// Config represents the top-level sift.yaml configuration. It is loaded once
// at startup and passed into each component explicitly.
type Config struct {
	CSV        CSVConfig         `yaml:"csv"`
	Rules      []rules.Rule      `yaml:"rules"`
	Categories map[string]string `yaml:"categories,omitempty"`
	Editor     string            `yaml:"editor,omitempty"`
	Snapshots  string            `yaml:"snapshots,omitempty"`
	Ledger     LedgerConfig      `yaml:"ledger"`
	Git        GitConfig         `yaml:"git"`
}

// CSVConfig describes the statement export format.
type CSVConfig struct {
	Columns ColumnMapping `yaml:"columns"`
}

// ColumnMapping names the header columns holding each payment field.
type ColumnMapping struct {
	Date      string `yaml:"date"`
	Payee     string `yaml:"payee"`
	Reference string `yaml:"reference"`
	Amount    string `yaml:"amount"`
}

// LedgerConfig holds the shared-expense service connection and bill defaults.
type LedgerConfig struct {
	Domain      string         `yaml:"domain"`
	Project     string         `yaml:"project"`
	Username    string         `yaml:"username"`
	Password    string         `yaml:"password"`
	Payer       int            `yaml:"payer"`
	PayedFor    []int          `yaml:"payed_for"`
	CategoryIDs map[string]int `yaml:"category_ids,omitempty"`
	Timeout     Duration       `yaml:"timeout,omitempty"`
}

// Duration wraps time.Duration so the config can say "30s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// GitConfig controls snapshot versioning in the workspace repository.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a sift.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file. The file holds ledger credentials, so
// it is written owner-only.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// EditorCommand returns the configured editor, falling back to $EDITOR.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}

// SnapshotDir returns the directory snapshots are written to.
func (c *Config) SnapshotDir() string {
	if c.Snapshots != "" {
		return c.Snapshots
	}
	return "snapshots"
}

// Default returns a Config with sensible defaults for a new workspace.
// The column names match the common German bank export layout.
func Default() *Config {
	return &Config{
		CSV: CSVConfig{
			Columns: ColumnMapping{
				Date:      "Buchungstag",
				Payee:     "Beguenstigter/Zahlungspflichtiger",
				Reference: "Verwendungszweck",
				Amount:    "Betrag",
			},
		},
		Categories: map[string]string{
			"g": "grocery",
			"s": "shopping",
		},
		Snapshots: "snapshots",
		Ledger: LedgerConfig{
			Payer:    1,
			PayedFor: []int{1, 2},
			Timeout:  Duration(30 * time.Second),
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Sift",
			AuthorEmail: "sift@localhost",
		},
	}
}
