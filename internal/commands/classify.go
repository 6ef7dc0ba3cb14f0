package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sift-dev/sift/internal/config"
	"github.com/sift-dev/sift/internal/console"
	"github.com/sift-dev/sift/internal/editor"
	"github.com/sift-dev/sift/internal/gitops"
	"github.com/sift-dev/sift/internal/logging"
	"github.com/sift-dev/sift/internal/model"
	"github.com/sift-dev/sift/internal/sessionlog"
	"github.com/sift-dev/sift/internal/snapshot"
	"github.com/sift-dev/sift/internal/statement"
	"github.com/sift-dev/sift/internal/triage"
)

func newClassifyCommand() *cobra.Command {
	var configPath string
	var resumePath string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "classify [statement.csv]",
		Short: "Interactively sort statement rows into buckets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (resumePath == "") {
				return fmt.Errorf("provide either a statement CSV or --resume, not both")
			}

			csvPath := ""
			if len(args) > 0 {
				csvPath = args[0]
			}
			return runClassify(configPath, csvPath, resumePath, logLevel)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "sift.yaml", "config file")
	cmd.Flags().StringVar(&resumePath, "resume", "", "resume from a snapshot instead of a statement CSV")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")

	return cmd
}

func runClassify(configPath, csvPath, resumePath, logLevel string) error {
	logger := logging.NewLogger(logLevel)
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	payments, source, err := loadPayments(cfg, csvPath, resumePath)
	if err != nil {
		return err
	}
	if len(payments) == 0 {
		fmt.Println("nothing to classify")
		return nil
	}

	keys, err := console.Open()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer keys.Close()

	session := &triage.Session{
		Rules:      cfg.Rules,
		Categories: cfg.Categories,
		Keys:       keys,
		Editor:     editor.New(cfg.EditorCommand()),
		Out:        os.Stdout,
	}

	outcome, err := session.Run(payments)
	if err != nil {
		return err
	}

	written, err := writeSnapshots(cfg, outcome, time.Now(), logger)
	if err != nil {
		return err
	}

	entry := sessionlog.Entry{
		Timestamp:  time.Now(),
		Action:     "classify",
		Source:     source,
		Approved:   len(outcome.Approved),
		SecondLook: len(outcome.SecondLook),
		Ignored:    len(outcome.Ignored),
	}
	if err := sessionlog.Append(".", entry); err != nil {
		logger.Warn("failed to write session log", zap.Error(err))
	}

	if cfg.Git.AutoCommit && gitops.IsRepo(".") {
		paths := append(slices.Clone(written), sessionlog.LogFile)
		message := "classify: " + filepath.Base(source)
		if hash, err := gitops.CommitPaths(".", message, cfg.Git.AuthorName, cfg.Git.AuthorEmail, paths...); err != nil {
			logger.Warn("snapshot commit failed", zap.Error(err))
		} else {
			logger.Info("snapshots committed", zap.String("commit", hash))
		}
	}

	return nil
}

// loadPayments reads either a fresh statement export or a prior snapshot.
// Snapshots were written in review order, so they are flipped back before the
// session reverses them again; a resumed subset is then presented in the same
// relative order as the original run.
func loadPayments(cfg *config.Config, csvPath, resumePath string) ([]model.Payment, string, error) {
	if resumePath != "" {
		payments, err := snapshot.Load(resumePath)
		if err != nil {
			return nil, "", err
		}
		slices.Reverse(payments)
		return payments, resumePath, nil
	}

	imp := statement.NewImporter(cfg.CSV.Columns)
	payments, err := imp.ReadFile(csvPath)
	if err != nil {
		return nil, "", err
	}
	return payments, csvPath, nil
}

// writeSnapshots persists all three buckets as timestamp-named files and
// returns their paths.
func writeSnapshots(cfg *config.Config, outcome *triage.Outcome, now time.Time, logger *zap.Logger) ([]string, error) {
	buckets := []struct {
		name    string
		records []model.Payment
	}{
		{"approved", outcome.Approved},
		{"second_look", outcome.SecondLook},
		{"ignore", outcome.Ignored},
	}

	if err := os.MkdirAll(cfg.SnapshotDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	written := make([]string, 0, len(buckets))
	for _, b := range buckets {
		path := filepath.Join(cfg.SnapshotDir(), snapshot.FileName(now, b.name))
		if err := snapshot.Write(path, b.records); err != nil {
			return nil, err
		}
		logger.Info("snapshot written",
			zap.String("path", path),
			zap.Int("records", len(b.records)),
		)
		written = append(written, path)
	}
	return written, nil
}
