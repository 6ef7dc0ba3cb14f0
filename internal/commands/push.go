package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sift-dev/sift/internal/config"
	"github.com/sift-dev/sift/internal/ledger"
	"github.com/sift-dev/sift/internal/logging"
	"github.com/sift-dev/sift/internal/sessionlog"
	"github.com/sift-dev/sift/internal/snapshot"
)

func newPushCommand() *cobra.Command {
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "push <approved.json>",
		Short: "Submit an approved snapshot to the ledger service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(configPath, args[0], logLevel)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "sift.yaml", "config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")

	return cmd
}

func runPush(configPath, snapshotPath, logLevel string) error {
	logger := logging.NewLogger(logLevel)
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	payments, err := snapshot.Load(snapshotPath)
	if err != nil {
		return err
	}

	client := ledger.NewClient(cfg.Ledger, logger)

	submitted, failed := 0, 0
	for _, p := range payments {
		logger.Info("creating bill", zap.String("payee", p.Payee))
		if err := client.CreateBill(context.Background(), p); err != nil {
			// Per-record failure; the batch keeps going.
			failed++
			continue
		}
		submitted++
	}

	entry := sessionlog.Entry{
		Timestamp: time.Now(),
		Action:    "push",
		Source:    snapshotPath,
		Submitted: submitted,
		Failed:    failed,
	}
	if err := sessionlog.Append(".", entry); err != nil {
		logger.Warn("failed to write session log", zap.Error(err))
	}

	fmt.Printf("submitted %d of %d bills (%d failed)\n", submitted, len(payments), failed)
	return nil
}
