package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projecteru2/core/log"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID [ID...]",
		Short: "Remove recorded identifier(s) from the ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRM,
	}
}

func runRM(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	logger := log.WithFunc("cmd.rm")
	l, err := initLedger()
	if err != nil {
		return err
	}

	deleted, err := l.Delete(ctx, args)
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	for _, id := range deleted {
		logger.Infof(ctx, "removed: %s", id)
	}
	if len(deleted) == 0 {
		logger.Infof(ctx, "no identifiers removed")
	}
	return nil
}
