package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/projecteru2/nsuuid/digest"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List identifiers recorded in the ledger",
		RunE:    runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	l, err := initLedger()
	if err != nil {
		return err
	}

	all, err := l.List(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No identifiers recorded.") //nolint:errcheck
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAMESPACE\tSOURCE\tDIGEST\tSIZE\tCREATED")
	for _, id := range all {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			id.ID,
			namespaceLabel(id.Namespace),
			id.Source,
			digest.Digest(id.Digest).Short(),
			formatSize(id.Size),
			id.CreatedAt.Local().Format(time.DateTime),
		)
	}
	w.Flush() //nolint:errcheck,gosec
	return nil
}
