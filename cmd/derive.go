package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	"github.com/projecteru2/nsuuid/deriver"
	"github.com/projecteru2/nsuuid/source"
	"github.com/projecteru2/nsuuid/types"
)

func newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive [flags] [FILE...]",
		Short: "Derive version 5 UUID(s) from text, file(s) or stdin",
		Long: `Derive a version 5 UUID from the namespace given by --context and a name.

The name is the content of --file or each FILE argument ("-" reads stdin),
otherwise the literal --content text, otherwise stdin when --stdin is set.
With none of these derive fails with a missing input error.
A file always takes precedence over --content.`,
		RunE: runDerive,
	}
	cmd.Flags().StringP("file", "f", "", "read the name from this file")
	cmd.Flags().StringP("content", "n", "", "literal name text (may be empty)")
	cmd.Flags().Bool("stdin", false, "read the name from stdin")
	cmd.Flags().Bool("record", false, "record the result(s) in the ledger")
	return cmd
}

func runDerive(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	opts, err := deriveOptions(cmd, args)
	if err != nil {
		return err
	}
	if readsStdin(opts) && stdinIsTerminal() {
		log.WithFunc("cmd.derive").Infof(ctx, "reading name from terminal, end with Ctrl-D")
	}
	d, err := initDeriver()
	if err != nil {
		return err
	}

	var ids []*types.Identifier
	if len(opts) == 1 {
		id, err := d.Derive(ctx, opts[0])
		if err != nil {
			return fmt.Errorf("derive: %w", err)
		}
		ids = []*types.Identifier{id}
	} else {
		if ids, err = d.DeriveAll(ctx, opts); err != nil {
			return fmt.Errorf("derive: %w", err)
		}
	}

	if err := printIdentifiers(cmd.OutOrStdout(), ids, conf.Format); err != nil {
		return err
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		return recordIdentifiers(ctx, ids)
	}
	return nil
}

// deriveOptions maps flags and args to derivation options. A file path
// overrides --content. Stdin is read only for --stdin or "-".
func deriveOptions(cmd *cobra.Command, args []string) ([]deriver.Options, error) {
	file, _ := cmd.Flags().GetString("file")
	useStdin, _ := cmd.Flags().GetBool("stdin")

	var paths []string
	if file != "" {
		paths = append(paths, file)
	}
	paths = append(paths, args...)
	if len(paths) > 0 {
		opts := make([]deriver.Options, 0, len(paths))
		stdinUsed := false
		for _, p := range paths {
			if p == source.StdinPath {
				if stdinUsed {
					return nil, fmt.Errorf("stdin given more than once")
				}
				stdinUsed = true
			}
			opts = append(opts, deriver.Options{Source: source.File(p)})
		}
		return opts, nil
	}

	if cmd.Flags().Changed("content") {
		content, _ := cmd.Flags().GetString("content")
		return []deriver.Options{{Source: source.Text(content)}}, nil
	}
	if useStdin {
		return []deriver.Options{{Source: source.Source{Stdin: true}}}, nil
	}
	return nil, source.ErrMissingInput
}

func readsStdin(opts []deriver.Options) bool {
	for _, o := range opts {
		if o.Source.Stdin || o.Source.Path == source.StdinPath {
			return true
		}
	}
	return false
}

func printIdentifiers(w io.Writer, ids []*types.Identifier, format string) error {
	if format == formatJSON && len(ids) > 1 {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ids)
	}
	for _, id := range ids {
		line, err := formatIdentifier(id, format)
		if err != nil {
			return err
		}
		if len(ids) > 1 {
			line = fmt.Sprintf("%s  %s", line, id.Source)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func recordIdentifiers(ctx context.Context, ids []*types.Identifier) error {
	logger := log.WithFunc("cmd.derive")
	l, err := initLedger()
	if err != nil {
		return err
	}
	added, err := l.Add(ctx, ids...)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	logger.Infof(ctx, "recorded %d new identifier(s) in %s", added, conf.LedgerFile())
	return nil
}
