package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/projecteru2/nsuuid/uuidv5"
)

func newNamespacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "namespaces",
		Short: "List the predefined namespaces usable with --context",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tUUID")
			for _, name := range uuidv5.WellKnownNamespaces() {
				ns, _ := uuidv5.Lookup(name)
				_, _ = fmt.Fprintf(w, "%s\t%s\n", name, ns)
			}
			w.Flush() //nolint:errcheck,gosec
		},
	}
}

// namespaceLabel shows "ns:dns" style names for predefined namespaces.
func namespaceLabel(s string) string {
	for _, name := range uuidv5.WellKnownNamespaces() {
		if ns, _ := uuidv5.Lookup(name); ns.String() == s {
			return "ns:" + name
		}
	}
	return s
}
