package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-cosmos/internal/deeplink"
	"github.com/litescript/ls-cosmos/internal/nav"
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "List every navigation stop with its scroll offset and link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		return printStops(cmd.OutOrStdout(), s.machine, s.layout)
	},
}

func init() {
	rootCmd.AddCommand(stopsCmd)
}

func printStops(w io.Writer, m *nav.Machine, layout nav.Layout) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tBODY\tCARD\tOFFSET\tLINK")
	for i := 0; i < m.Total(); i++ {
		s := m.StopAt(i)
		link := deeplink.Link{Body: string(s.Body), Card: s.Card}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.0f\t%s\n", s.Index, s.Body, s.Card, layout.OffsetForStop(s), link.Encode())
	}
	fmt.Fprintf(tw, "\t\t\t%.0f\ttotal\n", layout.TotalHeight(len(m.Bodies())))
	return tw.Flush()
}
