package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-cosmos/internal/deeplink"
	"github.com/litescript/ls-cosmos/internal/nav"
)

var linkCmd = &cobra.Command{
	Use:   "link BODY CARD",
	Short: "Print the deep link for a stop",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		stop, err := resolveStop(s.machine, args[0], args[1])
		if err != nil {
			return err
		}

		link := deeplink.Link{Body: string(stop.Body), Card: stop.Card}
		if q, _ := cmd.Flags().GetBool("query"); q {
			fmt.Fprintln(cmd.OutOrStdout(), link.Encode())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), link.URL())
		return nil
	},
}

func init() {
	linkCmd.Flags().Bool("query", false, "print only the query string")
	rootCmd.AddCommand(linkCmd)
}

// resolveStop validates a body and card from the command line. The card
// is clamped the same way a deep link's would be.
func resolveStop(m *nav.Machine, body, card string) (nav.Stop, error) {
	n, err := strconv.Atoi(card)
	if err != nil {
		return nav.Stop{}, fmt.Errorf("invalid card %q: %w", card, err)
	}
	i, ok := m.IndexFor(nav.BodyID(body), n)
	if !ok {
		return nav.Stop{}, fmt.Errorf("unknown body %q (known: %v)", body, m.Bodies())
	}
	return m.StopAt(i), nil
}
