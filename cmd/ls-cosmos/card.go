package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-cosmos/internal/content"
	"github.com/litescript/ls-cosmos/internal/ui"
)

var cardCmd = &cobra.Command{
	Use:   "card BODY [CARD]",
	Short: "Print a body's holocard as it appears at a stop",
	Long:  "Print a body's holocard. CARD is the stop within the body (0-3); it defaults to the last, with every panel shown.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}

		card := strconv.Itoa(s.machine.CardsPerBody() - 1)
		if len(args) == 2 {
			card = args[1]
		}
		stop, err := resolveStop(s.machine, args[0], card)
		if err != nil {
			return err
		}
		rec, err := s.catalog.MustLookup(string(stop.Body))
		if err != nil {
			return err
		}
		birth, _ := s.cfg.Birth()

		out := cmd.OutOrStdout()
		plain, _ := cmd.Flags().GetBool("plain")
		if plain || !isTerminal(out) {
			printPlainCard(out, content.WithLiveStats(rec, birth, time.Now()), stop.Card)
			return nil
		}

		width, _ := cmd.Flags().GetInt("width")
		h := ui.NewHolocard(birth, time.Now)
		h.SetWidth(width)
		h.Prepare(rec)
		for i := 0; i < stop.Card; i++ {
			h.RevealNextPanel()
		}
		if h.Visible() == 0 {
			fmt.Fprintln(out, rec.Title)
			return nil
		}
		fmt.Fprintln(out, h.View())
		return nil
	},
}

func init() {
	cardCmd.Flags().Bool("plain", false, "plain text even on a terminal")
	cardCmd.Flags().Int("width", ui.DefaultCardWidth, "card width for styled output")
	rootCmd.AddCommand(cardCmd)
}

// printPlainCard writes the first panels panels of rec without styling.
func printPlainCard(w io.Writer, rec content.Body, panels int) {
	fmt.Fprintln(w, strings.ToUpper(rec.Title))
	if rec.Subtitle != "" {
		fmt.Fprintln(w, rec.Subtitle)
	}

	for _, kind := range content.PanelOrder[:min(panels, content.PanelCount)] {
		fmt.Fprintf(w, "\n== %s ==\n", kind)
		switch kind {
		case content.PanelTelemetry:
			for _, s := range rec.Stats {
				fmt.Fprintf(w, "%-18s %s\n", s.Label, s.Value)
			}
		case content.PanelNarrative:
			if p := rec.Personal; p.Name != "" {
				fmt.Fprintf(w, "%s: %s\n", p.Relation, p.Name)
				if p.Bio != "" {
					fmt.Fprintln(w, p.Bio)
				}
			}
			if rec.Narrative != "" {
				fmt.Fprintln(w, rec.Narrative)
			}
			if rec.Quote != "" {
				fmt.Fprintf(w, "\"%s\"\n", rec.Quote)
			}
		case content.PanelRecord:
			pro := rec.Professional
			if pro.Title != "" {
				fmt.Fprintln(w, pro.Title)
			}
			if pro.Summary != "" {
				fmt.Fprintln(w, pro.Summary)
			}
			if len(pro.Skills) > 0 {
				fmt.Fprintf(w, "Skills: %s\n", strings.Join(pro.Skills, ", "))
			}
			for _, p := range pro.Projects {
				fmt.Fprintf(w, "- %s (%s): %s\n", p.Name, p.Stack, p.Desc)
			}
			for _, r := range pro.History {
				fmt.Fprintf(w, "- %s, %s [%s]\n", r.Role, r.Company, r.Period)
			}
			for _, p := range pro.Podcasts {
				fmt.Fprintf(w, "- %s: %s\n", p.Title, p.Context)
			}
		}
	}
}
