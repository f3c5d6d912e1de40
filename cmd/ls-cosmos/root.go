package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-cosmos/internal/config"
	"github.com/litescript/ls-cosmos/internal/content"
	"github.com/litescript/ls-cosmos/internal/deeplink"
	"github.com/litescript/ls-cosmos/internal/journal"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/nav"
	"github.com/litescript/ls-cosmos/internal/ui"
	"github.com/litescript/ls-cosmos/internal/version"
)

// cardsPerBody is the number of stops per body: the bare body plus one
// per holocard panel.
const cardsPerBody = content.PanelCount + 1

var errNoTTY = errors.New("ls-cosmos needs an interactive terminal; try 'ls-cosmos stops' or 'ls-cosmos card'")

var rootCmd = &cobra.Command{
	Use:     "ls-cosmos",
	Short:   "A scroll-driven tour of the solar system in your terminal",
	Long:    "ls-cosmos walks a fixed sequence of stops through the solar system. Each body carries a holocard revealed one panel per step.",
	Version: version.Version,
	Args:    cobra.NoArgs,
	RunE:    runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .ls-cosmos.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("content", "", "holocard content file (TOML); watched for changes")
	rootCmd.PersistentFlags().String("birth-date", "", "birth date for live stats (YYYY-MM-DD)")

	rootCmd.Flags().String("link", "", "start at a deep link (?body=mars&card=2)")
	rootCmd.Flags().String("body", "", "start at a body")
	rootCmd.Flags().Int("card", 0, "card to start at with --body")
	rootCmd.Flags().Bool("resume", false, "start where the last session left off")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("content_file", rootCmd.PersistentFlags().Lookup("content"))
	_ = viper.BindPFlag("birth_date", rootCmd.PersistentFlags().Lookup("birth-date"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-cosmos")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session is the navigation core shared by the TUI and the headless
// commands.
type session struct {
	cfg     config.Config
	catalog *content.Catalog
	machine *nav.Machine
	layout  nav.Layout
}

func loadSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	catalog, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	machine, err := newMachine(catalog)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:     cfg,
		catalog: catalog,
		machine: machine,
		layout:  cfg.NavLayout(machine.CardsPerBody()),
	}, nil
}

// newMachine builds the stop sequence from the catalog's body order.
func newMachine(c *content.Catalog) (*nav.Machine, error) {
	ids := c.IDs()
	bodies := make([]nav.BodyID, len(ids))
	for i, id := range ids {
		bodies[i] = nav.BodyID(id)
	}
	m, err := nav.NewMachine(bodies, cardsPerBody)
	if err != nil {
		return nil, fmt.Errorf("build navigation: %w", err)
	}
	return m, nil
}

// bootLink picks the startup link: --link, then --body/--card, then the
// saved location with --resume.
func bootLink(cmd *cobra.Command, store *deeplink.Store) (string, error) {
	if raw, _ := cmd.Flags().GetString("link"); raw != "" {
		return raw, nil
	}
	if body, _ := cmd.Flags().GetString("body"); body != "" {
		card, _ := cmd.Flags().GetInt("card")
		return deeplink.Link{Body: body, Card: card}.Encode(), nil
	}
	if resume, _ := cmd.Flags().GetBool("resume"); resume {
		raw, err := store.Load()
		if err != nil {
			return "", err
		}
		return raw, nil
	}
	return "", nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNoTTY
	}

	s, err := loadSession()
	if err != nil {
		return err
	}
	birth, _ := s.cfg.Birth() // validated by Load

	logger, closer, err := logging.Open(s.cfg.LogFile, logging.ParseLevel(s.cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; logging disabled\n", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}
	logger.Info("ls-cosmos v%s starting (%d stops)", version.Version, s.machine.Total())

	store := deeplink.NewStore(s.cfg.LocationFile, func(err error) {
		logger.Warn("location: %v", err)
	})
	link, err := bootLink(cmd, store)
	if err != nil {
		logger.Warn("resume: %v", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer cancel()

	var updates <-chan *content.Catalog
	var contentErrs <-chan error
	if s.cfg.ContentFile != "" {
		updates, contentErrs, err = content.Watch(ctx, s.cfg.ContentFile)
		if err != nil {
			logger.Warn("content hot reload disabled: %v", err)
		}
	}

	model := ui.New(ui.Config{
		Machine:        s.machine,
		Layout:         s.layout,
		Options:        s.cfg.NavOptions(),
		Catalog:        s.catalog,
		Location:       store,
		Journal:        journal.New(journal.DefaultConfig()),
		Logger:         logger,
		Birth:          birth,
		AnimTick:       s.cfg.Timing.AnimTick,
		ScrollTime:     s.cfg.Timing.ScrollTime,
		SimSpeed:       s.cfg.Sim.Speed,
		FocusSpeed:     s.cfg.Sim.FocusSpeed,
		BootLink:       link,
		ContentUpdates: updates,
		ContentErrors:  contentErrs,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
