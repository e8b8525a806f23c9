package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danielsheh02/willy-wonka-factory/sdk/types"
	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/helpers"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const maskedPassword = "********"

// cliOptions carries the persistent flags shared by every subcommand.
type cliOptions struct {
	envFile    string
	configFile string
}

func (o *cliOptions) load() (*config.Config, error) {
	opts := []config.Option{config.WithDotEnv(o.envFile), config.Quiet()}
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	return config.Load(opts...)
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:   "wonka-e2e",
		Short: "Operator tool for the factory browser test harness",
		Long: `wonka-e2e inspects and prepares the environment the browser
scenarios run in: resolved settings, browser driver, backend reachability
and the golden tickets the booking scenario depends on.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "Path of the KEY=VALUE file to read")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML file merged over the .env values (default $E2E_CONFIG_FILE)")

	root.AddCommand(
		newConfigCmd(opts),
		newLocateDriverCmd(opts),
		newInstallCmd(opts),
		newDoctorCmd(opts),
		newTicketsCmd(opts),
		newVersionCmd(root),
	)
	return root
}

// configView is the printable form of config.Config.
type configView struct {
	BaseURL        string                `yaml:"base_url"`
	APIURL         string                `yaml:"api_url"`
	Browser        string                `yaml:"browser"`
	Headless       bool                  `yaml:"headless"`
	SlowMo         string                `yaml:"slow_mo"`
	Timeouts       map[string]string     `yaml:"timeouts"`
	ScreenshotsDir string                `yaml:"screenshots_dir"`
	ReportsDir     string                `yaml:"reports_dir"`
	BrowsersPath   string                `yaml:"playwright_browsers_path"`
	Preinstalled   bool                  `yaml:"playwright_preinstalled"`
	Credentials    map[string]credential `yaml:"credentials"`
}

type credential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func viewOf(cfg *config.Config) configView {
	v := configView{
		BaseURL:  cfg.BaseURL,
		APIURL:   cfg.APIURL,
		Browser:  string(cfg.Browser),
		Headless: cfg.Headless,
		SlowMo:   cfg.SlowMo.String(),
		Timeouts: map[string]string{
			"implicit":  cfg.Timeouts.Implicit.String(),
			"explicit":  cfg.Timeouts.Explicit.String(),
			"page_load": cfg.Timeouts.PageLoad.String(),
		},
		ScreenshotsDir: cfg.ScreenshotsDir,
		ReportsDir:     cfg.ReportsDir,
		BrowsersPath:   helpers.BrowsersDir(cfg),
		Preinstalled:   cfg.Preinstalled,
		Credentials:    make(map[string]credential, len(config.Accounts)),
	}
	for _, a := range config.Accounts {
		c := cfg.Credentials(a)
		password := ""
		if c.Password != "" {
			password = maskedPassword
		}
		v.Credentials[string(a)] = credential{Username: c.Username, Password: password}
	}
	return v
}

func newConfigCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(viewOf(cfg)); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}

func newLocateDriverCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locate-driver",
		Short: "Find the Chromium executable the harness will launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.Browser != config.Chrome {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is launched by Playwright from %s\n", cfg.Browser, helpers.BrowsersDir(cfg))
				return nil
			}
			path, err := helpers.ResolveChromium(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newInstallCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download the Playwright driver and the configured browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installing %s into %s\n", cfg.Browser, helpers.BrowsersDir(cfg))
			if err := helpers.InstallBrowsers(cfg); err != nil {
				return fmt.Errorf("install failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ browsers installed")
			return nil
		},
	}
}

// check is one line of the doctor report.
type check struct {
	name string
	run  func(ctx context.Context, cfg *config.Config) error
}

var doctorChecks = []check{
	{"frontend reachable", func(_ context.Context, cfg *config.Config) error {
		if !config.Reachable(cfg.BaseURL) {
			return fmt.Errorf("nothing answers at %s", cfg.BaseURL)
		}
		return nil
	}},
	{"backend reachable", func(_ context.Context, cfg *config.Config) error {
		if !config.Reachable(cfg.APIURL) {
			return fmt.Errorf("nothing answers at %s", cfg.APIURL)
		}
		return nil
	}},
	{"browser driver", func(_ context.Context, cfg *config.Config) error {
		if cfg.Browser != config.Chrome {
			return nil
		}
		_, err := helpers.ResolveChromium(cfg)
		return err
	}},
	{"admin sign-in", func(ctx context.Context, cfg *config.Config) error {
		_, err := helpers.NewAPIClient(ctx, cfg, config.Admin)
		return err
	}},
}

func newDoctorCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the scenarios can run against the configured stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.Explicit)
			defer cancel()

			out := cmd.OutOrStdout()
			failed := 0
			for _, c := range doctorChecks {
				if err := c.run(ctx, cfg); err != nil {
					failed++
					fmt.Fprintf(out, "✗ %s: %v\n", c.name, err)
					continue
				}
				fmt.Fprintf(out, "✓ %s\n", c.name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(doctorChecks))
			}
			return nil
		},
	}
}

func newTicketsCmd(opts *cliOptions) *cobra.Command {
	var (
		latest      bool
		generate    int
		expiresDays int
	)
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List golden tickets as the admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.Explicit)
			defer cancel()

			if latest {
				number, err := helpers.FetchLatestTicketNumber(ctx, cfg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), number)
				return nil
			}

			c, err := helpers.NewAPIClient(ctx, cfg, config.Admin)
			if err != nil {
				return err
			}
			if generate > 0 {
				var expires *int
				if expiresDays > 0 {
					expires = &expiresDays
				}
				if err := c.Tickets.Generate(ctx, generate, expires); err != nil {
					return fmt.Errorf("generating tickets failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ generated %d tickets\n", generate)
			}
			tickets, err := c.Tickets.List(ctx)
			if err != nil {
				return fmt.Errorf("listing tickets failed: %w", err)
			}
			return printTickets(cmd, tickets)
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "Print only the ticket the booking scenario would use")
	cmd.Flags().IntVar(&generate, "generate", 0, "Issue this many new tickets before listing")
	cmd.Flags().IntVar(&expiresDays, "expires-days", 0, "Validity of generated tickets in days (backend default when 0)")
	cmd.MarkFlagsMutuallyExclusive("latest", "generate")
	return cmd
}

func printTickets(cmd *cobra.Command, tickets []types.GoldenTicket) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSTATUS\tEXCURSION\tEXPIRES")
	for _, t := range tickets {
		excursion := t.ExcursionName
		if excursion == "" {
			excursion = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.TicketNumber, t.Status, excursion, formatTime(t.ExpiresAt.Time))
	}
	return w.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func newVersionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wonka-e2e %s\n", root.Version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
