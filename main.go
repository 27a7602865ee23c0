package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	log "github.com/charmbracelet/log"

	"supabase-setup/browser"
	"supabase-setup/setup"
	"supabase-setup/storage"
)

const envPrefix = "SUPABASE_SETUP"

type options struct {
	setup       setup.Config
	browser     browser.Options
	logLevel    string
	failOnError bool
}

func main() {
	code := 0
	cmd := newRootCmd(&code)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Error("supabase-setup failed", "error", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func newRootCmd(code *int) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "supabase-setup",
		Short:         "Capture Supabase project credentials through a guided browser session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			runID := uuid.NewString()
			if err := configureLogger(opts.logLevel, cmd.ErrOrStderr(), runID); err != nil {
				return err
			}
			opts.setup.Storage.RunID = runID

			*code = runSetup(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}

	f := cmd.Flags()
	f.String("config", "", "Optional config file (yaml, json or toml)")
	f.String("title", "SUPABASE PROJECT SETUP FOR HIKEATHON 2025", "Banner shown when setup starts")
	f.String("site-url", "https://supabase.com", "Supabase marketing site opened first")
	f.String("dashboard-url", "https://app.supabase.com", "Supabase dashboard URL")
	f.String("dashboard-host", "app.supabase", "Host marker that identifies the dashboard")
	f.String("env-file", ".env", "Env file written when saving credentials")
	f.String("project-name", "hikeathon-2025", "Suggested name for a new project")
	f.String("region-hint", "preferably EU", "Region suggestion for a new project")
	f.Bool("headless", false, "Run the browser without a window")
	f.String("chrome-path", "", "Chrome executable (default: autodetect)")
	f.String("user-agent", "", "User agent sent by the browser (default: Chrome's own)")
	f.Duration("nav-timeout", 30*time.Second, "Timeout for page navigation and network idle")
	f.Duration("extract-timeout", 5*time.Second, "Timeout for the API settings page to show the project URL")
	f.Float64("action-rate", 2, "Automated browser actions per second per host (0 = unlimited)")
	f.Int("action-burst", 2, "Burst of automated browser actions per host")
	f.Int("max-actions-per-host", 200, "Cap on automated browser actions per host (0 = no cap)")
	f.Bool("clipboard", false, "Offer clipboard contents when a required answer is left blank")
	f.Bool("fail-on-error", false, "Exit with status 1 when setup fails")
	f.String("log-level", "warn", "Log level (debug, info, warn, error)")
	f.String("db-host", "", "PostgreSQL host for recording captured credentials (empty disables)")
	f.Int("db-port", 5432, "PostgreSQL port")
	f.String("db-user", "postgres", "PostgreSQL user")
	f.String("db-password", "", "PostgreSQL password")
	f.String("db-name", "supabase_setup", "PostgreSQL database name")
	f.String("db-sslmode", "disable", "PostgreSQL sslmode")

	return cmd
}

func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", path)
		}
	}
	return nil
}

func loadOptions(v *viper.Viper) (options, error) {
	opts := options{
		setup: setup.Config{
			Title:          v.GetString("title"),
			SiteURL:        v.GetString("site-url"),
			DashboardURL:   v.GetString("dashboard-url"),
			DashboardHost:  v.GetString("dashboard-host"),
			ProjectName:    v.GetString("project-name"),
			RegionHint:     v.GetString("region-hint"),
			ExtractTimeout: v.GetDuration("extract-timeout"),
			Clipboard:      v.GetBool("clipboard"),
			Storage: storage.Config{
				EnvFile:    v.GetString("env-file"),
				DBHost:     v.GetString("db-host"),
				DBPort:     v.GetInt("db-port"),
				DBUser:     v.GetString("db-user"),
				DBPassword: v.GetString("db-password"),
				DBName:     v.GetString("db-name"),
				DBSSLMode:  v.GetString("db-sslmode"),
			},
		},
		browser: browser.Options{
			Headless:          v.GetBool("headless"),
			ExecPath:          v.GetString("chrome-path"),
			UserAgent:         v.GetString("user-agent"),
			NavigationTimeout: v.GetDuration("nav-timeout"),
			ActionsPerSecond:  v.GetFloat64("action-rate"),
			ActionBurst:       v.GetInt("action-burst"),
			MaxActionsPerHost: v.GetInt("max-actions-per-host"),
		},
		logLevel:    v.GetString("log-level"),
		failOnError: v.GetBool("fail-on-error"),
	}

	if strings.TrimSpace(opts.setup.SiteURL) == "" || strings.TrimSpace(opts.setup.DashboardURL) == "" {
		return opts, errors.New("site-url and dashboard-url must be set")
	}
	if strings.TrimSpace(opts.setup.Storage.EnvFile) == "" {
		return opts, errors.New("env-file must be set")
	}
	if opts.setup.ExtractTimeout <= 0 {
		return opts, errors.Newf("extract-timeout must be positive, got %s", opts.setup.ExtractTimeout)
	}
	return opts, nil
}

func configureLogger(level string, w io.Writer, runID string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "parse log level %q", level)
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	log.SetDefault(logger.With("run", runID))
	return nil
}

func runSetup(ctx context.Context, opts options, in io.Reader, out io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	launch := func(ctx context.Context) (setup.Browser, error) {
		s, err := browser.Launch(ctx, opts.browser)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	runner := setup.NewRunner(opts.setup, launch, newPrompter(in, out), out)
	creds, err := runner.Run(ctx)
	if err == nil {
		log.Debug("Setup finished", "url", creds.ProjectURL)
	}
	return exitCode(err, opts.failOnError, out)
}

func newPrompter(in io.Reader, out io.Writer) setup.Prompter {
	if f, ok := in.(*os.File); ok {
		return setup.NewPrompter(f, out)
	}
	return setup.NewLinePrompter(in, out)
}

// exitCode reports the outcome and picks the process status. Failures exit
// 0 unless failOnError is set.
func exitCode(err error, failOnError bool, out io.Writer) int {
	switch {
	case err == nil:
		setup.ReportSuccess(out)
		return 0
	case errors.Is(err, setup.ErrCancelled):
		setup.ReportCancelled(out)
		return 0
	default:
		log.Debug("Setup failed", "error", err)
		setup.ReportFailure(out, err)
		if failOnError {
			return 1
		}
		return 0
	}
}
