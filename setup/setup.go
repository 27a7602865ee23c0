package setup

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"

	log "github.com/charmbracelet/log"

	"supabase-setup/models"
	"supabase-setup/storage"
)

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=setup.go -destination=mock_browser_test.go -package=setup

const projectURLMarker = "Project URL"

// Browser is the slice of browser automation the setup flow relies on.
type Browser interface {
	Open(ctx context.Context, url string) error
	ClickByRole(ctx context.Context, role, name string) error
	Location(ctx context.Context) (string, error)
	WaitForText(ctx context.Context, text string, timeout time.Duration) error
	ReadOnlyInputValue(ctx context.Context) (string, error)
	Close() error
}

// Launcher starts a browser session. The caller owns the result and must
// close it.
type Launcher func(ctx context.Context) (Browser, error)

type Runner struct {
	cfg     Config
	launch  Launcher
	prompt  Prompter
	console *console

	readClipboard func() (string, error)
	save          func(context.Context, models.Credentials, storage.Config) error
}

func NewRunner(cfg Config, launch Launcher, prompt Prompter, out io.Writer) *Runner {
	return &Runner{
		cfg:           cfg,
		launch:        launch,
		prompt:        prompt,
		console:       newConsole(out),
		readClipboard: clipboard.ReadAll,
		save:          storage.SaveCredentials,
	}
}

// Run walks the user through signing in, picking a project and copying its
// credentials. The browser is closed on every return path.
func (r *Runner) Run(ctx context.Context) (creds models.Credentials, err error) {
	defer func() {
		if err != nil && ctx.Err() != nil && !errors.Is(err, ErrCancelled) {
			err = errors.Mark(err, ErrCancelled)
		}
	}()

	r.console.banner(r.cfg.Title)

	b, err := r.launch(ctx)
	if err != nil {
		return creds, errors.Wrap(err, "launch browser")
	}
	release := sync.OnceValue(b.Close)
	defer func() {
		if cerr := release(); cerr != nil {
			log.Warn("Failed to close browser", "error", cerr)
		}
	}()

	r.console.status("Opening Supabase website...")
	if err := b.Open(ctx, r.cfg.SiteURL); err != nil {
		return creds, errors.Wrapf(err, "open %s", r.cfg.SiteURL)
	}

	if err := r.signIn(ctx, b); err != nil {
		return creds, err
	}
	if err := r.ensureDashboard(ctx, b); err != nil {
		return creds, err
	}
	if err := r.selectProject(ctx); err != nil {
		return creds, err
	}

	creds, err = r.retrieveCredentials(ctx, b)
	if err != nil {
		return models.Credentials{}, err
	}

	r.console.banner("CREDENTIALS RETRIEVED SUCCESSFULLY!")

	if err := r.persist(ctx, creds); err != nil {
		return models.Credentials{}, err
	}

	r.summary(creds)

	if cerr := release(); cerr != nil {
		log.Warn("Failed to close browser", "error", cerr)
	}
	r.console.success("Setup complete! Browser closed.")
	return creds, nil
}

func (r *Runner) signIn(ctx context.Context, b Browser) error {
	r.console.header("STEP 1: SIGN IN TO SUPABASE")
	r.console.println("\nPlease sign in to Supabase using one of these methods:")
	r.console.println("  • GitHub (recommended)")
	r.console.println("  • Email")
	r.console.println("  • SSO")

	switch err := b.ClickByRole(ctx, "link", "Sign in"); {
	case err == nil:
		r.console.success("Redirecting to sign in page...")
	case ctx.Err() != nil:
		return ErrCancelled
	default:
		log.Debug("Sign in link unavailable", "outcome", ClassifyExtraction(err), "error", err)
		if err := b.ClickByRole(ctx, "link", "Dashboard"); err == nil {
			r.console.success("Going to dashboard...")
		} else {
			if ctx.Err() != nil {
				return ErrCancelled
			}
			log.Debug("Dashboard link unavailable", "outcome", ClassifyExtraction(err), "error", err)
			r.console.warning("Please manually click the Sign In button")
		}
	}

	return r.pause(ctx, "Press ENTER after you have signed in...")
}

func (r *Runner) ensureDashboard(ctx context.Context, b Browser) error {
	loc, err := b.Location(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ErrCancelled
		}
		log.Debug("Could not read current location", "error", err)
	}
	if strings.Contains(loc, r.cfg.DashboardHost) {
		return nil
	}

	r.console.status("Navigating to Supabase dashboard...")
	if err := b.Open(ctx, r.cfg.DashboardURL); err != nil {
		return errors.Wrapf(err, "open %s", r.cfg.DashboardURL)
	}
	return nil
}

func (r *Runner) selectProject(ctx context.Context) error {
	r.console.header("STEP 2: CREATE OR SELECT PROJECT")

	choice, err := r.prompt.Ask(ctx, "\nDo you want to:\n1. Create a NEW project\n2. Use an EXISTING project\n\nEnter choice (1 or 2): ")
	if err != nil {
		return err
	}

	if choice == "1" {
		r.console.status("Creating new project...")
		r.console.println("\nPlease follow these steps in the browser:")
		r.console.list(
			"Click 'New Project' button",
			"Project name: '"+r.cfg.ProjectName+"'",
			"Database Password: (choose a strong password)",
			"Region: Choose nearest to your location ("+r.cfg.RegionHint+")",
			"Click 'Create Project'",
		)
		r.console.println("\n⏳ This may take 1-2 minutes...")
		return r.pause(ctx, "Press ENTER after project is created...")
	}

	r.console.status("Select your existing project from the dashboard")
	return r.pause(ctx, "Press ENTER after selecting your project...")
}

func (r *Runner) retrieveCredentials(ctx context.Context, b Browser) (models.Credentials, error) {
	var creds models.Credentials

	r.console.header("STEP 3: RETRIEVE PROJECT CREDENTIALS")
	r.console.status("Now we'll get your project URL and anon key...")
	r.console.println("\nPlease navigate to:")
	r.console.list(
		"Click on 'Settings' (gear icon) in the left sidebar",
		"Click on 'API' under Configuration",
	)
	if err := r.pause(ctx, "Press ENTER when you're on the API settings page..."); err != nil {
		return creds, err
	}

	projectURL, err := r.extractProjectURL(ctx, b)
	outcome := ClassifyExtraction(err)
	if outcome == OutcomeFound && strings.TrimSpace(projectURL) == "" {
		outcome = OutcomeHidden
	}
	log.Debug("Project URL extraction", "outcome", outcome, "error", err)

	switch outcome {
	case OutcomeFound:
		creds.ProjectURL = strings.TrimSpace(projectURL)
		r.console.success("Found Project URL: " + creds.ProjectURL)
	case OutcomeHidden:
		if creds.ProjectURL, err = r.askRequired(ctx, "\n❓ Please copy and paste the Project URL here: "); err != nil {
			return creds, err
		}
	default:
		if ctx.Err() != nil {
			return creds, ErrCancelled
		}
		r.console.warning("Couldn't automatically extract credentials")
		if creds.ProjectURL, err = r.askRequired(ctx, "\n❓ Please copy and paste the Project URL here: "); err != nil {
			return creds, err
		}
		creds.AnonKey, err = r.askRequired(ctx, "\n❓ Please copy and paste the anon/public key here: ")
		return creds, err
	}

	r.console.status("Looking for anon key...")
	r.console.println("It should be under 'Project API keys' section, labeled as 'anon public'")
	creds.AnonKey, err = r.askRequired(ctx, "\n❓ Please copy and paste the anon/public key here: ")
	return creds, err
}

func (r *Runner) extractProjectURL(ctx context.Context, b Browser) (string, error) {
	if err := b.WaitForText(ctx, projectURLMarker, r.cfg.ExtractTimeout); err != nil {
		return "", err
	}
	return b.ReadOnlyInputValue(ctx)
}

func (r *Runner) persist(ctx context.Context, creds models.Credentials) error {
	name := filepath.Base(r.cfg.Storage.EnvFile)
	answer, err := r.prompt.Ask(ctx, "\n💾 Do you want to save these to "+name+" file? (y/n): ")
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		log.Debug("Skipped saving credentials", "answer", answer)
		return nil
	}

	if err := r.save(ctx, creds, r.cfg.Storage); err != nil {
		return errors.Wrap(err, "save credentials")
	}
	r.console.success("Credentials saved to " + name + " file!")
	r.console.warning("Important: Add " + name + " to .gitignore to keep credentials secure!")
	return nil
}

func (r *Runner) summary(creds models.Credentials) {
	r.console.header("SUMMARY")
	r.console.printf("\n🔗 Project URL: %s\n", creds.ProjectURL)
	r.console.printf("🔑 Anon Key: %s\n", Preview(creds.AnonKey))

	r.console.println("\n📝 Next steps:")
	r.console.list(
		"Add these credentials to your environment variables",
		"Initialize Supabase client in your Nuxt app",
		"Run database migrations",
	)
}

func (r *Runner) pause(ctx context.Context, msg string) error {
	_, err := r.prompt.Ask(ctx, "\n⏸️  "+msg)
	return err
}

// askRequired repeats prompt until it gets a non-blank answer. A blank
// answer offers the clipboard contents instead when that is enabled.
func (r *Runner) askRequired(ctx context.Context, prompt string) (string, error) {
	for {
		answer, err := r.prompt.Ask(ctx, prompt)
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
		if r.cfg.Clipboard {
			clip, err := r.fromClipboard(ctx)
			if err != nil {
				return "", err
			}
			if clip != "" {
				return clip, nil
			}
		}
		r.console.warning("A value is required.")
	}
}

// fromClipboard shows a preview of the clipboard and returns its contents
// only when the user confirms. An empty or unreadable clipboard yields "".
func (r *Runner) fromClipboard(ctx context.Context) (string, error) {
	if r.readClipboard == nil {
		return "", nil
	}
	clip, err := r.readClipboard()
	if clip = strings.TrimSpace(clip); err != nil || clip == "" {
		log.Debug("Clipboard unavailable", "error", err)
		return "", nil
	}

	answer, err := r.prompt.Ask(ctx, "Use "+Preview(clip)+" from your clipboard? (y/n): ")
	if err != nil {
		return "", err
	}
	if answer != "y" && answer != "Y" {
		return "", nil
	}
	r.console.status("Using the value from your clipboard")
	return clip, nil
}
