package storage

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/renameio/v2"
	"github.com/joho/godotenv"

	log "github.com/charmbracelet/log"

	"supabase-setup/models"
)

const envFileMode = 0o600

// RenderEnv lays the credentials out under both the server-side and the
// NEXT_PUBLIC_ naming schemes. Values are written verbatim.
func RenderEnv(creds models.Credentials) string {
	var b strings.Builder
	b.WriteString("# Supabase Configuration\n")
	b.WriteString("SUPABASE_URL=" + creds.ProjectURL + "\n")
	b.WriteString("SUPABASE_ANON_KEY=" + creds.AnonKey + "\n")
	b.WriteString("\n")
	b.WriteString("# Add these to .env.local for production\n")
	b.WriteString("NEXT_PUBLIC_SUPABASE_URL=" + creds.ProjectURL + "\n")
	b.WriteString("NEXT_PUBLIC_SUPABASE_ANON_KEY=" + creds.AnonKey + "\n")
	return b.String()
}

// WriteEnvFile replaces path with the rendered credentials. Existing
// content is never merged.
func WriteEnvFile(path string, creds models.Credentials) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("env file path is empty")
	}

	if _, err := os.Stat(path); err == nil {
		existing, readErr := godotenv.Read(path)
		if readErr != nil {
			log.Warn("Overwriting unreadable env file", "path", path, "error", readErr)
		} else {
			log.Warn("Overwriting existing env file", "path", path, "keys", len(existing))
		}
	}

	if err := renameio.WriteFile(path, []byte(RenderEnv(creds)), envFileMode); err != nil {
		return errors.Wrapf(err, "write env file %s", path)
	}
	log.Debug("Wrote env file", "path", path)
	return nil
}
