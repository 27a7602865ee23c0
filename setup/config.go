package setup

import (
	"time"

	"supabase-setup/storage"
)

type Config struct {
	Title          string
	SiteURL        string
	DashboardURL   string
	DashboardHost  string
	ProjectName    string
	RegionHint     string
	ExtractTimeout time.Duration
	Clipboard      bool
	Storage        storage.Config
}
