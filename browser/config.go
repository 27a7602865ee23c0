package browser

import "time"

type Options struct {
	Headless          bool
	ExecPath          string
	UserAgent         string
	WindowWidth       int
	WindowHeight      int
	NavigationTimeout time.Duration
	ActionTimeout     time.Duration
	ActionsPerSecond  float64
	ActionBurst       int
	MaxActionsPerHost int
}

func (o Options) withDefaults() Options {
	if o.WindowWidth <= 0 || o.WindowHeight <= 0 {
		o.WindowWidth, o.WindowHeight = 1280, 900
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = 30 * time.Second
	}
	if o.ActionTimeout <= 0 {
		o.ActionTimeout = 10 * time.Second
	}
	if o.ActionBurst <= 0 {
		o.ActionBurst = 1
	}
	return o
}
