package main

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkexport/session"
	"github.com/fwojciec/linkexport/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Settings *sqlite.SettingsStore
	Session  *session.Session
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log operations to stderr"`

	Extract  ExtractCmd  `cmd:"" default:"withargs" help:"Extract, filter and sort the links of a page (default command)"`
	Settings SettingsCmd `cmd:"" help:"Show or reset remembered filter settings"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" optional:"" help:"Page to open and extract links from. Without it, the visible page of the attached browser is used"`

	ExcludeGoogle   bool   `default:"${exclude_google}" negatable:"" help:"Exclude Google-owned hosts (remembered)"`
	ExcludeInternal bool   `help:"Exclude links to the page's own host"`
	OnlySearch      bool   `help:"Keep only URLs with a q, query, search, s or k parameter"`
	Domains         string `default:"${custom_domains}" help:"Comma-separated domains to exclude, subdomains included (remembered)"`
	HTTPOnly        bool   `name:"http-only" help:"Keep only http and https URLs"`

	File    string        `short:"f" placeholder:"PATH" help:"Read the page from an HTML file instead of a browser ('-' for stdin)"`
	Browser string        `env:"LINKEXPORT_BROWSER" placeholder:"URL" help:"DevTools address of a running browser to attach to"`
	Timeout time.Duration `default:"30s" help:"Page load and evaluation timeout"`
	Locale  string        `env:"LINKEXPORT_LOCALE" default:"und" help:"Locale used to sort the results"`

	Copy   bool   `short:"c" help:"Copy the results to the clipboard"`
	Save   bool   `short:"s" help:"Save the results to a timestamped file"`
	Output string `short:"o" default:"." type:"path" help:"Directory the results are saved to"`
	Quiet  bool   `short:"q" help:"Do not print the results"`
}

// SettingsCmd is the "settings" subcommand.
type SettingsCmd struct {
	Reset bool `help:"Restore the default settings"`
}

// Vars returns the Kong variables that seed flag defaults from the
// remembered form state.
func Vars(form session.Form) kong.Vars {
	return kong.Vars{
		"exclude_google": strconv.FormatBool(form.ExcludeGoogle),
		"custom_domains": form.CustomDomains,
	}
}

// Form returns the filter state selected by the flags.
func (c *ExtractCmd) Form() session.Form {
	return session.Form{
		ExcludeGoogle:   c.ExcludeGoogle,
		ExcludeInternal: c.ExcludeInternal,
		OnlySearch:      c.OnlySearch,
		CustomDomains:   c.Domains,
		HTTPOnly:        c.HTTPOnly,
	}
}
