package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkexport"
	"github.com/fwojciec/linkexport/clipboard"
	"github.com/fwojciec/linkexport/collate"
	"github.com/fwojciec/linkexport/fs"
	"github.com/fwojciec/linkexport/goquery"
	"github.com/fwojciec/linkexport/rod"
	"github.com/fwojciec/linkexport/session"
	lxslog "github.com/fwojciec/linkexport/slog"
	"github.com/fwojciec/linkexport/sqlite"
	"github.com/fwojciec/linkexport/tty"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin provides HTML for --file - and answers to save prompts.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SettingsStore *sqlite.SettingsStore
	Session       *session.Session
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.Session = &session.Session{Logger: logger}

	// Open database first: remembered settings seed the flag defaults.
	// Without a database, extraction still runs on default settings.
	db := sqlite.NewDB(m.DBPath)
	if err := db.Open(); err != nil {
		logger.Warn("settings unavailable, using defaults",
			"path", m.DBPath,
			"hint", "set LINKEXPORT_DB to use a different database path",
			"err", err,
		)
	} else {
		m.DB = db
		defer m.Close()

		m.SettingsStore = sqlite.NewSettingsStore(db)
		m.Session.Settings = lxslog.NewLoggingSettingsStore(m.SettingsStore, logger)
	}

	form, err := m.Session.Load(ctx)
	if err != nil {
		return err
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:      ctx,
		Stdin:    m.Stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   logger,
		Settings: m.SettingsStore,
		Session:  m.Session,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkexport"),
		kong.Description("Extract, filter and export the links of a web page."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(Vars(form)),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no page specified. Run 'linkexport --help' to see available commands")
	}

	if args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if slices.ContainsFunc(args, isHelpFlag) {
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Verbose {
		level.Set(slog.LevelInfo)
	}

	// Wire command-specific dependencies based on command
	if strings.HasPrefix(kongCtx.Command(), "extract") {
		closeSource, err := m.wireExtract(&cli.Extract, deps)
		if err != nil {
			return err
		}
		defer closeSource()
	}

	return kongCtx.Run(deps)
}

// wireExtract attaches a page source, sorter and sinks to the session.
// The returned function releases the page source.
func (m *Main) wireExtract(cmd *ExtractCmd, deps *Dependencies) (func(), error) {
	comparer, err := collate.NewComparer(cmd.Locale)
	if err != nil {
		return nil, err
	}

	var source interface {
		linkexport.PageResolver
		linkexport.LinkSource
	}
	closeSource := func() {}

	if cmd.File != "" {
		doc, err := readDocument(cmd.File, cmd.URL, m.Stdin)
		if err != nil {
			return nil, err
		}
		source = doc
	} else {
		opts := []rod.Option{rod.WithTimeout(cmd.Timeout)}
		if cmd.Browser != "" {
			opts = append(opts, rod.WithControlURL(cmd.Browser))
		}
		if cmd.URL != "" {
			opts = append(opts, rod.WithTargetURL(cmd.URL))
		}
		browser, err := rod.NewBrowser(opts...)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --file")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		source = browser
		closeSource = func() { _ = browser.Close() }
	}

	var viewOpts []tty.Option
	if cmd.Quiet {
		viewOpts = append(viewOpts, tty.WithQuiet())
	}

	// OSC 52 only makes sense when a terminal is listening.
	var term io.Writer
	if tty.IsTerminal(deps.Stderr) {
		term = deps.Stderr
	}

	// Asking for a location needs an interactive stdin that is not the page.
	var prompter fs.Prompter
	if cmd.File != "-" && tty.IsTerminal(m.Stdin) {
		prompter = fs.NewLinePrompter(m.Stdin, deps.Stderr)
	}

	s := m.Session
	s.Pages = lxslog.NewLoggingPageResolver(source, deps.Logger)
	s.Links = lxslog.NewLoggingLinkSource(source, deps.Logger)
	s.Engine = linkexport.NewEngine(comparer)
	s.View = tty.NewView(deps.Stdout, deps.Stderr, viewOpts...)
	s.Clipboard = lxslog.NewLoggingClipboard(clipboard.NewClipboard(term), deps.Logger)
	s.Downloads = lxslog.NewLoggingDownloader(fs.NewDownloader(cmd.Output, prompter), deps.Logger)

	return closeSource, nil
}

// readDocument parses the HTML file at path, or stdin for "-".
func readDocument(path, pageURL string, stdin io.Reader) (*goquery.Document, error) {
	if path == "-" {
		return goquery.ReadDocument(stdin, pageURL)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, linkexport.Errorf(linkexport.EINVALID, "cannot read %s: %v", path, err)
	}
	defer f.Close()

	return goquery.ReadDocument(f, pageURL)
}

func isHelpFlag(arg string) bool {
	return arg == "--help" || arg == "-h"
}

func defaultDBPath() string {
	if path := os.Getenv("LINKEXPORT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "linkexport.db"
	}
	dir := filepath.Join(home, ".linkexport")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "linkexport.db")
}
