package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/linkexport/cmd/linkexport"
	"github.com/fwojciec/linkexport/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars(main.Vars(session.Form{ExcludeGoogle: true})),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"extract", "settings"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_FlagDefaultsComeFromSettings(t *testing.T) {
	t.Parallel()

	t.Run("remembered settings seed the defaults", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli,
			kong.Exit(func(int) {}),
			kong.Vars(main.Vars(session.Form{ExcludeGoogle: false, CustomDomains: "a.com, b.com"})),
		)
		require.NoError(t, err)

		_, err = parser.Parse([]string{"extract", "https://example.com/"})

		require.NoError(t, err)
		assert.Equal(t, session.Form{ExcludeGoogle: false, CustomDomains: "a.com, b.com"}, cli.Extract.Form())
	})

	t.Run("flags override remembered settings", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli,
			kong.Exit(func(int) {}),
			kong.Vars(main.Vars(session.Form{ExcludeGoogle: true, CustomDomains: "a.com"})),
		)
		require.NoError(t, err)

		_, err = parser.Parse([]string{
			"extract", "https://example.com/",
			"--no-exclude-google", "--domains", "c.com",
			"--exclude-internal", "--only-search", "--http-only",
		})

		require.NoError(t, err)
		assert.Equal(t, session.Form{
			ExcludeGoogle:   false,
			ExcludeInternal: true,
			OnlySearch:      true,
			CustomDomains:   "c.com",
			HTTPOnly:        true,
		}, cli.Extract.Form())
	})

	t.Run("extract is the default command", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli,
			kong.Exit(func(int) {}),
			kong.Vars(main.Vars(session.Form{ExcludeGoogle: true})),
		)
		require.NoError(t, err)

		kongCtx, err := parser.Parse([]string{"https://example.com/"})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(kongCtx.Command(), "extract"))
		assert.Equal(t, "https://example.com/", cli.Extract.URL)
		assert.True(t, cli.Extract.ExcludeGoogle)
	})
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// --help should return nil (success) and show commands
	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"extract", "settings"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:", "Help should have Kong-style Usage prefix")
	assert.Contains(t, helpOutput, "Flags:", "Help should have Kong-style Flags section")
}

func TestMain_Run_NoArgsShowsHelpAndFails(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestMain_Run_CommandHelpDoesNotRun(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"extract", "--help"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "exclude-google")
	assert.Contains(t, stdout.String(), "--domains")
}

func TestMain_Run_WithoutDatabase(t *testing.T) {
	t.Parallel()

	t.Run("extract still prints results on default settings", func(t *testing.T) {
		t.Parallel()

		// Given: a database path whose parent directory does not exist
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "missing", "test.db")
		m.Stdin = strings.NewReader("")

		// When: extracting from a saved page
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{
			"extract", "--file", writeFixture(t), "https://example.com/page",
		}, stdout, stderr)

		// Then: the links are printed and the open failure is only a warning
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://alpha.org/\n")
		assert.Contains(t, stdout.String(), "https://example.com/about\n")
		assert.Contains(t, stderr.String(), "level=WARN")
		assert.Contains(t, stderr.String(), "settings unavailable")
		assert.Nil(t, m.SettingsStore)
		assert.Nil(t, m.Session.Settings)
	})

	t.Run("settings command fails", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "missing", "test.db")

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"settings"}, stdout, stderr)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "LINKEXPORT_DB")
	})
}

func TestMain_Run_RejectsStaticFlag(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), []string{
		"extract", "--static", "https://example.com/page",
	}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--static")
}
