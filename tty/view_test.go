package tty_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/linkexport"
	"github.com/fwojciec/linkexport/tty"
	"github.com/stretchr/testify/assert"
)

func TestView_ShowResults(t *testing.T) {
	t.Parallel()

	t.Run("writes one row per URL to stdout", func(t *testing.T) {
		t.Parallel()

		var out, errOut bytes.Buffer
		v := tty.NewView(&out, &errOut)

		v.ShowResults(linkexport.ResultSet{"https://a.com/", "https://b.com/"})

		assert.Equal(t, "https://a.com/\nhttps://b.com/\n", out.String())
		assert.Empty(t, errOut.String())
		assert.Equal(t, 2, v.Rows())
	})

	t.Run("empty results report no matches on stderr", func(t *testing.T) {
		t.Parallel()

		var out, errOut bytes.Buffer
		v := tty.NewView(&out, &errOut)

		v.ShowResults(linkexport.ResultSet{})

		assert.Empty(t, out.String())
		assert.Equal(t, "No matching URLs found\n", errOut.String())
	})

	t.Run("quiet view writes no rows", func(t *testing.T) {
		t.Parallel()

		var out, errOut bytes.Buffer
		v := tty.NewView(&out, &errOut, tty.WithQuiet())

		v.ShowResults(linkexport.ResultSet{"https://a.com/"})

		assert.Empty(t, out.String())
		assert.Equal(t, 1, v.Rows())
	})

	t.Run("hide results resets the row count", func(t *testing.T) {
		t.Parallel()

		v := tty.NewView(&bytes.Buffer{}, &bytes.Buffer{})
		v.ShowResults(linkexport.ResultSet{"https://a.com/"})

		v.HideResults()

		assert.Equal(t, 0, v.Rows())
	})
}

func TestView_Status(t *testing.T) {
	t.Parallel()

	t.Run("plain output without a terminal", func(t *testing.T) {
		t.Parallel()

		var out, errOut bytes.Buffer
		v := tty.NewView(&out, &errOut)

		v.Status("2 URLs copied to clipboard!", false)
		v.Status("No active tab found", true)

		assert.Equal(t, "2 URLs copied to clipboard!\nError: No active tab found\n", errOut.String())
		assert.Empty(t, out.String())
	})

	t.Run("colored output on a terminal", func(t *testing.T) {
		t.Parallel()

		var errOut bytes.Buffer
		v := tty.NewView(&bytes.Buffer{}, &errOut, tty.WithTerminal(true))

		v.Status("No active tab found", true)

		assert.Contains(t, errOut.String(), "\x1b[31m")
		assert.Contains(t, errOut.String(), "Error: No active tab found")
	})
}

func TestView_SetCount(t *testing.T) {
	t.Parallel()

	t.Run("writes the count to stderr", func(t *testing.T) {
		t.Parallel()

		var out, errOut bytes.Buffer
		v := tty.NewView(&out, &errOut)

		v.SetCount("3 URLs found")

		assert.Equal(t, "3 URLs found\n", errOut.String())
		assert.Empty(t, out.String())
	})

	t.Run("empty count writes nothing", func(t *testing.T) {
		t.Parallel()

		var errOut bytes.Buffer
		v := tty.NewView(&bytes.Buffer{}, &errOut)

		v.SetCount("")

		assert.Empty(t, errOut.String())
	})
}

func TestView_SetLoading(t *testing.T) {
	t.Parallel()

	t.Run("nothing is drawn without a terminal", func(t *testing.T) {
		t.Parallel()

		var errOut bytes.Buffer
		v := tty.NewView(&bytes.Buffer{}, &errOut)

		v.SetLoading(true)
		v.SetLoading(false)

		assert.Empty(t, errOut.String())
	})

	t.Run("terminal shows and clears the indicator in place", func(t *testing.T) {
		t.Parallel()

		var errOut bytes.Buffer
		v := tty.NewView(&bytes.Buffer{}, &errOut, tty.WithTerminal(true))

		v.SetLoading(true)
		assert.Contains(t, errOut.String(), "Extracting URLs...")

		v.SetLoading(false)
		assert.Contains(t, errOut.String(), "\r")
	})

	t.Run("status clears a visible indicator first", func(t *testing.T) {
		t.Parallel()

		var errOut bytes.Buffer
		v := tty.NewView(&bytes.Buffer{}, &errOut, tty.WithTerminal(true))
		v.SetLoading(true)
		errOut.Reset()

		v.Status("done", false)

		assert.True(t, bytes.HasPrefix(errOut.Bytes(), []byte("\r")))
	})
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, tty.IsTerminal(&bytes.Buffer{}))
}
