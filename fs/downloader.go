// Package fs saves exported files to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/linkexport"
)

// Ensure Downloader implements linkexport.Downloader at compile time.
var _ linkexport.Downloader = (*Downloader)(nil)

// Prompter asks the user where to save a file.
type Prompter interface {
	// PromptPath shows the suggested path and returns the user's answer.
	// An empty answer keeps the suggestion.
	PromptPath(ctx context.Context, suggested string) (string, error)
}

// Downloader writes downloads into a directory.
// Files are written to a temporary file and renamed into place, so a
// partially written export is never visible under its final name.
type Downloader struct {
	dir      string
	prompter Prompter
}

// NewDownloader creates a Downloader saving into dir.
// A nil prompter saves to the suggested location without asking.
func NewDownloader(dir string, prompter Prompter) *Downloader {
	return &Downloader{dir: dir, prompter: prompter}
}

// Download saves d and returns the absolute path of the written file.
func (s *Downloader) Download(ctx context.Context, d *linkexport.Download) (string, error) {
	if d == nil {
		return "", linkexport.Errorf(linkexport.EINVALID, "download required")
	}
	if err := ValidateFilename(d.Filename); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, d.Filename)
	if d.SaveAs && s.prompter != nil {
		answer, err := s.prompter.PromptPath(ctx, path)
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			path = expandHome(answer)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(abs, d.Content); err != nil {
		return "", err
	}
	return abs, nil
}

// ValidateFilename rejects suggested names that are empty or would escape
// the download directory.
func ValidateFilename(name string) error {
	if name == "" {
		return linkexport.Errorf(linkexport.EINVALID, "filename required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return linkexport.Errorf(linkexport.EINVALID, "invalid filename: %q", name)
	}
	return nil
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	// Rename is atomic on the same filesystem.
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
