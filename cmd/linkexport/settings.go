package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/linkexport"
)

// Run executes the settings command.
func (c *SettingsCmd) Run(deps *Dependencies) error {
	if deps.Settings == nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set LINKEXPORT_DB to use a different database path")
		return linkexport.Errorf(linkexport.EINTERNAL, "settings database is not available")
	}

	if c.Reset {
		if err := deps.Settings.ResetSettings(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkexport.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "Settings reset to defaults.")
	}

	settings, err := deps.Settings.Settings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkexport.ErrorMessage(err))
		return err
	}

	domains := settings.CustomDomains
	if domains == "" {
		domains = "(none)"
	}

	updated := "never"
	if t, err := deps.Settings.UpdatedAt(deps.Ctx); err == nil {
		updated = t.Local().Format(time.DateTime)
	} else if linkexport.ErrorCode(err) != linkexport.ENOTFOUND {
		return err
	}

	fmt.Fprintf(deps.Stdout, "exclude-google: %t\n", settings.ExcludeGoogle)
	fmt.Fprintf(deps.Stdout, "domains:        %s\n", domains)
	fmt.Fprintf(deps.Stdout, "updated:        %s\n", updated)
	return nil
}
