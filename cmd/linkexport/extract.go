package main

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	urls, err := deps.Session.Extract(deps.Ctx, c.Form())
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}

	if c.Copy {
		if err := deps.Session.Copy(deps.Ctx); err != nil {
			return err
		}
	}

	if c.Save {
		if _, err := deps.Session.Save(deps.Ctx); err != nil {
			return err
		}
	}

	return nil
}
