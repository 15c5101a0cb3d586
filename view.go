package linkexport

// View is the user-facing surface of an extraction session.
type View interface {
	// SetLoading shows or hides the loading indicator.
	SetLoading(loading bool)

	// ShowResults renders one row per URL, or a "no matches" row when empty.
	ShowResults(urls ResultSet)

	// HideResults clears the result region.
	HideResults()

	// SetCount replaces the result count text. Empty clears it.
	SetCount(text string)

	// ShowActions toggles the copy and save affordances.
	ShowActions(visible bool)

	// Status shows a transient message.
	Status(msg string, isError bool)
}
