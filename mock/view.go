package mock

import "github.com/fwojciec/linkexport"

var _ linkexport.View = (*View)(nil)

// View is a mock implementation of linkexport.View.
type View struct {
	SetLoadingFn  func(loading bool)
	ShowResultsFn func(urls linkexport.ResultSet)
	HideResultsFn func()
	SetCountFn    func(text string)
	ShowActionsFn func(visible bool)
	StatusFn      func(msg string, isError bool)
}

func (v *View) SetLoading(loading bool) {
	v.SetLoadingFn(loading)
}

func (v *View) ShowResults(urls linkexport.ResultSet) {
	v.ShowResultsFn(urls)
}

func (v *View) HideResults() {
	v.HideResultsFn()
}

func (v *View) SetCount(text string) {
	v.SetCountFn(text)
}

func (v *View) ShowActions(visible bool) {
	v.ShowActionsFn(visible)
}

func (v *View) Status(msg string, isError bool) {
	v.StatusFn(msg, isError)
}
