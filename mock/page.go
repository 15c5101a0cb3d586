package mock

import (
	"context"

	"github.com/fwojciec/linkexport"
)

// Compile-time interface verification.
var (
	_ linkexport.PageResolver = (*PageResolver)(nil)
	_ linkexport.LinkSource   = (*LinkSource)(nil)
)

// PageResolver is a mock implementation of linkexport.PageResolver.
type PageResolver struct {
	ActivePageFn func(ctx context.Context) (*linkexport.PageHandle, error)
}

func (r *PageResolver) ActivePage(ctx context.Context) (*linkexport.PageHandle, error) {
	return r.ActivePageFn(ctx)
}

// LinkSource is a mock implementation of linkexport.LinkSource.
type LinkSource struct {
	LinksFn func(ctx context.Context, page *linkexport.PageHandle) (*linkexport.LinkSnapshot, error)
}

func (s *LinkSource) Links(ctx context.Context, page *linkexport.PageHandle) (*linkexport.LinkSnapshot, error) {
	return s.LinksFn(ctx, page)
}
