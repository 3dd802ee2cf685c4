package domain

import "context"

//go:generate mockgen -source=interfaces.go -destination=mocks/source_mock.go -package=mocks

// Source enumerates asset files under a content root
type Source interface {
	// Root returns the content root being enumerated
	Root() string
	// Walk calls fn for every file in discovery order. A non-nil error from fn
	// stops the walk and is returned unchanged.
	Walk(ctx context.Context, fn func(AssetFile) error) error
}
