package roulette

import (
	"context"

	"github.com/s0up4200/plexroulette/plex"
)

// LibraryAPI defines the Plex calls the roulette needs
type LibraryAPI interface {
	GetLibrarySections(ctx context.Context, authToken string) (*plex.Container, error)
	GetLibrary(ctx context.Context, authToken, libraryID string) (*plex.Container, error)
}

// ItemFormatter defines the interface for formatting output
type ItemFormatter interface {
	FormatSections(sections []Section) string
	FormatItemList(items []Item, options FormatOptions) string
	FormatSpin(items []Item, options FormatOptions) string
}
