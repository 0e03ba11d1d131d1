package plex

import (
	"context"
)

// API defines the Plex operations used by the rest of the application
type API interface {
	// SignIn exchanges plex.tv credentials for an auth token
	SignIn(ctx context.Context, creds Credentials) (*Authentication, error)

	// GetLibrarySections lists the server's library sections
	GetLibrarySections(ctx context.Context, authToken string) (*Container, error)

	// GetLibrary lists every item in a library section
	GetLibrary(ctx context.Context, authToken, libraryID string) (*Container, error)

	// GetImage fetches an image URL and decodes it as a JSON container
	GetImage(ctx context.Context, authToken, imageURL string) (*Container, error)
}

// AccountAPI defines the plex.tv account lookups
type AccountAPI interface {
	GetAccount(ctx context.Context, authToken string) (*Account, error)
	GetFriends(ctx context.Context, authToken string) (*FriendList, error)
	GetServers(ctx context.Context, authToken string) (*ServerList, error)
}

// ImageFetcher downloads raw image bytes
type ImageFetcher interface {
	GetImageData(ctx context.Context, authToken, imageURL string) (*Image, error)
}
