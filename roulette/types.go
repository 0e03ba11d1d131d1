package roulette

import (
	"time"

	"github.com/s0up4200/plexroulette/plex"
)

// Section is a Plex library section
type Section struct {
	Key   string
	Title string
	Type  string
}

// Item contains the library item fields used for filtering and display
type Item struct {
	RatingKey      string
	Key            string
	Title          string
	Year           int
	Type           string
	Summary        string
	Studio         string
	ContentRating  string
	Rating         float64
	AudienceRating float64
	Genres         []string
	Directors      []string
	Thumb          string
	Duration       time.Duration
	Added          time.Time
	LastViewed     time.Time
	ViewCount      int
	Watched        bool
	// Library section the item was listed from
	LibraryID string
	Library   string
}

// SpinOptions contains options for picking random items
type SpinOptions struct {
	LibraryIDs []string
	Filter     func(Item) bool
	Count      int
}

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	ShowSummary bool
}

// SectionFromDirectory converts a Plex directory to a Section
func SectionFromDirectory(dir plex.Directory) Section {
	return Section{
		Key:   dir.Key,
		Title: dir.Title,
		Type:  dir.Type,
	}
}

// ItemFromMetadata converts Plex metadata to an Item
func ItemFromMetadata(meta plex.Metadata, libraryID, library string) Item {
	item := Item{
		RatingKey:      meta.RatingKey,
		Key:            meta.Key,
		Title:          meta.Title,
		Year:           meta.Year,
		Type:           meta.Type,
		Summary:        meta.Summary,
		Studio:         meta.Studio,
		ContentRating:  meta.ContentRating,
		Rating:         meta.Rating,
		AudienceRating: meta.AudienceRating,
		Genres:         tagNames(meta.Genre),
		Directors:      tagNames(meta.Director),
		Thumb:          meta.Thumb,
		Duration:       time.Duration(meta.Duration) * time.Millisecond,
		Added:          meta.AddedAt.Time(),
		LastViewed:     meta.LastViewedAt.Time(),
		ViewCount:      meta.ViewCount,
		LibraryID:      libraryID,
		Library:        library,
	}

	// Shows report progress through their episodes
	if meta.LeafCount > 0 {
		item.Watched = meta.ViewedLeafCount >= meta.LeafCount
	} else {
		item.Watched = meta.ViewCount > 0
	}

	return item
}

func tagNames(tags []plex.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Tag)
	}
	return names
}
