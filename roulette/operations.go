package roulette

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency limits concurrent library fetches
const DefaultConcurrency = 4

// ErrNoCandidates is returned when no library item matches the filter
var ErrNoCandidates = errors.New("no items match the filter")

// Operations handles library listing, search and random picks
type Operations struct {
	api         LibraryAPI
	logger      zerolog.Logger
	formatter   ItemFormatter
	concurrency int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewOperations creates a new Operations instance
func NewOperations(api LibraryAPI, logger zerolog.Logger) *Operations {
	return &Operations{
		api:         api,
		logger:      logger,
		formatter:   NewConsoleFormatter(),
		concurrency: DefaultConcurrency,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSource replaces the random source used by Spin
func (o *Operations) SetRandSource(src rand.Source) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rng = rand.New(src)
}

// SetConcurrency sets how many libraries are fetched at once
func (o *Operations) SetConcurrency(n int) {
	if n > 0 {
		o.concurrency = n
	}
}

// Formatter returns the formatter used for console output
func (o *Operations) Formatter() ItemFormatter {
	return o.formatter
}

// Sections returns the library sections of the server
func (o *Operations) Sections(ctx context.Context, token string) ([]Section, error) {
	container, err := o.api.GetLibrarySections(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get library sections: %w", err)
	}

	sections := make([]Section, 0, len(container.MediaContainer.Directory))
	for _, dir := range container.MediaContainer.Directory {
		sections = append(sections, SectionFromDirectory(dir))
	}

	return sections, nil
}

// Items returns the items of the given libraries, or of every library when
// none are given. Results keep the order of libraryIDs.
func (o *Operations) Items(ctx context.Context, token string, libraryIDs []string) ([]Item, error) {
	titles := make(map[string]string)
	ids := slices.Clone(libraryIDs)

	if len(ids) == 0 {
		sections, err := o.Sections(ctx, token)
		if err != nil {
			return nil, err
		}
		for _, s := range sections {
			ids = append(ids, s.Key)
			titles[s.Key] = s.Title
		}
	}

	results := make([][]Item, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			container, err := o.api.GetLibrary(ctx, token, id)
			if err != nil {
				return fmt.Errorf("failed to get library %s: %w", id, err)
			}

			title := container.MediaContainer.LibrarySectionTitle
			if title == "" {
				title = titles[id]
			}
			if title == "" {
				title = container.MediaContainer.Title1
			}

			items := make([]Item, 0, len(container.MediaContainer.Metadata))
			for _, meta := range container.MediaContainer.Metadata {
				items = append(items, ItemFromMetadata(meta, id, title))
			}
			results[i] = items

			o.logger.Debug().
				Str("library", id).
				Str("title", title).
				Int("items", len(items)).
				Msg("Fetched library")

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Item
	for _, items := range results {
		all = append(all, items...)
	}

	return all, nil
}

// Search returns the items of the given libraries that match the filter,
// sorted by title
func (o *Operations) Search(ctx context.Context, token string, libraryIDs []string, filterFunc func(Item) bool) ([]Item, error) {
	items, err := o.Items(ctx, token, libraryIDs)
	if err != nil {
		return nil, err
	}

	matched := applyFilter(items, filterFunc)

	sort.SliceStable(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Title) < strings.ToLower(matched[j].Title)
	})

	o.logger.Debug().
		Int("total", len(items)).
		Int("matched", len(matched)).
		Msg("Search completed")

	return matched, nil
}

// Spin picks up to opts.Count distinct random items matching opts.Filter
func (o *Operations) Spin(ctx context.Context, token string, opts SpinOptions) ([]Item, error) {
	items, err := o.Items(ctx, token, opts.LibraryIDs)
	if err != nil {
		return nil, err
	}

	candidates := applyFilter(items, opts.Filter)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	count := opts.Count
	if count < 1 {
		count = 1
	}
	if count > len(candidates) {
		count = len(candidates)
	}

	o.mu.Lock()
	perm := o.rng.Perm(len(candidates))
	o.mu.Unlock()

	picked := make([]Item, 0, count)
	for _, idx := range perm[:count] {
		picked = append(picked, candidates[idx])
	}

	o.logger.Info().
		Int("candidates", len(candidates)).
		Int("picked", len(picked)).
		Msg("Spun the roulette")

	return picked, nil
}

func applyFilter(items []Item, filterFunc func(Item) bool) []Item {
	if filterFunc == nil {
		return items
	}

	var matched []Item
	for _, item := range items {
		if filterFunc(item) {
			matched = append(matched, item)
		}
	}
	return matched
}
