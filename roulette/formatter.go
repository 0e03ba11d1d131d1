package roulette

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides console output formatting for library items
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatSections formats library sections for console display
func (f *ConsoleFormatter) FormatSections(sections []Section) string {
	if len(sections) == 0 {
		return "No libraries found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nLibraries (%d):\n\n", len(sections))

	for i, s := range sections {
		prefix := "├"
		if i == len(sections)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── [%s] %s (%s)\n", prefix, s.Key, s.Title, s.Type)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatItemList formats a list of items for console display
func (f *ConsoleFormatter) FormatItemList(items []Item, options FormatOptions) string {
	if len(items) == 0 {
		return "No items found"
	}

	var sb strings.Builder

	sb.WriteString("\nItem")
	if len(items) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(items))

	f.formatItems(&sb, items, options)
	return sb.String()
}

// FormatSpin formats the result of a spin
func (f *ConsoleFormatter) FormatSpin(items []Item, options FormatOptions) string {
	if len(items) == 0 {
		return "Nothing to watch"
	}

	var sb strings.Builder
	if len(items) == 1 {
		sb.WriteString("\nTonight's pick:\n\n")
	} else {
		fmt.Fprintf(&sb, "\nTonight's picks (%d):\n\n", len(items))
	}

	f.formatItems(&sb, items, options)
	return sb.String()
}

func (f *ConsoleFormatter) formatItems(sb *strings.Builder, items []Item, options FormatOptions) {
	for i, item := range items {
		isLast := i == len(items)-1
		f.formatItem(sb, item, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}
	sb.WriteString("\n")
}

func (f *ConsoleFormatter) formatItem(sb *strings.Builder, item Item, isLast bool, options FormatOptions) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── %s", prefix, item.Title)
	if item.Year > 0 {
		fmt.Fprintf(sb, " (%d)", item.Year)
	}
	sb.WriteString("\n")

	if item.Library != "" {
		fmt.Fprintf(sb, "%sLibrary: %s\n", indent, item.Library)
	}

	if !options.ShowDetails {
		return
	}

	var infoParts []string
	if item.Duration > 0 {
		infoParts = append(infoParts, fmt.Sprintf("%d min", int(item.Duration.Minutes())))
	}
	if item.ContentRating != "" {
		infoParts = append(infoParts, item.ContentRating)
	}
	if item.Rating > 0 {
		infoParts = append(infoParts, fmt.Sprintf("Rating: %.1f", item.Rating))
	}
	if item.AudienceRating > 0 {
		infoParts = append(infoParts, fmt.Sprintf("Audience: %.1f", item.AudienceRating))
	}
	if len(infoParts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(infoParts, " | "))
	}

	if len(item.Genres) > 0 {
		fmt.Fprintf(sb, "%sGenres: %s\n", indent, strings.Join(item.Genres, ", "))
	}
	if len(item.Directors) > 0 {
		fmt.Fprintf(sb, "%sDirected by: %s\n", indent, strings.Join(item.Directors, ", "))
	}

	if !item.Added.IsZero() {
		fmt.Fprintf(sb, "%sAdded: %s\n", indent, item.Added.Format("2006-01-02"))
	}

	if item.ViewCount > 0 {
		watchInfo := fmt.Sprintf("Watched %dx", item.ViewCount)
		if !item.LastViewed.IsZero() {
			watchInfo += fmt.Sprintf(" (last: %s)", item.LastViewed.Format("2006-01-02"))
		}
		fmt.Fprintf(sb, "%s%s\n", indent, watchInfo)
	} else if item.Watched {
		fmt.Fprintf(sb, "%sWatched\n", indent)
	} else {
		fmt.Fprintf(sb, "%sUnwatched\n", indent)
	}

	if options.ShowSummary && item.Summary != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, item.Summary)
	}
}
