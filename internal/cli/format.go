package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/calvinalkan/shelf/internal/book"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const (
	shortIDLen     = 8
	maxTitleWidth  = 40
	maxAuthorWidth = 24
	barWidth       = 30
	ellipsis       = "…"
)

// listing is one book and its position, as shown by ls and search.
type listing struct {
	pos  int
	book book.Book
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}

	return id[:shortIDLen]
}

func stars(rating int) string {
	rating = max(0, min(rating, book.MaxRating))

	return strings.Repeat("★", rating) + strings.Repeat("☆", book.MaxRating-rating)
}

// cell truncates s to width display columns and pads it to exactly width.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}

// formatListings renders rows with aligned columns:
//
//	#0  1b9d6bcd  Dune      Frank Herbert  Completed          ★★★★★
func formatListings(rows []listing) []string {
	posWidth, titleWidth, authorWidth, statusWidth := 0, 0, 0, 0

	for _, r := range rows {
		posWidth = max(posWidth, len(strconv.Itoa(r.pos))+1)
		titleWidth = max(titleWidth, runewidth.StringWidth(r.book.Title))
		authorWidth = max(authorWidth, runewidth.StringWidth(r.book.Author))
		statusWidth = max(statusWidth, len(r.book.Status))
	}

	titleWidth = min(titleWidth, maxTitleWidth)
	authorWidth = min(authorWidth, maxAuthorWidth)

	lines := make([]string, 0, len(rows))

	for _, r := range rows {
		line := strings.Join([]string{
			cell("#"+strconv.Itoa(r.pos), posWidth),
			shortID(r.book.ID),
			cell(r.book.Title, titleWidth),
			cell(r.book.Author, authorWidth),
			cell(string(r.book.Status), statusWidth),
			stars(r.book.Rating),
		}, "  ")

		lines = append(lines, line)
	}

	return lines
}

// formatDetails renders every field of b, one per line.
func formatDetails(pos int, b book.Book, now time.Time) []string {
	lines := []string{
		"Title:   " + b.Title,
		"Author:  " + b.Author,
		"Genre:   " + string(b.Genre),
		"Status:  " + string(b.Status),
		fmt.Sprintf("Rating:  %s (%d/%d)", stars(b.Rating), b.Rating, book.MaxRating),
		"Added:   " + b.DateAdded + addedAgo(b, now),
		"ID:      " + b.ID,
		fmt.Sprintf("Pos:     #%d", pos),
	}

	if b.Notes != "" {
		lines = append(lines, "", "Notes:")
		for _, l := range strings.Split(b.Notes, "\n") {
			lines = append(lines, "  "+l)
		}
	}

	return lines
}

func addedAgo(b book.Book, now time.Time) string {
	added, err := b.Added()
	if err != nil {
		return ""
	}

	if now.Format(book.DateLayout) == b.DateAdded {
		return " (today)"
	}

	return " (" + humanize.RelTime(added, now, "ago", "from now") + ")"
}

// bar is a horizontal bar scaled so that total fills barWidth.
func bar(value, total float64) string {
	if total <= 0 || value <= 0 {
		return ""
	}

	n := int(value/total*barWidth + 0.5)

	return strings.Repeat("█", max(n, 1))
}
