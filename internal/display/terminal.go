// Package display provides terminal output formatting for wpfetch.
package display

import (
	"fmt"
	"html"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gauthierbraillon/wpfetch/internal/dates"
	"github.com/gauthierbraillon/wpfetch/internal/wordpress"
)

const (
	separator     = " • "
	excerptLength = 160
)

// TerminalFormatter formats posts for terminal display.
type TerminalFormatter struct {
	siteURL   string
	dates     dates.Formatter
	converter *md.Converter
	titler    cases.Caser
}

// NewTerminalFormatter creates a formatter that prints permalinks under
// siteURL and dates in loc. An empty siteURL prints bare paths; a nil loc
// means local time.
func NewTerminalFormatter(siteURL string, loc *time.Location) *TerminalFormatter {
	return &TerminalFormatter{
		siteURL:   strings.TrimRight(siteURL, "/"),
		dates:     dates.New(loc),
		converter: md.NewConverter("", true, nil),
		titler:    cases.Title(language.English),
	}
}

// FormatPost formats a single post for display.
func (f *TerminalFormatter) FormatPost(post wordpress.Post) string {
	var lines []string

	lines = append(lines, html.UnescapeString(post.Title.Rendered))

	meta := "  " + f.dates.DisplayDate(post.Date, dates.DisplayOptions{})
	if author, ok := post.Author(); ok {
		meta = "  by " + author.Name + separator + f.dates.DisplayDate(post.Date, dates.DisplayOptions{})
	}
	lines = append(lines, meta)

	lines = append(lines, "  "+f.siteURL+f.dates.PostURL(post.Date, post.Slug))

	if terms := f.formatTerms(post); terms != "" {
		lines = append(lines, "  "+terms)
	}

	if excerpt := f.PlainText(post.Excerpt.Rendered); excerpt != "" {
		lines = append(lines, "  "+f.TruncateText(excerpt, excerptLength))
	}

	return strings.Join(lines, "\n") + "\n"
}

// formatTerms renders embedded terms as "Category: A, B • Post Tag: C".
func (f *TerminalFormatter) formatTerms(post wordpress.Post) string {
	if !post.HasEmbedded() {
		return ""
	}

	var parts []string
	for _, taxonomy := range []string{wordpress.TaxonomyCategory, wordpress.TaxonomyTag} {
		terms := post.Terms(taxonomy)
		if len(terms) == 0 {
			continue
		}
		names := make([]string, 0, len(terms))
		for _, term := range terms {
			names = append(names, html.UnescapeString(term.Name))
		}
		parts = append(parts, f.TaxonomyLabel(taxonomy)+": "+strings.Join(names, ", "))
	}

	return strings.Join(parts, separator)
}

// FormatPosts formats multiple posts for display.
func (f *TerminalFormatter) FormatPosts(posts []wordpress.Post) string {
	if len(posts) == 0 {
		return "No posts found.\n"
	}

	var formatted []string
	for _, post := range posts {
		formatted = append(formatted, f.FormatPost(post))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// FormatPage formats one page of posts followed by a position summary.
func (f *TerminalFormatter) FormatPage(page wordpress.PostsPage, current int) string {
	return f.FormatPosts(page.Posts) +
		fmt.Sprintf("\nPage %d of %d (%d posts)\n", current, page.TotalPages, page.TotalPosts)
}

// TaxonomyLabel turns a taxonomy slug such as post_tag into "Post Tag".
func (f *TerminalFormatter) TaxonomyLabel(taxonomy string) string {
	return f.titler.String(strings.ReplaceAll(taxonomy, "_", " "))
}

// PlainText converts rendered HTML into a single line of text. Markdown
// emphasis is kept; HTML that cannot be converted is returned unescaped.
func (f *TerminalFormatter) PlainText(rendered string) string {
	text, err := f.converter.ConvertString(rendered)
	if err != nil {
		text = html.UnescapeString(rendered)
	}
	return strings.Join(strings.Fields(text), " ")
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
