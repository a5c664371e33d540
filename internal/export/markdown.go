// Package export writes WordPress posts as Markdown files with YAML front
// matter, laid out by permalink for static site generators.
package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"gopkg.in/yaml.v2"

	"github.com/gauthierbraillon/wpfetch/internal/dates"
	"github.com/gauthierbraillon/wpfetch/internal/wordpress"
)

// FrontMatter is the YAML header of an exported post.
type FrontMatter struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Slug       string   `yaml:"slug"`
	Permalink  string   `yaml:"permalink"`
	ID         int      `yaml:"wordpress_id"`
	Author     string   `yaml:"author,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Image      string   `yaml:"image,omitempty"`
	ImageAlt   string   `yaml:"image_alt,omitempty"`
	Excerpt    string   `yaml:"excerpt,omitempty"`
}

// Exporter writes posts below Dir at Dir/YYYY/MM/DD/slug/index.md.
type Exporter struct {
	Dir       string
	dates     dates.Formatter
	converter *md.Converter
}

// NewExporter creates an Exporter rooted at dir. Permalink dates are computed
// in loc; a nil loc means local time.
func NewExporter(dir string, loc *time.Location) *Exporter {
	return &Exporter{
		Dir:       dir,
		dates:     dates.New(loc),
		converter: md.NewConverter("", true, nil),
	}
}

// WriteAll exports every post and returns the written paths in order. It
// stops at the first failure.
func (e *Exporter) WriteAll(posts []wordpress.Post) ([]string, error) {
	if strings.TrimSpace(e.Dir) == "" {
		return nil, fmt.Errorf("output directory must be provided")
	}

	written := make([]string, 0, len(posts))
	for _, post := range posts {
		path, err := e.Write(post)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Write exports one post and returns the path written.
func (e *Exporter) Write(post wordpress.Post) (string, error) {
	slug := strings.TrimSpace(post.Slug)
	if slug == "" || slug != filepath.Base(slug) || slug == "." || slug == ".." {
		return "", fmt.Errorf("post %d has no usable slug (%q)", post.ID, post.Slug)
	}

	doc, err := e.Render(post)
	if err != nil {
		return "", err
	}

	permalink := e.dates.PostURL(post.Date, slug)
	path := filepath.Join(e.Dir, filepath.FromSlash(permalink), "index.md")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// Render builds the Markdown document for a post without touching disk.
func (e *Exporter) Render(post wordpress.Post) ([]byte, error) {
	header, err := yaml.Marshal(e.frontMatter(post))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal front matter for %s: %w", post.Slug, err)
	}

	body, err := e.converter.ConvertString(post.Content.Rendered)
	if err != nil {
		return nil, fmt.Errorf("failed to convert content of %s: %w", post.Slug, err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(strings.TrimSpace(body))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func (e *Exporter) frontMatter(post wordpress.Post) FrontMatter {
	fm := FrontMatter{
		Title:     html.UnescapeString(post.Title.Rendered),
		Date:      post.Date,
		Slug:      post.Slug,
		Permalink: e.dates.PostURL(post.Date, post.Slug),
		ID:        post.ID,
	}

	if excerpt, err := e.converter.ConvertString(post.Excerpt.Rendered); err == nil {
		fm.Excerpt = strings.Join(strings.Fields(excerpt), " ")
	}
	if author, ok := post.Author(); ok {
		fm.Author = author.Name
	}
	if media, ok := post.FeaturedMedia(); ok {
		fm.Image = media.SourceURL
		fm.ImageAlt = media.AltText
	}
	fm.Categories = termNames(post.Categories())
	fm.Tags = termNames(post.Tags())

	return fm
}

func termNames(terms []wordpress.Term) []string {
	if len(terms) == 0 {
		return nil
	}
	names := make([]string, 0, len(terms))
	for _, term := range terms {
		names = append(names, html.UnescapeString(term.Name))
	}
	return names
}
