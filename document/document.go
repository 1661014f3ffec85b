package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultTitle is used when the document carries no title at all.
const DefaultTitle = "(No title)"

// Metadata is what the extractor pulls out of a raw document.
type Metadata struct {
	Title      string
	Tags       []string
	Categories []string
	// PostID is the remote post identity embedded by a previous run,
	// empty when the document has never been synchronized.
	PostID string
}

// Kind tells how a document's body and metadata are encoded.
type Kind int

const (
	KindHTML Kind = iota
	KindMarkdown
)

// Document is one local file to be synchronized with a remote post.
type Document struct {
	Path string
	Kind Kind
	// Text is the raw file contents as read from disk.
	Text string
	// Body is the post body source: the full text for HTML documents, the
	// front-matter-stripped body for Markdown ones.
	Body string
	Meta Metadata
}

// Load reads the document at path and extracts its metadata. Markdown files
// are recognized by extension; everything else is treated as HTML.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc := &Document{Path: path, Text: string(raw)}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc.Kind = KindMarkdown
		meta, body, err := ExtractFrontMatter(doc.Text)
		if err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
		doc.Meta = meta
		doc.Body = body
	default:
		doc.Kind = KindHTML
		doc.Meta = Extract(doc.Text)
		doc.Body = doc.Text
	}
	return doc, nil
}

// The extractor is a best-effort text scan, not a conformant HTML parse.
// On malformed or repeated tags the first match wins.
var (
	titleTagRe   = regexp.MustCompile(`(?is)<title[^>]*>\s*(.*?)\s*</title>`)
	metaTitleRe  = metaPattern(`title\b`)
	metaTagsRe   = metaPattern(`tags?\b`)
	metaCatsRe   = metaPattern(`categor(?:ies|y)\b`)
	metaPostIDRe = metaPattern(`postid\b`)
	listSepRe    = regexp.MustCompile(`[\s,;]+`)
)

func metaPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<meta\s[^>]*?name\s*=\s*["']?(?:` + name + `)["']?[^>]*?content\s*=\s*["'](.*?)["']`)
}

// Extract scans raw document text for title, tags, categories, and a
// previously embedded post identity. It is a pure function of its input.
func Extract(text string) Metadata {
	meta := Metadata{
		Title:      DefaultTitle,
		Tags:       []string{},
		Categories: []string{},
	}
	if m := titleTagRe.FindStringSubmatch(text); m != nil {
		meta.Title = strings.TrimSpace(m[1])
	} else if m := metaTitleRe.FindStringSubmatch(text); m != nil {
		meta.Title = strings.TrimSpace(m[1])
	}
	if m := metaTagsRe.FindStringSubmatch(text); m != nil {
		meta.Tags = splitList(m[1])
	}
	if m := metaCatsRe.FindStringSubmatch(text); m != nil {
		meta.Categories = splitList(m[1])
	}
	if m := metaPostIDRe.FindStringSubmatch(text); m != nil {
		meta.PostID = strings.TrimSpace(m[1])
	}
	return meta
}

// splitList breaks a meta tag value on whitespace, comma, and semicolon
// separators, keeping the original order.
func splitList(value string) []string {
	parts := listSepRe.Split(value, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
