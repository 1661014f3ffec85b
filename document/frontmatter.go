package document

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

type frontMatterEnvelope struct {
	Title      string   `yaml:"title"`
	Tags       []string `yaml:"tags"`
	Categories []string `yaml:"categories"`
	// postid may have been written as a bare number, so accept anything
	// and stringify.
	PostID any `yaml:"postid"`
}

// ExtractFrontMatter reads metadata from a Markdown document's YAML front
// matter and returns the body that remains. A document without front matter
// yields default metadata and its full text as body.
func ExtractFrontMatter(text string) (Metadata, string, error) {
	var env frontMatterEnvelope
	body, err := frontmatter.Parse(strings.NewReader(text), &env)
	if err != nil {
		return Metadata{}, "", err
	}

	meta := Metadata{
		Title:      env.Title,
		Tags:       env.Tags,
		Categories: env.Categories,
	}
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if meta.Categories == nil {
		meta.Categories = []string{}
	}
	if env.PostID != nil {
		meta.PostID = strings.TrimSpace(fmt.Sprint(env.PostID))
	}
	return meta, string(body), nil
}
