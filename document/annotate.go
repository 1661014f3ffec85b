package document

import (
	"fmt"
	"os"
	"strings"
)

// Marker returns the identity line embedded into a synchronized HTML
// document so later runs recognize the remote post.
func Marker(postID string) string {
	return fmt.Sprintf("<meta name=%q content=%q>", "postid", postID)
}

// Annotate embeds the post identity into the document and rewrites the file
// in place. Runs once, right after the remote post is first created; on the
// next run the extractor finds the identity and the update path is taken
// instead, so the marker is never duplicated.
func (d *Document) Annotate(postID string) error {
	var out string
	switch d.Kind {
	case KindMarkdown:
		out = annotateFrontMatter(d.Text, postID)
	default:
		out = Marker(postID) + "\n" + d.Text
	}
	if err := os.WriteFile(d.Path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	d.Text = out
	d.Meta.PostID = postID
	return nil
}

// annotateFrontMatter records the post identity inside the YAML front
// matter block, creating one when the document has none.
func annotateFrontMatter(text, postID string) string {
	line := fmt.Sprintf("postid: %q", postID)
	if rest, ok := strings.CutPrefix(text, "---\n"); ok {
		return "---\n" + line + "\n" + rest
	}
	return "---\n" + line + "\n---\n" + text
}
