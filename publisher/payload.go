package publisher

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"html2wp/document"
)

// Comment statuses accepted by the remote service.
const (
	CommentStatusOpen   = "open"
	CommentStatusClosed = "closed"
)

// Timestamp format the remote XML-RPC API expects for post_date.
const wpTimeFormat = "20060102T15:04:05"

// Attribute is one caller-supplied post field, merged into the payload
// after every computed field.
type Attribute struct {
	Key   string
	Value any
}

// Options carries the caller-controlled settings for one run. At most one
// of Publish and Schedule may be set; the CLI enforces this before the
// core is invoked.
type Options struct {
	Publish       bool
	Schedule      *time.Time
	CommentStatus string
	// Excerpt is sent as post_excerpt when non-empty.
	Excerpt string
	// Extra attributes override any computed field, last write wins.
	Extra  []Attribute
	DryRun bool
}

// operation selects the create or update path for a run.
type operation struct {
	update bool
	postID string
}

func decideOperation(meta document.Metadata) operation {
	if meta.PostID != "" {
		return operation{update: true, postID: meta.PostID}
	}
	return operation{}
}

// buildPayload assembles the content struct for wp.newPost/wp.editPost.
// Assembly order is fixed: computed defaults, then status/date, then the
// excerpt, then caller extras last. Later entries override earlier ones on
// key collision.
//
// On update, post_status and post_date are only sent when the caller asked
// for them; title, content, terms, and comment status are always sent.
func buildPayload(op operation, meta document.Metadata, content string, categoryIDs, tagIDs []string, opts Options) map[string]any {
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	if tagIDs == nil {
		tagIDs = []string{}
	}
	payload := map[string]any{
		"post_title":     meta.Title,
		"post_content":   content,
		"comment_status": opts.CommentStatus,
		"terms": map[string]any{
			"category": categoryIDs,
			"post_tag": tagIDs,
		},
	}
	switch {
	case opts.Schedule != nil:
		payload["post_status"] = "publish"
		payload["post_date"] = opts.Schedule.Format(wpTimeFormat)
	case opts.Publish:
		payload["post_status"] = "publish"
	case !op.update:
		payload["post_status"] = "draft"
	}
	if opts.Excerpt != "" {
		payload["post_excerpt"] = opts.Excerpt
	}
	for _, attr := range opts.Extra {
		payload[attr.Key] = attr.Value
	}
	return payload
}

// ParseAttributes decodes a JSON object of extra post fields, preserving
// the order keys appear in so the last-write-wins merge stays exact.
func ParseAttributes(raw string) ([]Attribute, error) {
	if raw == "" {
		return nil, nil
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("extra attributes: invalid JSON")
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("extra attributes: expected a JSON object")
	}
	var attrs []Attribute
	parsed.ForEach(func(key, value gjson.Result) bool {
		attrs = append(attrs, Attribute{Key: key.String(), Value: value.Value()})
		return true
	})
	return attrs, nil
}

// previewJSON renders the would-be payload with stable key order for the
// dry-run report.
func previewJSON(payload map[string]any) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := "{}"
	for _, k := range keys {
		// Dots in keys would otherwise be taken as nesting paths.
		path := strings.ReplaceAll(k, ".", `\.`)
		out, _ = sjson.Set(out, path, payload[k])
	}
	return out
}
