package publisher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"html2wp/document"
	"html2wp/markdown"
	"html2wp/wordpress"
)

// Action describes what a synchronization run did.
type Action int

const (
	// ActionCreated means a new remote post was created and its identity
	// written back into the document.
	ActionCreated Action = iota
	// ActionUpdated means the existing remote post was updated in place.
	ActionUpdated
	// ActionDryRun means the run completed without any mutation, remote
	// or local.
	ActionDryRun
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	case ActionDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// Result reports the outcome of one synchronization run.
type Result struct {
	Action Action
	PostID string
}

// Publisher synchronizes one local document with its remote post: resolve
// taxonomy terms, create or update the post, and on first creation record
// the new post identity back into the document.
type Publisher struct {
	client wordpress.Client
}

func New(client wordpress.Client) *Publisher {
	return &Publisher{client: client}
}

// Run performs one synchronization of doc. Remote calls happen in a fixed
// order: list categories, create missing categories, list tags, create
// missing tags, then create or update the post. The first remote fault
// aborts the run; terms already created by then are left in place.
func (p *Publisher) Run(ctx context.Context, doc *document.Document, opts Options) (Result, error) {
	resolver := NewResolver(p.client, opts.DryRun)
	categoryIDs, err := resolver.Resolve(ctx, wordpress.TaxonomyCategory, doc.Meta.Categories)
	if err != nil {
		return Result{}, err
	}
	tagIDs, err := resolver.Resolve(ctx, wordpress.TaxonomyPostTag, doc.Meta.Tags)
	if err != nil {
		return Result{}, err
	}

	content := doc.Body
	if doc.Kind == document.KindMarkdown {
		content, err = markdown.Render(doc.Body)
		if err != nil {
			return Result{}, err
		}
	}

	op := decideOperation(doc.Meta)
	payload := buildPayload(op, doc.Meta, content, categoryIDs, tagIDs, opts)

	if opts.DryRun {
		log.Info().
			Str("document", doc.Path).
			RawJSON("payload", []byte(previewJSON(payload))).
			Msg("dry run: no changes made")
		return Result{Action: ActionDryRun, PostID: op.postID}, nil
	}

	if op.update {
		log.Info().Str("post_id", op.postID).Msg("updating post")
		if err := p.client.EditPost(ctx, op.postID, payload); err != nil {
			return Result{}, fmt.Errorf("update post %s: %w", op.postID, err)
		}
		return Result{Action: ActionUpdated, PostID: op.postID}, nil
	}

	log.Info().Str("title", doc.Meta.Title).Msg("creating post")
	postID, err := p.client.NewPost(ctx, payload)
	if err != nil {
		return Result{}, fmt.Errorf("create post: %w", err)
	}
	if err := doc.Annotate(postID); err != nil {
		return Result{}, fmt.Errorf("record post id in document: %w", err)
	}
	log.Info().Str("post_id", postID).Str("document", doc.Path).Msg("created post and recorded its id")
	return Result{Action: ActionCreated, PostID: postID}, nil
}
