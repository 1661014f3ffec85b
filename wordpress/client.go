package wordpress

import (
	"context"
	"fmt"
)

// Taxonomy kinds understood by the remote term API.
const (
	TaxonomyCategory = "category"
	TaxonomyPostTag  = "post_tag"
)

// Term is one entry in a remote taxonomy listing.
type Term struct {
	ID       string
	Name     string
	Taxonomy string
}

// Client is the surface of the remote blog API the synchronizer depends on.
type Client interface {
	GetTerms(ctx context.Context, taxonomy string) ([]Term, error)
	NewTerm(ctx context.Context, taxonomy, name string) (string, error)
	NewPost(ctx context.Context, content map[string]any) (string, error)
	EditPost(ctx context.Context, postID string, content map[string]any) error
}

// Fault is an error reported by the remote service. Code and Message carry
// the remote fault code and message exactly as received.
type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("remote fault %d: %s", f.Code, f.Message)
}
