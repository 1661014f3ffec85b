package publisher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"html2wp/wordpress"
)

// Resolver maps taxonomy term names to remote term ids, creating terms the
// remote listing does not have yet. Terms are resolved fresh on every run;
// nothing is cached across runs.
type Resolver struct {
	client wordpress.Client
	dryRun bool
}

func NewResolver(client wordpress.Client, dryRun bool) *Resolver {
	return &Resolver{client: client, dryRun: dryRun}
}

// Resolve returns remote ids for names, in the order supplied. The full
// remote listing is fetched once per taxonomy; names present there reuse
// their id, the rest are created one by one. Any remote fault aborts
// immediately; terms created before the fault stay on the remote service.
//
// In dry-run mode the remote service is not contacted at all and no ids
// come back, so unresolved names simply drop out of the payload.
func (r *Resolver) Resolve(ctx context.Context, taxonomy string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if r.dryRun {
		log.Info().Str("taxonomy", taxonomy).Strs("names", names).Msg("dry run: term resolution skipped")
		return nil, nil
	}

	terms, err := r.client.GetTerms(ctx, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("list %s terms: %w", taxonomy, err)
	}
	byName := make(map[string]string, len(terms))
	for _, t := range terms {
		if _, ok := byName[t.Name]; !ok {
			byName[t.Name] = t.ID
		}
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := byName[name]; ok {
			log.Debug().Str("taxonomy", taxonomy).Str("name", name).Str("term_id", id).Msg("term exists")
			ids = append(ids, id)
			continue
		}
		id, err := r.client.NewTerm(ctx, taxonomy, name)
		if err != nil {
			return nil, fmt.Errorf("create %s term %q: %w", taxonomy, name, err)
		}
		log.Info().Str("taxonomy", taxonomy).Str("name", name).Str("term_id", id).Msg("created term")
		byName[name] = id
		ids = append(ids, id)
	}
	return ids, nil
}
