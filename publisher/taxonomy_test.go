package publisher

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"html2wp/wordpress"
)

// fakeClient records every call so tests can assert exactly which remote
// operations a run performed.
type fakeClient struct {
	terms map[string][]wordpress.Term

	listCalls    []string
	createdTerms []string // "taxonomy/name"
	newPosts     []map[string]any
	edits        []map[string]any
	editedIDs    []string

	nextTermID int
	newPostID  string

	getTermsErr error
	newTermErr  error
	newPostErr  error
	editPostErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		terms:      map[string][]wordpress.Term{},
		nextTermID: 100,
		newPostID:  "501",
	}
}

func (f *fakeClient) GetTerms(_ context.Context, taxonomy string) ([]wordpress.Term, error) {
	f.listCalls = append(f.listCalls, taxonomy)
	if f.getTermsErr != nil {
		return nil, f.getTermsErr
	}
	return f.terms[taxonomy], nil
}

func (f *fakeClient) NewTerm(_ context.Context, taxonomy, name string) (string, error) {
	if f.newTermErr != nil {
		return "", f.newTermErr
	}
	f.createdTerms = append(f.createdTerms, taxonomy+"/"+name)
	f.nextTermID++
	id := strconv.Itoa(f.nextTermID)
	f.terms[taxonomy] = append(f.terms[taxonomy], wordpress.Term{ID: id, Name: name, Taxonomy: taxonomy})
	return id, nil
}

func (f *fakeClient) NewPost(_ context.Context, content map[string]any) (string, error) {
	if f.newPostErr != nil {
		return "", f.newPostErr
	}
	f.newPosts = append(f.newPosts, content)
	return f.newPostID, nil
}

func (f *fakeClient) EditPost(_ context.Context, postID string, content map[string]any) error {
	if f.editPostErr != nil {
		return f.editPostErr
	}
	f.editedIDs = append(f.editedIDs, postID)
	f.edits = append(f.edits, content)
	return nil
}

func TestResolveReusesExistingTerms(t *testing.T) {
	client := newFakeClient()
	client.terms[wordpress.TaxonomyCategory] = []wordpress.Term{
		{ID: "7", Name: "news", Taxonomy: wordpress.TaxonomyCategory},
	}

	ids, err := NewResolver(client, false).Resolve(context.Background(), wordpress.TaxonomyCategory, []string{"news"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"7"}) {
		t.Errorf("ids = %v, want [7]", ids)
	}
	if len(client.createdTerms) != 0 {
		t.Errorf("created terms %v, want none", client.createdTerms)
	}
	if len(client.listCalls) != 1 {
		t.Errorf("list calls = %v, want exactly one", client.listCalls)
	}
}

func TestResolveCreatesOnlyMissingTerms(t *testing.T) {
	client := newFakeClient()
	client.terms[wordpress.TaxonomyPostTag] = []wordpress.Term{
		{ID: "7", Name: "news", Taxonomy: wordpress.TaxonomyPostTag},
	}

	ids, err := NewResolver(client, false).Resolve(context.Background(), wordpress.TaxonomyPostTag, []string{"news", "newterm"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := []string{"7", "101"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if want := []string{"post_tag/newterm"}; !reflect.DeepEqual(client.createdTerms, want) {
		t.Errorf("created terms = %v, want %v", client.createdTerms, want)
	}
}

func TestResolveExactCaseSensitiveMatch(t *testing.T) {
	client := newFakeClient()
	client.terms[wordpress.TaxonomyCategory] = []wordpress.Term{
		{ID: "7", Name: "News", Taxonomy: wordpress.TaxonomyCategory},
	}

	_, err := NewResolver(client, false).Resolve(context.Background(), wordpress.TaxonomyCategory, []string{"news"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := []string{"category/news"}; !reflect.DeepEqual(client.createdTerms, want) {
		t.Errorf("created terms = %v, want %v (lowercase name must not match %q)", client.createdTerms, want, "News")
	}
}

func TestResolveEmptyNames(t *testing.T) {
	client := newFakeClient()
	ids, err := NewResolver(client, false).Resolve(context.Background(), wordpress.TaxonomyCategory, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want none", ids)
	}
	if len(client.listCalls) != 0 {
		t.Errorf("list calls = %v, want none for empty input", client.listCalls)
	}
}

func TestResolveDryRunContactsNothing(t *testing.T) {
	client := newFakeClient()
	ids, err := NewResolver(client, true).Resolve(context.Background(), wordpress.TaxonomyCategory, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want none in dry run", ids)
	}
	if len(client.listCalls) != 0 || len(client.createdTerms) != 0 {
		t.Errorf("dry run made remote calls: lists=%v creates=%v", client.listCalls, client.createdTerms)
	}
}

func TestResolveFaultSurfacesCodeAndMessage(t *testing.T) {
	client := newFakeClient()
	client.newTermErr = &wordpress.Fault{Code: 403, Message: "term slug collision"}

	_, err := NewResolver(client, false).Resolve(context.Background(), wordpress.TaxonomyCategory, []string{"broken"})
	if err == nil {
		t.Fatal("Resolve() succeeded, want fault")
	}
	var fault *wordpress.Fault
	if !errors.As(err, &fault) {
		t.Fatalf("error %v does not unwrap to *wordpress.Fault", err)
	}
	if fault.Code != 403 || fault.Message != "term slug collision" {
		t.Errorf("fault = %+v, want code 403 and original message", fault)
	}
}
