package catalog_test

import (
	"context"
	"sync"

	"forwardicons/internal/domain"
)

// fakeStore is an in-memory port.CatalogStore with switchable failures.
type fakeStore struct {
	mu         sync.Mutex
	doc        *domain.CatalogDocument
	fetchErr   error
	replaceErr error
	fetches    int
	replaces   int
}

func newFakeStore(names ...string) *fakeStore {
	doc := domain.DefaultCatalog()
	doc.Icons = icons(names...)
	return &fakeStore{doc: doc}
}

func (f *fakeStore) Fetch(context.Context) (*domain.CatalogDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.doc.Clone(), nil
}

func (f *fakeStore) Replace(_ context.Context, doc *domain.CatalogDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaces++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.doc = doc.Clone()
	return nil
}

func (f *fakeStore) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.doc.Icons))
	for _, i := range f.doc.Icons {
		out = append(out, i.Name)
	}
	return out
}
