package resource

import "strings"

// Filter narrows a library search. Empty fields match everything, as does
// the value "all" for Category and Language.
type Filter struct {
	Query    string
	Category string
	Language string
}

// Store exposes resource retrieval for HTTP handlers.
type Store interface {
	List() []Resource
	FindByID(id string) (Resource, bool)
	Search(f Filter) []Resource
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Resource
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied resources.
func NewMemoryStore(items []Resource) *MemoryStore {
	return &MemoryStore{items: append([]Resource(nil), items...)}
}

// List returns every resource.
func (s *MemoryStore) List() []Resource {
	return append([]Resource(nil), s.items...)
}

// FindByID looks up a resource by identifier.
func (s *MemoryStore) FindByID(id string) (Resource, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Resource{}, false
}

// Search matches the query against title and description, case-insensitively.
func (s *MemoryStore) Search(f Filter) []Resource {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Resource, 0, len(s.items))
	for _, item := range s.items {
		if !matchesOption(item.Category, f.Category) || !matchesOption(item.Language, f.Language) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesOption(value, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return true
	}
	return strings.EqualFold(value, want)
}
