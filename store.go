package portfolio

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateSlug is returned when inserting a blog post whose slug is
// already taken.
var ErrDuplicateSlug = errors.New("slug already exists")

// Store is the persistence abstraction for blog posts and publications.
// Two backends implement it: a MongoDB store and a flat JSON file store.
// Exactly one is selected at startup.
type Store interface {
	ListPosts(ctx context.Context) ([]BlogPost, error)
	GetPost(ctx context.Context, slug string) (BlogPost, error)
	// InsertPost adds a new post. The caller has already assigned the slug;
	// ErrDuplicateSlug is returned if it is taken.
	InsertPost(ctx context.Context, p BlogPost) error
	// UpdatePost replaces the post stored under slug. The stored slug is
	// preserved regardless of p.Slug; identifiers are immutable.
	UpdatePost(ctx context.Context, slug string, p BlogPost) error
	DeletePost(ctx context.Context, slug string) error

	ListPublications(ctx context.Context) ([]Publication, error)
	GetPublication(ctx context.Context, id string) (Publication, error)
	InsertPublication(ctx context.Context, p Publication) error
	UpdatePublication(ctx context.Context, id string, p Publication) error
	DeletePublication(ctx context.Context, id string) error

	Close(ctx context.Context) error
}

// sortPosts orders posts newest-first by creation date.
func sortPosts(posts []BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

// sortPublications orders publications by numeric year descending, falling
// back to creation time for entries whose year does not parse.
func sortPublications(pubs []Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		yi, oki := parseYear(pubs[i].Year)
		yj, okj := parseYear(pubs[j].Year)
		switch {
		case oki && okj && yi != yj:
			return yi > yj
		case oki != okj:
			return oki
		default:
			return pubs[i].CreatedAt.After(pubs[j].CreatedAt)
		}
	})
}

func parseYear(s string) (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return y, true
}

// filterPostsByTag returns posts carrying the given tag, case-insensitively.
// An empty tag returns the input unchanged.
func filterPostsByTag(posts []BlogPost, tag string) []BlogPost {
	if tag == "" {
		return posts
	}
	want := strings.ToLower(strings.TrimSpace(tag))
	out := []BlogPost{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == want {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// listTags returns a sorted, deduplicated, lowercased slice of all tags.
func listTags(posts []BlogPost) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			if tag := strings.ToLower(strings.TrimSpace(t)); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
