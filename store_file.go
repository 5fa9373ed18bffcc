package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	blogsFile        = "blogs.json"
	publicationsFile = "publications.json"
)

// fileStore persists each collection as a single pretty-printed JSON array
// file under dir, rewritten wholesale on every mutation. A mutex serializes
// mutations within the process; concurrent writers in other processes still
// race last-write-wins (documented limitation of this backend).
type fileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a Store backed by JSON files under dir, creating the
// directory if needed.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) Close(context.Context) error { return nil }

func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// writeCollection rewrites the whole file through a temp file and rename so
// an interrupted write never leaves a truncated collection behind.
func writeCollection[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *fileStore) blogsPath() string { return filepath.Join(s.dir, blogsFile) }

func (s *fileStore) publicationsPath() string { return filepath.Join(s.dir, publicationsFile) }

func (s *fileStore) ListPosts(context.Context) ([]BlogPost, error) {
	posts, err := readCollection[BlogPost](s.blogsPath())
	if err != nil {
		return nil, err
	}
	sortPosts(posts)
	return posts, nil
}

func (s *fileStore) GetPost(ctx context.Context, slug string) (BlogPost, error) {
	posts, err := readCollection[BlogPost](s.blogsPath())
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

func (s *fileStore) InsertPost(ctx context.Context, p BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts, err := readCollection[BlogPost](s.blogsPath())
	if err != nil {
		return err
	}
	for _, existing := range posts {
		if existing.Slug == p.Slug {
			return ErrDuplicateSlug
		}
	}
	posts = append(posts, p)
	return writeCollection(s.blogsPath(), posts)
}

func (s *fileStore) UpdatePost(ctx context.Context, slug string, p BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts, err := readCollection[BlogPost](s.blogsPath())
	if err != nil {
		return err
	}
	for i, existing := range posts {
		if existing.Slug == slug {
			p.Slug = slug
			posts[i] = p
			return writeCollection(s.blogsPath(), posts)
		}
	}
	return ErrNotFound
}

func (s *fileStore) DeletePost(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts, err := readCollection[BlogPost](s.blogsPath())
	if err != nil {
		return err
	}
	for i, existing := range posts {
		if existing.Slug == slug {
			posts = append(posts[:i], posts[i+1:]...)
			return writeCollection(s.blogsPath(), posts)
		}
	}
	return ErrNotFound
}

func (s *fileStore) ListPublications(context.Context) ([]Publication, error) {
	pubs, err := readCollection[Publication](s.publicationsPath())
	if err != nil {
		return nil, err
	}
	sortPublications(pubs)
	return pubs, nil
}

func (s *fileStore) GetPublication(ctx context.Context, id string) (Publication, error) {
	pubs, err := readCollection[Publication](s.publicationsPath())
	if err != nil {
		return Publication{}, err
	}
	for _, p := range pubs {
		if p.ID == id {
			return p, nil
		}
	}
	return Publication{}, ErrNotFound
}

func (s *fileStore) InsertPublication(ctx context.Context, p Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pubs, err := readCollection[Publication](s.publicationsPath())
	if err != nil {
		return err
	}
	pubs = append(pubs, p)
	return writeCollection(s.publicationsPath(), pubs)
}

func (s *fileStore) UpdatePublication(ctx context.Context, id string, p Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pubs, err := readCollection[Publication](s.publicationsPath())
	if err != nil {
		return err
	}
	for i, existing := range pubs {
		if existing.ID == id {
			p.ID = id
			pubs[i] = p
			return writeCollection(s.publicationsPath(), pubs)
		}
	}
	return ErrNotFound
}

func (s *fileStore) DeletePublication(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pubs, err := readCollection[Publication](s.publicationsPath())
	if err != nil {
		return err
	}
	for i, existing := range pubs {
		if existing.ID == id {
			pubs = append(pubs[:i], pubs[i+1:]...)
			return writeCollection(s.publicationsPath(), pubs)
		}
	}
	return ErrNotFound
}
