package notes

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaabane252/Notes-app/internal/stringsx"
)

// FileStore keeps the whole collection as a pretty-printed JSON array
// in a single file. Every operation is a full read-modify-write cycle
// against that file; a mutex serializes the cycles so concurrent
// mutations cannot lose each other's writes. No state is retained
// between operations — each one re-reads the file.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

// NewFileStore opens the store at path, seeding it with sample notes
// when the file does not exist yet.
func NewFileStore(path string, log zerolog.Logger) (*FileStore, error) {
	s := &FileStore{path: path, log: log}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// seed writes the initial sample collection.
func (s *FileStore) seed() error {
	now := time.Now().UTC()
	samples := []Note{
		{
			ID:        newID(),
			Title:     "Welcome to Notes",
			Content:   "This is your first note. Edit or delete it, or create a new one.",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        newID(),
			Title:     "Things to try",
			Content:   "Create a note, change its title, then remove it again.",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.save(samples); err != nil {
		return err
	}
	s.log.Info().Str("path", s.path).Int("count", len(samples)).Msg("seeded note store")
	return nil
}

// load reads and parses the backing file. A missing file or a file
// that does not parse to a note array yields an empty collection;
// only real I/O failures are reported.
func (s *FileStore) load() ([]Note, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Note{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}

	var all []Note
	if err := json.Unmarshal(data, &all); err != nil {
		s.log.Warn().Str("path", s.path).Err(err).Msg("store file is not a valid note array, treating as empty")
		return []Note{}, nil
	}
	if all == nil {
		all = []Note{}
	}
	return all, nil
}

// save rewrites the whole file with the serialized collection.
func (s *FileStore) save(all []Note) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// List returns the persisted collection in insertion order. A
// missing, unreadable or corrupt file reads as empty rather than
// failing.
func (s *FileStore) List(ctx context.Context) ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		s.log.Warn().Str("path", s.path).Err(err).Msg("store file unreadable, returning empty collection")
		return []Note{}, nil
	}
	return all, nil
}

// Get returns the note with the given id.
func (s *FileStore) Get(ctx context.Context, id string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return Note{}, err
	}
	for _, n := range all {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, ErrNotFound
}

// Create validates the fields, appends a new note and persists the
// collection. CreatedAt and UpdatedAt start out equal.
func (s *FileStore) Create(ctx context.Context, title, content string) (Note, error) {
	title, content, err := validateFields(title, content)
	if err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return Note{}, err
	}

	now := time.Now().UTC()
	n := Note{
		ID:        newID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	all = append(all, n)
	if err := s.save(all); err != nil {
		return Note{}, err
	}

	s.log.Debug().Str("id", n.ID).Str("title", stringsx.Clip(n.Title, 40)).Msg("note created")
	return n, nil
}

// Update replaces title and content of an existing note in place and
// refreshes UpdatedAt. Id and CreatedAt are never touched.
func (s *FileStore) Update(ctx context.Context, id, title, content string) (Note, error) {
	title, content, err := validateFields(title, content)
	if err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return Note{}, err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		all[i].Title = title
		all[i].Content = content
		all[i].UpdatedAt = time.Now().UTC()
		if err := s.save(all); err != nil {
			return Note{}, err
		}
		return all[i], nil
	}
	return Note{}, ErrNotFound
}

// Delete removes the note with the given id and returns it. There is
// no tombstone and no undo.
func (s *FileStore) Delete(ctx context.Context, id string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return Note{}, err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		removed := all[i]
		all = append(all[:i], all[i+1:]...)
		if err := s.save(all); err != nil {
			return Note{}, err
		}
		return removed, nil
	}
	return Note{}, ErrNotFound
}
