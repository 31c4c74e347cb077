package notes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGStore implements the same contract as FileStore over a Postgres
// table. Ids and timestamps are still assigned application-side so
// both backends behave identically; insertion order is preserved by a
// sequence column.
type PGStore struct {
	db *sql.DB

	stmtGet    *sql.Stmt
	stmtUpdate *sql.Stmt
	stmtDelete *sql.Stmt
}

const pgSchema = `
	CREATE TABLE IF NOT EXISTS notes (
		seq        BIGSERIAL,
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`

func NewPGStore(ctx context.Context, db *sql.DB) (*PGStore, error) {
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		return nil, err
	}

	get, err := db.PrepareContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM notes
		WHERE id = $1
	`)
	if err != nil {
		return nil, err
	}

	upd, err := db.PrepareContext(ctx, `
		UPDATE notes
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4
		RETURNING id, title, content, created_at, updated_at
	`)
	if err != nil {
		return nil, err
	}

	del, err := db.PrepareContext(ctx, `
		DELETE FROM notes
		WHERE id = $1
		RETURNING id, title, content, created_at, updated_at
	`)
	if err != nil {
		return nil, err
	}

	return &PGStore{
		db:         db,
		stmtGet:    get,
		stmtUpdate: upd,
		stmtDelete: del,
	}, nil
}

func (s *PGStore) Close() error {
	for _, st := range []*sql.Stmt{s.stmtGet, s.stmtUpdate, s.stmtDelete} {
		if st != nil {
			_ = st.Close()
		}
	}
	return nil
}

func (s *PGStore) List(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM notes
		ORDER BY seq
	`)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	out := make([]Note, 0, 32)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, &StorageError{Op: "list", Err: err}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return out, nil
}

func (s *PGStore) Get(ctx context.Context, id string) (Note, error) {
	var n Note
	err := s.stmtGet.QueryRowContext(ctx, id).
		Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, &StorageError{Op: "get", Err: err}
	}
	return n, nil
}

func (s *PGStore) Create(ctx context.Context, title, content string) (Note, error) {
	title, content, err := validateFields(title, content)
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
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return Note{}, &StorageError{Op: "create", Err: err}
	}
	return n, nil
}

func (s *PGStore) Update(ctx context.Context, id, title, content string) (Note, error) {
	title, content, err := validateFields(title, content)
	if err != nil {
		return Note{}, err
	}

	var n Note
	err = s.stmtUpdate.QueryRowContext(ctx, title, content, time.Now().UTC(), id).
		Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, &StorageError{Op: "update", Err: err}
	}
	return n, nil
}

func (s *PGStore) Delete(ctx context.Context, id string) (Note, error) {
	var n Note
	err := s.stmtDelete.QueryRowContext(ctx, id).
		Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, &StorageError{Op: "delete", Err: err}
	}
	return n, nil
}
