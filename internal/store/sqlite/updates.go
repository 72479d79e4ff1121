package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/blossomapp/blossom-server/internal/sse"
	"github.com/blossomapp/blossom-server/internal/store"
)

const updateColumns = `id, date, title, content, image, likes, created_at`

func scanUpdate(scanner interface{ Scan(dest ...any) error }) (*domain.Update, error) {
	var u domain.Update

	var (
		image     sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Date,
		&u.Title,
		&u.Content,
		&image,
		&u.Likes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if image.Valid {
		u.Image = image.String
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUpdate inserts a new journey update along with any embedded comments.
func (s *Store) CreateUpdate(ctx context.Context, update *domain.Update) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO updates (
			id, date, title, content, image, likes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		update.ID,
		update.Date,
		update.Title,
		update.Content,
		nullString(update.Image),
		update.Likes,
		formatTime(update.CreatedAt),
	)
	if err != nil {
		return err
	}

	if err := insertUpdateComments(ctx, tx, update.ID, update.Comments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.emitter.Emit(sse.NewUpdateCreatedEvent(update))
	return nil
}

// GetUpdate retrieves a journey update and its comment thread by ID.
// Returns store.ErrUpdateNotFound if the update does not exist.
func (s *Store) GetUpdate(ctx context.Context, id string) (*domain.Update, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+updateColumns+` FROM updates WHERE id = ?`, id)

	update, err := scanUpdate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUpdateNotFound
	}
	if err != nil {
		return nil, err
	}

	comments, err := s.updateComments(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Comments = comments

	return update, nil
}

// ListUpdates returns all journey updates with comment threads, newest first.
func (s *Store) ListUpdates(ctx context.Context) ([]*domain.Update, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+updateColumns+` FROM updates ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []*domain.Update
	for rows.Next() {
		update, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT id, update_id, name, text, date, created_at
		FROM update_comments ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	byUpdate := make(map[string][]domain.Comment)
	for crows.Next() {
		c, updateID, err := scanComment(crows)
		if err != nil {
			return nil, err
		}
		byUpdate[updateID] = append(byUpdate[updateID], c)
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	for _, update := range updates {
		update.Comments = byUpdate[update.ID]
	}

	return updates, nil
}

// SaveUpdate persists modifications to an existing journey update. The
// comment thread is replaced wholesale.
func (s *Store) SaveUpdate(ctx context.Context, update *domain.Update) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE updates
		SET date = ?, title = ?, content = ?, image = ?, likes = ?
		WHERE id = ?`,
		update.Date,
		update.Title,
		update.Content,
		nullString(update.Image),
		update.Likes,
		update.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrUpdateNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM update_comments WHERE update_id = ?`, update.ID); err != nil {
		return err
	}
	if err := insertUpdateComments(ctx, tx, update.ID, update.Comments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.emitter.Emit(sse.NewUpdateUpdatedEvent(update))
	return nil
}

// DeleteUpdate removes a journey update; its comments cascade.
// Returns store.ErrUpdateNotFound if the update does not exist.
func (s *Store) DeleteUpdate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM updates WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrUpdateNotFound
	}

	s.emitter.Emit(sse.NewUpdateDeletedEvent(id, time.Now()))
	return nil
}

func (s *Store) updateComments(ctx context.Context, updateID string) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, update_id, name, text, date, created_at
		FROM update_comments WHERE update_id = ? ORDER BY created_at ASC`, updateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		c, _, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func insertUpdateComments(ctx context.Context, tx *sql.Tx, updateID string, comments []domain.Comment) error {
	for _, c := range comments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO update_comments (id, update_id, name, text, date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, updateID, c.Name, c.Text, c.Date, formatTime(c.CreatedAt),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
