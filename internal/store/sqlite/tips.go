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

const tipColumns = `id, name, category, related_item, message, likes, dislikes, date, created_at`

func scanTip(scanner interface{ Scan(dest ...any) error }) (*domain.Tip, error) {
	var tip domain.Tip

	var (
		relatedItem sql.NullString
		createdAt   string
	)

	err := scanner.Scan(
		&tip.ID,
		&tip.Name,
		&tip.Category,
		&relatedItem,
		&tip.Message,
		&tip.Likes,
		&tip.Dislikes,
		&tip.Date,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if relatedItem.Valid {
		tip.RelatedItem = relatedItem.String
	}

	tip.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &tip, nil
}

func scanComment(scanner interface{ Scan(dest ...any) error }) (domain.Comment, string, error) {
	var (
		c         domain.Comment
		parentID  string
		createdAt string
	)

	err := scanner.Scan(&c.ID, &parentID, &c.Name, &c.Text, &c.Date, &createdAt)
	if err != nil {
		return c, "", err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return c, "", err
	}

	return c, parentID, nil
}

// CreateTip inserts a new tip along with any embedded comments.
func (s *Store) CreateTip(ctx context.Context, tip *domain.Tip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tips (
			id, name, category, related_item, message, likes, dislikes, date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tip.ID,
		tip.Name,
		string(tip.Category),
		nullString(tip.RelatedItem),
		tip.Message,
		tip.Likes,
		tip.Dislikes,
		tip.Date,
		formatTime(tip.CreatedAt),
	)
	if err != nil {
		return err
	}

	if err := insertTipComments(ctx, tx, tip.ID, tip.Comments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.emitter.Emit(sse.NewTipCreatedEvent(tip))
	return nil
}

// GetTip retrieves a tip and its comment thread by ID.
// Returns store.ErrTipNotFound if the tip does not exist.
func (s *Store) GetTip(ctx context.Context, id string) (*domain.Tip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tipColumns+` FROM tips WHERE id = ?`, id)

	tip, err := scanTip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTipNotFound
	}
	if err != nil {
		return nil, err
	}

	comments, err := s.tipComments(ctx, id)
	if err != nil {
		return nil, err
	}
	tip.Comments = comments

	return tip, nil
}

// ListTips returns all tips with their comment threads, newest first.
func (s *Store) ListTips(ctx context.Context) ([]*domain.Tip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tipColumns+` FROM tips ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []*domain.Tip
	for rows.Next() {
		tip, err := scanTip(rows)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach comment threads in one pass.
	crows, err := s.db.QueryContext(ctx, `
		SELECT id, tip_id, name, text, date, created_at
		FROM comments ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	byTip := make(map[string][]domain.Comment)
	for crows.Next() {
		c, tipID, err := scanComment(crows)
		if err != nil {
			return nil, err
		}
		byTip[tipID] = append(byTip[tipID], c)
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	for _, tip := range tips {
		tip.Comments = byTip[tip.ID]
	}

	return tips, nil
}

// SaveTip persists modifications to an existing tip. The comment thread
// is replaced wholesale, which keeps row state identical to the embedded
// thread the services maintain.
func (s *Store) SaveTip(ctx context.Context, tip *domain.Tip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE tips
		SET name = ?, category = ?, related_item = ?, message = ?,
			likes = ?, dislikes = ?, date = ?
		WHERE id = ?`,
		tip.Name,
		string(tip.Category),
		nullString(tip.RelatedItem),
		tip.Message,
		tip.Likes,
		tip.Dislikes,
		tip.Date,
		tip.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrTipNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE tip_id = ?`, tip.ID); err != nil {
		return err
	}
	if err := insertTipComments(ctx, tx, tip.ID, tip.Comments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.emitter.Emit(sse.NewTipUpdatedEvent(tip))
	return nil
}

// DeleteTip removes a tip; its comments cascade.
// Returns store.ErrTipNotFound if the tip does not exist.
func (s *Store) DeleteTip(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tips WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrTipNotFound
	}

	s.emitter.Emit(sse.NewTipDeletedEvent(id, time.Now()))
	return nil
}

func (s *Store) tipComments(ctx context.Context, tipID string) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tip_id, name, text, date, created_at
		FROM comments WHERE tip_id = ? ORDER BY created_at ASC`, tipID)
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

func insertTipComments(ctx context.Context, tx *sql.Tx, tipID string, comments []domain.Comment) error {
	for _, c := range comments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO comments (id, tip_id, name, text, date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, tipID, c.Name, c.Text, c.Date, formatTime(c.CreatedAt),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
