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

const cardColumns = `id, sender_name, message, template_id, decoration, date, created_at`

func scanCard(scanner interface{ Scan(dest ...any) error }) (*domain.Card, error) {
	var card domain.Card

	var (
		decoration sql.NullString
		createdAt  string
	)

	err := scanner.Scan(
		&card.ID,
		&card.SenderName,
		&card.Message,
		&card.TemplateID,
		&decoration,
		&card.Date,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if decoration.Valid {
		card.Decoration = decoration.String
	}

	card.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// CreateCard inserts a new well-wish card.
func (s *Store) CreateCard(ctx context.Context, card *domain.Card) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (
			id, sender_name, message, template_id, decoration, date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		card.ID,
		card.SenderName,
		card.Message,
		card.TemplateID,
		nullString(card.Decoration),
		card.Date,
		formatTime(card.CreatedAt),
	)
	if err != nil {
		return err
	}

	s.emitter.Emit(sse.NewCardCreatedEvent(card))
	return nil
}

// GetCard retrieves a card by ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *Store) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)

	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ListCards returns all cards, newest first.
func (s *Store) ListCards(ctx context.Context) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// DeleteCard removes a card from the wall.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrCardNotFound
	}

	s.emitter.Emit(sse.NewCardDeletedEvent(id, time.Now()))
	return nil
}
