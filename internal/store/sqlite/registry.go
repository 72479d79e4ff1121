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

// itemColumns is the ordered list of columns selected in registry item
// queries. Must match the scan order in scanItem.
const itemColumns = `id, name, category, price, claimed, claimed_by, image, priority, created_at, updated_at`

// scanItem scans a sql.Row (or sql.Rows via its Scan method) into a domain.RegistryItem.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.RegistryItem, error) {
	var item domain.RegistryItem

	var (
		claimed   int
		claimedBy sql.NullString
		image     sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Price,
		&claimed,
		&claimedBy,
		&image,
		&item.Priority,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Claimed = claimed != 0
	if claimedBy.Valid {
		item.ClaimedBy = claimedBy.String
	}
	if image.Valid {
		item.Image = image.String
	}

	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// CreateItem inserts a new registry item.
func (s *Store) CreateItem(ctx context.Context, item *domain.RegistryItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registry_items (
			id, name, category, price, claimed, claimed_by, image, priority, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		string(item.Category),
		item.Price,
		boolToInt(item.Claimed),
		nullString(item.ClaimedBy),
		nullString(item.Image),
		string(item.Priority),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		return err
	}

	s.emitter.Emit(sse.NewItemCreatedEvent(item))
	return nil
}

// GetItem retrieves a registry item by ID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.RegistryItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM registry_items WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns all registry items, newest first.
func (s *Store) ListItems(ctx context.Context) ([]*domain.RegistryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM registry_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.RegistryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem overwrites an existing registry item.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *Store) UpdateItem(ctx context.Context, item *domain.RegistryItem) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE registry_items
		SET name = ?, category = ?, price = ?, claimed = ?, claimed_by = ?,
			image = ?, priority = ?, updated_at = ?
		WHERE id = ?`,
		item.Name,
		string(item.Category),
		item.Price,
		boolToInt(item.Claimed),
		nullString(item.ClaimedBy),
		nullString(item.Image),
		string(item.Priority),
		formatTime(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrItemNotFound
	}

	s.emitter.Emit(sse.NewItemUpdatedEvent(item))
	return nil
}

// DeleteItem removes a registry item.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM registry_items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrItemNotFound
	}

	s.emitter.Emit(sse.NewItemDeletedEvent(id, time.Now()))
	return nil
}
