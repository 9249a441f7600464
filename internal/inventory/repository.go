package inventory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrItemNotFound = errors.New("inventory item not found")

type Repository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id int) (*Item, error)
	ListAll(ctx context.Context) ([]Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, name, category, quantity, condition, notes, created_at, updated_at`

func (r *repository) Create(ctx context.Context, item *Item) (*Item, error) {
	created := &Item{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO inventory (name, category, quantity, condition, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+itemColumns+`
	`, item.Name, item.Category, item.Quantity, item.Condition, item.Notes).StructScan(created)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item, `
		SELECT `+itemColumns+`
		FROM inventory
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+itemColumns+`
		FROM inventory
		ORDER BY name ASC
	`)
	return items, err
}

func (r *repository) Update(ctx context.Context, item *Item) (*Item, error) {
	updated := &Item{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE inventory
		SET name = $1, category = $2, quantity = $3, condition = $4, notes = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+itemColumns+`
	`, item.Name, item.Category, item.Quantity, item.Condition, item.Notes, item.ID).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM inventory WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
