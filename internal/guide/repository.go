package guide

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrGuideNotFound = errors.New("guide not found")

type Repository interface {
	Create(ctx context.Context, g *Guide) (*Guide, error)
	GetByID(ctx context.Context, id int) (*Guide, error)
	List(ctx context.Context) ([]Guide, error)
	ListByEquipment(ctx context.Context, equipment string) ([]Guide, error)
	Update(ctx context.Context, id int, g *Guide) (*Guide, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *Guide) (*Guide, error) {
	query := `
		INSERT INTO guides (title, description, equipment, video_url, image_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, equipment, video_url, image_url, created_by, created_at, updated_at`

	var created Guide
	err := r.db.GetContext(ctx, &created, query,
		g.Title, g.Description, g.Equipment, g.VideoURL, g.ImageURL, g.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Guide, error) {
	var g Guide
	err := r.db.GetContext(ctx, &g,
		`SELECT id, title, description, equipment, video_url, image_url, created_by, created_at, updated_at
		 FROM guides WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuideNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) List(ctx context.Context) ([]Guide, error) {
	guides := []Guide{}
	err := r.db.SelectContext(ctx, &guides,
		`SELECT id, title, description, equipment, video_url, image_url, created_by, created_at, updated_at
		 FROM guides ORDER BY title`)
	if err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *repository) ListByEquipment(ctx context.Context, equipment string) ([]Guide, error) {
	guides := []Guide{}
	err := r.db.SelectContext(ctx, &guides,
		`SELECT id, title, description, equipment, video_url, image_url, created_by, created_at, updated_at
		 FROM guides WHERE equipment = $1 ORDER BY title`, equipment)
	if err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *repository) Update(ctx context.Context, id int, g *Guide) (*Guide, error) {
	query := `
		UPDATE guides
		SET title = $1, description = $2, equipment = $3, video_url = $4, image_url = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, title, description, equipment, video_url, image_url, created_by, created_at, updated_at`

	var updated Guide
	err := r.db.GetContext(ctx, &updated, query,
		g.Title, g.Description, g.Equipment, g.VideoURL, g.ImageURL, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuideNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guides WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGuideNotFound
	}
	return nil
}
