package guide

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupGuideMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func guideRows(guides ...*Guide) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "equipment", "video_url", "image_url",
		"created_by", "created_at", "updated_at",
	})
	for _, g := range guides {
		rows.AddRow(g.ID, g.Title, g.Description, g.Equipment, g.VideoURL, g.ImageURL,
			g.CreatedBy, g.CreatedAt, g.UpdatedAt)
	}
	return rows
}

func TestCreateGuide(t *testing.T) {
	repo, mock, close := setupGuideMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO guides")).
		WithArgs("Bench press basics", "Setup and bar path", "bench", "https://example.com/v.mp4", "", 3).
		WillReturnRows(guideRows(&Guide{
			ID: 1, Title: "Bench press basics", Description: "Setup and bar path",
			Equipment: "bench", VideoURL: "https://example.com/v.mp4",
			CreatedBy: 3, CreatedAt: now, UpdatedAt: now,
		}))

	g, err := repo.Create(context.Background(), &Guide{
		Title: "Bench press basics", Description: "Setup and bar path",
		Equipment: "bench", VideoURL: "https://example.com/v.mp4", CreatedBy: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 1, g.ID)
	require.Equal(t, "bench", g.Equipment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGuideByID_NotFound(t *testing.T) {
	repo, mock, close := setupGuideMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM guides")).
		WithArgs(7).
		WillReturnRows(guideRows())

	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ErrGuideNotFound)
}

func TestListGuidesByEquipment(t *testing.T) {
	repo, mock, close := setupGuideMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE equipment = $1")).
		WithArgs("treadmill").
		WillReturnRows(guideRows(
			&Guide{ID: 1, Title: "Incline walking", Equipment: "treadmill", CreatedBy: 3, CreatedAt: now, UpdatedAt: now},
			&Guide{ID: 2, Title: "Interval runs", Equipment: "treadmill", CreatedBy: 3, CreatedAt: now, UpdatedAt: now},
		))

	guides, err := repo.ListByEquipment(context.Background(), "treadmill")
	require.NoError(t, err)
	require.Len(t, guides, 2)
	require.Equal(t, "Interval runs", guides[1].Title)
}

func TestUpdateGuide_NotFound(t *testing.T) {
	repo, mock, close := setupGuideMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE guides")).
		WithArgs("Title", "", "bench", "", "", 42).
		WillReturnRows(guideRows())

	_, err := repo.Update(context.Background(), 42, &Guide{Title: "Title", Equipment: "bench"})
	require.ErrorIs(t, err, ErrGuideNotFound)
}

func TestDeleteGuide_NotFound(t *testing.T) {
	repo, mock, close := setupGuideMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM guides WHERE id = $1")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	require.ErrorIs(t, err, ErrGuideNotFound)
}
