package postgres

import (
	"context"
	"testing"

	"giglog/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestFestivalRepoDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM festivals WHERE id = \$1`).
			WithArgs("festival-uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewFestivalRepository(db)
		require.NoError(t, repo.Delete(ctx, "festival-uuid-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM festivals WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewFestivalRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
