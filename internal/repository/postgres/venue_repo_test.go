package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"giglog/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestVenueRepository_GetByNameCityFold(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lookupName string
		lookupCity string
		mock       func(mock sqlmock.Sqlmock)
		want       *domain.Venue
		wantErr    error
	}{
		{
			name:       "found",
			lookupName: "wembley stadium",
			lookupCity: "LONDON",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "city", "slug", "image_url", "created_at", "updated_at"}).
					AddRow("venue-uuid-1", "Wembley Stadium", "London", "wembley-stadium", nil, created, created)
				mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\) AND lower\(city\) = lower\(\$2\)`).
					WithArgs("wembley stadium", "LONDON").
					WillReturnRows(rows)
			},
			want: &domain.Venue{
				ID: "venue-uuid-1", Name: "Wembley Stadium", City: "London",
				Slug: "wembley-stadium", CreatedAt: created, UpdatedAt: created,
			},
		},
		{
			name:       "not found",
			lookupName: "nowhere",
			lookupCity: "Nowhere",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\) AND lower\(city\) = lower\(\$2\)`).
					WithArgs("nowhere", "Nowhere").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewVenueRepository(db)
			got, err := repo.GetByNameCityFold(ctx, tt.lookupName, tt.lookupCity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVenueRepository_FindNameWithin(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The free text is matched against stored names, longest name first.
	rows := sqlmock.NewRows([]string{"id", "name", "city", "slug", "image_url", "created_at", "updated_at"}).
		AddRow("venue-uuid-1", "Wembley Stadium", "London", "wembley-stadium", nil, created, created)
	mock.ExpectQuery(`WHERE \$1 ILIKE '%' \|\| name \|\| '%'\s+ORDER BY length\(name\) DESC`).
		WithArgs("Wembley Stadium, London").
		WillReturnRows(rows)

	repo := NewVenueRepository(db)
	got, err := repo.FindNameWithin(ctx, "Wembley Stadium, London")
	require.NoError(t, err)
	require.Equal(t, "venue-uuid-1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
