package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var concertCols = []string{"id", "title", "artist", "date", "start_time", "venue", "city", "image_url", "description"}

func newMockRepo(t *testing.T) (*ConcertRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewConcertRepo(db), mock
}

func TestConcertRepoListAllAttachesTiers(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM concerts ORDER BY position, id")).
		WillReturnRows(sqlmock.NewRows(concertCols).
			AddRow("2", "Coldplay", "Coldplay", "2025-03-08", "20:00", "GBK", "Jakarta", "coldplay.jpg", "Music of the Spheres").
			AddRow("1", "RAISA Live", "Raisa", "2025-02-14", "19:00", "ICE", "BSD City", "raisa.jpg", "Konser"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM ticket_tiers ORDER BY concert_id, position, id")).
		WillReturnRows(sqlmock.NewRows([]string{"concert_id", "id", "name", "price", "description", "available"}).
			AddRow("1", "t1", "Festival", int64(350000), "Berdiri", int64(500)).
			AddRow("1", "t2", "Tribune", int64(750000), "Duduk", int64(300)).
			AddRow("2", "t5", "CAT 3", int64(450000), "Tribun atas", int64(1000)).
			AddRow("9", "t99", "Orphan", int64(1), "", int64(1)))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2", got[0].ID)
	require.Len(t, got[0].Tiers, 1)
	assert.Equal(t, "t5", got[0].Tiers[0].ID)

	assert.Equal(t, "1", got[1].ID)
	assert.Equal(t, "2025-02-14", got[1].Date)
	assert.Equal(t, "19:00", got[1].Time)
	require.Len(t, got[1].Tiers, 2)
	assert.Equal(t, []string{"t1", "t2"}, []string{got[1].Tiers[0].ID, got[1].Tiers[1].ID})
	assert.Equal(t, int64(750000), got[1].Tiers[1].Price)
	assert.Equal(t, 300, got[1].Tiers[1].Available)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM concerts WHERE id = ?")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows(concertCols).
			AddRow("1", "RAISA Live", "Raisa", "2025-02-14", "19:00", "ICE", "BSD City", "raisa.jpg", "Konser"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM ticket_tiers WHERE concert_id = ? ORDER BY position, id")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description", "available"}).
			AddRow("t3", "VIP", int64(1500000), "Premium", int64(100)).
			AddRow("t1", "Festival", int64(350000), "Berdiri", int64(500)))

	c, err := repo.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "RAISA Live", c.Title)
	require.Len(t, c.Tiers, 2)
	assert.Equal(t, "t3", c.Tiers[0].ID)
	assert.Equal(t, "t1", c.Tiers[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM concerts WHERE id = ?")).
		WithArgs("404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrConcertNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertRepoPropagatesQueryErrors(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("FROM concerts ORDER BY")).WillReturnError(boom)
	_, err := repo.ListAll(context.Background())
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery(regexp.QuoteMeta("FROM concerts WHERE id = ?")).WithArgs("1").WillReturnError(boom)
	_, err = repo.GetByID(context.Background(), "1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrConcertNotFound)
}
