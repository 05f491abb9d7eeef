package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/domain"
)

var venueRowColumns = []string{
	"id", "name", "address", "city", "country", "capacity", "type", "facilities",
	"active", "created_at", "updated_at",
}

func TestSaveVenueInsert(t *testing.T) {
	s, mock := newMock(t)
	capacity := 2000

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO venues`)).
		WithArgs("Teatro Mayor", "Av. Calle 170", "Bogotá", "Colombia", 2000,
			"theater", "", true, stamp, stamp).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	got, err := s.SaveVenue(context.Background(), domain.Venue{
		Name: "Teatro Mayor", Address: "Av. Calle 170", City: "Bogotá", Country: "Colombia",
		Capacity: &capacity, Type: "theater", Active: true, CreatedAt: stamp, UpdatedAt: stamp,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveVenueUpdateMissing(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE venues`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.SaveVenue(context.Background(), domain.Venue{ID: 9, Name: "ghost"})
	assert.ErrorIs(t, err, domain.ErrVenueNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindVenueByID(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM venues WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(venueRowColumns).
			AddRow(int64(4), "Teatro Mayor", "Av. Calle 170", "Bogotá", "Colombia", nil, "", "", true, stamp, stamp))

	got, ok, err := s.FindVenueByID(context.Background(), 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.Capacity)
	assert.Equal(t, "Bogotá", got.City)
}

func TestVenueExistsAndDelete(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1)`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM venues WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	exists, err := s.VenueExistsByID(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, s.DeleteVenueByID(context.Background(), 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListVenues(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM venues ORDER BY name ASC, id ASC`)).
		WillReturnRows(sqlmock.NewRows(venueRowColumns).
			AddRow(int64(1), "A", "a", "c", "co", int64(10), "", "", true, stamp, stamp))

	got, err := s.ListVenues(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Capacity)
	assert.Equal(t, 10, *got[0].Capacity)
}
