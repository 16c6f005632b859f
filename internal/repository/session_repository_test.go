package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tennis-academy/internal/model"
	repo "github.com/iliyamo/tennis-academy/internal/repository"
)

func sessionRow(id uint64, courtID any, date time.Time, start, end string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "court_id", "date", "start_time", "end_time", "focus_area", "notes",
		"intensity", "max_players", "intended_level", "status", "created_by", "created_at", "updated_at",
	}).AddRow(id, courtID, date, start, end, "serve drills", "", 3, 4, "intermediate", "scheduled", 12, now, now)
}

func TestSessionRepoInsertPopulatesIDAndTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewSessionRepo(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO training_sessions")).
		WithArgs(nil, "2026-03-12", "10:00:00", "11:00:00", "serve drills", "", 3, 4, "intermediate", "scheduled", 12).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM training_sessions WHERE id=?")).
		WithArgs(uint64(7)).
		WillReturnRows(sessionRow(7, nil, date, "10:00:00", "11:00:00", now))

	s := &model.TrainingSession{
		Date:          date,
		StartTime:     time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(0, 1, 1, 11, 0, 0, 0, time.UTC),
		FocusArea:     "serve drills",
		Intensity:     3,
		MaxPlayers:    4,
		IntendedLevel: "intermediate",
		Status:        model.SessionScheduled,
		CreatedBy:     12,
	}
	require.NoError(t, r.Insert(context.Background(), s))
	require.Equal(t, uint64(7), s.ID)
	require.Equal(t, now, s.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepoGetByIDMissingIsNilNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewSessionRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM training_sessions WHERE id=?")).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	s, err := r.GetByID(context.Background(), 99)
	require.NoError(t, err)
	require.Nil(t, s)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepoGetByIDParsesTimeColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewSessionRepo(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM training_sessions WHERE id=?")).
		WithArgs(uint64(7)).
		WillReturnRows(sessionRow(7, int64(2), date, "10:00:00", "11:00:00", now))

	s, err := r.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, s.CourtID)
	require.Equal(t, uint64(2), *s.CourtID)
	require.Equal(t, 10, s.StartTime.Hour())
	require.Equal(t, 11, s.EndTime.Hour())
	require.Equal(t, model.SessionScheduled, s.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The overlap query binds end before start: a row overlaps the half-open
// interval [start, end) when start_time < end AND end_time > start.
func TestSessionRepoCountOverlappingArgOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewSessionRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM training_sessions")).
		WithArgs(uint64(2), "2026-03-12", uint64(9), "11:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := r.CountOverlapping(context.Background(),
		2,
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(0, 1, 1, 11, 0, 0, 0, time.UTC),
		9)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepoListPastFiltersBeforeToday(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewSessionRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE date < ?")).
		WithArgs("2026-03-10").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "court_id", "date", "start_time", "end_time", "focus_area", "notes",
			"intensity", "max_players", "intended_level", "status", "created_by", "created_at", "updated_at",
		}))

	out, err := r.List(context.Background(), "past", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepoDeleteMissingReportsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewSessionRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM training_sessions WHERE id=?")).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = r.Delete(context.Background(), 42)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
