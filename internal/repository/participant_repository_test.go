package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tennis-academy/internal/model"
	repo "github.com/iliyamo/tennis-academy/internal/repository"
	"github.com/iliyamo/tennis-academy/internal/scheduling"
)

func TestParticipantRepoInsertMapsDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewParticipantRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_participants")).
		WithArgs(uint64(5), uint64(3), "active").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '5-3' for key 'uq_session_player'"))

	p := &model.SessionParticipant{SessionID: 5, PlayerID: 3, Status: model.ParticipantActive}
	err = r.Insert(context.Background(), p)
	require.ErrorIs(t, err, scheduling.ErrDuplicateParticipant)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepoInsertPopulatesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewParticipantRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_participants")).
		WithArgs(uint64(5), uint64(3), "active").
		WillReturnResult(sqlmock.NewResult(11, 1))

	p := &model.SessionParticipant{SessionID: 5, PlayerID: 3, Status: model.ParticipantActive}
	require.NoError(t, r.Insert(context.Background(), p))
	require.Equal(t, uint64(11), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepoFindMissingIsNilNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewParticipantRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM session_participants WHERE session_id=? AND player_id=?")).
		WithArgs(uint64(5), uint64(3)).
		WillReturnError(sql.ErrNoRows)

	p, err := r.FindBySessionAndPlayer(context.Background(), 5, 3)
	require.NoError(t, err)
	require.Nil(t, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepoUpdateWritesCancellation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewParticipantRepo(db)
	canceledAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE session_participants SET status=?, canceled_at=? WHERE id=?")).
		WithArgs("canceled", canceledAt, uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &model.SessionParticipant{ID: 11, Status: model.ParticipantCanceled, CanceledAt: &canceledAt}
	require.NoError(t, r.Update(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepoCountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewParticipantRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM session_participants WHERE session_id=? AND status=?")).
		WithArgs(uint64(5), "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := r.CountByStatus(context.Background(), 5, model.ParticipantActive)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
