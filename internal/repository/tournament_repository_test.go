package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tennis-academy/internal/model"
	repo "github.com/iliyamo/tennis-academy/internal/repository"
)

func TestTournamentRepoRegisterMapsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewTournamentRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tournament_registrations")).
		WithArgs(uint64(3), uint64(8), nil).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '3-8' for key 'uq_player_tournament'"))

	reg := &model.TournamentRegistration{PlayerID: 3, TournamentID: 8}
	err = r.Register(context.Background(), reg)
	require.ErrorIs(t, err, repo.ErrAlreadyRegistered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTournamentRepoUnregisterReportsMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := repo.NewTournamentRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tournament_registrations")).
		WithArgs(uint64(8), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := r.Unregister(context.Background(), 8, 3)
	require.NoError(t, err)
	require.False(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
