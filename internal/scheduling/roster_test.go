package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// fakeParticipantStore implements ParticipantStore in memory and mimics
// the unique index on (session_id, player_id).
type fakeParticipantStore struct {
	parts  []model.SessionParticipant
	nextID uint64
}

func (f *fakeParticipantStore) FindBySessionAndPlayer(_ context.Context, sessionID, playerID uint64) (*model.SessionParticipant, error) {
	for i := range f.parts {
		if f.parts[i].SessionID == sessionID && f.parts[i].PlayerID == playerID {
			cp := f.parts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeParticipantStore) Insert(_ context.Context, p *model.SessionParticipant) error {
	for i := range f.parts {
		if f.parts[i].SessionID == p.SessionID && f.parts[i].PlayerID == p.PlayerID {
			return ErrDuplicateParticipant
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.parts = append(f.parts, *p)
	return nil
}

func (f *fakeParticipantStore) Update(_ context.Context, p *model.SessionParticipant) error {
	for i := range f.parts {
		if f.parts[i].ID == p.ID {
			f.parts[i] = *p
			return nil
		}
	}
	return errors.New("no such participant")
}

func (f *fakeParticipantStore) CountByStatus(_ context.Context, sessionID uint64, status model.ParticipantStatus) (int, error) {
	n := 0
	for i := range f.parts {
		if f.parts[i].SessionID == sessionID && f.parts[i].Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeParticipantStore) ListBySession(_ context.Context, sessionID uint64) ([]model.SessionParticipant, error) {
	var out []model.SessionParticipant
	for i := range f.parts {
		if f.parts[i].SessionID == sessionID {
			out = append(out, f.parts[i])
		}
	}
	return out, nil
}

// seedSession stores a scheduled session starting well in the future and
// returns its ID together with a roster wired to the given clock instant.
func seedRoster(t *testing.T, now time.Time, start time.Time, maxPlayers uint8) (*Roster, *fakeSessionStore, *fakeParticipantStore, uint64) {
	t.Helper()
	sessions := newFakeSessionStore()
	parts := &fakeParticipantStore{}
	sess := &model.TrainingSession{
		CourtID:    courtRef(1),
		Date:       dateOf(start.Year(), start.Month(), start.Day()),
		StartTime:  clockAt(start.Hour(), start.Minute()),
		EndTime:    clockAt(start.Hour()+1, start.Minute()),
		MaxPlayers: maxPlayers,
		Status:     model.SessionScheduled,
	}
	if err := sessions.Insert(context.Background(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	roster := NewRoster(sessions, parts, clockwork.NewFakeClockAt(now), time.UTC)
	return roster, sessions, parts, sess.ID
}

func TestAddPlayerAndCapacity(t *testing.T) {
	start := testNow.Add(72 * time.Hour)
	roster, _, _, sid := seedRoster(t, testNow, start, 4)
	ctx := context.Background()

	for player := uint64(1); player <= 4; player++ {
		p, err := roster.AddPlayer(ctx, sid, player)
		if err != nil {
			t.Fatalf("add player %d: %v", player, err)
		}
		if p.Status != model.ParticipantActive {
			t.Fatalf("expected active, got %s", p.Status)
		}
	}

	// Fifth player on a max_players=4 session is rejected.
	if _, err := roster.AddPlayer(ctx, sid, 5); !errors.Is(err, ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}
}

func TestAddPlayerDuplicate(t *testing.T) {
	start := testNow.Add(72 * time.Hour)
	roster, _, _, sid := seedRoster(t, testNow, start, 4)
	ctx := context.Background()

	if _, err := roster.AddPlayer(ctx, sid, 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := roster.AddPlayer(ctx, sid, 7); !errors.Is(err, ErrDuplicateParticipant) {
		t.Fatalf("expected ErrDuplicateParticipant, got %v", err)
	}

	// A canceled record still blocks re-adding: one record per pair.
	if _, err := roster.RemovePlayer(ctx, sid, 7, true); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := roster.AddPlayer(ctx, sid, 7); !errors.Is(err, ErrDuplicateParticipant) {
		t.Fatalf("expected ErrDuplicateParticipant after cancel, got %v", err)
	}
}

func TestAddPlayerSessionMissing(t *testing.T) {
	roster, _, _, _ := seedRoster(t, testNow, testNow.Add(72*time.Hour), 4)
	if _, err := roster.AddPlayer(context.Background(), 999, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRemovePlayerMissingIsNoop(t *testing.T) {
	roster, _, _, sid := seedRoster(t, testNow, testNow.Add(72*time.Hour), 4)
	res, err := roster.RemovePlayer(context.Background(), sid, 42, false)
	if err != nil {
		t.Fatalf("missing participant must be a no-op, got %v", err)
	}
	if res.Removed {
		t.Fatalf("nothing should have been removed")
	}
}

func TestRemovePlayerCancellationWindow(t *testing.T) {
	ctx := context.Background()

	// Session starts in 23 hours: inside the window, player cancel fails.
	start := testNow.Add(23 * time.Hour)
	roster, _, parts, sid := seedRoster(t, testNow, start, 4)
	if _, err := roster.AddPlayer(ctx, sid, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := roster.RemovePlayer(ctx, sid, 1, false); !errors.Is(err, ErrCancellationWindow) {
		t.Fatalf("expected ErrCancellationWindow, got %v", err)
	}
	p, _ := parts.FindBySessionAndPlayer(ctx, sid, 1)
	if p.Status != model.ParticipantActive {
		t.Fatalf("participant must be left unchanged on rejection")
	}

	// Staff cancels unconditionally.
	res, err := roster.RemovePlayer(ctx, sid, 1, true)
	if err != nil || !res.Removed {
		t.Fatalf("admin cancel failed: res=%+v err=%v", res, err)
	}
}

func TestRemovePlayerAtExactCutoff(t *testing.T) {
	ctx := context.Background()

	// Exactly 24 hours before the start the window is still open.
	start := testNow.Add(24 * time.Hour)
	roster, _, parts, sid := seedRoster(t, testNow, start, 4)
	if _, err := roster.AddPlayer(ctx, sid, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	res, err := roster.RemovePlayer(ctx, sid, 1, false)
	if err != nil {
		t.Fatalf("cancel at exact cutoff must succeed: %v", err)
	}
	if !res.Removed {
		t.Fatalf("expected removal")
	}
	p, _ := parts.FindBySessionAndPlayer(ctx, sid, 1)
	if p.Status != model.ParticipantCanceled || p.CanceledAt == nil {
		t.Fatalf("expected canceled with timestamp, got %+v", p)
	}
}

func TestAutoCancelOnThirdCancellation(t *testing.T) {
	ctx := context.Background()
	start := testNow.Add(72 * time.Hour)
	roster, sessions, _, sid := seedRoster(t, testNow, start, 4)

	for player := uint64(1); player <= 4; player++ {
		if _, err := roster.AddPlayer(ctx, sid, player); err != nil {
			t.Fatalf("add player %d: %v", player, err)
		}
	}

	for player := uint64(1); player <= 2; player++ {
		res, err := roster.RemovePlayer(ctx, sid, player, false)
		if err != nil {
			t.Fatalf("cancel player %d: %v", player, err)
		}
		if res.SessionCanceled {
			t.Fatalf("session canceled too early at player %d", player)
		}
	}

	// Third cancellation trips the threshold.
	res, err := roster.RemovePlayer(ctx, sid, 3, false)
	if err != nil {
		t.Fatalf("cancel player 3: %v", err)
	}
	if !res.SessionCanceled {
		t.Fatalf("expected auto-cancel on third cancellation")
	}
	sess, _ := sessions.GetByID(ctx, sid)
	if sess.Status != model.SessionCanceled {
		t.Fatalf("expected session canceled, got %s", sess.Status)
	}

	// Fourth cancellation is a state no-op for the session; the last
	// active participant is not cascaded.
	res, err = roster.RemovePlayer(ctx, sid, 4, true)
	if err != nil {
		t.Fatalf("cancel player 4: %v", err)
	}
	if res.SessionCanceled {
		t.Fatalf("already-canceled session must not report a new cancel")
	}
}

func TestAutoCancelDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	start := testNow.Add(72 * time.Hour)
	roster, _, parts, sid := seedRoster(t, testNow, start, 4)

	for player := uint64(1); player <= 4; player++ {
		if _, err := roster.AddPlayer(ctx, sid, player); err != nil {
			t.Fatalf("add player %d: %v", player, err)
		}
	}
	for player := uint64(1); player <= 3; player++ {
		if _, err := roster.RemovePlayer(ctx, sid, player, false); err != nil {
			t.Fatalf("cancel player %d: %v", player, err)
		}
	}

	p, _ := parts.FindBySessionAndPlayer(ctx, sid, 4)
	if p.Status != model.ParticipantActive {
		t.Fatalf("auto-cancel must leave remaining participants active")
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	start := testNow.Add(72 * time.Hour)
	roster, _, _, sid := seedRoster(t, testNow, start, 2)

	if _, err := roster.AddPlayer(ctx, sid, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := roster.AddPlayer(ctx, sid, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	sum, err := roster.Summary(ctx, sid)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.ActiveCount != 2 || sum.CanceledCount != 0 || !sum.IsFull || sum.IsCanceled {
		t.Fatalf("unexpected summary %+v", sum)
	}

	if _, err := roster.RemovePlayer(ctx, sid, 2, true); err != nil {
		t.Fatalf("remove: %v", err)
	}
	sum, err = roster.Summary(ctx, sid)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.ActiveCount != 1 || sum.CanceledCount != 1 || sum.IsFull {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestCancelSessionBulk(t *testing.T) {
	ctx := context.Background()
	start := testNow.Add(72 * time.Hour)
	roster, sessions, parts, sid := seedRoster(t, testNow, start, 4)

	for player := uint64(1); player <= 3; player++ {
		if _, err := roster.AddPlayer(ctx, sid, player); err != nil {
			t.Fatalf("add player %d: %v", player, err)
		}
	}

	n, err := roster.CancelSession(ctx, sid)
	if err != nil {
		t.Fatalf("cancel session: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 participants canceled, got %d", n)
	}
	sess, _ := sessions.GetByID(ctx, sid)
	if sess.Status != model.SessionCanceled {
		t.Fatalf("expected canceled session, got %s", sess.Status)
	}
	list, _ := parts.ListBySession(ctx, sid)
	for _, p := range list {
		if p.Status != model.ParticipantCanceled || p.CanceledAt == nil {
			t.Fatalf("participant %d not canceled: %+v", p.PlayerID, p)
		}
	}

	// Running it again finds nothing active.
	n, err = roster.CancelSession(ctx, sid)
	if err != nil || n != 0 {
		t.Fatalf("second bulk cancel: n=%d err=%v", n, err)
	}
}
