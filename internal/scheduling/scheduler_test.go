package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// clockAt builds a time-of-day value the way the repositories do when
// scanning TIME columns: only the clock part is meaningful.
func clockAt(hour, min int) time.Time {
	return time.Date(2000, 1, 1, hour, min, 0, 0, time.UTC)
}

func dateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// fakeSessionStore implements SessionStore and SessionAccess in memory.
type fakeSessionStore struct {
	sessions map[uint64]*model.TrainingSession
	nextID   uint64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[uint64]*model.TrainingSession{}}
}

func (f *fakeSessionStore) Insert(_ context.Context, s *model.TrainingSession) error {
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionStore) Update(_ context.Context, s *model.TrainingSession) error {
	if _, ok := f.sessions[s.ID]; !ok {
		return errors.New("no such session")
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionStore) CountOverlapping(_ context.Context, courtID uint64, date, start, end time.Time, excludeID uint64) (int, error) {
	n := 0
	for _, s := range f.sessions {
		if s.ID == excludeID || s.CourtID == nil || *s.CourtID != courtID {
			continue
		}
		if !s.Date.Equal(date) {
			continue
		}
		if s.StartTime.Before(end) && s.EndTime.After(start) {
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uint64) (*model.TrainingSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) UpdateStatus(_ context.Context, id uint64, status model.SessionStatus) error {
	s, ok := f.sessions[id]
	if !ok {
		return errors.New("no such session")
	}
	s.Status = status
	return nil
}

// testNow is the reference instant for scheduler tests: midday on a fixed
// date, so both future and past slots on nearby dates are easy to build.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestScheduler(store *fakeSessionStore) *Scheduler {
	return NewScheduler(store, clockwork.NewFakeClockAt(testNow), time.UTC)
}

func courtRef(id uint64) *uint64 { return &id }

func futureSession() *model.TrainingSession {
	return &model.TrainingSession{
		CourtID:    courtRef(1),
		Date:       dateOf(2026, 3, 11),
		StartTime:  clockAt(10, 0),
		FocusArea:  "baseline rallies",
		Intensity:  5,
		MaxPlayers: 4,
	}
}

func TestSaveDerivesEndTime(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	sess := futureSession()
	if err := sched.Save(context.Background(), sess, true); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := sess.EndTime.Format("15:04"); got != "11:00" {
		t.Fatalf("expected end 11:00, got %s", got)
	}
	if sess.Status != model.SessionScheduled {
		t.Fatalf("expected scheduled, got %s", sess.Status)
	}
}

func TestSaveOverwritesCallerEndTime(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	sess := futureSession()
	sess.EndTime = clockAt(14, 0) // must not be trusted
	if err := sched.Save(context.Background(), sess, true); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := sess.EndTime.Format("15:04"); got != "11:00" {
		t.Fatalf("expected end recomputed to 11:00, got %s", got)
	}
}

func TestSaveClampsMaxPlayers(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	sess := futureSession()
	sess.MaxPlayers = 9
	if err := sched.Save(context.Background(), sess, true); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if sess.MaxPlayers != model.MaxPlayersCap {
		t.Fatalf("expected max_players clamped to %d, got %d", model.MaxPlayersCap, sess.MaxPlayers)
	}

	sess2 := futureSession()
	sess2.StartTime = clockAt(12, 0)
	sess2.MaxPlayers = 0
	if err := sched.Save(context.Background(), sess2, true); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if sess2.MaxPlayers != 1 {
		t.Fatalf("expected max_players raised to 1, got %d", sess2.MaxPlayers)
	}
}

func TestSaveRejectsPastBooking(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	sess := futureSession()
	sess.Date = dateOf(2026, 3, 10)
	sess.StartTime = clockAt(9, 0) // testNow is 12:00 the same day
	err := sched.Save(context.Background(), sess, true)
	if !errors.Is(err, ErrPastBooking) {
		t.Fatalf("expected ErrPastBooking, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("rejected save must not persist")
	}
}

func TestSaveAllowsPastOnUpdate(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	sess := futureSession()
	if err := sched.Save(context.Background(), sess, true); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	// Move the clock past the session end and re-save: the past-booking
	// check applies only to inserts and the status flips to completed.
	late := NewScheduler(store, clockwork.NewFakeClockAt(testNow.Add(48*time.Hour)), time.UTC)
	if err := late.Save(context.Background(), sess, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if sess.Status != model.SessionCompleted {
		t.Fatalf("expected auto-complete, got %s", sess.Status)
	}
}

func TestSaveRejectsOutOfHours(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	for _, start := range []time.Time{clockAt(7, 0), clockAt(22, 0), clockAt(23, 30)} {
		sess := futureSession()
		sess.StartTime = start
		err := sched.Save(context.Background(), sess, true)
		if !errors.Is(err, ErrOutOfHours) {
			t.Fatalf("start %s: expected ErrOutOfHours, got %v", start.Format("15:04"), err)
		}
	}
}

func TestSaveRejectsCappedHalfSlot(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	// 21:30 derives a capped end of 22:00, a 30-minute slot, which the
	// duration rule rejects.  The last bookable start is 21:00.
	sess := futureSession()
	sess.StartTime = clockAt(21, 30)
	err := sched.Save(context.Background(), sess, true)
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	last := futureSession()
	last.StartTime = clockAt(21, 0)
	if err := sched.Save(context.Background(), last, true); err != nil {
		t.Fatalf("21:00 slot should book: %v", err)
	}
	if got := last.EndTime.Format("15:04"); got != "22:00" {
		t.Fatalf("expected end 22:00, got %s", got)
	}
}

func TestSaveRejectsOverlap(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	first := futureSession()
	if err := sched.Save(context.Background(), first, true); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	same := futureSession()
	err := sched.Save(context.Background(), same, true)
	if !errors.Is(err, ErrCourtOverlap) {
		t.Fatalf("expected ErrCourtOverlap, got %v", err)
	}

	// Adjacent slot on the same court is fine: intervals are half-open.
	next := futureSession()
	next.StartTime = clockAt(11, 0)
	if err := sched.Save(context.Background(), next, true); err != nil {
		t.Fatalf("adjacent slot rejected: %v", err)
	}

	// Same slot on another court is fine too.
	other := futureSession()
	other.CourtID = courtRef(2)
	if err := sched.Save(context.Background(), other, true); err != nil {
		t.Fatalf("other court rejected: %v", err)
	}
}

func TestSaveExcludesSelfFromOverlapOnUpdate(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	sess := futureSession()
	if err := sched.Save(context.Background(), sess, true); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}
	sess.Notes = "bring extra balls"
	if err := sched.Save(context.Background(), sess, false); err != nil {
		t.Fatalf("re-saving the same session must not conflict with itself: %v", err)
	}
}

func TestSaveSkipsOverlapWithoutCourt(t *testing.T) {
	store := newFakeSessionStore()
	sched := newTestScheduler(store)

	sess := futureSession()
	sess.CourtID = nil
	if err := sched.Save(context.Background(), sess, true); err != nil {
		t.Fatalf("courtless session should save: %v", err)
	}
}

func TestSaveAutoCompletesElapsedSession(t *testing.T) {
	store := newFakeSessionStore()

	sess := futureSession()
	sched := newTestScheduler(store)
	if err := sched.Save(context.Background(), sess, true); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	// A save at exactly the session end already counts as elapsed.
	atEnd := sess.EndAt(time.UTC)
	sched2 := NewScheduler(store, clockwork.NewFakeClockAt(atEnd), time.UTC)
	sess.Status = model.SessionScheduled
	if err := sched2.Save(context.Background(), sess, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if sess.Status != model.SessionCompleted {
		t.Fatalf("expected completed at end time, got %s", sess.Status)
	}

	// Canceled sessions never auto-complete.
	sess.Status = model.SessionCanceled
	if err := sched2.Save(context.Background(), sess, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if sess.Status != model.SessionCanceled {
		t.Fatalf("canceled session must stay canceled, got %s", sess.Status)
	}
}
