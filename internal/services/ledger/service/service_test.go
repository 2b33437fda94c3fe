package service

import (
	"context"
	"testing"
	"time"

	"classwatch/internal/core/violation"
	"classwatch/internal/core/vision"
)

func TestCooldownWindow(t *testing.T) {
	t.Parallel()

	s := New(Config{Cooldown: 30 * time.Second})
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if d := s.Admit(ctx, "alice", violation.KindInattentive, t0); !d.Admitted {
		t.Fatalf("first occurrence: want admitted, got %+v", d)
	}

	if d := s.Admit(ctx, "alice", violation.KindInattentive, t0.Add(10*time.Second)); d.Admitted {
		t.Fatal("occurrence inside cooldown must be suppressed")
	}

	if d := s.Admit(ctx, "alice", violation.KindInattentive, t0.Add(31*time.Second)); !d.Admitted {
		t.Fatal("occurrence past cooldown must be admitted")
	}
}

func TestCooldownIsPerKind(t *testing.T) {
	t.Parallel()

	s := New(Config{Cooldown: 30 * time.Second})
	ctx := context.Background()
	t0 := time.Now()

	if d := s.Admit(ctx, "alice", violation.KindInattentive, t0); !d.Admitted {
		t.Fatal("inattentive not admitted")
	}
	if d := s.Admit(ctx, "alice", violation.KindDrowsy, t0.Add(time.Second)); !d.Admitted {
		t.Fatal("different kind must have its own window")
	}
}

func TestUnknownSubjectNeverAdmitted(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	ctx := context.Background()

	for _, subject := range []string{"", vision.Unknown} {
		if d := s.Admit(ctx, subject, violation.KindInattentive, time.Now()); d.Admitted {
			t.Fatalf("subject %q: unresolved identity must produce nothing, got %+v", subject, d)
		}
		if s.Sight(ctx, subject, time.Now()) {
			t.Fatalf("subject %q: unresolved identity must not be sighted", subject)
		}
	}
	if recs := s.Attendance(ctx); len(recs) != 0 {
		t.Fatalf("unresolved identities created attendance: %+v", recs)
	}
}

func TestInvalidKindNeverAdmitted(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	if d := s.Admit(context.Background(), "alice", violation.Kind("bogus"), time.Now()); d.Admitted {
		t.Fatalf("invalid kind must produce nothing, got %+v", d)
	}
}

func TestOneShotKinds(t *testing.T) {
	t.Parallel()

	s := New(Config{Cooldown: time.Millisecond})
	ctx := context.Background()
	t0 := time.Now()

	if d := s.Admit(ctx, "carol", violation.KindUniformMismatch, t0); !d.Admitted {
		t.Fatal("first uniform mismatch must be admitted")
	}
	// even far past any cooldown the one-shot never fires again
	if d := s.Admit(ctx, "carol", violation.KindUniformMismatch, t0.Add(time.Hour)); d.Admitted {
		t.Fatal("uniform mismatch must be one-shot for the run")
	}
}

func TestSightOncePerSubject(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if !s.Sight(ctx, "alice", t0) {
		t.Fatal("first sighting must report first-seen")
	}
	if s.Sight(ctx, "alice", t0.Add(time.Minute)) {
		t.Fatal("repeat sighting must not report first-seen")
	}

	recs := s.Attendance(ctx)
	if len(recs) != 1 {
		t.Fatalf("want one attendance record, got %+v", recs)
	}
	if recs[0].Subject != "alice" || !recs[0].FirstSeen.Equal(t0) {
		t.Fatalf("record must keep the first-seen instant: %+v", recs[0])
	}
}

func TestAdmitCreatesNoAttendance(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	ctx := context.Background()
	now := time.Now()

	// admission of any kind, absence included, is not a sighting
	for _, kind := range []violation.Kind{violation.KindInattentive, violation.KindAbsent} {
		if d := s.Admit(ctx, "dave", kind, now); !d.Admitted {
			t.Fatalf("kind %s: first occurrence must be admitted", kind)
		}
	}
	if recs := s.Attendance(ctx); len(recs) != 0 {
		t.Fatalf("admission created attendance: %+v", recs)
	}
}

func TestAttendanceSorted(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	ctx := context.Background()
	now := time.Now()
	for _, name := range []string{"carol", "alice", "bob"} {
		s.Sight(ctx, name, now)
	}

	recs := s.Attendance(ctx)
	if len(recs) != 3 || recs[0].Subject != "alice" || recs[1].Subject != "bob" || recs[2].Subject != "carol" {
		t.Fatalf("attendance not sorted: %+v", recs)
	}
}
