package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"energy_gauge/internal/models"
)

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	appended []models.GaugeEvent

	// configured outputs
	events    []models.GaugeEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.GaugeEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.GaugeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return f.appendErr
}

// types returns the appended event types in order.
func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(time.FixedZone("UTC+7", 7*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 5, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
		{
			name: "already UTC stays UTC",
			in:   time.Date(2025, time.August, 2, 0, 0, 0, 0, time.UTC),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 2, 0, 0, 0, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func Test_normalizeEventType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty stays empty", in: "", exp: ""},
		{name: "trim spaces", in: "  READY ", exp: "READY"},
		{name: "uppercase", in: "disconnected", exp: "DISCONNECTED"},
		{name: "underscore kept", in: " ready_cleared ", exp: "READY_CLEARED"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeEventType(c.in); got != c.exp {
				t.Fatalf("normalizeEventType(%q) = %q; want %q", c.in, got, c.exp)
			}
		})
	}
}

func Test_normalizeFilter(t *testing.T) {
	t.Parallel()

	fromLocal := mustTimeIn(time.FixedZone("UTC+2", 2*3600), 2025, time.September, 10, 10, 0, 0)
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       LogFilter
		wantFrom time.Time
		wantTo   time.Time
		wantType string
		wantErr  bool
	}{
		{
			name: "all zero ok",
			in:   LogFilter{},
		},
		{
			name: "from after to",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
			},
			wantErr: true,
		},
		{
			name:     "normalize tz and type",
			in:       LogFilter{From: fromLocal, To: toUTC, Type: " ready "},
			wantFrom: time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC),
			wantTo:   toUTC,
			wantType: models.EventReady,
		},
		{
			name:     "equal bounds ok",
			in:       LogFilter{From: toUTC, To: toUTC},
			wantFrom: toUTC,
			wantTo:   toUTC,
		},
		{
			name:    "unknown type",
			in:      LogFilter{Type: "heater_on"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := normalizeFilter(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFilter) {
					t.Fatalf("err = %v; want ErrInvalidFilter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.From.Equal(tc.wantFrom) || !got.To.Equal(tc.wantTo) || got.Type != tc.wantType {
				t.Fatalf("got %+v; want from=%v to=%v type=%q", got, tc.wantFrom, tc.wantTo, tc.wantType)
			}
		})
	}
}

func TestEventLogService_List_PassesNormalizedFilter(t *testing.T) {
	t.Parallel()

	want := []models.GaugeEvent{{EventID: "e1", Type: models.EventDisconnected}}
	frepo := &fakeEventRepo{events: want}
	svc := NewEventLogService(frepo)

	from := mustTimeIn(time.FixedZone("UTC+7", 7*3600), 2025, time.March, 1, 7, 0, 0)
	got, err := svc.List(context.Background(), LogFilter{From: from, Type: "disconnected"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "e1" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if frepo.gotFrom.Location() != time.UTC || !frepo.gotFrom.Equal(from) {
		t.Fatalf("from not normalized: %v", frepo.gotFrom)
	}
	if frepo.gotType != models.EventDisconnected {
		t.Fatalf("type = %q", frepo.gotType)
	}
}

func TestEventLogService_List_ValidationSkipsRepo(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{}
	svc := NewEventLogService(frepo)

	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestEventLogService_List_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{err: errors.New("db down")}
	svc := NewEventLogService(frepo)

	_, err := svc.List(context.Background(), LogFilter{})
	if !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
	if frepo.calls != 1 {
		t.Fatalf("repo should be called once, calls=%d", frepo.calls)
	}
}
