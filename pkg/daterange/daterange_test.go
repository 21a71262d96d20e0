package daterange

import (
	"testing"
	"time"

	apperrors "suitestay/pkg/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		entry           time.Time
		release         time.Time
		minimumStayDays int
		wantError       bool
	}{
		{
			name:            "single night stay",
			entry:           day(2024, 6, 10),
			release:         day(2024, 6, 11),
			minimumStayDays: 1,
			wantError:       false,
		},
		{
			name:            "week long stay",
			entry:           day(2024, 6, 10),
			release:         day(2024, 6, 17),
			minimumStayDays: 1,
			wantError:       false,
		},
		{
			name:            "entry equals release violates one day minimum",
			entry:           day(2024, 6, 10),
			release:         day(2024, 6, 10),
			minimumStayDays: 1,
			wantError:       true,
		},
		{
			name:            "release before entry",
			entry:           day(2024, 6, 12),
			release:         day(2024, 6, 10),
			minimumStayDays: 1,
			wantError:       true,
		},
		{
			name:            "two night minimum rejects single night",
			entry:           day(2024, 6, 10),
			release:         day(2024, 6, 11),
			minimumStayDays: 2,
			wantError:       true,
		},
		{
			name:            "two night minimum accepts exactly two nights",
			entry:           day(2024, 6, 10),
			release:         day(2024, 6, 12),
			minimumStayDays: 2,
			wantError:       false,
		},
		{
			name:            "zero entry date",
			entry:           time.Time{},
			release:         day(2024, 6, 11),
			minimumStayDays: 1,
			wantError:       true,
		},
		{
			name:            "zero release date",
			entry:           day(2024, 6, 10),
			release:         time.Time{},
			minimumStayDays: 1,
			wantError:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entry, tt.release, tt.minimumStayDays)
			if (err != nil) != tt.wantError {
				t.Errorf("New() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !apperrors.HasCode(err, apperrors.CodeInvalidRange) {
				t.Errorf("New() error code = %v, want %s", err, apperrors.CodeInvalidRange)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		rawEntry   string
		rawRelease string
		wantError  bool
	}{
		{"valid dates", "2024-06-10", "2024-06-12", false},
		{"garbage entry", "not-a-date", "2024-06-12", true},
		{"garbage release", "2024-06-10", "12/06/2024", true},
		{"empty entry", "", "2024-06-12", true},
		{"empty release", "2024-06-10", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := Parse(tt.rawEntry, tt.rawRelease, 1)
			if (err != nil) != tt.wantError {
				t.Fatalf("Parse() error = %v, wantError %v", err, tt.wantError)
			}
			if err == nil {
				if got := rng.Entry.Format(Layout); got != tt.rawEntry {
					t.Errorf("Parse() entry = %s, want %s", got, tt.rawEntry)
				}
			}
		})
	}
}

func TestDays_CountAndOrder(t *testing.T) {
	tests := []struct {
		name     string
		entry    time.Time
		release  time.Time
		wantDays int
	}{
		{"single night", day(2024, 6, 10), day(2024, 6, 11), 2},
		{"two nights", day(2024, 6, 10), day(2024, 6, 12), 3},
		{"month boundary", day(2024, 6, 29), day(2024, 7, 2), 4},
		{"leap february", day(2024, 2, 28), day(2024, 3, 1), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := New(tt.entry, tt.release, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var collected []time.Time
			for d := range rng.Days() {
				collected = append(collected, d)
			}

			if len(collected) != tt.wantDays {
				t.Errorf("Days() yielded %d days, want %d", len(collected), tt.wantDays)
			}
			if rng.DayCount() != tt.wantDays {
				t.Errorf("DayCount() = %d, want %d", rng.DayCount(), tt.wantDays)
			}
			if !collected[0].Equal(tt.entry) {
				t.Errorf("Days() starts at %v, want %v", collected[0], tt.entry)
			}
			if !collected[len(collected)-1].Equal(tt.release) {
				t.Errorf("Days() ends at %v, want %v", collected[len(collected)-1], tt.release)
			}
		})
	}
}

func TestDays_Restartable(t *testing.T) {
	rng, err := New(day(2024, 6, 10), day(2024, 6, 13), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := rng.Days()

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}

	if first != second {
		t.Errorf("second iteration yielded %d days, first yielded %d", second, first)
	}
}

func TestDays_EarlyBreak(t *testing.T) {
	rng, err := New(day(2024, 6, 10), day(2024, 6, 20), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := 0
	for range rng.Days() {
		seen++
		if seen == 3 {
			break
		}
	}

	if seen != 3 {
		t.Errorf("expected to stop after 3 days, saw %d", seen)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{
			name: "disjoint ranges",
			a:    DateRange{Entry: day(2024, 6, 10), Release: day(2024, 6, 12)},
			b:    DateRange{Entry: day(2024, 6, 13), Release: day(2024, 6, 15)},
			want: false,
		},
		{
			name: "shared boundary day counts as overlap",
			a:    DateRange{Entry: day(2024, 6, 10), Release: day(2024, 6, 12)},
			b:    DateRange{Entry: day(2024, 6, 12), Release: day(2024, 6, 14)},
			want: true,
		},
		{
			name: "contained range",
			a:    DateRange{Entry: day(2024, 6, 10), Release: day(2024, 6, 20)},
			b:    DateRange{Entry: day(2024, 6, 12), Release: day(2024, 6, 14)},
			want: true,
		},
		{
			name: "identical ranges",
			a:    DateRange{Entry: day(2024, 6, 10), Release: day(2024, 6, 12)},
			b:    DateRange{Entry: day(2024, 6, 10), Release: day(2024, 6, 12)},
			want: true,
		},
		{
			name: "partial overlap",
			a:    DateRange{Entry: day(2024, 6, 10), Release: day(2024, 6, 14)},
			b:    DateRange{Entry: day(2024, 6, 13), Release: day(2024, 6, 18)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNights(t *testing.T) {
	rng, err := New(day(2024, 6, 10), day(2024, 6, 13), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rng.Nights(); got != 3 {
		t.Errorf("Nights() = %d, want 3", got)
	}
}
