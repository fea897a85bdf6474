package tsnsim

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewScheduleHyperperiodSanity(t *testing.T) {
	s1 := &Stream{ID: "S1", Period: 10}
	s2 := &Stream{ID: "S2", Period: 15}

	sched, err := NewSchedule([]*Stream{s1, s2})
	if err != nil {
		t.Fatalf("NewSchedule: unexpected error: %v", err)
	}
	if got, want := sched.Hyperperiod, 30; got != want {
		t.Errorf("Hyperperiod: got %d, want %d", got, want)
	}

	if diff := cmp.Diff([]int{0, 10, 15, 20}, sched.Releases()); diff != "" {
		t.Errorf("Releases: mismatch (-want +got):\n%s", diff)
	}

	ids := func(streams []*Stream) []string {
		out := make([]string, len(streams))
		for i, s := range streams {
			out[i] = s.ID
		}
		return out
	}
	if diff := cmp.Diff([]string{"S1", "S2"}, ids(sched.At(0))); diff != "" {
		t.Errorf("At(0): mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"S1"}, ids(sched.At(10))); diff != "" {
		t.Errorf("At(10): mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"S2"}, ids(sched.At(15))); diff != "" {
		t.Errorf("At(15): mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"S1"}, ids(sched.At(20))); diff != "" {
		t.Errorf("At(20): mismatch (-want +got):\n%s", diff)
	}
}

func TestNewScheduleRejectsNonPositivePeriod(t *testing.T) {
	_, err := NewSchedule([]*Stream{{ID: "S", Period: 0}})
	if !errors.Is(err, ErrInvalidStream) {
		t.Errorf("NewSchedule: got %v, want ErrInvalidStream", err)
	}
}

func TestNewScheduleInvariantUnderInputReordering(t *testing.T) {
	a := &Stream{ID: "A", Period: 10}
	b := &Stream{ID: "B", Period: 10}

	forward, err := NewSchedule([]*Stream{a, b})
	if err != nil {
		t.Fatalf("NewSchedule: unexpected error: %v", err)
	}
	reversed, err := NewSchedule([]*Stream{b, a})
	if err != nil {
		t.Fatalf("NewSchedule: unexpected error: %v", err)
	}

	if diff := cmp.Diff(forward.Releases(), reversed.Releases()); diff != "" {
		t.Errorf("Releases: mismatch (-forward +reversed):\n%s", diff)
	}
	idsOf := func(streams []*Stream) []string {
		out := make([]string, len(streams))
		for i, s := range streams {
			out[i] = s.ID
		}
		return out
	}
	if diff := cmp.Diff(idsOf(forward.At(0)), idsOf(reversed.At(0))); diff != "" {
		t.Errorf("At(0) order: mismatch (-forward +reversed):\n%s", diff)
	}
}
