package digest

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSortMessages_UndatedFirstAndStable(t *testing.T) {
	t.Parallel()

	msgs := []Message{
		{Timestamp: strPtr("2024-01-02T00:00:00"), Group: "b", Text: "late"},
		{Timestamp: nil, Group: "u1", Text: "undated-1"},
		{Timestamp: strPtr("2024-01-01T00:00:00"), Group: "a", Text: "early"},
		{Timestamp: nil, Group: "u2", Text: "undated-2"},
		{Timestamp: strPtr("2024-01-01T00:00:00"), Group: "a2", Text: "early-second"},
	}
	SortMessages(msgs)

	wantOrder := []string{"undated-1", "undated-2", "early", "early-second", "late"}
	for i, want := range wantOrder {
		if msgs[i].Text != want {
			t.Fatalf("msgs[%d]=%q, want %q (full order %v)", i, msgs[i].Text, want, msgs)
		}
	}
}

func TestComputeTimeWindow(t *testing.T) {
	t.Parallel()

	msgs := []Message{
		{Timestamp: strPtr("2024-01-01T10:00:00")},
		{Timestamp: nil},
		{Timestamp: strPtr("2024-01-02T13:30:00")},
		{Timestamp: strPtr("2024-01-01T12:00:00")},
	}
	w := ComputeTimeWindow(msgs)
	if w.Start != "2024-01-01 10:00:00" {
		t.Fatalf("Start=%q, want %q", w.Start, "2024-01-01 10:00:00")
	}
	if w.End != "2024-01-02 13:30:00" {
		t.Fatalf("End=%q, want %q", w.End, "2024-01-02 13:30:00")
	}
	if w.DurationHours == nil {
		t.Fatalf("expected duration")
	}
	if *w.DurationHours != 27.5 {
		t.Fatalf("DurationHours=%v, want 27.5", *w.DurationHours)
	}
}

func TestComputeTimeWindow_Rounding(t *testing.T) {
	t.Parallel()

	msgs := []Message{
		{Timestamp: strPtr("2024-01-01T00:00:00")},
		{Timestamp: strPtr("2024-01-01T00:10:00")},
	}
	w := ComputeTimeWindow(msgs)
	if w.DurationHours == nil || *w.DurationHours != 0.17 {
		t.Fatalf("DurationHours=%v, want 0.17 (10 minutes rounded)", w.DurationHours)
	}
}

func TestComputeTimeWindow_NoDatedMessages(t *testing.T) {
	t.Parallel()

	for _, msgs := range [][]Message{nil, {{Timestamp: nil, Text: "x"}}} {
		w := ComputeTimeWindow(msgs)
		if w.Start != UnknownWindowBound || w.End != UnknownWindowBound {
			t.Fatalf("window=%+v, want Unknown/Unknown", w)
		}
		if w.DurationHours != nil {
			t.Fatalf("DurationHours=%v, want absent", *w.DurationHours)
		}
	}
}

func TestComputeTimeWindow_SingleDatedMessage(t *testing.T) {
	t.Parallel()

	w := ComputeTimeWindow([]Message{{Timestamp: strPtr("2024-01-01T10:00:00")}})
	if w.Start != w.End {
		t.Fatalf("window=%+v, want start == end", w)
	}
	if w.DurationHours == nil || *w.DurationHours != 0 {
		t.Fatalf("DurationHours=%v, want 0", w.DurationHours)
	}
}

func TestTopGroups(t *testing.T) {
	t.Parallel()

	var msgs []Message
	add := func(group string, n int) {
		for i := 0; i < n; i++ {
			msgs = append(msgs, Message{Group: group})
		}
	}
	add("alpha", 2)
	add("beta", 5)
	add("gamma", 2)
	add("delta", 1)

	rows := TopGroups(msgs, 3)
	if len(rows) != 3 {
		t.Fatalf("len=%d, want 3", len(rows))
	}
	if rows[0].Group != "beta" || rows[0].Count != 5 {
		t.Fatalf("rows[0]=%+v, want beta/5", rows[0])
	}
	// Ties keep first-seen order: alpha before gamma.
	if rows[1].Group != "alpha" || rows[2].Group != "gamma" {
		t.Fatalf("tie order=%v, want alpha then gamma", rows)
	}
}

func TestTopGroups_ZeroLimitKeepsAll(t *testing.T) {
	t.Parallel()

	rows := TopGroups([]Message{{Group: "a"}, {Group: "b"}}, 0)
	if len(rows) != 2 {
		t.Fatalf("len=%d, want 2", len(rows))
	}
}
