package digest

import (
	"math"
	"sort"
	"time"
)

// SortMessages orders messages by timestamp string ascending, in place.
// The sort is stable; undated messages key as the empty string and
// therefore land before all dated ones.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].sortKey() < messages[j].sortKey()
	})
}

// ComputeTimeWindow derives the covered time span from the full message
// set. With zero dated messages both bounds are "Unknown" and the duration
// is absent.
func ComputeTimeWindow(messages []Message) TimeWindow {
	var (
		start, end time.Time
		dated      bool
	)
	for _, m := range messages {
		if m.Timestamp == nil {
			continue
		}
		ts, err := time.Parse(MessageTimeLayout, *m.Timestamp)
		if err != nil {
			continue
		}
		if !dated {
			start, end = ts, ts
			dated = true
			continue
		}
		if ts.Before(start) {
			start = ts
		}
		if ts.After(end) {
			end = ts
		}
	}

	if !dated {
		return TimeWindow{Start: UnknownWindowBound, End: UnknownWindowBound}
	}

	hours := round2(end.Sub(start).Seconds() / 3600)
	return TimeWindow{
		Start:         start.Format(WindowTimeLayout),
		End:           end.Format(WindowTimeLayout),
		DurationHours: &hours,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GroupCount is one row of the per-group diagnostic report.
type GroupCount struct {
	Group string
	Count int
}

// TopGroups tallies messages per group and returns up to n rows by count
// descending. Ties keep first-seen order (the sort is stable over the
// encounter order of group names).
func TopGroups(messages []Message, n int) []GroupCount {
	counts := make(map[string]int)
	var order []string
	for _, m := range messages {
		if _, ok := counts[m.Group]; !ok {
			order = append(order, m.Group)
		}
		counts[m.Group]++
	}

	rows := make([]GroupCount, 0, len(order))
	for _, g := range order {
		rows = append(rows, GroupCount{Group: g, Count: counts[g]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
