package digest

import (
	"unicode/utf8"
)

// minMessageRunes is the acceptance gate on cleaned text: anything at or
// below this length after cleaning is dropped.
const minMessageRunes = 100

// ExtractStats counts what happened to every candidate block during one
// extraction run. Per-block failures are silent skips by design; these
// counters are the only place they surface.
type ExtractStats struct {
	GroupsFound        int
	BlocksSeen         int
	ShortBlocksSkipped int

	// CleanCalls counts invocations of the cleaner. Blocks failing the
	// short-block pre-filter must never increment it.
	CleanCalls int

	DroppedExcludedTopic int
	DroppedBoilerplate   int
	DroppedShortClean    int
	Accepted             int
}

// Extractor runs the core extraction pipeline over a raw blob: group
// splitting, block segmentation, timestamp recovery, cleaning, and the
// content gates. The filter is injected at construction and never mutated.
type Extractor struct {
	filter *ContentFilter
}

// NewExtractor builds an extractor around filter. A nil filter uses the
// default keyword lists.
func NewExtractor(filter *ContentFilter) *Extractor {
	if filter == nil {
		filter = NewContentFilter(DefaultFilterConfig())
	}
	return &Extractor{filter: filter}
}

// Extract walks the blob group by group and block by block, returning the
// accepted messages in group-then-block encounter order. Callers sort
// afterward (see SortMessages); Extract itself preserves encounter order.
func (e *Extractor) Extract(blob string) ([]Message, ExtractStats) {
	var (
		messages []Message
		stats    ExtractStats
	)

	sections := SplitGroups(blob)
	stats.GroupsFound = len(sections)

	for _, section := range sections {
		blocks, skipped := SegmentBlocks(section.Body)
		stats.BlocksSeen += len(blocks) + skipped
		stats.ShortBlocksSkipped += skipped

		for _, block := range blocks {
			// Timestamp comes from the raw block; cleaning strips the
			// bracket rule it lives next to.
			ts, hasTS := ExtractTimestamp(block)

			cleaned := CleanText(block)
			stats.CleanCalls++

			if e.filter.MatchesExcludedTopic(cleaned) {
				stats.DroppedExcludedTopic++
				continue
			}
			if e.filter.MatchesBoilerplate(cleaned) {
				stats.DroppedBoilerplate++
				continue
			}
			if cleaned == "" || utf8.RuneCountInString(cleaned) <= minMessageRunes {
				stats.DroppedShortClean++
				continue
			}

			var tsStr *string
			if hasTS {
				s := ts.Format(MessageTimeLayout)
				tsStr = &s
			}
			messages = append(messages, Message{
				Timestamp:      tsStr,
				Group:          section.Name,
				Text:           cleaned,
				OriginalLength: utf8.RuneCountInString(block),
			})
			stats.Accepted++
		}
	}

	return messages, stats
}
