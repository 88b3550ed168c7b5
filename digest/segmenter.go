package digest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// separatorPattern is the long dash rule between messages inside a group
// body. The 70-dash threshold is deliberately far above the 3-dash noise
// runs the cleaner strips; the two must not be conflated.
var separatorPattern = regexp.MustCompile(`-{70,}`)

// minBlockRunes is the cheap pre-filter: trimmed blocks shorter than this
// are noise or fragments and are discarded before any cleaning runs.
const minBlockRunes = 50

// SegmentBlocks splits a group body on separator lines into candidate
// message blocks, in original order. Blocks are trimmed; empty and
// too-short blocks are dropped and counted in skipped.
func SegmentBlocks(body string) (blocks []string, skipped int) {
	for _, block := range separatorPattern.Split(body, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if utf8.RuneCountInString(block) < minBlockRunes {
			skipped++
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks, skipped
}
