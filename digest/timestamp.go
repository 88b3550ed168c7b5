package digest

import (
	"regexp"
	"time"
)

// timestampPattern matches the bracketed timestamp the source dumps embed in
// each message block: [YYYY-MM-DD HH:MM:SS].
var timestampPattern = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\]`)

const timestampLayout = "2006-01-02 15:04:05"

// ExtractTimestamp returns the first bracketed timestamp found in the raw
// (pre-clean) block text. A bracket whose value is not a valid calendar
// date/time (e.g. month 13) yields ok=false rather than an error; so does a
// block with no bracket at all. The block is scanned at most once.
func ExtractTimestamp(block string) (time.Time, bool) {
	m := timestampPattern.FindStringSubmatch(block)
	if m == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
