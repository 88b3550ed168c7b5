package digest

import (
	"regexp"
	"strings"
)

// groupHeaderPattern marks the start of a source-channel section inside the
// blob. The name capture is non-greedy and stays on one line.
var groupHeaderPattern = regexp.MustCompile(`\*\*Group: (.+?)\*\*`)

// GroupSection is one named channel section of the blob. Body is everything
// strictly between this section's header and the next (or end of blob).
type GroupSection struct {
	Name string
	Body string
}

// SplitGroups partitions the blob into group sections. Group names are
// whitespace-trimmed. Content before the first header is not attributed to
// any group and is dropped; a blob with no header at all yields zero
// sections, which is a silent empty result rather than a failure.
func SplitGroups(blob string) []GroupSection {
	matches := groupHeaderPattern.FindAllStringSubmatchIndex(blob, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]GroupSection, 0, len(matches))
	for i, m := range matches {
		name := strings.TrimSpace(blob[m[2]:m[3]])
		bodyStart := m[1]
		bodyEnd := len(blob)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		sections = append(sections, GroupSection{
			Name: name,
			Body: blob[bodyStart:bodyEnd],
		})
	}
	return sections
}
