package digest

import (
	"regexp"
	"strings"
)

// Noise-stripping patterns, applied in a fixed order (later patterns assume
// earlier noise is gone). The 3+ dash collapse here is deliberately distinct
// from the 70+ dash message separator in the segmenter.
var (
	// Emoji and pictographic blocks: emoticons, symbols & pictographs,
	// transport & map symbols, flags, dingbats, enclosed characters,
	// supplemental symbols and pictographs, symbols extended-A.
	emojiPattern = regexp.MustCompile(`[` +
		`\x{1F600}-\x{1F64F}` +
		`\x{1F300}-\x{1F5FF}` +
		`\x{1F680}-\x{1F6FF}` +
		`\x{1F1E0}-\x{1F1FF}` +
		`\x{2702}-\x{27B0}` +
		`\x{24C2}-\x{1F251}` +
		`\x{1F900}-\x{1F9FF}` +
		`\x{1FA00}-\x{1FAFF}` +
		`]+`)

	mentionPattern      = regexp.MustCompile(`@\w+`)
	markdownLinkPattern = regexp.MustCompile(`\[.*?\]\(.*?\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+`)
	shortLinkPattern    = regexp.MustCompile(`t\.me/\S+`)
	dashRunPattern      = regexp.MustCompile(`-{3,}`)
	equalsRunPattern    = regexp.MustCompile(`={3,}`)
	newlineRunPattern   = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern     = regexp.MustCompile(` {2,}`)
)

// CleanText strips noise from a message block: emoji, @mentions, markdown
// links, bare URLs, t.me short links, dash/equals rules and excessive
// whitespace. The result may be empty.
func CleanText(text string) string {
	text = emojiPattern.ReplaceAllString(text, "")

	text = mentionPattern.ReplaceAllString(text, "")
	text = markdownLinkPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = shortLinkPattern.ReplaceAllString(text, "")

	text = dashRunPattern.ReplaceAllString(text, "")
	text = equalsRunPattern.ReplaceAllString(text, "")

	text = newlineRunPattern.ReplaceAllString(text, "\n\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
