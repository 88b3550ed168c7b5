package digest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterConfig enumerates the keyword lists driving the content filter.
// Both lists are fixed configuration: matched case-insensitively as
// substrings against cleaned text, never learned or inferred.
type FilterConfig struct {
	ExcludedTopics     []string `yaml:"excluded_topics"`
	BoilerplatePhrases []string `yaml:"boilerplate_phrases"`
}

// DefaultFilterConfig returns the built-in keyword lists: the regional
// conflict topics the digest excludes, and the promotional phrases Telegram
// channels pad their posts with.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		ExcludedTopics: []string{
			"israel", "israeli", "idf", "gaza", "hamas", "iran", "iranian",
			"tel aviv", "tehran", "netanyahu", "hezbollah", "palestine",
			"palestinian", "west bank", "jerusalem",
		},
		BoilerplatePhrases: []string{
			"subscribe", "donate", "follow us", "join us", "advertising",
		},
	}
}

// LoadFilterConfig reads a FilterConfig from a YAML file. An empty path
// returns the defaults; a list left empty in the file also falls back to
// its default, so a config file can override one list without restating
// the other.
func LoadFilterConfig(path string) (FilterConfig, error) {
	def := DefaultFilterConfig()
	if path == "" {
		return def, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return FilterConfig{}, fmt.Errorf("LoadFilterConfig: read file: %w", err)
	}
	var cfg FilterConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return FilterConfig{}, fmt.Errorf("LoadFilterConfig: unmarshal: %w", err)
	}
	if len(cfg.ExcludedTopics) == 0 {
		cfg.ExcludedTopics = def.ExcludedTopics
	}
	if len(cfg.BoilerplatePhrases) == 0 {
		cfg.BoilerplatePhrases = def.BoilerplatePhrases
	}
	return cfg, nil
}

// ContentFilter applies the two exclusion gates to cleaned message text.
// Immutable after construction.
type ContentFilter struct {
	topics      []string
	boilerplate []string
}

// NewContentFilter builds a filter from cfg, lowercasing and trimming the
// keyword lists once up front.
func NewContentFilter(cfg FilterConfig) *ContentFilter {
	return &ContentFilter{
		topics:      normalizeTerms(cfg.ExcludedTopics),
		boilerplate: normalizeTerms(cfg.BoilerplatePhrases),
	}
}

// MatchesExcludedTopic reports whether text contains any excluded-topic
// keyword, case-insensitively.
func (f *ContentFilter) MatchesExcludedTopic(text string) bool {
	return containsAny(text, f.topics)
}

// MatchesBoilerplate reports whether text contains any boilerplate phrase,
// case-insensitively.
func (f *ContentFilter) MatchesBoilerplate(text string) bool {
	return containsAny(text, f.boilerplate)
}

func containsAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
