package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/harborline/newsdigest/digest"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(cfg Config, out io.Writer) error {
	raw, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read -in: %w", err)
	}

	blob, err := digest.ExtractNewsContent(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "news_content_chars=%d\n", len(blob))

	filterCfg, err := digest.LoadFilterConfig(cfg.FilterConfigPath)
	if err != nil {
		return err
	}

	extractor := digest.NewExtractor(digest.NewContentFilter(filterCfg))
	messages, stats := extractor.Extract(blob)
	digest.SortMessages(messages)

	doc := digest.BuildDocument(messages, time.Now())
	if err := digest.SaveDocument(cfg.OutputPath, doc, cfg.Pretty); err != nil {
		return err
	}

	w := doc.Metadata.TimeWindow
	fmt.Fprintf(out, "total_messages=%d window_start=%q window_end=%q", doc.Metadata.TotalMessages, w.Start, w.End)
	if w.DurationHours != nil {
		fmt.Fprintf(out, " duration_hours=%.2f", *w.DurationHours)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "groups=%d blocks_seen=%d short_skipped=%d dropped_topic=%d dropped_boilerplate=%d dropped_short=%d accepted=%d\n",
		stats.GroupsFound, stats.BlocksSeen, stats.ShortBlocksSkipped,
		stats.DroppedExcludedTopic, stats.DroppedBoilerplate, stats.DroppedShortClean, stats.Accepted)

	for _, row := range digest.TopGroups(messages, cfg.TopGroups) {
		fmt.Fprintf(out, "group=%q count=%d\n", row.Group, row.Count)
	}

	fmt.Fprintf(out, "out=%s\n", cfg.OutputPath)
	return nil
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InputPath, "in", cfg.InputPath, "Path to the raw envelope JSON (collector output)")
	fs.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "Path to write the processed document to")
	fs.StringVar(&cfg.FilterConfigPath, "filter-config", "", "Optional YAML file overriding the exclusion keyword lists")
	fs.IntVar(&cfg.TopGroups, "top", cfg.TopGroups, "Per-group count rows to print (0 disables the report)")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print the output JSON")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/digest-prep -pretty")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/digest-prep -in messages.json -out messages_processed.json -filter-config filters.yaml")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.InputPath = filepath.Clean(cfg.InputPath)
	cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	if cfg.FilterConfigPath != "" {
		cfg.FilterConfigPath = filepath.Clean(cfg.FilterConfigPath)
	}
	return cfg, nil
}
