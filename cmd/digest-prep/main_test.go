package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harborline/newsdigest/digest"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("digest-prep", flag.ContinueOnError)
	cfg, err := parseFlags(fs, nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.InputPath != "messages.json" {
		t.Fatalf("InputPath=%q, want default", cfg.InputPath)
	}
	if cfg.OutputPath != "messages_processed.json" {
		t.Fatalf("OutputPath=%q, want default", cfg.OutputPath)
	}
	if cfg.TopGroups != 10 {
		t.Fatalf("TopGroups=%d, want 10", cfg.TopGroups)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("digest-prep", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-in", "a/raw.json",
		"-out", "b/done.json",
		"-filter-config", "c/filters.yaml",
		"-top", "3",
		"-pretty",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.InputPath != filepath.FromSlash("a/raw.json") {
		t.Fatalf("InputPath=%q", cfg.InputPath)
	}
	if cfg.OutputPath != filepath.FromSlash("b/done.json") {
		t.Fatalf("OutputPath=%q", cfg.OutputPath)
	}
	if cfg.FilterConfigPath != filepath.FromSlash("c/filters.yaml") {
		t.Fatalf("FilterConfigPath=%q", cfg.FilterConfigPath)
	}
	if cfg.TopGroups != 3 || !cfg.Pretty {
		t.Fatalf("cfg=%+v, want top=3 pretty", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("expected error for empty config")
	}
	if err := (Config{InputPath: "in.json"}).Validate(); err == nil {
		t.Fatalf("expected error for missing OutputPath")
	}
	if err := (Config{InputPath: "in.json", OutputPath: "out.json", TopGroups: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative TopGroups")
	}
	if err := (Config{InputPath: "in.json", OutputPath: "out.json"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	blob := "**Group: Front**\n" +
		"[2024-01-01 10:00:00] " + strings.Repeat("y", 110) + "\n" +
		strings.Repeat("-", 71) + "\n" +
		"[2024-01-01 08:00:00] " + strings.Repeat("z", 110) + "\n" +
		strings.Repeat("-", 71) + "\n" +
		"Subscribe to our channel " + strings.Repeat("p", 110) + "\n"

	envelope := map[string]any{
		"result": map[string]any{
			"body": map[string]any{"news_content": blob},
		},
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	dir := t.TempDir()
	inPath := filepath.Join(dir, "messages.json")
	outPath := filepath.Join(dir, "processed.json")
	if err := os.WriteFile(inPath, raw, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var buf bytes.Buffer
	cfg := Config{InputPath: inPath, OutputPath: outPath, TopGroups: 10}
	if err := run(cfg, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	doc, err := digest.LoadDocument(outPath)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if doc.Metadata.TotalMessages != 2 {
		t.Fatalf("TotalMessages=%d, want 2 (boilerplate dropped)", doc.Metadata.TotalMessages)
	}
	// Sorted ascending: the 08:00 message first.
	if doc.Messages[0].Timestamp == nil || *doc.Messages[0].Timestamp != "2024-01-01T08:00:00" {
		t.Fatalf("first message=%+v, want the earlier one", doc.Messages[0])
	}
	if doc.Metadata.TimeWindow.Start != "2024-01-01 08:00:00" || doc.Metadata.TimeWindow.End != "2024-01-01 10:00:00" {
		t.Fatalf("window=%+v", doc.Metadata.TimeWindow)
	}
	if doc.Metadata.TimeWindow.DurationHours == nil || *doc.Metadata.TimeWindow.DurationHours != 2 {
		t.Fatalf("duration=%v, want 2", doc.Metadata.TimeWindow.DurationHours)
	}

	out := buf.String()
	for _, want := range []string{"total_messages=2", "accepted=2", "dropped_boilerplate=1", `group="Front" count=2`} {
		if !strings.Contains(out, want) {
			t.Fatalf("diagnostics missing %q:\n%s", want, out)
		}
	}
}

func TestRun_NoContentIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "messages.json")
	outPath := filepath.Join(dir, "processed.json")
	if err := os.WriteFile(inPath, []byte(`{"something":"else"}`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var buf bytes.Buffer
	err := run(Config{InputPath: inPath, OutputPath: outPath, TopGroups: 10}, &buf)
	if err == nil {
		t.Fatalf("expected fatal error")
	}
	if !strings.Contains(err.Error(), "tried shapes") {
		t.Fatalf("err=%q, want shape diagnostics", err.Error())
	}
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Fatalf("fatal run must not produce an output document")
	}
}
