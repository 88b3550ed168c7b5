package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/harborline/newsdigest/digest"
	"github.com/harborline/newsdigest/digest/fileutils"
	"github.com/harborline/newsdigest/digest/provider"
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

	_ = godotenv.Load()

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	if !cfg.Overwrite && fileutils.FileExists(cfg.OutPath) {
		fmt.Fprintf(os.Stderr, "output already exists: %s (pass -overwrite)\n", cfg.OutPath)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := digest.LoadDocument(cfg.InputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if len(doc.Messages) == 0 {
		fmt.Fprintln(os.Stderr, "input document has no messages; nothing to brief")
		os.Exit(1)
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	briefer := openAIBriefer{client: &client, model: cfg.Model}

	brief, err := briefer.Brief(ctx, buildBriefRequest(doc, cfg.MaxMessages, cfg.MaxChars))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out := briefDocument{
		Model:       cfg.Model,
		GeneratedAt: time.Now().Format(digest.MessageTimeLayout),
		SourcePath:  cfg.InputPath,
		Brief:       brief,
	}
	if err := fileutils.WriteJSONFileAtomic(cfg.OutPath, out, cfg.Pretty); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "messages_briefed=%d model=%s out=%s\n", len(doc.Messages), cfg.Model, cfg.OutPath)
}

// briefRequest is the compact payload sent to the model.
type briefRequest struct {
	TotalMessages int               `json:"total_messages"`
	TimeWindow    digest.TimeWindow `json:"time_window"`
	Messages      []briefMessage    `json:"messages"`
}

type briefMessage struct {
	Timestamp string `json:"timestamp,omitempty"`
	Group     string `json:"group"`
	Text      string `json:"text"`
}

type briefResponse struct {
	Headline      string   `json:"headline"`
	Overview      string   `json:"overview"`
	Themes        []string `json:"themes"`
	NotableGroups []string `json:"notable_groups"`
}

type briefDocument struct {
	Model       string        `json:"model"`
	GeneratedAt string        `json:"generated_at"`
	SourcePath  string        `json:"source_path"`
	Brief       briefResponse `json:"brief"`
}

var briefSchema = provider.GenerateSchema[briefResponse]()

// buildBriefRequest trims the document down to what the prompt needs:
// window metadata plus up to maxMessages truncated message texts.
func buildBriefRequest(doc digest.OutputDocument, maxMessages, maxChars int) briefRequest {
	msgs := doc.Messages
	if maxMessages > 0 && len(msgs) > maxMessages {
		msgs = msgs[:maxMessages]
	}

	req := briefRequest{
		TotalMessages: doc.Metadata.TotalMessages,
		TimeWindow:    doc.Metadata.TimeWindow,
		Messages:      make([]briefMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		bm := briefMessage{
			Group: m.Group,
			Text:  fileutils.Truncate(m.Text, maxChars),
		}
		if m.Timestamp != nil {
			bm.Timestamp = *m.Timestamp
		}
		req.Messages = append(req.Messages, bm)
	}
	return req
}

type openAIBriefer struct {
	client *openai.Client
	model  string
}

func (b openAIBriefer) Brief(ctx context.Context, req briefRequest) (briefResponse, error) {
	if b.client == nil {
		return briefResponse{}, errors.New("openAIBriefer: client is nil")
	}
	if b.model == "" {
		return briefResponse{}, errors.New("openAIBriefer: model is empty")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return briefResponse{}, fmt.Errorf("openAIBriefer: marshal request: %w", err)
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "NewsBrief",
			Schema:      briefSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Structured news brief JSON"),
			Type:        "json_schema",
		},
	}

	input := []responses.ResponseInputItemUnionParam{
		responses.ResponseInputItemParamOfMessage(string(payload), responses.EasyInputMessageRoleUser),
	}
	params := responses.ResponseNewParams{
		Model:           b.model,
		MaxOutputTokens: openai.Int(1500),
		Instructions:    openai.String(briefInstructions),
		ServiceTier:     responses.ResponseNewParamsServiceTierFlex,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := provider.CallWithRetry(ctx, b.client, params)
	if err != nil {
		return briefResponse{}, err
	}

	var out briefResponse
	if err := fileutils.DecodeModelJSON(resp.OutputText(), &out); err != nil {
		return briefResponse{}, fmt.Errorf("openAIBriefer: decode model output: %w", err)
	}
	return out, nil
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InputPath, "in", cfg.InputPath, "Path to a processed document (digest-prep output)")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Path to write the brief JSON to")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model for the brief")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (defaults to OPENAI_API_KEY)")
	fs.IntVar(&cfg.MaxMessages, "max-messages", cfg.MaxMessages, "Messages to include in the prompt (0 = all)")
	fs.IntVar(&cfg.MaxChars, "max-chars", cfg.MaxChars, "Per-message text truncation for the prompt (0 disables)")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print the brief JSON")
	fs.BoolVar(&cfg.Overwrite, "overwrite", false, "Overwrite an existing brief")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/digest-brief -in messages_processed.json -out news_brief.json")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.InputPath = filepath.Clean(cfg.InputPath)
	cfg.OutPath = filepath.Clean(cfg.OutPath)
	return cfg, nil
}
