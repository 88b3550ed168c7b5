package main

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	InputPath string
	OutPath   string

	Model  string
	APIKey string

	// MaxMessages limits how many messages go into the prompt (0 = all);
	// MaxChars truncates each message's text for the prompt.
	MaxMessages int
	MaxChars    int

	Pretty    bool
	Overwrite bool
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("missing -in")
	}
	if c.OutPath == "" {
		return fmt.Errorf("missing -out")
	}
	if c.Model == "" {
		return fmt.Errorf("missing -model")
	}
	if c.MaxMessages < 0 || c.MaxChars < 0 {
		return fmt.Errorf("max-messages/max-chars must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		InputPath:   filepath.FromSlash("messages_processed.json"),
		OutPath:     filepath.FromSlash("news_brief.json"),
		Model:       "gpt-5-mini",
		MaxMessages: 200,
		MaxChars:    400,
	}
}
