package main

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	InputPath        string
	OutputPath       string
	FilterConfigPath string
	TopGroups        int
	Pretty           bool
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("missing -in")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("missing -out")
	}
	if c.TopGroups < 0 {
		return fmt.Errorf("-top must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		InputPath:  filepath.FromSlash("messages.json"),
		OutputPath: filepath.FromSlash("messages_processed.json"),
		TopGroups:  10,
	}
}
