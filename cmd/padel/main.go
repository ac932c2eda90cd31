// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command padel is the terminal client for the appadel API.
//
//	go run ./cmd/padel -api http://localhost:4000
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/appadel/client"
)

type options struct {
	apiURL    string
	tokenFile string
	logLevel  string
}

func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("padel", flag.ContinueOnError)

	var opts options
	fs.StringVar(&opts.apiURL, "api", "", "API base URL (env: APPADEL_API_URL)")
	fs.StringVar(&opts.tokenFile, "token-file", "", "File that remembers the session, \"-\" to disable (env: APPADEL_TOKEN_FILE)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (env: LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.apiURL == "" {
		opts.apiURL = os.Getenv("APPADEL_API_URL")
	}
	if opts.apiURL == "" {
		opts.apiURL = "http://localhost:4000"
	}

	if opts.tokenFile == "" {
		opts.tokenFile = os.Getenv("APPADEL_TOKEN_FILE")
	}
	switch opts.tokenFile {
	case "-":
		opts.tokenFile = ""
	case "":
		if dir, err := os.UserConfigDir(); err == nil {
			opts.tokenFile = filepath.Join(dir, "appadel", "token")
		}
	}

	if opts.logLevel == "" {
		opts.logLevel = os.Getenv("LOG_LEVEL")
	}
	if opts.logLevel == "" {
		opts.logLevel = "warn"
	}

	return opts, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(client.New(opts.apiURL, nil), os.Stdin, os.Stdout, opts.tokenFile)
	slog.Debug("starting", "api", opts.apiURL, "token_file", opts.tokenFile)

	err = a.run(ctx)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
