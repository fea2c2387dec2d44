package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"taskmanager/internal/client/api"
	"taskmanager/internal/client/app"
	"taskmanager/internal/client/session"
)

func main() {
	defaultSession, err := session.DefaultPath()
	if err != nil {
		defaultSession = ".taskctl-session.json"
	}

	apiURL := flag.String("api", envOr("TASKCTL_API_URL", "http://localhost:8080/api"), "base URL of the task API")
	sessionPath := flag.String("session", envOr("TASKCTL_SESSION", defaultSession), "file holding the saved session")
	lang := flag.String("lang", "", "preferred language for server messages (en, fr)")
	debug := flag.Bool("debug", false, "log requests and failures to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *debug {
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to build logger:", err)
			os.Exit(1)
		}
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	client := api.New(*apiURL, api.WithLanguage(*lang))
	a, err := app.New(client, session.NewFileStore(*sessionPath))
	if err != nil {
		logger.Error("failed to start client", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newREPL(a, os.Stdin, os.Stdout).run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
