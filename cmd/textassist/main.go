// Copyright 2025 The textassist Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the textassist IPC server and CLI [DBG] application.

textassist backs an editor's text area with three engines: prefix completion
from a trie, exact pattern search with KMP, and spelling correction by edit
distance against the same vocabulary. It runs as a MessagePack IPC server for
editor integration, or as a CLI for testing and debugging.

# Usage

Start the server with the embedded seed vocabulary:

	textassist

Load a word list and enable debug logs on stderr:

	textassist -dict /path/to/words.txt -d

Run the interactive CLI:

	textassist -c

The dictionary may be a .txt word list, a .bin chunk, a .msgpack string array,
or a directory holding any mix of them.

# Configuration

Settings live in ~/.config/textassist/config.toml, created with defaults on
first run:

	[editor]
	suggest_limit = 3
	min_correct_len = 2
	max_distance = 2

	[server]
	max_limit = 64
	max_prefix = 60
	max_text = 1048576

	[dict]
	path = ""
	recent_words = 256

	[cli]
	highlight = true
	no_filter = false

Flags override the file for a single run.

# IPC Protocol

Requests and responses are MessagePack maps on stdin and stdout; see package
server for the ops:

	{"id": "r1", "op": "edit", "text": "I like appel"}
	{"id": "r1", "status": "ok", "text": "I like apple", "corrected": true, "original": "appel", "word": "apple", "cur": -1, "t": 41}

# Command Line Flags

	-version      Show current version
	-d            Enable debug logging
	-c            Run the CLI instead of the server
	-config path  Config file to load
	-dict path    Vocabulary file or directory (empty for the seed list)
	-limit n      Suggestions per token
	-maxdist n    Largest edit distance a correction may have
	-no-filter    Let the CLI look up numbers and symbols
	-rebuild      Rewrite the default config file and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/textassist/internal/cli"
	"github.com/bastiangx/textassist/internal/logger"
	"github.com/bastiangx/textassist/pkg/config"
	"github.com/bastiangx/textassist/pkg/dictionary"
	"github.com/bastiangx/textassist/pkg/server"
	"github.com/bastiangx/textassist/pkg/session"
	"github.com/bastiangx/textassist/pkg/wordindex"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "textassist"
	gh      = "https://github.com/bastiangx/textassist"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, vocabulary and session together and hands them to the
// server or the CLI. It does not implement logic for either.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	dictPath := flag.String("dict", "", "Vocabulary file or directory (overrides config), formats: "+formatHelp())
	limit := flag.Int("limit", -1, "Number of suggestions per token (overrides config)")
	maxDist := flag.Int("maxdist", -1, "Largest edit distance for corrections (overrides config)")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering (DBG only)")
	rebuild := flag.Bool("rebuild", false, "Rewrite the default config file and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *rebuild {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Config rebuilt at %s\n", config.GetActiveConfigPath(""))
		return
	}

	cfg, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedPath))

	applyFlags(cfg, *limit, *maxDist, *noFilter)

	vocabPath := cfg.DictPath(usedPath)
	if *dictPath != "" {
		vocabPath = *dictPath
	}

	index := wordindex.New()
	n, err := dictionary.LoadPath(vocabPath, index)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Vocabulary ready: %d words read, %d unique, %d trie nodes", n, index.Len(), index.Nodes())

	sess := session.New(index, cfg.SessionOptions())

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.Debug("Input info:",
			"limit", cfg.Editor.SuggestLimit,
			"maxDistance", cfg.Editor.MaxDistance,
			"noFilter", cfg.CLI.NoFilter)

		inputHandler := cli.NewInputHandler(sess, os.Stdout, cfg.CLI.Highlight, cfg.CLI.NoFilter)
		if err := inputHandler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(index, sess, cfg.Server, os.Stdin, os.Stdout)

	showStartupInfo(vocabPath, index.Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// applyFlags lets command line values override the config for this run.
// Negative flag values mean "not set".
func applyFlags(cfg *config.Config, limit, maxDist int, noFilter bool) {
	if limit >= 0 {
		cfg.Editor.SuggestLimit = limit
	}
	if maxDist >= 0 {
		cfg.Editor.MaxDistance = maxDist
	}
	if noFilter {
		cfg.CLI.NoFilter = true
	}
	cfg.Validate()
}

// formatHelp lists the vocabulary file types -dict accepts.
func formatHelp() string {
	var parts []string
	for _, info := range dictionary.ListSupportedFormats() {
		parts = append(parts, fmt.Sprintf("%s (%s)", info.Description, strings.Join(info.Extensions, ", ")))
	}
	return strings.Join(parts, "; ")
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ textassist ] completion, search and spelling for text areas")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(vocabPath string, words int) {
	if vocabPath == "" {
		vocabPath = "embedded seed list"
	}
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("dictionary: ( %s ), %d words", vocabPath, words)
	l.Info("status: ready")
}
