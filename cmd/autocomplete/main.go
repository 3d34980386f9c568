/*
Command autocomplete serves or exercises the error-tolerant prefix
autocomplete engine.

# Server Mode

By default the process loads a dictionary file and runs a MessagePack IPC
loop over stdin/stdout, answering one completion request per message.

# CLI Mode

Passing -c drops into an interactive shell: type a query, see ranked
suggestions. Passing -demo instead runs a fixed set of reference queries
once and prints their results, useful for sanity-checking a dictionary or a
change to the error model.

# Config

Runtime tuning (result limits, query length bounds) comes from a
config.toml file, created with defaults on first run if missing.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/inetis-oss/autocomplete/internal/cli"
	"github.com/inetis-oss/autocomplete/pkg/config"
	"github.com/inetis-oss/autocomplete/pkg/dictionary"
	"github.com/inetis-oss/autocomplete/pkg/keyboard"
	"github.com/inetis-oss/autocomplete/pkg/search"
	"github.com/inetis-oss/autocomplete/pkg/server"
	"github.com/inetis-oss/autocomplete/pkg/trie"
)

const (
	version = "0.1.0"
	appName = "autocomplete"
	repoURL = "https://github.com/inetis-oss/autocomplete"
)

// sigHandler exits cleanly on Ctrl+C / SIGTERM rather than leaving the
// terminal in whatever state the last prompt left it.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "config.toml", "Path to config.toml file")
	dictPath := flag.String("dict", defaultConfig.Dict.Path, "Path to the dictionary file")
	debugMode := flag.Bool("v", false, "Toggle verbose mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI instead of the IPC server")
	demoMode := flag.Bool("demo", false, "Run the fixed reference query list once and exit")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultResults, "Number of suggestions to return")
	maxQueryLen := flag.Int("maxlen", defaultConfig.Server.MaxQueryLen, "Maximum accepted query length")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, err := config.InitConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Only flags given on the command line override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Dict.Path = *dictPath
		case "limit":
			cfg.CLI.DefaultResults = *limit
		case "maxlen":
			cfg.Server.MaxQueryLen = *maxQueryLen
		}
	})

	log.Debugf("loading dictionary from %s", cfg.Dict.Path)
	t := trie.New()
	if err := dictionary.Load(cfg.Dict.Path, t); err != nil {
		log.Fatalf("failed to load dictionary: %v", err)
	}
	if err := t.Finalize(); err != nil {
		log.Fatalf("failed to finalize trie: %v", err)
	}

	engine := search.New(t, keyboard.NewDefault())

	if *demoMode {
		log.SetReportTimestamp(false)
		cli.NewInputHandler(engine, cfg.Server.MaxQueryLen, cfg.CLI.DefaultResults).RunDemo()
		return
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(engine, cfg.Server.MaxQueryLen, cfg.CLI.DefaultResults)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.New(engine, cfg)
	showStartupInfo(cfg.Dict.Path)
	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[autocomplete] error-tolerant prefix completion")
	logger.Print("", "version", version)
	logger.Print("")
	logger.Print("use --help to see available options")
	logger.Print("")
	logger.Print("Find out more at", "gh", repoURL)
}

func showStartupInfo(dictPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===============")
	println(" " + appName + " ")
	println("===============")
	log.Infof("version: %s", version)
	log.Infof("process id: [ %d ]", pid)
	log.Infof("dictionary: ( %s )", dictPath)
	log.Info("status: ready")
	println("===============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
