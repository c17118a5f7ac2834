// Vantage is a data-driven engine for point-and-click adventure worlds.
// Usage: vantage [--version] [--plain] [--config <file>] [--script <file>] [--trace] <world_directory>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marisk/vantage/cli"
	"github.com/marisk/vantage/config"
	"github.com/marisk/vantage/engine"
	"github.com/marisk/vantage/loader"
	"github.com/marisk/vantage/logger"
	"github.com/marisk/vantage/script"
	"github.com/marisk/vantage/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	var worldDir string
	var configFile string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("vantage %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--config requires a file path\n")
				os.Exit(1)
			}
			i++
			configFile = args[i]
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if worldDir == "" {
				worldDir = args[i]
			}
		}
	}

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if worldDir == "" {
		worldDir = cfg.World
	}
	if worldDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: vantage [--version] [--plain] [--config <file>] [--script <file>] [--trace] <world_directory>\n")
		os.Exit(1)
	}

	log, logCloser, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	w, err := loader.LoadWorldDir(worldDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(w, cfg, log)
	scripts := script.NewManager(eng, worldDir, filepath.Join(worldDir, "..", "common"), log)
	defer scripts.Close()
	eng.Scripts = scripts

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
