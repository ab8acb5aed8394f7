package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"wcc-go/packages/compiler/src/config"
)

func usage() {
	fmt.Println(`wcc-go - template compiler and callback instrumenter
Usage: wcc-go <command> [flags] [path]

Commands:
  compile [-config file] [-o dir] <path>   Parse templates (.html) and print their view forest
  rewrite [-config file] [-o dir] <path>   Instrument then/catch callbacks of TypeScript classes (.ts)
  init [-config file]                      Write the default configuration
  help                                     Show help`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	switch cmd {
	case "help", "-h", "--help":
		usage()
	case "compile", "rewrite":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		configPath := fs.String("config", config.ConfigFileName, "configuration file")
		outputPath := fs.String("o", "", "output directory (default: stdout)")
		fs.Parse(os.Args[2:])
		path := "."
		if fs.NArg() > 0 {
			path = fs.Arg(0)
		}

		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
		logger := newLogger(cfg)

		if cmd == "compile" {
			err = CompileTemplates(path, *outputPath, cfg, logger)
		} else {
			err = RewriteProject(path, *outputPath, cfg, logger)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s error: %v\n", cmd, err)
			os.Exit(1)
		}
	case "init":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		configPath := fs.String("config", config.ConfigFileName, "configuration file")
		fs.Parse(os.Args[2:])
		if _, err := os.Stat(*configPath); err == nil {
			fmt.Fprintf(os.Stderr, "init error: %s already exists\n", *configPath)
			os.Exit(1)
		}
		if err := config.SaveConfig(*configPath, config.NewCompilerConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "init error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *configPath)
	default:
		usage()
		os.Exit(1)
	}
}

func newLogger(cfg *config.CompilerConfig) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
