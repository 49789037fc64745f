package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/handiism/id3-recode/internal/config"
	"github.com/handiism/id3-recode/internal/convert"
	"github.com/handiism/id3-recode/internal/inspect"
	"github.com/handiism/id3-recode/internal/logging"
	"github.com/handiism/id3-recode/internal/recode"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailed      = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	// Command line flags
	var (
		backupFlag      = flag.Bool("backup", false, "Keep an unmodified copy of each rewritten file")
		configFlag      = flag.String("config", "", "Path to config file (default: XDG config dir)")
		verboseFlag     = flag.Bool("verbose", false, "Show every corrected field")
		jobsFlag        = flag.Int("jobs", 1, "Number of files converted in parallel")
		codecFlag       = flag.String("codec", recode.DefaultCodec, "Codec the tag bytes were really written in (cp932, euc-jp)")
		dryRunFlag      = flag.Bool("dry-run", false, "Show what would change without writing")
		logFormatFlag   = flag.String("log-format", config.LogFormatText, "Output format: text or json")
		writeConfigFlag = flag.String("write-config", "", "Write the effective settings to this path")
	)

	flag.Parse()

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitFailed
	}

	// Flags given explicitly override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backup":
			settings.Backup = *backupFlag
		case "verbose":
			settings.Verbose = *verboseFlag
		case "jobs":
			settings.MaxConcurrentFiles = *jobsFlag
		case "codec":
			settings.SourceCodec = *codecFlag
		case "log-format":
			settings.LogFormat = *logFormatFlag
		}
	})

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		return exitFailed
	}

	if *writeConfigFlag != "" {
		if err := settings.Save(*writeConfigFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			return exitFailed
		}
		fmt.Printf("Settings written to %s\n", *writeConfigFlag)
		if flag.NArg() == 0 {
			return exitOK
		}
	}

	if flag.NArg() == 0 {
		fmt.Println("id3recode - repair Japanese ID3 tags stored as Latin-1")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  id3recode [options] <file or directory>...")
		fmt.Println()
		fmt.Println("For interactive mode, use: id3recode-tui")
		fmt.Println()
		flag.PrintDefaults()
		return exitFailed
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	handler, err := logging.New(settings.LogFormat, os.Stdout, settings.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}
	text := settings.LogFormat == config.LogFormatText

	manager := convert.NewManager(settings, handler)
	if err := manager.Initialize(ctx, flag.Args()); err != nil {
		if ctx.Err() != nil {
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return exitFailed
	}

	if *dryRunFlag {
		return dryRun(ctx, settings, manager.Files())
	}

	if text {
		fmt.Println()
	}

	if err := manager.Start(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Conversion cancelled.")
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Error during conversion: %v\n", err)
		return exitFailed
	}

	summary := manager.Summary()
	if text {
		fmt.Println()
		fmt.Printf("Converted %d, skipped %d, failed %d of %d file(s) (%s)\n",
			summary.Converted, summary.Skipped, summary.Failed, summary.Files, humanize.Bytes(uint64(summary.Bytes)))
		fmt.Printf("%d field(s) corrected", summary.Changed)
		if summary.Escalated > 0 {
			fmt.Printf(", %d file(s) written as ID3v2.4", summary.Escalated)
		}
		fmt.Println()
	}

	if !summary.OK() {
		return exitFailed
	}
	return exitOK
}

// dryRun prints the inspection report of every file without writing.
func dryRun(ctx context.Context, settings *config.Settings, files []string) int {
	r, err := recode.NewReinterpreter(settings.SourceCodec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}

	code := exitOK
	for _, path := range files {
		if ctx.Err() != nil {
			return exitInterrupted
		}

		report, err := inspect.Inspect(path, r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "'%s' cannot be read: %v\n", path, err)
			code = exitFailed
			continue
		}
		if err := report.Write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitFailed
		}
		fmt.Println()
	}
	return code
}
