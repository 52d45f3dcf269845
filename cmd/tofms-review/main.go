package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/tofms-review/internal/config"
	"github.com/ironsheep/tofms-review/internal/logging"
	"github.com/ironsheep/tofms-review/internal/review"
	"github.com/ironsheep/tofms-review/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var configPath string
	var positional []string
	for i := 0; i < len(args); i++ {
		switch a := args[i]; a {
		case "--version", "-v", "version":
			fmt.Printf("tofms-review %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp()
			return 0
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config needs a path")
				return 2
			}
			i++
			configPath = args[i]
		default:
			positional = append(positional, a)
		}
	}

	log := logging.FromEnv()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	cmd := "serve"
	if len(positional) > 0 {
		cmd = positional[0]
		positional = positional[1:]
	}

	switch cmd {
	case "serve":
		server.Version = Version
		log.Debug().Str("version", Version).Str("built", BuildTime).Str("commit", GitCommit).Msg("tool server starting")
		srv := server.New(cfg, logging.Component(log, "server"))
		if err := srv.Run(); err != nil {
			log.Error().Err(err).Msg("server error")
			return 1
		}
		return 0

	case "plots", "images":
		if len(positional) != 1 {
			fmt.Fprintf(os.Stderr, "usage: tofms-review %s <dir>\n", cmd)
			return 2
		}
		return batch(cmd, positional[0], cfg, log)

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (try --help)\n", cmd)
		return 2
	}
}

func batch(cmd, dir string, cfg *config.Config, log zerolog.Logger) int {
	var rep *review.Report
	var err error
	if cmd == "plots" {
		s := &review.PlotSession{Config: cfg, Log: logging.Component(log, "plots")}
		rep, err = s.Run(dir)
	} else {
		clog := logging.Component(log, "images")
		s := &review.ImageSession{Config: cfg, ROIs: review.SidecarROIs{Log: clog}, Log: clog}
		rep, err = s.Run(dir)
	}
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("batch aborted")
		return 1
	}

	for kind, n := range rep.FailuresByKind() {
		log.Warn().Str("kind", string(kind)).Int("files", n).Msg("files skipped")
	}
	fmt.Printf("%d of %d files written to %s\n", len(rep.Processed), rep.Total(), rep.OutputDir)
	return 0
}

func printHelp() {
	fmt.Println("tofms-review - TOF-MS signal review and ROI colour filtering")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tofms-review [options] [serve]         JSON-RPC tool server on stdin/stdout")
	fmt.Println("  tofms-review [options] plots <dir>     Render a plot of every sample file in dir")
	fmt.Println("  tofms-review [options] images <dir>    Highlight in-range colours inside ROIs")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c <file>  YAML configuration file")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println()
	fmt.Println("ROIs for images are read from <image>" + review.SidecarSuffix + ", a list of")
	fmt.Println("[[x1, y1], [x2, y2]] corner pairs. Images without one get no ROIs.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  TOFMS_CONFIG=<file>          Configuration file when --config is not given")
	fmt.Println("  TOFMS_OUTPUT_ROOT=<dir>      Parent of the outputs_<timestamp> directory")
	fmt.Println("  TOFMS_SIGNAL_RATIO=<ratio>   Initial signal ratio")
	fmt.Println("  TOFMS_LOG_LEVEL=debug        debug, info, warn or error (default: info)")
	fmt.Println("  TOFMS_LOG_FORMAT=console     console or json (default: console on a terminal)")
}
