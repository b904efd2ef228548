package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/go-logr/stdr"

	"github.com/hailam/sharpmove/internal/engine"
	"github.com/hailam/sharpmove/internal/storage"
	"github.com/hailam/sharpmove/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "analysis cache directory (empty = memory only)")
	verbosity  = flag.Int("v", 0, "log verbosity")
)

func main() {
	flag.Parse()

	// UCI owns stdout, so logs go to stderr.
	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", "path", profilePath)
	}

	opts := engine.Options{Logger: logger}
	if *dbDir != "" {
		st, err := storage.Open(storage.Options{Dir: *dbDir, Logger: logger})
		if err != nil {
			log.Fatal("could not open analysis cache: ", err)
		}
		defer st.Close()
		opts.Store = st
	}

	eng, err := engine.NewEngine(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	// Create and run UCI protocol handler
	protocol := uci.New(eng, os.Stdout, logger)
	if err := protocol.Run(os.Stdin); err != nil {
		logger.Error(err, "reading commands")
	}
}
