// Command sharpmove prints the sharp move for one or more positions.
//
//	sharpmove -fen "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1"
//	sharpmove -workers 4 "<fen>" "<fen>" ...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/stdr"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/engine"
	"github.com/hailam/sharpmove/internal/storage"
)

var (
	fen        = flag.String("fen", "", "position to analyse (further positions may follow as arguments)")
	workers    = flag.Int("workers", runtime.NumCPU(), "positions analysed in parallel")
	dbDir      = flag.String("db", "", "analysis cache directory (empty = no persistence)")
	verbosity  = flag.Int("v", 0, "log verbosity")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	candidates = flag.Bool("candidates", false, "list every candidate move")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	fens := flag.Args()
	if *fen != "" {
		fens = append([]string{*fen}, fens...)
	}
	if len(fens) == 0 {
		fens = []string{board.StartFEN}
	}

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Print("could not create CPU profile: ", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Print("could not start CPU profile: ", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	opts := engine.Options{Logger: logger}
	if *dbDir != "" {
		st, err := storage.Open(storage.Options{Dir: *dbDir, Logger: logger})
		if err != nil {
			log.Print("could not open analysis cache: ", err)
			return 1
		}
		defer st.Close()
		opts.Store = st
	}

	eng, err := engine.NewEngine(opts)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := eng.AnalyseBatch(ctx, fens, *workers)

	status := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%s → error: %v\n", r.FEN, r.Err)
			status = 1
			continue
		}
		printAnalysis(r)
	}
	if err != nil {
		logger.Error(err, "batch interrupted")
		return 1
	}

	fmt.Printf("%s positions, %s nodes in %s\n",
		humanize.Comma(int64(len(fens))),
		humanize.Comma(int64(eng.Nodes())),
		time.Since(start).Round(time.Millisecond))
	return status
}

func printAnalysis(r engine.BatchResult) {
	a := r.Analysis
	pos, _ := board.ParseFEN(r.FEN)

	material := 0
	if best, ok := a.Best(); ok {
		material = best.Material
		if pos.SideToMove == board.Black {
			material = -material
		}
	}

	fmt.Printf("%s → %s %s (%d safe replies, material %s)",
		r.FEN, a.Move.Arrow(), a.Move.ToSAN(pos), a.SafeReplies, engine.ScoreToString(material))
	if a.Source != engine.SourceSearch {
		fmt.Printf(" [%s]", a.Source)
	}
	fmt.Println()

	if *candidates {
		for _, c := range a.Candidates {
			fmt.Printf("    %-7s safe %2d / %2d  material %s\n",
				c.Move.ToSAN(pos), c.SafeReplies, c.Replies, engine.ScoreToString(c.Material))
		}
	}
}
