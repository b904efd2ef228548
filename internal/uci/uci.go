// Package uci speaks the Universal Chess Interface over a reader/writer pair.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/engine"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position board.Position
	log      logr.Logger

	mu  sync.Mutex // guards out
	out io.Writer

	// Search state
	searching  bool
	searchDone chan struct{}
}

// New creates a new UCI protocol handler writing responses to out.
func New(eng *engine.Engine, out io.Writer, log logr.Logger) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		out:      out,
		log:      log.WithName("uci"),
	}
}

// Position returns the current position.
func (u *UCI) Position() board.Position {
	return u.position
}

// Run reads commands from in until "quit" or end of input. A running
// search is waited for before Run returns.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	defer u.handleStop()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]
		u.log.V(2).Info("command", "line", line)

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.handleStop()
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handleStop()
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.handleStop()
			u.println(u.position.String())
		case "eval":
			u.handleEval()
		case "perft":
			u.handleStop()
			u.handlePerft(args)
		default:
			u.printf("info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

func (u *UCI) println(a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, a...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name SharpMove")
	u.println("id author SharpMove Team")
	u.println()
	u.println("option name Cache type check default true")
	u.println("uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.handleStop()
	u.engine.Clear()
	u.position = board.NewPosition()
}

// handlePosition parses and sets up a position. The current position is
// kept if the FEN is malformed or any move is illegal.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	pos, err := parsePosition(args)
	if err != nil {
		u.log.V(1).Info("rejected position", "err", err.Error())
		u.printf("info string %v\n", err)
		return
	}
	u.position = pos
}

func parsePosition(args []string) (board.Position, error) {
	if len(args) == 0 {
		return board.Position{}, errors.New("position: missing startpos or fen")
	}

	// Find "moves" keyword
	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		fenStr := strings.Join(args[1:movesAt], " ")
		p, err := board.ParseFEN(fenStr)
		if err != nil {
			return board.Position{}, fmt.Errorf("invalid FEN %q: %w", fenStr, err)
		}
		pos = p
	default:
		return board.Position{}, fmt.Errorf("position: unknown keyword %q", args[0])
	}

	// Apply moves
	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			move, err := board.ParseMove(moveStr)
			if err != nil {
				return board.Position{}, fmt.Errorf("invalid move %s: %w", moveStr, err)
			}
			ok, err := pos.IsLegal(move)
			if err != nil {
				return board.Position{}, fmt.Errorf("move %s: %w", moveStr, err)
			}
			if !ok {
				return board.Position{}, fmt.Errorf("move %s: %w", moveStr, board.ErrIllegalMove)
			}
			pos = pos.ApplyMove(move)
		}
	}

	return pos, nil
}

// handleGo starts a search. Limits are accepted and ignored: the search is a
// fixed two plies.
func (u *UCI) handleGo(args []string) {
	u.handleStop()
	if len(args) > 0 {
		u.log.V(1).Info("ignoring search limits", "args", strings.Join(args, " "))
	}

	// Configure info callback
	u.engine.OnInfo = u.sendInfo

	u.searching = true
	u.searchDone = make(chan struct{})
	pos := u.position

	go func() {
		defer close(u.searchDone)

		bestMove, err := u.engine.Search(pos)
		switch {
		case errors.Is(err, engine.ErrNoLegalMoves):
			// Only send 0000 for checkmate/stalemate (no legal moves)
			u.println("bestmove 0000")
		case err != nil:
			u.log.Error(err, "search failed")
			u.printf("info string %v\n", err)
			u.println("bestmove 0000")
		default:
			u.printf("bestmove %s\n", bestMove)
		}
	}()
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, "depth 2")
	parts = append(parts, fmt.Sprintf("score cp %d", info.Score*100))
	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if info.Move != board.NoMove {
		parts = append(parts, "pv "+info.Move.String())
	}
	u.printf("info %s\n", strings.Join(parts, " "))
	u.printf("info string safereplies %d candidates %d source %s\n",
		info.SafeReplies, info.Candidates, info.Source)
}

// handleStop waits for the current search. A search cannot be interrupted,
// so stop only delays the next command until bestmove has been sent.
func (u *UCI) handleStop() {
	if u.searching {
		<-u.searchDone // Wait for search to finish
		u.searching = false
	}
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	// Handle options
	switch strings.ToLower(name) {
	case "cache":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			u.printf("info string Invalid value for Cache: %s\n", value)
			return
		}
		u.handleStop()
		u.engine.SetCache(enabled)
	default:
		u.printf("info string Unknown option: %s\n", name)
	}
}

// handleEval prints the material balance of the current position.
func (u *UCI) handleEval() {
	u.handleStop()
	u.printf("info string material %s side %s\n",
		engine.ScoreToString(engine.MaterialScore(u.position)),
		engine.ScoreToString(engine.Evaluate(u.position)))
}

// handlePerft runs a perft test and prints the per-move breakdown.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.printf("info string Invalid perft depth: %s\n", args[0])
			return
		}
		depth = d
	}

	entries, total, err := engine.Divide(u.position, depth)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}

	for _, e := range entries {
		u.printf("%s: %d\n", e.Move, e.Nodes)
	}
	u.printf("\nNodes searched: %d\n", total)
}
