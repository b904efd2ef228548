package board

// Zobrist hash keys for position hashing. Only piece placement and side to
// move are hashed; the carried-through FEN fields have no effect on play.
// Uses PRNG with fixed seed for reproducibility, so hashes are stable across
// runs and can key the persistent analysis cache.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A8; sq <= H1; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()
}

// Hash computes the Zobrist hash of the position from scratch.
func (p Position) Hash() uint64 {
	var hash uint64

	for sq := A8; sq <= H1; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() {
			continue
		}
		hash ^= zobristPiece[piece.Color()][piece.Type()][sq]
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	return hash
}
