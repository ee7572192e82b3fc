package solver

import (
	"log"
	"time"
)

// A Config selects the strategies used during search. It is consumed once,
// when the solver is created; changing it afterwards has no effect.
//
// Every subset of the five strategy toggles is valid. Delete and Minimize
// only act on learned clauses, so they silently become no-ops when Learn is
// false. Restarts also require Learn: without a growing clause database a
// restart would replay the exact same search, so the schedule is suppressed
// when learning is off.
type Config struct {
	VSIDS    bool // Pick branch variables by decaying conflict activity rather than index order.
	Restarts bool // Restart search on the Luby schedule.
	Learn    bool // Keep conflict clauses in the database. When false, conflicts only drive backjumping.
	Delete   bool // Periodically forget low-value learned clauses.
	Minimize bool // Shrink learned clauses by removing redundant literals.

	// Certified makes the solver record every deduced and deleted clause so
	// that, on an unsatisfiable instance, a DRAT trace can be retrieved with
	// Solver.Proof.
	Certified bool

	// MaxConflicts aborts the search with Indet once that many conflicts
	// occurred. Zero or negative means no limit.
	MaxConflicts int
	// Timeout aborts the search with Indet once the wall clock budget is
	// spent. Zero means no limit.
	Timeout time.Duration

	// Logger receives progress information when the solver is Verbose.
	// If nil, lines prefixed with "c " are written on stdout.
	Logger *log.Logger
}

// DefaultConfig returns the configuration with all search strategies
// enabled. This is the strongest and recommended setting; individual
// toggles exist to measure what each strategy contributes.
func DefaultConfig() Config {
	return Config{
		VSIDS:    true,
		Restarts: true,
		Learn:    true,
		Delete:   true,
		Minimize: true,
	}
}
