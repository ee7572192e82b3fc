package solver

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

const (
	initNbMaxClauses  = 2000  // Maximum # of learned clauses, at first.
	incrNbMaxClauses  = 300   // By how much # of learned clauses is incremented at each restart.
	incrPostponeNbMax = 1000  // By how much # of learned is increased when lots of good clauses are currently learned.
	clauseDecay       = 0.999 // By how much clauses bumping decays over time.
	defaultVarDecay   = 0.8   // On each var decay, how much the varInc should be decayed at startup
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbRestarts     int
	NbConflicts    int
	NbDecisions    int
	NbPropagations int
	NbUnitLearned  int // How many unit clauses were learned
	NbLearned      int // How many clauses were learned
	NbDeleted      int // How many learned clauses were deleted
	NbMinimized    int // How many literals were removed by clause minimization
	MaxLearnedLen  int // Length of the longest learned clause
	MaxTrailDepth  int // Peak number of simultaneously bound literals
}

// The level a decision was made.
// A negative value means "negative assignment at that level".
// A positive value means "positive assignment at that level".
type decLevel int

// A Model is a binding for several variables.
// It can be totally bound (i.e all vars have a true or false binding)
// or only partially (i.e some vars have no binding yet or their binding has no impact).
// Each var, in order, is associated with a binding. Bindings are implemented as
// decision levels:
// - a 0 value means the variable is free,
// - a positive value means the variable was set to true at the given decLevel,
// - a negative value means the variable was set to false at the given decLevel.
type Model []decLevel

func (m Model) String() string {
	bound := make(map[int]decLevel)
	for i := range m {
		if m[i] != 0 {
			bound[i+1] = m[i]
		}
	}
	return fmt.Sprintf("%v", bound)
}

// A Solver solves a given problem. It is the main data structure.
type Solver struct {
	Verbose bool  // Indicates whether the solver should display information during solving or not. False by default
	Stats   Stats // Statistics about the solving process.

	nbVars    int
	status    Status
	wl        watcherList
	trail     []Lit     // Current assignment stack
	model     Model     // 0 means unbound, other value is a binding
	lastModel Model     // Placeholder for last model found
	activity  []float64 // How often each var is involved in conflicts
	polarity  []bool    // Preferred sign for each var
	// For each var, clause considered when it was unified.
	// If the var is not bound yet, or if it was bound by a decision, value is nil.
	reason   []*Clause
	varQueue queue
	varInc   float64 // On each var bump, how big the increment should be
	varDecay float64 // On each var decay, how much the varInc should be decayed
	// On each clause bump, how big the increment should be
	clauseInc float32
	proof     *Proof // Clause derivation trace, nil unless certificates were asked for
	logger    *log.Logger

	// Search strategies, fixed at construction.
	vsids        bool
	restarts     bool
	learn        bool
	delete       bool
	minimize     bool
	maxConflicts int
	timeout      time.Duration
	deadline     time.Time
	stopped      bool // True when the conflict or time budget was exhausted

	localNbRestarts       int // How many restarts since Solve() was called?
	conflictsSinceRestart int
	restartThreshold      int

	litsBuf  []Lit // Buffer for lits in learnClause. Used to reduce allocations.
	minSeen  []int64
	minStamp int64
	minStack []Var
}

// New makes a solver, given a problem and a configuration.
func New(problem *Problem, cfg Config) *Solver {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "c ", 0)
	}
	var proof *Proof
	if cfg.Certified {
		proof = &Proof{}
	}
	if problem.Status == Unsat {
		if proof != nil {
			proof.addEmpty()
		}
		return &Solver{status: Unsat, proof: proof, logger: logger}
	}
	nbVars := problem.NbVars

	trailCap := nbVars
	if len(problem.Units) > trailCap {
		trailCap = len(problem.Units)
	}

	s := &Solver{
		nbVars:       nbVars,
		status:       problem.Status,
		trail:        make([]Lit, len(problem.Units), trailCap),
		model:        problem.Model,
		activity:     make([]float64, nbVars),
		polarity:     make([]bool, nbVars),
		reason:       make([]*Clause, nbVars),
		varInc:       1.0,
		varDecay:     defaultVarDecay,
		clauseInc:    1.0,
		proof:        proof,
		logger:       logger,
		vsids:        cfg.VSIDS,
		restarts:     cfg.Restarts,
		learn:        cfg.Learn,
		delete:       cfg.Delete,
		minimize:     cfg.Minimize,
		maxConflicts: cfg.MaxConflicts,
		timeout:      cfg.Timeout,
		litsBuf:      make([]Lit, 0, nbVars+1),
		minSeen:      make([]int64, nbVars),
		minStack:     make([]Var, 0, 64),
	}
	s.initWatcherList(problem.Clauses)
	s.varQueue = newQueue(s.activity)
	for i, lit := range problem.Units {
		if lit.IsPositive() {
			s.model[lit.Var()] = 1
		} else {
			s.model[lit.Var()] = -1
		}
		s.trail[i] = lit
	}
	return s
}

// Proof returns the clause derivation trace, or nil if certificates were not
// asked for. When the solver proved unsatisfiability, the trace is a DRAT
// certificate.
func (s *Solver) Proof() *Proof {
	return s.proof
}

// OutputModel outputs the result and, when the problem is satisfiable,
// the model, on w, using the DIMACS conventions.
func (s *Solver) OutputModel(w io.Writer) {
	if s.status == Sat || s.lastModel != nil {
		fmt.Fprintf(w, "s SATISFIABLE\nv ")
		model := s.model
		if s.lastModel != nil {
			model = s.lastModel
		}
		for i, val := range model {
			if val < 0 {
				fmt.Fprintf(w, "%d ", -i-1)
			} else {
				fmt.Fprintf(w, "%d ", i+1)
			}
		}
		fmt.Fprintf(w, "0\n")
	} else if s.status == Unsat {
		fmt.Fprintf(w, "s UNSATISFIABLE\n")
	} else {
		fmt.Fprintf(w, "s INDETERMINATE\n")
	}
}

// litStatus returns whether the literal is made true (Sat) or false (Unsat) by the
// current bindings, or if it is unbounded (Indet).
func (s *Solver) litStatus(l Lit) Status {
	assign := s.model[l.Var()]
	if assign == 0 {
		return Indet
	}
	if assign > 0 == l.IsPositive() {
		return Sat
	}
	return Unsat
}

func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.varDecay
}

func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 { // Rescaling is needed to avoid overflowing
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.varQueue.contains(int(v)) {
		s.varQueue.decrease(int(v))
	}
}

// Decays each clause's activity.
func (s *Solver) clauseDecayActivity() {
	s.clauseInc *= 1 / clauseDecay
}

// Bumps the given clause's activity.
func (s *Solver) clauseBumpActivity(c *Clause) {
	if c.Learned() {
		c.activity += s.clauseInc
		if c.activity > 1e30 { // Rescale to avoid overflow
			for _, c2 := range s.wl.clauses[s.wl.nbOriginal:] {
				c2.activity *= 1e-30
			}
			s.clauseInc *= 1e-30
		}
	}
}

// Chooses an unbound literal to be tested, or -1
// if all the variables are already bound.
func (s *Solver) chooseLit() Lit {
	v := Var(-1)
	if s.vsids {
		for v == -1 && !s.varQueue.empty() {
			if v2 := Var(s.varQueue.removeMin()); s.model[v2] == 0 { // Ignore already bound vars
				v = v2
			}
		}
	} else {
		// Static order: smallest unbound var first.
		for v2 := 0; v2 < s.nbVars; v2++ {
			if s.model[v2] == 0 {
				v = Var(v2)
				break
			}
		}
	}
	if v == -1 {
		return Lit(-1)
	}
	s.Stats.NbDecisions++
	return v.SignedLit(!s.polarity[v])
}

func abs(val decLevel) decLevel {
	if val < 0 {
		return -val
	}
	return val
}

// Reinitializes bindings (both model & reason) for all variables bound at a decLevel > lvl,
// and saves their polarity for future decisions.
func (s *Solver) cleanupBindings(lvl decLevel) {
	i := 0
	for i < len(s.trail) && abs(s.model[s.trail[i].Var()]) <= lvl {
		i++
	}
	for j := i; j < len(s.trail); j++ {
		lit2 := s.trail[j]
		v := lit2.Var()
		s.model[v] = 0
		if s.reason[v] != nil {
			s.reason[v].unlock()
			s.reason[v] = nil
		}
		s.polarity[v] = lit2.IsPositive()
		if !s.varQueue.contains(int(v)) {
			s.varQueue.insert(int(v))
		}
	}
	s.trail = s.trail[:i]
}

// Given the last learnt clause and the levels at which vars were bound,
// returns the level to backtrack to and the literal to bind.
func backtrackData(c *Clause, model []decLevel) (btLevel decLevel, lit Lit) {
	btLevel = abs(model[c.Get(1).Var()])
	return btLevel, c.Get(0)
}

func (s *Solver) rebuildOrderHeap() {
	ints := make([]int, 0, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.model[v] == 0 {
			ints = append(ints, v)
		}
	}
	s.varQueue.build(ints)
}

// mustStop returns true when the conflict or time budget is exhausted.
func (s *Solver) mustStop() bool {
	if s.maxConflicts > 0 && s.Stats.NbConflicts >= s.maxConflicts {
		return true
	}
	return !s.deadline.IsZero() && s.Stats.NbConflicts&255 == 0 && time.Now().After(s.deadline)
}

// propagateAndSearch binds the given lit, propagates it and searches for a solution,
// until it is found or a restart is needed.
func (s *Solver) propagateAndSearch(lit Lit, lvl decLevel) Status {
	for lit != -1 {
		if conflict := s.unifyLiteral(lit, lvl); conflict == nil { // Pick new branch or restart
			if s.restarts && s.learn && s.conflictsSinceRestart >= s.restartThreshold {
				s.cleanupBindings(1)
				return Indet
			}
			if s.learn && s.delete && s.Stats.NbConflicts >= s.wl.idxReduce*s.wl.nbMax {
				s.wl.idxReduce = s.Stats.NbConflicts/s.wl.nbMax + 1
				s.reduceLearned()
				s.bumpNbMax()
			}
			lvl++
			lit = s.chooseLit()
		} else { // Deal with conflict
			s.Stats.NbConflicts++
			s.conflictsSinceRestart++
			if s.mustStop() {
				s.stopped = true
				s.cleanupBindings(1)
				return Indet
			}
			if s.Stats.NbConflicts%5000 == 0 && s.varDecay < 0.95 {
				s.varDecay += 0.01
			}
			if !s.learn {
				var status Status
				if lit, lvl, status = s.flipLastDecision(lvl); status == Unsat {
					return Unsat
				}
				continue
			}
			learnt, unit := s.learnClause(conflict, lvl)
			if learnt == nil { // Unit clause was learned: this lit is known for sure
				if s.proof != nil {
					s.proof.addUnit(unit)
				}
				if abs(s.model[unit.Var()]) == 1 && s.litStatus(unit) == Unsat { // Top-level conflict
					return s.setUnsat()
				}
				s.Stats.NbUnitLearned++
				s.cleanupBindings(1)
				if conflict = s.unifyLiteral(unit, 1); conflict != nil { // Top-level conflict
					return s.setUnsat()
				}
				s.rebuildOrderHeap()
				lit = s.chooseLit()
				lvl = 2
			} else {
				s.Stats.NbLearned++
				if learnt.Len() > s.Stats.MaxLearnedLen {
					s.Stats.MaxLearnedLen = learnt.Len()
				}
				if s.proof != nil {
					s.proof.addClause(learnt)
				}
				s.addLearned(learnt)
				lvl, lit = backtrackData(learnt, s.model)
				s.cleanupBindings(lvl)
				s.reason[lit.Var()] = learnt
				learnt.lock()
			}
		}
	}
	return Sat
}

// flipLastDecision deals with a conflict when clause learning is disabled:
// the negations of the current decisions form a conflict clause, which is used
// as the reason for flipping the last decision, without being stored.
// It returns the next literal to bind and the level to bind it at, or
// an Unsat status on a top-level conflict.
func (s *Solver) flipLastDecision(lvl decLevel) (Lit, decLevel, Status) {
	learnt := s.learnDecisionClause(lvl)
	if s.proof != nil {
		s.proof.addClause(learnt)
	}
	if learnt.Len() == 0 {
		return -1, 1, s.setUnsat()
	}
	if learnt.Len() == 1 { // Only one decision was made: flip it at top-level
		unit := learnt.First()
		s.Stats.NbUnitLearned++
		s.cleanupBindings(1)
		if s.unifyLiteral(unit, 1) != nil {
			return -1, 1, s.setUnsat()
		}
		s.rebuildOrderHeap()
		return s.chooseLit(), 2, Indet
	}
	btLvl, lit := backtrackData(learnt, s.model)
	s.cleanupBindings(btLvl)
	s.reason[lit.Var()] = learnt
	learnt.lock()
	return lit, btLvl, Indet
}

// Sets the status to unsat, records the empty clause and does cleanup tasks.
func (s *Solver) setUnsat() Status {
	if s.proof != nil {
		s.proof.addEmpty()
	}
	s.status = Unsat
	return Unsat
}

// Searches until a solution is found, a restart is needed or the budget runs out.
func (s *Solver) search() Status {
	s.localNbRestarts++
	s.conflictsSinceRestart = 0
	s.restartThreshold = restartBase * int(luby(uint(s.localNbRestarts)))
	lvl := decLevel(2) // Level starts at 2, for implementation reasons: 1 is for top-level bindings; 0 means "no level assigned yet"
	s.status = s.propagateAndSearch(s.chooseLit(), lvl)
	return s.status
}

// Solve solves the problem associated with the solver and returns the appropriate status.
// When the budget runs out before an answer was found, the status is Indet.
func (s *Solver) Solve() Status {
	if s.status == Unsat {
		return s.status
	}
	s.status = Indet
	s.stopped = false
	s.localNbRestarts = 0
	if s.timeout > 0 {
		s.deadline = time.Now().Add(s.timeout)
	}
	var end chan struct{}
	if s.Verbose {
		end = make(chan struct{})
		defer close(end)
		go func() { // Display stats during resolution
			ticker := time.NewTicker(3 * time.Second)
			defer ticker.Stop()
			for { // There might be concurrent access in a few places but this is okay since we are very conservative and don't modify state.
				select {
				case <-ticker.C:
				case <-end:
					return
				}
				if s.status == Indet {
					s.logger.Printf("restarts=%d conflicts=%d learned=%d deleted=%d units=%d/%d",
						s.Stats.NbRestarts+1, s.Stats.NbConflicts, s.wl.nbLearned, s.Stats.NbDeleted, s.Stats.NbUnitLearned, s.nbVars)
				}
			}
		}()
	}
	for s.status == Indet {
		s.search()
		if s.status == Indet {
			if s.stopped {
				break
			}
			s.Stats.NbRestarts++
			s.rebuildOrderHeap()
		}
	}
	if s.status == Sat {
		s.lastModel = make(Model, len(s.model))
		copy(s.lastModel, s.model)
	}
	return s.status
}

// Model returns a slice that associates, to each variable, its binding.
// If s's status is not Sat, the method will panic.
func (s *Solver) Model() []bool {
	if s.lastModel == nil {
		panic("cannot call Model() from a non-Sat solver")
	}
	res := make([]bool, s.nbVars)
	for i, lvl := range s.lastModel {
		res[i] = lvl > 0
	}
	return res
}
