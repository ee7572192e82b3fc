package solver

import (
	"bytes"
	"testing"

	"github.com/kr/pretty"

	"github.com/ovesen/noctua/check"
	"github.com/ovesen/noctua/gen"
)

func TestParseSliceUnsat(t *testing.T) {
	cnf := [][]int{{1, 2, 3}, {-1}, {-2}, {-3}}
	pb := ParseSlice(cnf)
	s := New(pb, DefaultConfig())
	if status := s.Solve(); status != Unsat {
		t.Fatalf("expected unsat for problem %v, got %v", cnf, status)
	}
}

func TestParseSliceSat(t *testing.T) {
	cnf := [][]int{{1}, {-2, 3}, {-2, 4}, {-5, 3}, {-5, 6}, {-7, 3}, {-7, 8}, {-9, 10}, {-9, 4}, {-1, 10}, {-1, 6}, {3, 10}, {-3, -10}, {4, 6, 8}}
	pb := ParseSlice(cnf)
	s := New(pb, DefaultConfig())
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat for problem %v, got %v", cnf, status)
	}
	if !pb.Satisfied(s.Model()) {
		t.Errorf("model %v does not satisfy problem %v", s.Model(), cnf)
	}
}

func TestParseSliceTrivial(t *testing.T) {
	cnf := [][]int{{1}, {-1}}
	pb := ParseSlice(cnf)
	s := New(pb, DefaultConfig())
	if status := s.Solve(); status != Unsat {
		t.Fatalf("expected unsat for problem %v, got %v", cnf, status)
	}
	if s.Stats.NbDecisions != 0 {
		t.Errorf("expected no decision on trivially unsat problem, got %d", s.Stats.NbDecisions)
	}
}

func TestSatEitherModel(t *testing.T) {
	cnf := [][]int{{1, 2}, {-1, -2}}
	pb := ParseSlice(cnf)
	s := New(pb, DefaultConfig())
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat for problem %v, got %v", cnf, status)
	}
	m := s.Model()
	if m[0] == m[1] {
		t.Errorf("expected exactly one of the two vars to be true, got %v", m)
	}
}

func TestUnitConflictAtRoot(t *testing.T) {
	// The unit clause {5} conflicts with what the two other clauses propagate.
	cnf := [][]int{{5}, {-5, 6}, {-6}}
	pb := ParseSlice(cnf)
	s := New(pb, DefaultConfig())
	if status := s.Solve(); status != Unsat {
		t.Fatalf("expected unsat for problem %v, got %v", cnf, status)
	}
	if s.Stats.NbDecisions != 0 {
		t.Errorf("expected a root level conflict without decisions, got %d decisions", s.Stats.NbDecisions)
	}
}

func TestEmptyProblem(t *testing.T) {
	pb := ParseSlice(nil)
	s := New(pb, DefaultConfig())
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat for the empty problem, got %v", status)
	}
}

func TestRootPropagationUnsat(t *testing.T) {
	// Propagating -2 makes both remaining clauses unit on opposite polarities of 1.
	cnf := [][]int{{1, 2}, {-1, 2}, {-2}}
	cfg := DefaultConfig()
	cfg.Certified = true
	pb := ParseSlice(cnf)
	s := New(pb, cfg)
	if status := s.Solve(); status != Unsat {
		t.Fatalf("expected unsat for problem %v, got %v", cnf, status)
	}
	var buf bytes.Buffer
	if err := s.Proof().WriteText(&buf); err != nil {
		t.Fatalf("could not write certificate: %v", err)
	}
	valid, err := check.New(cnf, 2).Unsat(&buf)
	if err != nil {
		t.Fatalf("could not check certificate: %v", err)
	}
	if !valid {
		t.Errorf("invalid certificate for problem %v", cnf)
	}
}

// allConfigs returns the 32 combinations of the five strategy toggles.
func allConfigs() []Config {
	var res []Config
	for mask := 0; mask < 32; mask++ {
		res = append(res, Config{
			VSIDS:    mask&1 != 0,
			Restarts: mask&2 != 0,
			Learn:    mask&4 != 0,
			Delete:   mask&8 != 0,
			Minimize: mask&16 != 0,
		})
	}
	return res
}

func TestStrategyMatrixUnsat(t *testing.T) {
	cnf := gen.Php(5, 4)
	for _, cfg := range allConfigs() {
		cfg.Certified = true
		s := New(ParseSlice(cnf), cfg)
		if status := s.Solve(); status != Unsat {
			t.Fatalf("expected unsat on the pigeonhole formula, got %v with %s", status, pretty.Sprint(cfg))
		}
		var buf bytes.Buffer
		if err := s.Proof().WriteText(&buf); err != nil {
			t.Fatalf("could not write certificate: %v", err)
		}
		valid, err := check.New(cnf, 20).Unsat(&buf)
		if err != nil {
			t.Fatalf("could not check certificate: %v", err)
		}
		if !valid {
			t.Errorf("invalid certificate with %s", pretty.Sprint(cfg))
		}
	}
}

func TestStrategyMatrixSat(t *testing.T) {
	cnf, err := gen.Rand(30, 100, 3, 42)
	if err != nil {
		t.Fatal(err)
	}
	pb := ParseSlice(cnf)
	ref := New(pb, DefaultConfig())
	expected := ref.Solve()
	for _, cfg := range allConfigs() {
		pb := ParseSlice(cnf)
		s := New(pb, cfg)
		if status := s.Solve(); status != expected {
			t.Fatalf("expected %v, got %v with %s", expected, status, pretty.Sprint(cfg))
		}
		if expected == Sat && !pb.Satisfied(s.Model()) {
			t.Errorf("model does not satisfy the formula with %s", pretty.Sprint(cfg))
		}
	}
}

func TestMaxConflicts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConflicts = 1
	s := New(ParseSlice(gen.Php(7, 6)), cfg)
	if status := s.Solve(); status != Indet {
		t.Fatalf("expected indet with a 1-conflict budget, got %v", status)
	}
	if s.Stats.NbConflicts != 1 {
		t.Errorf("expected exactly 1 conflict, got %d", s.Stats.NbConflicts)
	}
}

func TestBacktrackRestoresTrail(t *testing.T) {
	// The first two decisions conflict with clause {-1, -2}; after learning,
	// the solver must come back to a trail where 1 is still bound.
	cnf := [][]int{{1, 2}, {-1, -2}, {1, 3}, {-3, -1, -2}}
	pb := ParseSlice(cnf)
	s := New(pb, DefaultConfig())
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
	for i := 1; i < len(s.trail); i++ {
		if abs(s.model[s.trail[i].Var()]) < abs(s.model[s.trail[i-1].Var()]) {
			t.Fatalf("trail is not sorted by level: %v", s.trail)
		}
	}
	if !pb.Satisfied(s.Model()) {
		t.Errorf("model %v does not satisfy %v", s.Model(), cnf)
	}
}

func TestPebblingNoRestart(t *testing.T) {
	// Pebbling formulas are a worst case for restart-less solvers; this one
	// is small enough to stay fast whatever the strategy.
	cnf := gen.Pebbling(4)
	for _, restarts := range []bool{false, true} {
		cfg := DefaultConfig()
		cfg.Restarts = restarts
		s := New(ParseSlice(cnf), cfg)
		if status := s.Solve(); status != Unsat {
			t.Fatalf("expected unsat on the pebbling formula (restarts=%v), got %v", restarts, status)
		}
	}
}

func TestStatsDecisions(t *testing.T) {
	cnf := [][]int{{1, 2}, {-1, 2, 3}, {-3, 4}, {-2, -4, 1}}
	s := New(ParseSlice(cnf), DefaultConfig())
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
	if s.Stats.NbDecisions == 0 {
		t.Error("expected at least one decision")
	}
}
