package solver

import (
	"bytes"
	"strings"
	"testing"
)

func TestProofWriteText(t *testing.T) {
	var pf Proof
	pf.addClause(NewLearnedClause([]Lit{IntToLit(1), IntToLit(-3)}))
	pf.addDeletion(NewLearnedClause([]Lit{IntToLit(1), IntToLit(-3)}))
	pf.addUnit(IntToLit(-2))
	pf.addEmpty()
	var buf bytes.Buffer
	if err := pf.WriteText(&buf); err != nil {
		t.Fatalf("could not write proof: %v", err)
	}
	expected := "1 -3 0\nd 1 -3 0\n-2 0\n0\n"
	if buf.String() != expected {
		t.Errorf("invalid proof: expected %q, got %q", expected, buf.String())
	}
}

func TestProofEndsWithEmptyClause(t *testing.T) {
	cnf := [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	cfg := DefaultConfig()
	cfg.Certified = true
	s := New(ParseSlice(cnf), cfg)
	if status := s.Solve(); status != Unsat {
		t.Fatalf("expected unsat, got %v", status)
	}
	var buf bytes.Buffer
	if err := s.Proof().WriteText(&buf); err != nil {
		t.Fatalf("could not write proof: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if lines[len(lines)-1] != "0" {
		t.Errorf("proof does not end with the empty clause: %q", buf.String())
	}
}

func TestProofNilWithoutCertified(t *testing.T) {
	s := New(ParseSlice([][]int{{1}, {-1}}), DefaultConfig())
	if s.Proof() != nil {
		t.Error("expected nil proof when certificates were not asked for")
	}
}
