package check

import (
	"strings"
	"testing"
)

func TestUnsatValidCertificate(t *testing.T) {
	clauses := [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	cert := "1 0\n2 0\n0\n"
	pb := New(clauses, 2)
	valid, err := pb.Unsat(strings.NewReader(cert))
	if err != nil {
		t.Fatalf("could not check certificate: %v", err)
	}
	if !valid {
		t.Error("valid certificate rejected")
	}
	if len(pb.Clauses) != 4 {
		t.Errorf("derived clauses were not removed after checking: %d clauses left", len(pb.Clauses))
	}
}

func TestUnsatNonImpliedClause(t *testing.T) {
	clauses := [][]int{{1, 2}}
	// {1} is not implied by {1, 2} through unit propagation.
	valid, err := New(clauses, 2).Unsat(strings.NewReader("1 0\n0\n"))
	if err != nil {
		t.Fatalf("could not check certificate: %v", err)
	}
	if valid {
		t.Error("non-implied clause accepted")
	}
}

func TestUnsatMissingEmptyClause(t *testing.T) {
	clauses := [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	valid, err := New(clauses, 2).Unsat(strings.NewReader("1 0\n2 0\n"))
	if err != nil {
		t.Fatalf("could not check certificate: %v", err)
	}
	if valid {
		t.Error("certificate without the empty clause accepted")
	}
}

func TestUnsatIgnoresDeletions(t *testing.T) {
	clauses := [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	cert := "1 0\nd 1 2 0\n2 0\nd 1 -2 0\n0\n"
	valid, err := New(clauses, 2).Unsat(strings.NewReader(cert))
	if err != nil {
		t.Fatalf("could not check certificate: %v", err)
	}
	if !valid {
		t.Error("certificate with deletion records rejected")
	}
}

func TestUnsatMalformedCertificate(t *testing.T) {
	clauses := [][]int{{1}, {-1}}
	if _, err := New(clauses, 1).Unsat(strings.NewReader("1 2\n")); err == nil {
		t.Error("expected an error on a clause not terminated by 0")
	}
}

func TestUnsatTriviallyUnsatProblem(t *testing.T) {
	// The problem contains contradictory units: the certificate can go
	// straight to the empty clause.
	clauses := [][]int{{1}, {-1}}
	valid, err := New(clauses, 1).Unsat(strings.NewReader("0\n"))
	if err != nil {
		t.Fatalf("could not check certificate: %v", err)
	}
	if !valid {
		t.Error("valid certificate rejected")
	}
}

func TestParseCNF(t *testing.T) {
	const input = `c comment
p cnf 3 3
1 2 0
-1
3 0
2 0
`
	pb, err := ParseCNF(strings.NewReader(input))
	if err != nil {
		t.Fatalf("could not parse problem: %v", err)
	}
	if pb.NbVars != 3 || len(pb.Clauses) != 3 {
		t.Fatalf("expected 3 vars and 3 clauses, got %d and %d", pb.NbVars, len(pb.Clauses))
	}
	if len(pb.Clauses[1]) != 2 || pb.Clauses[1][0] != -1 || pb.Clauses[1][1] != 3 {
		t.Errorf("multi-line clause badly parsed: %v", pb.Clauses[1])
	}
}

func TestParseCNFErrors(t *testing.T) {
	for name, input := range map[string]string{
		"no problem line":      "1 2 0\n",
		"unterminated clause":  "p cnf 2 1\n1 2\n",
		"literal out of range": "p cnf 2 1\n3 0\n",
		"invalid problem line": "p cnf x 1\n1 0\n",
	} {
		if _, err := ParseCNF(strings.NewReader(input)); err == nil {
			t.Errorf("expected parse error on %s input %q", name, input)
		}
	}
}
