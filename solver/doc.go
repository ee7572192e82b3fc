/*
Package solver gives access to a conflict-driven clause learning SAT solver.
Its input is either a DIMACS CNF stream or a solver.Problem object containing
the set of clauses to be solved.

Describing a problem

A problem can be described in two ways:

1. parse a DIMACS stream (io.Reader). If the io.Reader produces the following content:

    p cnf 6 7
    1 2 3 0
    4 5 6 0
    -1 -4 0
    -2 -5 0
    -3 -6 0
    -1 -3 0
    -4 -6 0

the programmer can create the Problem by doing:

    pb, err := solver.ParseCNF(f)

2. create the equivalent list of list of literals. The problem above can be created programmatically this way:

    clauses := [][]int{
        {1, 2, 3},
        {4, 5, 6},
        {-1, -4},
        {-2, -5},
        {-3, -6},
        {-1, -3},
        {-4, -6},
    }
    pb := solver.ParseSlice(clauses)

Solving a problem

To solve a problem, one creates a solver with said problem and a configuration.
The Solve() method then solves the problem and returns the corresponding status: Sat or Unsat.

    s := solver.New(pb, solver.DefaultConfig())
    status := s.Solve()

The configuration selects the search strategies used by the solver;
DefaultConfig() enables all of them. Any subset of the strategies can be
switched off individually, e.g to measure what each one contributes:

    cfg := solver.DefaultConfig()
    cfg.Restarts = false
    s := solver.New(pb, cfg)

If the status was Sat, the programmer can ask for a model, i.e an assignment that makes all the clauses of the problem true:

    m := s.Model()

Alternatively, one can display the result and model (if any) in the DIMACS output format:

    s.OutputModel(os.Stdout)

Certifying an answer

When cfg.Certified is true, the solver records every clause it deduces or
deletes. On an unsatisfiable instance, this trace is a certificate in the
DRAT format that can be checked by an independent tool:

    cfg := solver.DefaultConfig()
    cfg.Certified = true
    s := solver.New(pb, cfg)
    if s.Solve() == solver.Unsat {
        err := s.Proof().WriteText(os.Stdout)
    }
*/
package solver
