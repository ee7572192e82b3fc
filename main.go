package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/ovesen/noctua/check"
	"github.com/ovesen/noctua/dp"
	"github.com/ovesen/noctua/gen"
	"github.com/ovesen/noctua/solver"
	"github.com/ovesen/noctua/twosat"
)

const (
	exitSat   = 10
	exitUnsat = 20
)

func solveFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolTFlag{
			Name:  "vsids",
			Usage: "pick branch variables by conflict activity (disable with --vsids=false)",
		},
		cli.BoolTFlag{
			Name:  "restarts",
			Usage: "restart the search on the Luby schedule (disable with --restarts=false)",
		},
		cli.BoolTFlag{
			Name:  "learn",
			Usage: "keep conflict clauses in the database (disable with --learn=false)",
		},
		cli.BoolTFlag{
			Name:  "delete",
			Usage: "periodically forget low-value learned clauses (disable with --delete=false)",
		},
		cli.BoolTFlag{
			Name:  "minimize",
			Usage: "remove redundant literals from learned clauses (disable with --minimize=false)",
		},
		cli.BoolFlag{
			Name:  "pure",
			Usage: "eliminate pure literals before solving (makes certificates uncheckable)",
		},
		cli.StringFlag{
			Name:  "proof, p",
			Usage: "write a DRAT certificate to `FILE` when the instance is unsatisfiable",
		},
		cli.IntFlag{
			Name:  "max-conflicts",
			Usage: "give up after `N` conflicts (0 means no limit)",
		},
		cli.IntFlag{
			Name:  "timeout, t",
			Usage: "give up after `N` seconds (0 means no limit)",
		},
		cli.StringFlag{
			Name:  "mode, m",
			Value: "cdcl",
			Usage: "solving engine: cdcl, dpll, twosat or dp",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "display progress and statistics on comment lines",
		},
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "noctua"
	app.Usage = "a CDCL SAT solver with switchable strategies and DRAT certificates"
	app.ArgsUsage = "FILE.cnf"
	app.Flags = solveFlags()
	app.Action = solve
	app.Commands = []cli.Command{
		{
			Name:      "gen",
			Usage:     "generate a benchmark formula in the DIMACS format",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kind, k",
					Value: "php",
					Usage: "formula family: php, pebbling or random",
				},
				cli.IntFlag{
					Name:  "pigeons",
					Usage: "number of pigeons (php); defaults to holes+1",
				},
				cli.IntFlag{
					Name:  "holes",
					Value: 6,
					Usage: "number of holes (php)",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 6,
					Usage: "pyramid height (pebbling)",
				},
				cli.IntFlag{
					Name:  "vars",
					Value: 50,
					Usage: "number of variables (random)",
				},
				cli.IntFlag{
					Name:  "clauses",
					Value: 213,
					Usage: "number of clauses (random)",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 3,
					Usage: "literals per clause (random)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed (random)",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "write the formula to `FILE` instead of stdout",
				},
			},
			Action: generate,
		},
		{
			Name:      "verify",
			Usage:     "check a DRAT certificate against a CNF formula",
			ArgsUsage: "FILE.cnf PROOF",
			Action:    verify,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func solve(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		cli.ShowAppHelp(c)
		return cli.NewExitError("no input file given", 2)
	}
	switch mode := c.String("mode"); mode {
	case "cdcl", "dpll":
		return solveCDCL(c, path)
	case "twosat":
		return solveTwoSat(c, path)
	case "dp":
		return solveDP(c, path)
	default:
		return cli.NewExitError(fmt.Sprintf("unknown mode %q", mode), 2)
	}
}

func parseFile(path string) (*solver.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return solver.ParseCNF(f)
}

func solveCDCL(c *cli.Context, path string) error {
	pb, err := parseFile(path)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("could not parse %q: %v", path, err), 1)
	}
	proofPath := c.String("proof")
	if c.Bool("pure") {
		if proofPath != "" {
			return cli.NewExitError("--pure breaks certificates: drop one of the two flags", 2)
		}
		nb := pb.EliminatePureLiterals()
		if c.Bool("verbose") {
			fmt.Printf("c %d pure literals eliminated\n", nb)
		}
	}
	cfg := solver.Config{
		VSIDS:        c.BoolT("vsids"),
		Restarts:     c.BoolT("restarts"),
		Learn:        c.BoolT("learn"),
		Delete:       c.BoolT("delete"),
		Minimize:     c.BoolT("minimize"),
		Certified:    proofPath != "",
		MaxConflicts: c.Int("max-conflicts"),
		Timeout:      time.Duration(c.Int("timeout")) * time.Second,
	}
	if c.String("mode") == "dpll" {
		// Plain DPLL: chronological backtracking, no clause database.
		cfg.Learn = false
		cfg.Delete = false
		cfg.Minimize = false
		cfg.Restarts = false
	}
	s := solver.New(pb, cfg)
	s.Verbose = c.Bool("verbose")
	start := time.Now()
	status := s.Solve()
	if c.Bool("verbose") {
		printStats(s.Stats, time.Since(start))
	}
	s.OutputModel(os.Stdout)
	switch status {
	case solver.Sat:
		os.Exit(exitSat)
	case solver.Unsat:
		if proofPath != "" {
			if err := writeProof(s.Proof(), proofPath); err != nil {
				return cli.NewExitError(fmt.Sprintf("could not write certificate: %v", err), 1)
			}
		}
		os.Exit(exitUnsat)
	}
	return nil // Budget ran out: INDETERMINATE was printed
}

func writeProof(proof *solver.Proof, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := proof.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(stats solver.Stats, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	fmt.Printf("c restarts:       %12d\n", stats.NbRestarts)
	fmt.Printf("c conflicts:      %12d (%.02f / sec)\n", stats.NbConflicts, float64(stats.NbConflicts)/seconds)
	fmt.Printf("c decisions:      %12d (%.02f / sec)\n", stats.NbDecisions, float64(stats.NbDecisions)/seconds)
	fmt.Printf("c propagations:   %12d (%.02f / sec)\n", stats.NbPropagations, float64(stats.NbPropagations)/seconds)
	fmt.Printf("c clauses learned:%12d (%d units, %d deleted, longest %d)\n",
		stats.NbLearned, stats.NbUnitLearned, stats.NbDeleted, stats.MaxLearnedLen)
	fmt.Printf("c lits minimized: %12d\n", stats.NbMinimized)
	fmt.Printf("c trail depth:    %12d (peak)\n", stats.MaxTrailDepth)
	fmt.Printf("c cpu time:       %12.3fs\n", seconds)
}

func solveTwoSat(c *cli.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	pb, err := check.ParseCNF(f)
	f.Close()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("could not parse %q: %v", path, err), 1)
	}
	sat, model, err := twosat.Solve(pb.Clauses, pb.NbVars)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if !sat {
		fmt.Println("s UNSATISFIABLE")
		os.Exit(exitUnsat)
	}
	fmt.Println("s SATISFIABLE")
	fmt.Print("v ")
	for _, lit := range model {
		fmt.Printf("%d ", lit)
	}
	fmt.Print("0\n")
	os.Exit(exitSat)
	return nil
}

func solveDP(c *cli.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	pb, err := check.ParseCNF(f)
	f.Close()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("could not parse %q: %v", path, err), 1)
	}
	sat, stats := dp.Solve(pb.Clauses)
	if c.Bool("verbose") {
		fmt.Printf("c propagations:  %d\n", stats.NbPropagations)
		fmt.Printf("c resolutions:   %d\n", stats.NbResolutions)
		fmt.Printf("c pure removed:  %d\n", stats.NbPureRemoved)
		fmt.Printf("c subsumptions:  %d\n", stats.NbSubsumptions)
		fmt.Printf("c eliminated:    %d vars\n", stats.NbEliminatedVar)
	}
	if sat {
		fmt.Println("s SATISFIABLE")
		os.Exit(exitSat)
	}
	fmt.Println("s UNSATISFIABLE")
	os.Exit(exitUnsat)
	return nil
}

func generate(c *cli.Context) error {
	var cnf [][]int
	switch kind := c.String("kind"); kind {
	case "php":
		holes := c.Int("holes")
		pigeons := c.Int("pigeons")
		if pigeons == 0 {
			pigeons = holes + 1
		}
		cnf = gen.Php(pigeons, holes)
	case "pebbling":
		cnf = gen.Pebbling(c.Int("height"))
	case "random":
		var err error
		cnf, err = gen.Rand(c.Int("vars"), c.Int("clauses"), c.Int("width"), c.Int64("seed"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	default:
		return cli.NewExitError(fmt.Sprintf("unknown formula kind %q", kind), 2)
	}
	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.WriteString(gen.CNF(cnf)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func verify(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.NewExitError("usage: verify FILE.cnf PROOF", 2)
	}
	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	pb, err := check.ParseCNF(f)
	f.Close()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("could not parse formula: %v", err), 1)
	}
	proof, err := os.Open(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer proof.Close()
	valid, err := pb.Unsat(proof)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("could not check certificate: %v", err), 1)
	}
	if !valid {
		return cli.NewExitError("certificate is not valid", 1)
	}
	fmt.Println("c certificate is valid")
	return nil
}
