package solver

import "sort"

// clauseSorter is a structure to facilitate the sorting of lits in a learned clause
// according to their respective decision levels.
type clauseSorter struct {
	lits  []Lit
	model Model
}

func (cs *clauseSorter) Len() int { return len(cs.lits) }
func (cs *clauseSorter) Less(i, j int) bool {
	return abs(cs.model[cs.lits[i].Var()]) > abs(cs.model[cs.lits[j].Var()])
}
func (cs *clauseSorter) Swap(i, j int) { cs.lits[i], cs.lits[j] = cs.lits[j], cs.lits[i] }

// sortLiterals sorts the literals by decreasing decision level,
// i.e. abs(model[lits[i].Var()]) >= abs(model[lits[i+1].Var()]).
func sortLiterals(lits []Lit, model []decLevel) {
	cs := &clauseSorter{lits, model}
	sort.Sort(cs)
}

// addClauseLits is a helper function for learnClause.
// It deals with lits from the conflict clause.
func (s *Solver) addClauseLits(confl *Clause, lvl decLevel, met, metLvl []bool, lits *[]Lit) int {
	nbLvl := 0
	for i := 0; i < confl.Len(); i++ {
		l := confl.Get(i)
		v := l.Var()
		met[v] = true
		s.varBumpActivity(v)
		if abs(s.model[v]) == lvl {
			metLvl[v] = true
			nbLvl++
		} else if abs(s.model[v]) != 1 {
			*lits = append(*lits, l)
		}
	}
	return nbLvl
}

// learnClause creates a conflict clause derived at the first unique implication
// point and returns either:
// the clause itself, if its len is at least 2,
// or a nil clause and a unit literal, if its len is exactly 1.
func (s *Solver) learnClause(confl *Clause, lvl decLevel) (learned *Clause, unit Lit) {
	s.clauseBumpActivity(confl)
	lits := s.litsBuf[:1]           // Not 0: make room for asserting literal
	buf := make([]bool, s.nbVars*2) // Buffer for met and metLvl; reduces allocs/deallocs
	met := buf[:s.nbVars]           // List of all vars already met
	metLvl := buf[s.nbVars:]        // List of all vars from current level to deal with
	// nbLvl is the nb of vars in lvl currently used
	nbLvl := s.addClauseLits(confl, lvl, met, metLvl, &lits)
	ptr := len(s.trail) - 1 // Pointer in propagation trail
	for nbLvl > 1 {         // We will stop once we only have one lit from current level.
		for !metLvl[s.trail[ptr].Var()] {
			if abs(s.model[s.trail[ptr].Var()]) == lvl { // This var was deduced afterwards and was not a reason for the conflict
				met[s.trail[ptr].Var()] = true
			}
			ptr--
		}
		v := s.trail[ptr].Var()
		ptr--
		nbLvl--
		if reason := s.reason[v]; reason != nil {
			s.clauseBumpActivity(reason)
			for i := 0; i < reason.Len(); i++ {
				lit := reason.Get(i)
				if v2 := lit.Var(); !met[v2] && v2 != v {
					met[v2] = true
					s.varBumpActivity(v2)
					if abs(s.model[v2]) == lvl {
						metLvl[v2] = true
						nbLvl++
					} else if abs(s.model[v2]) != 1 {
						lits = append(lits, lit)
					}
				}
			}
		}
	}
	for _, l := range s.trail { // Look for last lit from lvl and use it as asserting lit
		if metLvl[l.Var()] {
			lits[0] = l.Negation()
			break
		}
	}
	s.varDecayActivity()
	s.clauseDecayActivity()
	sortLiterals(lits, s.model)
	sz := len(lits)
	if s.minimize {
		sz = s.minimizeLearned(met, lits)
		s.Stats.NbMinimized += len(lits) - sz
	}
	s.litsBuf = lits[:0]
	if sz == 1 {
		return nil, lits[0]
	}
	learned = NewLearnedClause(append([]Lit{}, lits[:sz]...))
	learned.updateLbd(s.model)
	return learned, -1
}

// learnDecisionClause derives a conflict clause made of the negations of all
// current decision literals. It is used instead of learnClause when clause
// learning is disabled: the result is never stored nor watched, but it is a
// correct reason for flipping the last decision, and it keeps certificates
// checkable.
func (s *Solver) learnDecisionClause(lvl decLevel) *Clause {
	lits := make([]Lit, 0, lvl-1)
	for _, l := range s.trail {
		v := l.Var()
		if s.reason[v] == nil && abs(s.model[v]) > 1 {
			lits = append(lits, l.Negation())
		}
	}
	sortLiterals(lits, s.model)
	return NewLearnedClause(lits)
}
