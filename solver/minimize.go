package solver

// minimizeLearned removes redundant literals from the learned clause and returns
// the size of the new list of lits. A literal is redundant if it is implied by
// the other literals of the clause together with top-level facts.
// learned[0] is the asserting literal and is always kept.
func (s *Solver) minimizeLearned(met []bool, learned []Lit) int {
	sz := 1
	for i := 1; i < len(learned); i++ {
		if s.litRedundant(learned[i], met) {
			continue
		}
		learned[sz] = learned[i]
		sz++
	}
	return sz
}

// litRedundant checks whether l is implied by the other literals of the clause
// being learned. It explores the implication graph from l's reason with an
// explicit stack: the search succeeds if every path ends on a top-level fact or
// on a var already involved in the clause, and fails as soon as a decision
// var is reached.
func (s *Solver) litRedundant(l Lit, met []bool) bool {
	v := l.Var()
	if s.reason[v] == nil {
		return false
	}
	s.minStamp++
	s.minStack = s.minStack[:0]
	s.minStack = append(s.minStack, v)
	s.minSeen[v] = s.minStamp
	for len(s.minStack) > 0 {
		last := len(s.minStack) - 1
		cur := s.minStack[last]
		s.minStack = s.minStack[:last]
		c := s.reason[cur]
		for i := 0; i < c.Len(); i++ {
			v2 := c.Get(i).Var()
			if v2 == cur || abs(s.model[v2]) == 1 || s.minSeen[v2] == s.minStamp {
				continue
			}
			if met[v2] {
				s.minSeen[v2] = s.minStamp
				continue
			}
			if s.reason[v2] == nil { // A decision var: l cannot be removed
				return false
			}
			s.minSeen[v2] = s.minStamp
			s.minStack = append(s.minStack, v2)
		}
	}
	return true
}
