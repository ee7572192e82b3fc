package solver

import (
	"bufio"
	"io"
	"strconv"
)

// A Proof is the trace of all clauses derived and deleted during the search.
// When the problem is unsatisfiable, the trace is a certificate in the DRAT
// format, ending with the empty clause.
type Proof struct {
	records []proofRecord
}

type proofRecord struct {
	deletion bool
	lits     []int32
}

func (pf *Proof) addRecord(deletion bool, c *Clause) {
	lits := make([]int32, c.Len())
	for i := range lits {
		lits[i] = c.Get(i).Int()
	}
	pf.records = append(pf.records, proofRecord{deletion: deletion, lits: lits})
}

// addClause records the derivation of c.
func (pf *Proof) addClause(c *Clause) { pf.addRecord(false, c) }

// addDeletion records the removal of c from the clause database.
func (pf *Proof) addDeletion(c *Clause) { pf.addRecord(true, c) }

// addUnit records the derivation of the unit clause containing l.
func (pf *Proof) addUnit(l Lit) {
	pf.records = append(pf.records, proofRecord{lits: []int32{l.Int()}})
}

// addEmpty records the derivation of the empty clause.
func (pf *Proof) addEmpty() {
	pf.records = append(pf.records, proofRecord{})
}

// Len returns the number of records in the proof.
func (pf *Proof) Len() int { return len(pf.records) }

// WriteText writes the proof to w in the DRAT text format, one record per
// line: deleted clauses are prefixed with "d" and every clause ends with 0.
func (pf *Proof) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, rec := range pf.records {
		if rec.deletion {
			if _, err := bw.WriteString("d "); err != nil {
				return err
			}
		}
		for _, l := range rec.lits {
			if _, err := bw.WriteString(strconv.Itoa(int(l))); err != nil {
				return err
			}
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
