package search

type weightedField[T any] struct {
	field  Field[T]
	weight int
}

// Scorer computes the relevance of a record for a token list: for every token
// and every weighted field, the field's weight is added when the field equals
// the token ignoring case (list fields: contain it as an element).
type Scorer[T any] struct {
	fields []weightedField[T]
}

// Score returns the relevance of rec. It is 0 when tokens is empty.
func (s *Scorer[T]) Score(rec T, tokens []string) int {
	score := 0
	for _, tok := range tokens {
		for _, wf := range s.fields {
			if wf.field.equal(rec, tok) {
				score += wf.weight
			}
		}
	}
	return score
}

// Scored pairs a record with its relevance.
type Scored[T any] struct {
	Record T
	Score  int
}

// ScoreAll scores every record, keeping input order.
func (s *Scorer[T]) ScoreAll(records []T, tokens []string) []Scored[T] {
	out := make([]Scored[T], len(records))
	for i, rec := range records {
		out[i] = Scored[T]{Record: rec, Score: s.Score(rec, tokens)}
	}
	return out
}
