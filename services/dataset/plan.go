package dataset

import "math"

// QuotaPlan is the train/valid/test allocation derived from corpus
// size. Because of the final clamp, Train+Valid+Test can differ from
// Total at very small totals; that over-allocation is accepted
// behavior, not corrected (see DESIGN.md).
type QuotaPlan struct {
	Train int
	Valid int
	Test  int
	Total int
}

// Plan maps a corpus length in characters to a split allocation: one
// example per 1000 characters with a floor of 3, split 80/10/10.
// Deterministic: the same length always yields the same plan.
func Plan(length int) QuotaPlan {
	total := int(math.Ceil(float64(length) / 1000))
	if total < 3 {
		total = 3
	}

	train := int(math.Ceil(float64(total) * 0.8))
	valid := int(math.Ceil(float64(total) * 0.1))
	test := total - train - valid

	if total >= 3 {
		if valid == 0 {
			valid = 1
			train--
		}
		if test == 0 {
			test = 1
			train--
		}
	}

	return QuotaPlan{
		Train: max(1, train),
		Valid: max(1, valid),
		Test:  max(1, test),
		Total: total,
	}
}
