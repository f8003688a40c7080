package design

import (
	"math"
)

// CountCombinations returns the number of rows the full factorial of the
// factors would have, saturating at math.MaxInt.
func CountCombinations(factors []Factor) int {
	if len(factors) == 0 {
		return 0
	}
	total := 1
	for _, f := range factors {
		n := len(f.Levels)
		if n == 0 {
			return 0
		}
		if total > math.MaxInt/n {
			return math.MaxInt
		}
		total *= n
	}
	return total
}

// Combinations enumerates the Cartesian product of the factor levels. Columns
// follow factor order and the last factor varies fastest, so {A:[1,2], B:[x,y]}
// gives (1,x) (1,y) (2,x) (2,y). Any factor without levels empties the product.
func Combinations(factors []Factor) [][]string {
	total := CountCombinations(factors)
	if total == 0 {
		return nil
	}

	rows := make([][]string, 0, total)
	idx := make([]int, len(factors))
	for {
		row := make([]string, len(factors))
		for j, f := range factors {
			row[j] = f.Levels[idx[j]]
		}
		rows = append(rows, row)

		// odometer increment from the rightmost factor
		j := len(factors) - 1
		for ; j >= 0; j-- {
			idx[j]++
			if idx[j] < len(factors[j].Levels) {
				break
			}
			idx[j] = 0
		}
		if j < 0 {
			return rows
		}
	}
}
