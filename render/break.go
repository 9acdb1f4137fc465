package render

import "math"

// gap returns the cell width of the space following w when it is not the
// last word of its line.
func gap(w Word) float64 {
	return w.WhitespaceWidth
}

// lineWidth sums the rendered width of words[i:j], counting an inter-word
// gap after every word except the line's last one (trailing whitespace
// never counts against the budget).
func lineWidth(words []Word, i, j int) float64 {
	total := 0.0
	for k := i; k < j; k++ {
		total += float64(words[k].Width)
		if k < j-1 {
			total += gap(words[k])
		}
	}
	return total
}

// optimalFitBreak splits words into sub-lines minimising the sum of squared
// slack (unused budget) across lines, with the first line budgeted
// firstWidth and every subsequent line budgeted width. Breaks are legal
// after every word (the model carries no non-breaking penalty). Ties are
// broken in favour of the later candidate, i.e. more words on the earlier
// line.
//
// This is the document's word-wrap primitive (not a general-purpose
// paragraph filler): batches are small (one Text node's lexemes at a time),
// so a straightforward O(n^2) dynamic program is used rather than the
// sliding-window formulation needed for whole-document batches.
func optimalFitBreak(words []Word, firstWidth, width float64) [][]Word {
	n := len(words)
	if n == 0 {
		return nil
	}

	const inf = math.MaxFloat64

	cost := make([]float64, n+1)
	back := make([]int, n+1)
	for j := range cost {
		cost[j] = inf
	}
	cost[0] = 0

	budgetFor := func(i int) float64 {
		if i == 0 {
			return firstWidth
		}
		return width
	}

	for j := 1; j <= n; j++ {
		for i := j - 1; i >= 0; i-- {
			if cost[i] == inf {
				continue
			}
			budget := budgetFor(i)
			w := lineWidth(words, i, j)

			var lineCost float64
			switch {
			case j == i+1:
				// A single overlong word is placed regardless of budget;
				// there is no better alternative.
				slack := budget - w
				if slack < 0 {
					slack = 0
				}
				lineCost = slack * slack
			case w > budget:
				continue // infeasible: this line does not fit
			default:
				slack := budget - w
				lineCost = slack * slack
			}

			total := cost[i] + lineCost
			if total < cost[j] {
				cost[j] = total
				back[j] = i
			}
			// On an exact tie, prefer the later break: since i decreases
			// as this inner loop runs, the first (highest-i) assignment
			// already satisfies that preference, so ties are left as-is.
		}
	}

	var breaks []int
	for j := n; j > 0; j = back[j] {
		breaks = append([]int{j}, breaks...)
	}
	starts := append([]int{0}, breaks[:len(breaks)-1]...)

	lines := make([][]Word, len(breaks))
	for k, end := range breaks {
		lines[k] = words[starts[k]:end]
	}
	return lines
}
