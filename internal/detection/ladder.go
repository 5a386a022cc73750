package detection

import "math"

// DefaultLadderSteps is the number of size increments searched above the
// smallest pattern size.
const DefaultLadderSteps = 6

// minStepSize is the smallest distance between two ladder entries.
const minStepSize = 4

// MaskParams describes the ladder of pattern sizes searched for one image.
type MaskParams struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// OptimalMaskParams derives the pattern size ladder from the image
// dimensions. The smallest size is odd, the step is even, and the largest
// size is Min + steps*Step, so every entry is odd.
func OptimalMaskParams(width, height, steps int) MaskParams {
	if steps < 1 {
		steps = DefaultLadderSteps
	}
	m := float64(min(width, height))

	lo := int(math.Floor(m / 48.0))
	if lo%2 == 0 {
		lo--
	}
	lo = max(MinPatternSize, lo)

	hi := int(math.Floor(m / 12.0))

	step := int(math.Floor(float64(hi-lo) / float64(steps)))
	if step%2 == 1 {
		step--
	}
	step = max(minStepSize, step)

	return MaskParams{
		Min:  lo,
		Max:  lo + steps*step,
		Step: step,
	}
}

// Ladder lists every size from Min to Max inclusive.
func (p MaskParams) Ladder() []int {
	if p.Step <= 0 {
		return []int{p.Min}
	}
	sizes := make([]int, 0, (p.Max-p.Min)/p.Step+1)
	for s := p.Min; s <= p.Max; s += p.Step {
		sizes = append(sizes, s)
	}
	return sizes
}
