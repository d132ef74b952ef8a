package bigfloat

// precisionSchedule returns the sequence of working precisions a
// Newton loop should iterate through to go from a double-precision
// seed (about 53 bits) to target bits, doubling each step (spec.md
// §4.7: "Precision doubles every iteration"). The final entry is
// repeated once more as the precising iteration, which absorbs
// residual error left by rounding at the final precision.
func precisionSchedule(seed, target int) []int {
	if target <= seed {
		return []int{target, target}
	}
	var sched []int
	p := seed
	for p < target {
		p *= 2
		if p > target {
			p = target
		}
		sched = append(sched, p)
	}
	sched = append(sched, target) // precising iteration
	return sched
}
