// Package gating decides which step of an ordered learning sequence is open.
package gating

// Unlocked reports whether the unit at index i may be accessed, given the
// completion flags of the whole ordered sequence. The first unit is always
// open; every other unit opens only once its predecessor is complete.
func Unlocked(completed []bool, i int) bool {
	if i <= 0 {
		return true
	}
	if i > len(completed) {
		return false
	}
	return completed[i-1]
}

// States returns the unlock flag for every unit in the sequence.
func States(completed []bool) []bool {
	out := make([]bool, len(completed))
	for i := range completed {
		out[i] = Unlocked(completed, i)
	}
	return out
}

// Progress is the whole-number share of completed sections, 0 when there are none.
func Progress(completedSections, totalSections int) int {
	if totalSections <= 0 {
		return 0
	}
	if completedSections > totalSections {
		completedSections = totalSections
	}
	return completedSections * 100 / totalSections
}

// CourseComplete reports full completion; an empty course never counts.
func CourseComplete(completedSections, totalSections int) bool {
	return totalSections > 0 && completedSections >= totalSections
}
