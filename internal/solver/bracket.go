package solver

// Bracket widening walks the coarse samples backwards from a candidate index.
// It is bounded by the series; running off the start means the crossing lies
// before the window.

// widenLeft returns the latest index j < i whose diff is strictly below the
// target (rising) or strictly above it (setting), i.e. on the far side of the
// crossing at i.
func widenLeft(samples []Sample, i int, rising bool) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if farSide(samples[j].Diff(), rising) {
			return j, true
		}
	}
	return 0, false
}

func farSide(d float64, rising bool) bool {
	if rising {
		return d < 0
	}
	return d > 0
}

// signChanges returns the brackets of every crossing in window order,
// classifying samples as below, on, or above the target. Adjacent samples of
// opposite strict sign form a bracket. A run of samples exactly on target is a
// single event at its first sample, whichever side the neighbours lie on; its
// bracket has both ends on that sample.
func signChanges(samples []Sample) []Bracket {
	var out []Bracket
	for i, s := range samples {
		d := s.Diff()
		switch {
		case d == 0:
			if i == 0 || samples[i-1].Diff() != 0 {
				out = append(out, Bracket{Left: s, Right: s})
			}
		case i > 0:
			if p := samples[i-1].Diff(); p != 0 && (p < 0) != (d < 0) {
				out = append(out, Bracket{Left: samples[i-1], Right: s})
			}
		}
	}
	return out
}
