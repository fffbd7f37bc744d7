package scanner

import "math"

// finalize computes the derived fields once traversal has completed.
//
// The coverage estimate is the test-to-source file ratio as a rounded
// percentage. The quality score maps that estimate onto a 1-10 scale via
// fixed thresholds; the mapping can only produce 5 through 9.
func (s *Stats) finalize() {
	if s.SourceFiles > 0 {
		ratio := float64(s.TestFiles) / float64(s.SourceFiles)
		s.CoverageEstimate = int(math.Round(ratio * 100))
	}

	switch {
	case s.CoverageEstimate > 80:
		s.QualityScore = 9
	case s.CoverageEstimate > 60:
		s.QualityScore = 8
	case s.CoverageEstimate > 40:
		s.QualityScore = 7
	case s.CoverageEstimate > 20:
		s.QualityScore = 6
	default:
		s.QualityScore = 5
	}
}
