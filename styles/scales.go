package styles

// Scale is an ordered list of canonical values for one style property.
// Declaration order is load-bearing: snapping resolves ties by first
// occurrence, so the left-to-right order below is part of the contract.
type Scale []float64

// Snap returns the scale entry nearest to v by absolute difference. On a tie
// the entry encountered first wins.
func (s Scale) Snap(v float64) float64 {
	best := s[0]
	bestDiff := abs(v - s[0])
	for _, entry := range s[1:] {
		if d := abs(v - entry); d < bestDiff {
			best = entry
			bestDiff = d
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// The application's design-token scales.
var (
	FontSizeScale      = Scale{12, 14, 16, 18, 20, 24, 30, 36, 48, 60, 72}
	FontWeightScale    = Scale{400, 500, 600, 700}
	LineHeightScale    = Scale{1, 1.25, 1.5, 1.75, 2}
	LetterSpacingScale = Scale{-0.05, -0.025, 0, 0.025, 0.05, 0.1}
	SpacingScale       = Scale{0, 4, 8, 12, 16, 20, 24, 32, 40, 48, 64}
	BorderRadiusScale  = Scale{0, 2, 4, 6, 8, 12, 16, 24, 9999}
)
