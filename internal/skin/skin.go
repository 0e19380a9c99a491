// Package skin implements a rule-based skin-tone pixel classifier.
//
// The classifier converts RGB samples to luma/chroma components using the
// broadcast-safe BT.601 transform and applies fixed, empirically tuned
// thresholds. It is a loose heuristic: expect false positives on
// skin-colored backgrounds and false negatives in poor lighting.
package skin

// Threshold constants for the luma/chroma skin test. All comparisons are
// strict, so a sample sitting exactly on a boundary is not skin.
const (
	MinLuma       = 80.0
	MinChromaBlue = 77.0
	MaxChromaBlue = 127.0
	MinChromaRed  = 133.0
	MaxChromaRed  = 173.0
)

// Components converts an 8-bit RGB sample to luma and chroma values.
func Components(r, g, b uint8) (luma, chromaBlue, chromaRed float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	luma = 0.299*rf + 0.587*gf + 0.114*bf
	chromaBlue = 128 - 0.169*rf - 0.331*gf + 0.5*bf
	chromaRed = 128 + 0.5*rf - 0.419*gf - 0.081*bf
	return luma, chromaBlue, chromaRed
}

// IsSkin reports whether the color sample is skin-like. Pure function, no
// side effects, no error conditions.
func IsSkin(r, g, b uint8) bool {
	luma, cb, cr := Components(r, g, b)
	return luma > MinLuma &&
		cb > MinChromaBlue && cb < MaxChromaBlue &&
		cr > MinChromaRed && cr < MaxChromaRed
}
