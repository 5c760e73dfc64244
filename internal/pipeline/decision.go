package pipeline

// ReasonLowRisk is the catch-all explanation below every band.
const ReasonLowRisk = "low risk"

// reasonBands maps probability bands to human-readable explanations,
// evaluated top-down, first match wins. Bounds are strict: a probability of
// exactly 0.90 falls into the 0.70 band.
var reasonBands = []struct {
	above  float64
	reason string
}{
	{0.90, "extremely atypical amount or pattern"},
	{0.70, "transaction outside normal behavior"},
	{0.50, "unusual or repetitive activity"},
	{0.30, "transaction at unusual time or channel"},
	{0.15, "moderately high amount"},
}

// ReasonFor returns the explanation band for a raw probability. Bands are
// independent of the detection threshold: explanation granularity and
// detection sensitivity are deliberately decoupled.
func ReasonFor(probability float64) string {
	for _, band := range reasonBands {
		if probability > band.above {
			return band.reason
		}
	}
	return ReasonLowRisk
}

// Decide applies the detection threshold. The reason is populated only for
// records flagged suspicious; a very low threshold can therefore flag a
// record whose band still reads "low risk".
func Decide(probability, threshold float64) (bool, string) {
	if probability < threshold {
		return false, ""
	}
	return true, ReasonFor(probability)
}
