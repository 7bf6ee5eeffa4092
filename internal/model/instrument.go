package model

// Instrument identifies one of the supported screening questionnaires
type Instrument string

const (
	InstrumentPHQ9   Instrument = "PHQ-9"
	InstrumentGAD7   Instrument = "GAD-7"
	InstrumentGHQ12  Instrument = "GHQ-12"
	InstrumentPSS10  Instrument = "PSS-10"
	InstrumentWHO5   Instrument = "WHO-5"
	InstrumentIAT    Instrument = "IAT"
	InstrumentPSQI   Instrument = "PSQI"
	InstrumentBHI10  Instrument = "BHI-10"
	InstrumentDERS18 Instrument = "DERS-18"
	InstrumentCSSRS  Instrument = "CSSRS"

	// InstrumentCSSRSAlias is the hyphenated spelling some clients send.
	// Both resolve to the same scoring rule.
	InstrumentCSSRSAlias Instrument = "C-SSRS"
)

// Severity is a named risk band assigned from a numeric score
type Severity string

const (
	SeverityMinimal          Severity = "Minimal"
	SeverityMild             Severity = "Mild"
	SeverityModerate         Severity = "Moderate"
	SeverityModeratelySevere Severity = "Moderately-Severe"
	SeveritySevere           Severity = "Severe"
)

// Rank returns the position of the severity on the full five-level scale,
// 1 (Minimal) through 5 (Severe). Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityMinimal:
		return 1
	case SeverityMild:
		return 2
	case SeverityModerate:
		return 3
	case SeverityModeratelySevere:
		return 4
	case SeveritySevere:
		return 5
	}
	return 0
}

// ResponseSet maps question keys (e.g. "q1") to raw answer tokens.
// Numeric instruments expect integer tokens, CSSRS expects "yes"/"no".
type ResponseSet map[string]string

// ScoreResult is the outcome of scoring one response set
type ScoreResult struct {
	Score    int      `json:"score"`
	Severity Severity `json:"severity"`
}
