package scoring

import (
	"math"

	"campusmind/internal/model"
)

// Band maps scores up to and including Upper to one severity level
type Band struct {
	Upper    int
	Severity model.Severity
}

// Config is the static scoring rule for one instrument: item count and
// range, reverse-scored items, and ordered severity bands. Configs are
// built once at startup and never mutated.
type Config struct {
	Instrument model.Instrument
	Items      int // required item keys are q1..qN
	ItemMin    int
	ItemMax    int
	Reverse    map[string]bool // item value replaced by ItemMax - value
	Bands      []Band          // ascending by Upper, last entry is the ceiling
	Screener   bool            // CSSRS: rule-based yes/no screener, not summed
}

func likertBands(levels []model.Severity, uppers ...int) []Band {
	bands := make([]Band, 0, len(levels))
	for i, sev := range levels {
		upper := math.MaxInt
		if i < len(uppers) {
			upper = uppers[i]
		}
		bands = append(bands, Band{Upper: upper, Severity: sev})
	}
	return bands
}

func buildConfigs() map[model.Instrument]*Config {
	cfgs := map[model.Instrument]*Config{
		model.InstrumentPHQ9: {
			Items: 9, ItemMin: 0, ItemMax: 3,
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityMild, model.SeverityModerate, model.SeverityModeratelySevere, model.SeveritySevere},
				4, 9, 14, 19),
		},
		model.InstrumentGAD7: {
			Items: 7, ItemMin: 0, ItemMax: 3,
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityMild, model.SeverityModerate, model.SeveritySevere},
				4, 9, 14),
		},
		model.InstrumentGHQ12: {
			Items: 12, ItemMin: 0, ItemMax: 3,
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityMild, model.SeverityModerate, model.SeveritySevere},
				11, 15, 20),
		},
		model.InstrumentPSS10: {
			Items: 10, ItemMin: 0, ItemMax: 4,
			Reverse: map[string]bool{"q4": true, "q5": true, "q7": true, "q8": true},
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityModerate, model.SeveritySevere},
				13, 26),
		},
		model.InstrumentWHO5: {
			// Wellbeing index: a low raw score is the bad outcome, so the
			// band labels descend while the thresholds ascend.
			Items: 5, ItemMin: 0, ItemMax: 5,
			Bands: likertBands(
				[]model.Severity{model.SeveritySevere, model.SeverityModerate, model.SeverityMild, model.SeverityMinimal},
				7, 14, 19),
		},
		model.InstrumentIAT: {
			Items: 20, ItemMin: 1, ItemMax: 5,
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityModerate, model.SeveritySevere},
				49, 79),
		},
		model.InstrumentPSQI: {
			// Simplified scoring: seven global items, component subscores
			// are not modeled.
			Items: 7, ItemMin: 0, ItemMax: 3,
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityMild, model.SeverityModerate, model.SeveritySevere},
				5, 10, 15),
		},
		model.InstrumentBHI10: {
			Items: 10, ItemMin: 0, ItemMax: 4,
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityMild, model.SeverityModerate, model.SeveritySevere},
				10, 20, 30),
		},
		model.InstrumentDERS18: {
			Items: 18, ItemMin: 1, ItemMax: 5,
			Bands: likertBands(
				[]model.Severity{model.SeverityMinimal, model.SeverityMild, model.SeverityModerate, model.SeveritySevere},
				35, 54, 72),
		},
		model.InstrumentCSSRS: {
			Items:    6,
			Screener: true,
		},
	}

	for inst, cfg := range cfgs {
		cfg.Instrument = inst
	}
	// Hyphenated alias shares the same config
	cfgs[model.InstrumentCSSRSAlias] = cfgs[model.InstrumentCSSRS]
	return cfgs
}
