package scoring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmind/internal/model"
)

// responsesForScore builds a response set whose summed contribution
// equals target, inverting values for reverse-scored items.
func responsesForScore(t *testing.T, cfg *Config, target int) model.ResponseSet {
	t.Helper()

	contribMin := func(key string) int {
		if cfg.Reverse[key] {
			return 0
		}
		return cfg.ItemMin
	}
	contribMax := func(key string) int {
		if cfg.Reverse[key] {
			return cfg.ItemMax - cfg.ItemMin
		}
		return cfg.ItemMax
	}

	responses := model.ResponseSet{}
	remaining := target
	for i := 1; i <= cfg.Items; i++ {
		key := fmt.Sprintf("q%d", i)
		remaining -= contribMin(key)
	}
	require.GreaterOrEqual(t, remaining, 0, "target %d below instrument floor", target)

	for i := 1; i <= cfg.Items; i++ {
		key := fmt.Sprintf("q%d", i)
		contrib := contribMin(key)
		headroom := contribMax(key) - contrib
		if headroom > remaining {
			headroom = remaining
		}
		contrib += headroom
		remaining -= headroom

		value := contrib
		if cfg.Reverse[key] {
			value = cfg.ItemMax - contrib
		}
		responses[key] = fmt.Sprintf("%d", value)
	}
	require.Zero(t, remaining, "target %d above instrument ceiling", target)
	return responses
}

func uniformResponses(items, value int) model.ResponseSet {
	responses := model.ResponseSet{}
	for i := 1; i <= items; i++ {
		responses[fmt.Sprintf("q%d", i)] = fmt.Sprintf("%d", value)
	}
	return responses
}

func TestBandBoundaries(t *testing.T) {
	registry := NewRegistry()

	// Every band upper bound and its neighbor, for every sum-based
	// instrument. WHO-5 descends through the same mechanism because its
	// labels are stored inverted.
	tests := []struct {
		instrument model.Instrument
		score      int
		want       model.Severity
	}{
		{model.InstrumentPHQ9, 0, model.SeverityMinimal},
		{model.InstrumentPHQ9, 4, model.SeverityMinimal},
		{model.InstrumentPHQ9, 5, model.SeverityMild},
		{model.InstrumentPHQ9, 9, model.SeverityMild},
		{model.InstrumentPHQ9, 10, model.SeverityModerate},
		{model.InstrumentPHQ9, 14, model.SeverityModerate},
		{model.InstrumentPHQ9, 15, model.SeverityModeratelySevere},
		{model.InstrumentPHQ9, 19, model.SeverityModeratelySevere},
		{model.InstrumentPHQ9, 20, model.SeveritySevere},
		{model.InstrumentPHQ9, 27, model.SeveritySevere},

		{model.InstrumentGAD7, 0, model.SeverityMinimal},
		{model.InstrumentGAD7, 4, model.SeverityMinimal},
		{model.InstrumentGAD7, 5, model.SeverityMild},
		{model.InstrumentGAD7, 9, model.SeverityMild},
		{model.InstrumentGAD7, 10, model.SeverityModerate},
		{model.InstrumentGAD7, 14, model.SeverityModerate},
		{model.InstrumentGAD7, 15, model.SeveritySevere},
		{model.InstrumentGAD7, 21, model.SeveritySevere},

		{model.InstrumentGHQ12, 11, model.SeverityMinimal},
		{model.InstrumentGHQ12, 12, model.SeverityMild},
		{model.InstrumentGHQ12, 15, model.SeverityMild},
		{model.InstrumentGHQ12, 16, model.SeverityModerate},
		{model.InstrumentGHQ12, 20, model.SeverityModerate},
		{model.InstrumentGHQ12, 21, model.SeveritySevere},
		{model.InstrumentGHQ12, 36, model.SeveritySevere},

		{model.InstrumentPSS10, 13, model.SeverityMinimal},
		{model.InstrumentPSS10, 14, model.SeverityModerate},
		{model.InstrumentPSS10, 26, model.SeverityModerate},
		{model.InstrumentPSS10, 27, model.SeveritySevere},
		{model.InstrumentPSS10, 40, model.SeveritySevere},

		// WHO-5: low raw score is the bad outcome
		{model.InstrumentWHO5, 0, model.SeveritySevere},
		{model.InstrumentWHO5, 7, model.SeveritySevere},
		{model.InstrumentWHO5, 8, model.SeverityModerate},
		{model.InstrumentWHO5, 14, model.SeverityModerate},
		{model.InstrumentWHO5, 15, model.SeverityMild},
		{model.InstrumentWHO5, 19, model.SeverityMild},
		{model.InstrumentWHO5, 20, model.SeverityMinimal},
		{model.InstrumentWHO5, 25, model.SeverityMinimal},

		{model.InstrumentIAT, 20, model.SeverityMinimal},
		{model.InstrumentIAT, 49, model.SeverityMinimal},
		{model.InstrumentIAT, 50, model.SeverityModerate},
		{model.InstrumentIAT, 79, model.SeverityModerate},
		{model.InstrumentIAT, 80, model.SeveritySevere},
		{model.InstrumentIAT, 100, model.SeveritySevere},

		{model.InstrumentPSQI, 5, model.SeverityMinimal},
		{model.InstrumentPSQI, 6, model.SeverityMild},
		{model.InstrumentPSQI, 10, model.SeverityMild},
		{model.InstrumentPSQI, 11, model.SeverityModerate},
		{model.InstrumentPSQI, 15, model.SeverityModerate},
		{model.InstrumentPSQI, 16, model.SeveritySevere},
		{model.InstrumentPSQI, 21, model.SeveritySevere},

		{model.InstrumentBHI10, 10, model.SeverityMinimal},
		{model.InstrumentBHI10, 11, model.SeverityMild},
		{model.InstrumentBHI10, 20, model.SeverityMild},
		{model.InstrumentBHI10, 21, model.SeverityModerate},
		{model.InstrumentBHI10, 30, model.SeverityModerate},
		{model.InstrumentBHI10, 31, model.SeveritySevere},
		{model.InstrumentBHI10, 40, model.SeveritySevere},

		{model.InstrumentDERS18, 18, model.SeverityMinimal},
		{model.InstrumentDERS18, 35, model.SeverityMinimal},
		{model.InstrumentDERS18, 36, model.SeverityMild},
		{model.InstrumentDERS18, 54, model.SeverityMild},
		{model.InstrumentDERS18, 55, model.SeverityModerate},
		{model.InstrumentDERS18, 72, model.SeverityModerate},
		{model.InstrumentDERS18, 73, model.SeveritySevere},
		{model.InstrumentDERS18, 90, model.SeveritySevere},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.instrument, tt.score), func(t *testing.T) {
			cfg := registry.Config(tt.instrument)
			require.NotNil(t, cfg)

			responses := responsesForScore(t, cfg, tt.score)
			result, err := registry.Calculate(tt.instrument, responses)
			require.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.want, result.Severity)
		})
	}
}

func TestScoreMonotonicInItems(t *testing.T) {
	registry := NewRegistry()

	for _, instrument := range []model.Instrument{
		model.InstrumentPHQ9, model.InstrumentGAD7, model.InstrumentGHQ12,
		model.InstrumentPSS10, model.InstrumentWHO5, model.InstrumentIAT,
		model.InstrumentPSQI, model.InstrumentBHI10, model.InstrumentDERS18,
	} {
		t.Run(string(instrument), func(t *testing.T) {
			cfg := registry.Config(instrument)

			// Mid-range baseline leaves room to bump each item by one
			mid := (cfg.ItemMin + cfg.ItemMax) / 2
			base := uniformResponses(cfg.Items, mid)
			baseResult, err := registry.Calculate(instrument, base)
			require.NoError(t, err)

			for i := 1; i <= cfg.Items; i++ {
				key := fmt.Sprintf("q%d", i)
				bumped := model.ResponseSet{}
				for k, v := range base {
					bumped[k] = v
				}
				bumped[key] = fmt.Sprintf("%d", mid+1)

				result, err := registry.Calculate(instrument, bumped)
				require.NoError(t, err)

				if cfg.Reverse[key] {
					assert.Equal(t, baseResult.Score-1, result.Score, "reverse item %s must lower the score", key)
				} else {
					assert.Equal(t, baseResult.Score+1, result.Score, "item %s must raise the score", key)
				}
			}
		})
	}
}

func TestSeverityMonotonicInScore(t *testing.T) {
	registry := NewRegistry()

	for _, instrument := range []model.Instrument{
		model.InstrumentPHQ9, model.InstrumentGAD7, model.InstrumentGHQ12,
		model.InstrumentPSS10, model.InstrumentWHO5, model.InstrumentIAT,
		model.InstrumentPSQI, model.InstrumentBHI10, model.InstrumentDERS18,
	} {
		t.Run(string(instrument), func(t *testing.T) {
			cfg := registry.Config(instrument)

			minScore := 0
			maxScore := 0
			for i := 1; i <= cfg.Items; i++ {
				key := fmt.Sprintf("q%d", i)
				if cfg.Reverse[key] {
					maxScore += cfg.ItemMax - cfg.ItemMin
				} else {
					minScore += cfg.ItemMin
					maxScore += cfg.ItemMax
				}
			}

			prevRank := 0
			for score := minScore; score <= maxScore; score++ {
				result, err := registry.Calculate(instrument, responsesForScore(t, cfg, score))
				require.NoError(t, err)

				rank := result.Severity.Rank()
				require.NotZero(t, rank)
				if score > minScore {
					if instrument == model.InstrumentWHO5 {
						assert.LessOrEqual(t, rank, prevRank, "WHO-5 severity must not rise with score (score %d)", score)
					} else {
						assert.GreaterOrEqual(t, rank, prevRank, "severity must not drop as score rises (score %d)", score)
					}
				}
				prevRank = rank
			}
		})
	}
}

func TestCSSRSExhaustive(t *testing.T) {
	registry := NewRegistry()

	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	for bits := 0; bits < 64; bits++ {
		answers := make([]bool, 6)
		responses := model.ResponseSet{}
		for i := 0; i < 6; i++ {
			answers[i] = bits&(1<<i) != 0
			responses[fmt.Sprintf("q%d", i+1)] = yesNo(answers[i])
		}

		ideation := answers[0] || answers[1]
		intent := answers[2] || answers[3]
		plan := answers[4]
		behavior := answers[5]

		var wantScore int
		var wantSeverity model.Severity
		switch {
		case behavior || (intent && plan):
			wantScore, wantSeverity = 4, model.SeveritySevere
		case intent || plan:
			wantScore, wantSeverity = 3, model.SeverityModerate
		case ideation:
			wantScore, wantSeverity = 2, model.SeverityMild
		default:
			wantScore, wantSeverity = 1, model.SeverityMinimal
		}

		result, err := registry.Calculate(model.InstrumentCSSRS, responses)
		require.NoError(t, err, "input %06b", bits)
		assert.Equal(t, wantScore, result.Score, "input %06b", bits)
		assert.Equal(t, wantSeverity, result.Severity, "input %06b", bits)

		// Behavior alone is always Severe, whatever else was answered
		if behavior {
			assert.Equal(t, model.SeveritySevere, result.Severity, "behavior must dominate (input %06b)", bits)
		}
	}
}

func TestCSSRSAliasesAgree(t *testing.T) {
	registry := NewRegistry()

	responses := model.ResponseSet{
		"q1": "yes", "q2": "no", "q3": "no", "q4": "yes", "q5": "no", "q6": "no",
	}

	a, err := registry.Calculate(model.InstrumentCSSRS, responses)
	require.NoError(t, err)
	b, err := registry.Calculate(model.InstrumentCSSRSAlias, responses)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUnknownInstrument(t *testing.T) {
	registry := NewRegistry()

	for _, instrument := range []model.Instrument{"", "PHQ9", "phq-9", "GAD7", "BOGUS"} {
		_, err := registry.Calculate(instrument, uniformResponses(9, 1))
		assert.ErrorIs(t, err, ErrUnknownInstrument, "instrument %q", instrument)
	}
}

func TestMalformedResponses(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name       string
		instrument model.Instrument
		responses  model.ResponseSet
	}{
		{
			name:       "missing item",
			instrument: model.InstrumentGAD7,
			responses:  uniformResponses(6, 2), // q7 absent
		},
		{
			name:       "empty set",
			instrument: model.InstrumentPHQ9,
			responses:  model.ResponseSet{},
		},
		{
			name:       "non-numeric value",
			instrument: model.InstrumentPHQ9,
			responses: func() model.ResponseSet {
				r := uniformResponses(9, 2)
				r["q5"] = "often"
				return r
			}(),
		},
		{
			name:       "value above item range",
			instrument: model.InstrumentGAD7,
			responses: func() model.ResponseSet {
				r := uniformResponses(7, 2)
				r["q3"] = "4"
				return r
			}(),
		},
		{
			name:       "value below item range",
			instrument: model.InstrumentIAT,
			responses: func() model.ResponseSet {
				r := uniformResponses(20, 3)
				r["q12"] = "0"
				return r
			}(),
		},
		{
			name:       "screener missing item",
			instrument: model.InstrumentCSSRS,
			responses:  model.ResponseSet{"q1": "yes"},
		},
		{
			name:       "screener non-boolean token",
			instrument: model.InstrumentCSSRS,
			responses: model.ResponseSet{
				"q1": "yes", "q2": "no", "q3": "maybe", "q4": "no", "q5": "no", "q6": "no",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Calculate(tt.instrument, tt.responses)
			var malformed *MalformedResponseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &malformed), "want MalformedResponseError, got %v", err)
			assert.Equal(t, tt.instrument, malformed.Instrument)
		})
	}
}

func TestScreenerTokensCaseInsensitive(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Calculate(model.InstrumentCSSRS, model.ResponseSet{
		"q1": "YES", "q2": "No", "q3": " no ", "q4": "no", "q5": "no", "q6": "no",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SeverityMild, result.Severity)
}

func TestKnownTotals(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		instrument model.Instrument
		items      int
		value      int
		wantScore  int
		wantBand   model.Severity
	}{
		{model.InstrumentPHQ9, 9, 2, 18, model.SeverityModeratelySevere},
		{model.InstrumentGAD7, 7, 0, 0, model.SeverityMinimal},
		{model.InstrumentWHO5, 5, 5, 25, model.SeverityMinimal},
		{model.InstrumentWHO5, 5, 0, 0, model.SeveritySevere},
		{model.InstrumentIAT, 20, 5, 100, model.SeveritySevere},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_all_%d", tt.instrument, tt.value), func(t *testing.T) {
			result, err := registry.Calculate(tt.instrument, uniformResponses(tt.items, tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantBand, result.Severity)
		})
	}
}

func TestPSS10ReverseScoring(t *testing.T) {
	registry := NewRegistry()

	// All zeros: six direct items contribute 0, the four reverse items
	// contribute 4 each
	result, err := registry.Calculate(model.InstrumentPSS10, uniformResponses(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 16, result.Score)

	// All fours: direct items contribute 4 each, reverse items 0
	result, err = registry.Calculate(model.InstrumentPSS10, uniformResponses(10, 4))
	require.NoError(t, err)
	assert.Equal(t, 24, result.Score)
}

func TestRegistryCoversClosedSet(t *testing.T) {
	registry := NewRegistry()

	expected := []model.Instrument{
		model.InstrumentPHQ9, model.InstrumentGAD7, model.InstrumentGHQ12,
		model.InstrumentPSS10, model.InstrumentWHO5, model.InstrumentIAT,
		model.InstrumentPSQI, model.InstrumentBHI10, model.InstrumentDERS18,
		model.InstrumentCSSRS, model.InstrumentCSSRSAlias,
	}
	assert.ElementsMatch(t, expected, registry.Instruments())

	// Every config must end in a ceiling band so banding is total
	for _, instrument := range expected {
		cfg := registry.Config(instrument)
		require.NotNil(t, cfg, "instrument %s", instrument)
		if !cfg.Screener {
			require.NotEmpty(t, cfg.Bands)
			prev := cfg.Bands[0].Upper
			for _, band := range cfg.Bands[1:] {
				assert.Greater(t, band.Upper, prev, "%s bands must ascend", instrument)
				prev = band.Upper
			}
		}
	}
}
