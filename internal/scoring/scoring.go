package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"campusmind/internal/model"
)

// ErrUnknownInstrument is returned when the identifier is outside the
// supported set. There is no fallback scoring rule.
var ErrUnknownInstrument = errors.New("unknown instrument")

// MalformedResponseError reports a missing or unparsable item. Scoring
// rejects incomplete response sets outright: summing over missing items
// would understate risk.
type MalformedResponseError struct {
	Instrument model.Instrument
	Item       string
	Reason     string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: item %s: %s", e.Instrument, e.Item, e.Reason)
}

// Registry resolves instruments to their scoring rules
type Registry struct {
	configs map[model.Instrument]*Config
}

// NewRegistry builds the static instrument table
func NewRegistry() *Registry {
	return &Registry{configs: buildConfigs()}
}

// Config returns the scoring rule for an instrument, or nil if unknown
func (r *Registry) Config(instrument model.Instrument) *Config {
	return r.configs[instrument]
}

// Instruments lists the supported identifiers, aliases included
func (r *Registry) Instruments() []model.Instrument {
	out := make([]model.Instrument, 0, len(r.configs))
	for inst := range r.configs {
		out = append(out, inst)
	}
	return out
}

// Calculate scores one response set. Dispatch is a pure table lookup:
// an unrecognized identifier fails with ErrUnknownInstrument and never
// produces a default severity.
func (r *Registry) Calculate(instrument model.Instrument, responses model.ResponseSet) (*model.ScoreResult, error) {
	cfg, ok := r.configs[instrument]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, instrument)
	}
	if cfg.Screener {
		return scoreScreener(cfg, responses)
	}
	return scoreSum(cfg, responses)
}

func scoreSum(cfg *Config, responses model.ResponseSet) (*model.ScoreResult, error) {
	sum := 0
	for i := 1; i <= cfg.Items; i++ {
		key := fmt.Sprintf("q%d", i)
		raw, ok := responses[key]
		if !ok {
			return nil, &MalformedResponseError{Instrument: cfg.Instrument, Item: key, Reason: "missing"}
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &MalformedResponseError{Instrument: cfg.Instrument, Item: key, Reason: fmt.Sprintf("not an integer: %q", raw)}
		}
		if v < cfg.ItemMin || v > cfg.ItemMax {
			return nil, &MalformedResponseError{Instrument: cfg.Instrument, Item: key, Reason: fmt.Sprintf("value %d outside %d-%d", v, cfg.ItemMin, cfg.ItemMax)}
		}
		if cfg.Reverse[key] {
			v = cfg.ItemMax - v
		}
		sum += v
	}

	return &model.ScoreResult{Score: sum, Severity: severityFor(cfg, sum)}, nil
}

func severityFor(cfg *Config, score int) model.Severity {
	for _, band := range cfg.Bands {
		if score <= band.Upper {
			return band.Severity
		}
	}
	// Bands always end with a ceiling entry; unreachable for valid configs.
	return cfg.Bands[len(cfg.Bands)-1].Severity
}

// scoreScreener implements the C-SSRS escalation rule. Behavior or an
// intent+plan combination dominates; isolated ideation never outranks
// them. The tier order is a fixed clinical policy.
func scoreScreener(cfg *Config, responses model.ResponseSet) (*model.ScoreResult, error) {
	answers := make([]bool, cfg.Items)
	for i := 1; i <= cfg.Items; i++ {
		key := fmt.Sprintf("q%d", i)
		raw, ok := responses[key]
		if !ok {
			return nil, &MalformedResponseError{Instrument: cfg.Instrument, Item: key, Reason: "missing"}
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "yes":
			answers[i-1] = true
		case "no":
			answers[i-1] = false
		default:
			return nil, &MalformedResponseError{Instrument: cfg.Instrument, Item: key, Reason: fmt.Sprintf("expected yes/no, got %q", raw)}
		}
	}

	ideation := answers[0] || answers[1]
	intent := answers[2] || answers[3]
	plan := answers[4]
	behavior := answers[5]

	switch {
	case behavior || (intent && plan):
		return &model.ScoreResult{Score: 4, Severity: model.SeveritySevere}, nil
	case intent || plan:
		return &model.ScoreResult{Score: 3, Severity: model.SeverityModerate}, nil
	case ideation:
		return &model.ScoreResult{Score: 2, Severity: model.SeverityMild}, nil
	default:
		return &model.ScoreResult{Score: 1, Severity: model.SeverityMinimal}, nil
	}
}
