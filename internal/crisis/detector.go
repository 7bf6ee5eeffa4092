// Package crisis classifies free text against a reviewed self-harm
// keyword table. Matching is deliberately substring-based rather than
// tokenized: a false alarm costs a counselor a look, a missed signal
// costs far more.
package crisis

import "strings"

// Detector matches free text against a fixed keyword set. It only
// classifies; escalation, logging and persistence belong to callers.
type Detector struct {
	keywords []string
}

// NewDetector builds a detector from the default keyword table plus any
// tenant-supplied additions.
func NewDetector(extra ...string) *Detector {
	keywords := make([]string, 0, len(defaultKeywords)+len(extra))
	for _, kw := range append(append([]string{}, defaultKeywords...), extra...) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &Detector{keywords: keywords}
}

// IsCrisisMessage reports whether the text contains any crisis phrase.
// Case-insensitive, total, side-effect free. Empty input is never a
// crisis.
func (d *Detector) IsCrisisMessage(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the active phrase table for review surfaces.
func (d *Detector) Keywords() []string {
	out := make([]string, len(d.keywords))
	copy(out, d.keywords)
	return out
}
