package crisis

// defaultKeywords is the reviewed crisis phrase table, v3 (2026-06).
// Grouped by signal type; matching is substring-based and
// case-insensitive, so entries are lowercase. Additions go through
// clinical review, not code review — keep this file data-only.
var defaultKeywords = []string{
	// Direct self-harm / suicide intent
	"kill myself",
	"killing myself",
	"want to die",
	"wanna die",
	"end my life",
	"ending my life",
	"end it all",
	"take my own life",
	"suicide",
	"suicidal",
	"i want to be dead",
	"better off dead",
	"not worth living",
	"no reason to live",
	"nothing to live for",
	"going to hurt myself",
	"want to hurt myself",
	"hurt myself",
	"harm myself",
	"self harm",
	"self-harm",
	"can't go on",
	"cannot go on",
	"don't want to be here anymore",
	"dont want to be here anymore",
	"ready to give up on life",

	// Passive ideation
	"wish i was dead",
	"wish i were dead",
	"wish i wasn't born",
	"wish i was never born",
	"everyone would be better without me",
	"better without me",
	"no point in living",
	"tired of living",
	"done with life",
	"life is meaningless",
	"disappear forever",
	"never wake up",
	"want to sleep forever",
	"fade away forever",

	// Method references
	"cutting myself",
	"cut myself",
	"overdose",
	"od on",
	"hang myself",
	"jump off a bridge",
	"jump off the roof",
	"slit my wrist",
	"swallow pills",
	"starve myself",
}
