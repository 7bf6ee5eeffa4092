package repository

import "strings"

// actionsDelimiter joins the recommended-action sequence into the single
// scalar field the assessments collection stores. The delimited form
// never leaves this package.
const actionsDelimiter = "||"

func encodeActions(actions []string) string {
	return strings.Join(actions, actionsDelimiter)
}

func decodeActions(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	return strings.Split(encoded, actionsDelimiter)
}
