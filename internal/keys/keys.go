// Package keys derives store keys from a caller-supplied fragment and a
// component type name.
package keys

import (
	"regexp"

	"github.com/google/uuid"
)

// The join character is included so that joining never doubles it up.
var nonWord = regexp.MustCompile(`[\W_]+`)

// Normalize collapses every run of non-word characters to a single "_".
func Normalize(s string) string {
	return nonWord.ReplaceAllString(s, "_")
}

// Derive joins fragment and typeName and normalizes the result. Equal
// fragments always derive equal keys, so proxies constructed with the same
// fragment in different processes share one store entry.
func Derive(fragment, typeName string) string {
	return Normalize(fragment + "_" + typeName)
}

// Token returns a unique per-construction fallback fragment. It differs on
// every call, so keys derived from it never match across process restarts.
func Token() string {
	return uuid.NewString()
}
