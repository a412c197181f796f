package services

import "github.com/ochairo/preflight/internal/domain/entities"

// ResolveTarget maps a CI platform signal to a target triple. Signals with
// an explicit entry in the map get that triple; everything else, including
// the empty signal from an unset environment variable, falls through to the
// default. Total function: there is no error case.
func ResolveTarget(signal string, targets entities.TargetMap) string {
	if triple, ok := targets.ByOS[signal]; ok && triple != "" {
		return triple
	}
	return targets.Default
}
