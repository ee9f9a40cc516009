package photos

import (
	"fmt"
	"strings"
)

// Policy names a precedence rule for choosing a group's authoritative path.
type Policy string

const (
	// PolicyVerify picks the first local path whose file exists on disk and
	// falls back to the placeholder. Every row in the group converges to the
	// chosen path.
	PolicyVerify Policy = "verify"
	// PolicyPreferLocal trusts any recorded local path without probing the
	// filesystem and only rewrites rows that point at external URLs.
	PolicyPreferLocal Policy = "prefer-local"
)

// Policies lists the supported policies in display order.
func Policies() []Policy {
	return []Policy{PolicyVerify, PolicyPreferLocal}
}

// ParsePolicy converts operator input into a Policy.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PolicyVerify), "verify-existing":
		return PolicyVerify, nil
	case string(PolicyPreferLocal), "local", "prefer_local":
		return PolicyPreferLocal, nil
	default:
		return "", fmt.Errorf("unknown policy %q (use %s or %s)", value, PolicyVerify, PolicyPreferLocal)
	}
}
