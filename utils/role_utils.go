package utils

import (
	"strings"
)

// RoleOperator may trigger maintenance jobs such as drop detection.
const RoleOperator = "operator"

var ValidUserRoles = map[string]bool{
	RoleOperator: true,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// Returns the normalized role (lowercase) and a boolean indicating if it's valid.
func ValidateAndNormalizeRole(role string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	return normalized, ValidUserRoles[normalized]
}
