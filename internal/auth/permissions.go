package auth

import "strings"

// Permission разрешение из scope выданного SSO токена.
type Permission string

const (
	PermissionNoExpire Permission = "noexpire"
	PermissionEdit     Permission = "edit"
	PermissionEmail    Permission = "email"
	PermissionAdmin    Permission = "admin"
	PermissionCC       Permission = "cc"
)

const (
	scopeSeparator   = ","
	scopeGrantAllTag = "*"
)

// RequiredScope scope который сервис запрашивает у SSO.
const RequiredScope = PermissionCC

var allPermissions = []Permission{
	PermissionEmail,
	PermissionNoExpire,
	PermissionAdmin,
	PermissionEdit,
	PermissionCC,
}

// ParseScope разбирает scope строку в список известных разрешений.
// Неизвестные и пустые элементы пропускаются, дубликаты схлопываются,
// тег "*" выдает все разрешения.
func ParseScope(scope string) []Permission {
	if strings.Contains(scope, scopeGrantAllTag) {
		result := make([]Permission, len(allPermissions))
		copy(result, allPermissions)
		return result
	}

	seen := make(map[Permission]struct{})
	var result []Permission
	for _, raw := range strings.Split(scope, scopeSeparator) {
		p := Permission(strings.TrimSpace(raw))
		if !isKnownPermission(p) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}

// HasPermission проверяет наличие разрешения в списке.
func HasPermission(permissions []Permission, p Permission) bool {
	for _, have := range permissions {
		if have == p {
			return true
		}
	}
	return false
}

func isKnownPermission(p Permission) bool {
	for _, known := range allPermissions {
		if known == p {
			return true
		}
	}
	return false
}
