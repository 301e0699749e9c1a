package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		want  []Permission
	}{
		{
			name:  "empty scope",
			scope: "",
			want:  nil,
		},
		{
			name:  "single permission",
			scope: "cc",
			want:  []Permission{PermissionCC},
		},
		{
			name:  "multiple permissions",
			scope: "cc,edit",
			want:  []Permission{PermissionCC, PermissionEdit},
		},
		{
			name:  "unknown entries are skipped",
			scope: "cc,bogus,edit",
			want:  []Permission{PermissionCC, PermissionEdit},
		},
		{
			name:  "duplicates collapse",
			scope: "cc,cc,edit",
			want:  []Permission{PermissionCC, PermissionEdit},
		},
		{
			name:  "grant all tag",
			scope: "*",
			want:  allPermissions,
		},
		{
			name:  "grant all tag among others",
			scope: "cc,*",
			want:  allPermissions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, ParseScope(tt.scope))
		})
	}
}

func TestHasPermission(t *testing.T) {
	perms := ParseScope("cc,noexpire")
	assert.True(t, HasPermission(perms, PermissionCC))
	assert.True(t, HasPermission(perms, PermissionNoExpire))
	assert.False(t, HasPermission(perms, PermissionAdmin))
	assert.False(t, HasPermission(nil, PermissionCC))
}
