package auth

// Permission is a closed capability tag. Unknown strings found in token
// claims are dropped at the boundary rather than carried around.
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// ParsePermissions converts raw claim strings into known permissions.
func ParsePermissions(raw []string) []Permission {
	var perms []Permission
	for _, s := range raw {
		switch Permission(s) {
		case PermissionRead, PermissionWrite:
			perms = append(perms, Permission(s))
		}
	}
	return perms
}

func permissionStrings(perms []Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

func hasPermission(granted []Permission, want Permission) bool {
	for _, p := range granted {
		if p == want {
			return true
		}
	}
	return false
}
