// Package permissions holds the role rules of the protected routes, embedded
// from permissions.json.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route. An empty list admits any
// signed-in user.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Open reports whether the route needs no particular role.
func (p Permission) Open() bool {
	return p.Skip || len(p.Permissions) == 0
}

func (p Permission) Allows(role string) bool {
	return p.Open() || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks path up as a route pattern first and then as a
// concrete request path, where a {param} segment matches any non-empty
// segment. An unknown route yields the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Method == method && rp.Path == path
	})

	if idx == -1 {
		idx = slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
			return rp.Method == method && matchPattern(rp.Path, path)
		})
	}

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func matchPattern(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")

	if len(want) != len(got) {
		return false
	}

	for i, segment := range want {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			if got[i] == "" {
				return false
			}

			continue
		}

		if segment != got[i] {
			return false
		}
	}

	return true
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	for _, endpoint := range permissions.Endpoints {
		log.Debug().Str("method", endpoint.Method).Str("path", endpoint.Path).Strs("roles", endpoint.Permissions).Msg("route permission loaded")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
