package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	routes := map[string][]string{
		"/api/containers":               {"get", "post"},
		"/api/containers/{id}":          {"get"},
		"/api/routes":                   {"get", "post"},
		"/api/routes/{id}":              {"get"},
		"/api/calculations/preview":     {"post"},
		"/api/calculations":             {"get", "post"},
		"/api/calculations/{id}":        {"get", "delete"},
		"/api/calculations/{id}/report": {"get", "post"},
		"/api/users/register":           {"post"},
		"/api/users/login":              {"post"},
		"/api/users/logout":             {"post"},
	}
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		require.True(t, ok, path)
		for _, m := range methods {
			assert.Contains(t, ops, m, path)
		}
	}
	assert.Len(t, doc.Paths, len(routes))
}
