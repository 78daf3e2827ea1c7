package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	assert.Equal(t, "/", spec.BasePath)
	for path, method := range map[string]string{
		"/":                        "get",
		"/rest/health":             "get",
		"/rest/ready":              "get",
		"/rest/v1/billing":         "post",
		"/rest/v1/billing/overdue": "post",
		"/rest/v1/invoices":        "get",
		"/rest/v1/invoices/{id}":   "get",
		"/rest/v1/customers":       "get",
		"/rest/v1/customers/{id}":  "get",
	} {
		assert.Contains(t, spec.Paths[path], method, path)
	}
}
