package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadinessURL(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		":3001":          "http://localhost:3001/health/ready",
		"0.0.0.0:8080":   "http://localhost:8080/health/ready",
		"127.0.0.1:3001": "http://127.0.0.1:3001/health/ready",
		"[::]:3001":      "http://localhost:3001/health/ready",
		"db.internal":    "http://db.internal/health/ready",
	}
	for addr, want := range tests {
		assert.Equal(t, want, readinessURL(addr), addr)
	}
}

func TestCommandTree(t *testing.T) {
	t.Parallel()

	root := Command()
	for _, name := range []string{"serve", "indexes", "healthcheck"} {
		cmd, _, err := root.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
}
