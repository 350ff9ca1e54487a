package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleRouting(t *testing.T) {
	t.Parallel()

	var out, errBuf bytes.Buffer
	c := NewConsoleTo(&out, &errBuf)

	c.Info("provisioning %s", "sports-analytics")
	c.Success("repository ready")
	c.Warn("reusing existing key pair")
	c.Error("launch failed: %v", "boom")

	assert.Contains(t, out.String(), "provisioning sports-analytics")
	assert.Contains(t, out.String(), "repository ready")
	assert.Contains(t, out.String(), "reusing existing key pair")
	assert.NotContains(t, out.String(), "launch failed")
	assert.Contains(t, errBuf.String(), "launch failed: boom")
}
