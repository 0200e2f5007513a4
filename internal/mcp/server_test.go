package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/coderagd/internal/pathres"
)

func newTestServer(t *testing.T, mappings map[string]string) *Server {
	t.Helper()
	s, err := NewServer(&Config{Logger: zap.NewNop()}, pathres.New(mappings))
	require.NoError(t, err)
	return s
}

func TestNewServer(t *testing.T) {
	t.Run("creates server with defaults when config is nil", func(t *testing.T) {
		s, err := NewServer(nil, pathres.New(nil))
		require.NoError(t, err)
		assert.NotNil(t, s.mcp)
		assert.NotNil(t, s.metrics)
	})

	t.Run("requires a registry", func(t *testing.T) {
		_, err := NewServer(DefaultConfig(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registry is required")
	})
}

func TestServerResolve(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"project":     "/p1",
		"project.sub": "/p2",
	})
	ctx := context.Background()

	t.Run("longest prefix wins", func(t *testing.T) {
		namespace, root, err := s.resolve(ctx, "project.sub.module.Func")
		require.NoError(t, err)
		assert.Equal(t, "project.sub", namespace)
		assert.Equal(t, "/p2", root)
	})

	t.Run("ungrounded fallback surfaces NotFoundError", func(t *testing.T) {
		_, _, err := s.resolve(ctx, "unknown.module.Func")
		require.Error(t, err)

		var nfe *pathres.NotFoundError
		require.True(t, errors.As(err, &nfe))
		assert.Equal(t, "unknown", nfe.Namespace)
		assert.ElementsMatch(t, []string{"project", "project.sub"}, nfe.Available)
	})

	t.Run("empty qualified name rejected", func(t *testing.T) {
		_, _, err := s.resolve(ctx, "")
		assert.Error(t, err)
	})
}
