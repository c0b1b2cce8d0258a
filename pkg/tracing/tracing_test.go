package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(config.Config{}, logger.NewNop(), "portfolio-api-test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
