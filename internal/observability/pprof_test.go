package observability

import (
	"testing"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/config"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPprofServer_DisabledReturnsNil(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, srv)
	assert.NoError(t, StopPprofServer(srv, logging.NewNop(), time.Second))
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, nil)
	require.NoError(t, err)
	assert.NoError(t, stop())
}
