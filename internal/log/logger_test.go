package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "github.com/thirdweb-dev/freeze/configs"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel(""))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
}

func TestNewLoggerWritesComponent(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LogConfig{Level: "info"}, "freeze")
	logger.Debug().Msg("hidden")
	logger.Info().Str("datatype", "blocks").Msg("Collected chunk")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "freeze", entry["component"])
	assert.Equal(t, "blocks", entry["datatype"])
	assert.Equal(t, "Collected chunk", entry["message"])
	assert.Contains(t, entry, "caller")
}
