package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesRenamedJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "quiz-service", "info")

	logger.WithField("user_id", "u1").Info("user registered")
	logger.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "user registered", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "quiz-service", entry["service"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}
