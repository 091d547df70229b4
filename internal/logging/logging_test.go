package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/logging"
)

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{})
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger = logging.New(&buf, logging.Options{Debug: true})
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Format: "json"})
	logger.Error("error deleting todo", "id", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error deleting todo", entry["msg"])
	assert.EqualValues(t, 3, entry["id"])
}

func TestNew_ReportTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, logging.Options{Format: "json"}).Info("plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, log.TimestampKey)

	buf.Reset()
	logging.New(&buf, logging.Options{Format: "json", ReportTimestamp: true}).Info("stamped")

	entry = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, log.TimestampKey)
}
