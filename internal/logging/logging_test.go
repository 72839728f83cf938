package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(&buf, "debug", "text")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("alias", "Pkg.Foo").Debug("unresolved reference")
	assert.Contains(t, buf.String(), `msg="unresolved reference"`)
	assert.Contains(t, buf.String(), "alias=Pkg.Foo")
	assert.NotContains(t, buf.String(), "time=")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(&buf, "info", "json")
	require.NoError(t, err)

	l.WithField("path", "a.js").Info("published source listing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "published source listing", entry["msg"])
	assert.Equal(t, "a.js", entry["path"])
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(&buf, "warn", "text")
	require.NoError(t, err)

	l.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)
}

func TestNewNullLogger(t *testing.T) {
	l := NewNullLogger()
	assert.NotPanics(t, func() { l.Error("discarded") })
}
