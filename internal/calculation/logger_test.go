package calculation

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	engine := NewProjectionEngine()
	engine.SetLogger(NewLogrusLogger(l))

	_, err := engine.CalculateProjections(context.Background(), exampleInput())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "component=calculation")
	assert.Contains(t, out, "projected 30 years from age 35")
}

func TestSetLoggerNil(t *testing.T) {
	engine := NewProjectionEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
