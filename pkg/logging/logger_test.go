package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
)

func TestNew_FiltersDebugByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	level.Debug(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "level=warn")
}

func TestNew_VerboseAllowsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	level.Debug(logger).Log("msg", "visible")

	assert.Contains(t, buf.String(), "msg=visible")
}

func TestTimeFunction_PropagatesError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	boom := errors.New("boom")

	err := TimeFunction(logger, "fetch", func() error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "Completed fetch with error")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
