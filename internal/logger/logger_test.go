package logger

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	fn()
	return buf.String()
}

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
	assert.Equal(t, "{a=1, b=x, c=0.50}", formatFields(Fields{"c": 0.5, "a": 1, "b": "x"}))
}

func TestLevels(t *testing.T) {
	out := captureLog(t, func() {
		Info("hello", Fields{"chord": "Am"})
		Warn("careful", nil)
		Error("boom", errors.New("bad"), Fields{"request_id": "r1"})
	})

	assert.Contains(t, out, "[INFO] hello {chord=Am}")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "[ERROR] boom: bad {request_id=r1}")
}
