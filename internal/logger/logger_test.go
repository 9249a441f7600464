package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestInfoWithFields(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("session booked", "user_id", 42, "time_slot", "7:30 AM - 8:30 AM")

	output := buf.String()
	assert.Contains(t, output, "session booked")
	assert.Contains(t, output, "user_id=42")
	assert.Contains(t, output, "time_slot=7:30 AM - 8:30 AM")
}

func TestInfoWithDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("partial fields", "orphan")

	output := buf.String()
	assert.Contains(t, output, "partial fields")
	assert.Contains(t, output, "orphan")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)

	Error("test error", "code", 500)

	output := buf.String()
	assert.Contains(t, output, "test error")
	assert.Contains(t, output, "code=500")
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	DebugLogger = log.New(&buf, "DEBUG: ", 0)

	Debug("test debug")

	assert.Contains(t, buf.String(), "test debug")
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Infof("booked slot %s for user %d", "9:00 AM - 10:00 AM", 7)

	assert.Contains(t, buf.String(), "booked slot 9:00 AM - 10:00 AM for user 7")
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)

	Errorf("failed after %d tries", 3)

	assert.Contains(t, buf.String(), "failed after 3 tries")
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	DebugLogger = log.New(&buf, "DEBUG: ", 0)

	Debugf("queue length %d", 12)

	assert.Contains(t, buf.String(), "queue length 12")
}

func TestFormatKV(t *testing.T) {
	assert.Equal(t, "plain", formatKV("plain", nil))
	assert.Equal(t, "msg a=1", formatKV("msg", []interface{}{"a", 1}))
	assert.Equal(t, "msg a=1 b=two", formatKV("msg", []interface{}{"a", 1, "b", "two"}))
}
