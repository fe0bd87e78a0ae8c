package diag

import (
	"bytes"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	clock := func() time.Time { return time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC) }
	return New(&out, &errOut).WithClock(clock), &out, &errOut
}

func TestLogFormat(t *testing.T) {
	l, out, errOut := testLogger()

	l.Messagef("Created %s", "instance")
	l.Warningf("low %d", 1)

	assert.Equal(t, "[13:04:05]{MESSAGE}: Created instance\n[13:04:05]{WARNING}: low 1\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestErrorfIsFatal(t *testing.T) {
	l, out, errOut := testLogger()

	err := l.Errorf("Failed to create %s", "swap chain")
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, "Failed to create swap chain", err.Error())
	assert.Equal(t, "[13:04:05]{ERROR}: Failed to create swap chain\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestFatalSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(Fatal(errors.New("boom")), "init")
	assert.True(t, IsFatal(err))
	assert.False(t, IsFatal(errors.New("boom")))
	assert.NoError(t, Fatal(nil))
}

func TestList(t *testing.T) {
	l, out, _ := testLogger()
	l.List("Available layers:", []string{"a V:1", "b V:2"})
	assert.Equal(t, "[13:04:05]{MESSAGE}: Available layers:\na V:1\nb V:2\n", out.String())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("WARN")
	require.NoError(t, err)
	assert.Equal(t, PolicyWarn, p)

	p, err = ParsePolicy("fatal")
	require.NoError(t, err)
	assert.Equal(t, PolicyFatal, p)

	_, err = ParsePolicy("ignore")
	assert.Error(t, err)
}

func TestRequireAllPresent(t *testing.T) {
	l, out, errOut := testLogger()
	available := map[string]int{"VK_LAYER_KHRONOS_validation": 1, "other": 2}

	found, err := Require(l, "layer", []string{"VK_LAYER_KHRONOS_validation"}, available, PolicyFatal)
	require.NoError(t, err)
	assert.Equal(t, []string{"VK_LAYER_KHRONOS_validation"}, found)
	assert.Contains(t, out.String(), "Found layer: VK_LAYER_KHRONOS_validation")
	assert.Empty(t, errOut.String())
}

func TestRequireMissingFatal(t *testing.T) {
	l, _, errOut := testLogger()

	_, err := Require(l, "layer", []string{"present", "absent"}, map[string]bool{"present": true}, PolicyFatal)
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Contains(t, err.Error(), "absent")
	assert.Contains(t, errOut.String(), "{ERROR}: Required layer not available: absent")
}

func TestRequireMissingWarn(t *testing.T) {
	l, out, errOut := testLogger()

	found, err := Require(l, "extension", []string{"a", "b", "c"}, map[string]bool{"a": true, "c": true}, PolicyWarn)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, found)
	assert.Contains(t, out.String(), "{WARNING}: Required extension not available: b")
	assert.Empty(t, errOut.String())
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 0, "a": 0, "b": 0}))
}
