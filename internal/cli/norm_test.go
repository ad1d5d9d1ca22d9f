package cli

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNorm(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{name: "five", args: []string{"5"}, wantCode: ExitOK, wantStdout: "5.477226\n"},
		{name: "zero", args: []string{"0"}, wantCode: ExitOK, wantStdout: "0.000000\n"},
		{name: "one", args: []string{"1"}, wantCode: ExitOK, wantStdout: "0.000000\n"},
		{name: "two", args: []string{"2"}, wantCode: ExitOK, wantStdout: "1.000000\n"},
		{name: "missing", args: nil, wantCode: ExitUsage},
		{name: "extra", args: []string{"3", "4"}, wantCode: ExitUsage},
		{name: "not a number", args: []string{"abc"}, wantCode: ExitUsage},
		{name: "negative", args: []string{"-3"}, wantCode: ExitUsage},
		{name: "negative after separator", args: []string{"--", "-3"}, wantCode: ExitUsage},
		{name: "negative with timing", args: []string{"-timing", "-5"}, wantCode: ExitUsage},
		{name: "unknown flag", args: []string{"-x", "3"}, wantCode: ExitUsage},
		{name: "bad clock", args: []string{"-timing", "-clock", "sundial", "3"}, wantCode: ExitUsage},
		{name: "help", args: []string{"-h"}, wantCode: ExitOK},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Norm(tc.args, &stdout, &stderr)
			assert.Equal(t, tc.wantCode, code, "stderr: %s", stderr.String())
			assert.Equal(t, tc.wantStdout, stdout.String())
			if tc.wantCode == ExitUsage {
				assert.NotEmpty(t, stderr.String())
			}
		})
	}
}

func TestNorm_NegativeLength(t *testing.T) {
	for _, args := range [][]string{
		{"-3"},
		{"--", "-3"},
		{"-timing", "-5"},
		{"-v", "-timing", "-clock", "monotonic", "-99999999999999999999"},
	} {
		var stdout, stderr bytes.Buffer
		code := Norm(args, &stdout, &stderr)
		assert.Equal(t, ExitUsage, code, "args %v", args)
		assert.Empty(t, stdout.String(), "args %v", args)
		assert.Contains(t, stderr.String(), "invalid length", "args %v", args)
		assert.NotContains(t, stderr.String(), "flag provided but not defined", "args %v", args)
	}
}

func TestSplitNegativeInts(t *testing.T) {
	rest, ints := splitNegativeInts([]string{"-timing", "-clock", "monotonic", "-12", "-", "-1x", "7"})
	assert.Equal(t, []string{"-timing", "-clock", "monotonic", "-", "-1x", "7"}, rest)
	assert.Equal(t, []string{"-12"}, ints)
}

func TestNorm_Timing(t *testing.T) {
	for _, args := range [][]string{
		{"-timing", "100000"},
		{"-timing", "-clock", "monotonic", "100000"},
		{"-timing", "-v", "0"},
	} {
		var stdout, stderr bytes.Buffer
		code := Norm(args, &stdout, &stderr)
		require.Equal(t, ExitOK, code, "args %v stderr: %s", args, stderr.String())

		out := stdout.String()
		assert.NotContains(t, out, "\n", "tick output must not end with a newline")
		ticks, err := strconv.ParseInt(out, 10, 64)
		require.NoError(t, err, "args %v output %q", args, out)
		assert.GreaterOrEqual(t, ticks, int64(0))
	}
}

func TestNorm_Verbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Norm([]string{"-v", "5"}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "5.477226\n", stdout.String())
	assert.Contains(t, stderr.String(), "norm computed")
}
