package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionSubcommand(t *testing.T) {
	var out, errOut strings.Builder
	code := run([]string{"version"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "fontrender")
}

func TestNoArgsPrintsUsage(t *testing.T) {
	var out, errOut strings.Builder
	code := run(nil, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "usage")
}

func TestUnknownSubcommand(t *testing.T) {
	var out, errOut strings.Builder
	code := run([]string{"bogus"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "unknown subcommand")
}

func TestValidateSubcommandRejectsInvalidVersion(t *testing.T) {
	var out, errOut strings.Builder
	code := run([]string{"validate"}, strings.NewReader(`{"version":"2.0","jobs":[]}`), &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Unsupported")
}

func TestValidateSubcommandAcceptsValidSpec(t *testing.T) {
	payload := `{
		"version": "1.0",
		"jobs": [{
			"id": "test1",
			"font": {"path": "/path/to/font.ttf", "size": 1000},
			"text": {"content": "A"},
			"rendering": {"format": "pgm", "encoding": "base64", "width": 100, "height": 50}
		}]
	}`
	var out, errOut strings.Builder
	code := run([]string{"validate"}, strings.NewReader(payload), &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "valid job specification")
}
