package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "https://example.com", "-x", "junk", "-t", "15"}
	got := FilterArgs(args, []string{"-a", "-t"})
	assert.Equal(t, []string{"-a", "https://example.com", "-t", "15"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--other=1", "-a=https://example.com"}
	got := FilterArgs(args, []string{"--config", "-a"})
	assert.Equal(t, []string{"--config=conf.json", "-a=https://example.com"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-a", "-t"}
	got := FilterArgs(args, []string{"-a"})
	// "-t" looks like another flag, so it is not consumed as a value
	assert.Equal(t, []string{"-a"}, got)
}

func TestFilterArgs_EmptyInput(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
