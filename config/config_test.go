package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "8080", "EMPTY": ""}

	assert.Equal(t, "8080", GetString(c, "PORT", "3001"))
	assert.Equal(t, "3001", GetString(c, "MISSING", "3001"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"MAX": "250", "BAD": "two-fifty"}

	assert.Equal(t, 250, GetInt(c, "MAX", 100))
	assert.Equal(t, 100, GetInt(c, "MISSING", 100))
	assert.Equal(t, 100, GetInt(c, "BAD", 100))
}

func TestGetStringSlice(t *testing.T) {
	c := map[string]string{
		"ORIGINS": "https://a.example, https://b.example ,",
		"BLANK":   " , ,",
	}

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetStringSlice(c, "ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetStringSlice(c, "MISSING", []string{"*"}))
	assert.Equal(t, []string{"*"}, GetStringSlice(c, "BLANK", []string{"*"}))
}

func TestGetDuration(t *testing.T) {
	c := map[string]string{"WINDOW": "15m", "BAD": "soon"}

	assert.Equal(t, 15*time.Minute, GetDuration(c, "WINDOW", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(c, "MISSING", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(c, "BAD", time.Minute))
}
