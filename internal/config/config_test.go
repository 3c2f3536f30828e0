package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "DICT_FILE", "JWT_EXPIRES_DAYS", "COOKIE_NAME", "NODE_ENV", "SESSION_IDLE_MINUTES"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "./data/letterfall.db", c.DBPath)
	assert.Empty(t, c.DictFile)
	assert.Equal(t, 14*24*time.Hour, c.JWTTTL)
	assert.Equal(t, "letterfall_token", c.CookieName)
	assert.False(t, c.Production)
	assert.Equal(t, 30*time.Minute, c.SessionIdle)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRES_DAYS", "2")
	t.Setenv("SESSION_IDLE_MINUTES", "not-a-number")
	t.Setenv("NODE_ENV", "production")

	c := FromEnv()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 48*time.Hour, c.JWTTTL)
	assert.Equal(t, 30*time.Minute, c.SessionIdle)
	assert.True(t, c.Production)
}
