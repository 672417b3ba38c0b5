package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_WithDefaults(t *testing.T) {
	defaults := Options{}.withDefaults()
	assert.Equal(t, 25, defaults.MaxOpenConns)
	assert.Equal(t, 5, defaults.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, defaults.ConnMaxLifetime)

	custom := Options{MaxOpenConns: 4, MaxIdleConns: 2, ConnMaxLifetime: time.Hour}.withDefaults()
	assert.Equal(t, 4, custom.MaxOpenConns)
	assert.Equal(t, 2, custom.MaxIdleConns)
	assert.Equal(t, time.Hour, custom.ConnMaxLifetime)
}
