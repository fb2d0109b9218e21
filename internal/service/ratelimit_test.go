package service_test

import (
	"testing"
	"time"

	"github.com/msomdec/toadoo/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestTokenBucket_DeniesWhenEmpty(t *testing.T) {
	tb := service.NewTokenBucket(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow("client"), "request %d within burst", i+1)
	}
	assert.False(t, tb.Allow("client"), "burst exhausted")
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	tb := service.NewTokenBucket(1, 1)

	assert.True(t, tb.Allow("a"))
	assert.False(t, tb.Allow("a"))
	assert.True(t, tb.Allow("b"), "a separate key has its own bucket")
}

func TestTokenBucket_Refills(t *testing.T) {
	// 100 tokens/second so the refill is observable without a slow test.
	tb := service.NewTokenBucket(100, 1)

	assert.True(t, tb.Allow("client"))
	assert.False(t, tb.Allow("client"))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, tb.Allow("client"), "tokens return as time passes")
}

func TestPerMinute(t *testing.T) {
	tb := service.PerMinute(5)

	for i := 0; i < 5; i++ {
		assert.True(t, tb.Allow("login"))
	}
	assert.False(t, tb.Allow("login"), "sixth request within the minute is denied")
}
