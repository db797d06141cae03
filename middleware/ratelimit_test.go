package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitStoreAllowsUpToMax(t *testing.T) {
	store := NewRateLimitStore(3, time.Minute)

	assert.True(t, store.Allow("login:a@example.com"))
	assert.True(t, store.Allow("login:a@example.com"))
	assert.True(t, store.Allow("login:a@example.com"))
	assert.False(t, store.Allow("login:a@example.com"))
}

func TestRateLimitStoreKeysAreIndependent(t *testing.T) {
	store := NewRateLimitStore(1, time.Minute)

	assert.True(t, store.Allow("otp:9999999999"))
	assert.False(t, store.Allow("otp:9999999999"))
	assert.True(t, store.Allow("otp:8888888888"))
}

func TestRateLimitStoreClearResetsKey(t *testing.T) {
	store := NewRateLimitStore(1, time.Minute)

	assert.True(t, store.Allow("login:a@example.com"))
	assert.False(t, store.Allow("login:a@example.com"))

	store.Clear("login:a@example.com")
	assert.True(t, store.Allow("login:a@example.com"))
}

func TestRateLimitStoreWindowExpiry(t *testing.T) {
	store := NewRateLimitStore(1, 20*time.Millisecond)

	assert.True(t, store.Allow("k"))
	assert.False(t, store.Allow("k"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, store.Allow("k"))
}

func TestRateLimitStoreSweepDropsExpiredOnly(t *testing.T) {
	store := NewRateLimitStore(5, 20*time.Millisecond)

	store.Allow("expired")
	time.Sleep(30 * time.Millisecond)
	store.Allow("fresh")

	store.Sweep()

	assert.Equal(t, 1, store.Len())
	// The fresh key keeps its count across the sweep
	store.Allow("fresh")
	assert.Equal(t, 1, store.Len())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		role  Role
		ok    bool
	}{
		{"STUDENT", RoleStudent, true},
		{"INSTITUTE_ADMIN", RoleInstituteAdmin, true},
		{"ADMIN", RoleAdmin, true},
		{"admin", 0, false},
		{"SUPERADMIN", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		role, ok := ParseRole(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.role, role)
			assert.Equal(t, tt.input, role.String())
		}
	}
}
