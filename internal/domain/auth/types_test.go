package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	t.Parallel()
	now := time.Now()
	sess := Session{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, sess.Expired(now))
	assert.False(t, sess.Expired(now.Add(time.Hour))) // expiry instant itself is still valid
	assert.True(t, sess.Expired(now.Add(time.Hour+time.Second)))
}
