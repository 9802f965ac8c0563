package midtrans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	sig := Signature("ORDER-1-abc", "200", "180000.00", "server-key")
	assert.Len(t, sig, 128)
	assert.True(t, VerifySignature("ORDER-1-abc", "200", "180000.00", sig, "server-key"))
	assert.False(t, VerifySignature("ORDER-1-abc", "200", "1.00", sig, "server-key"))
	assert.False(t, VerifySignature("ORDER-1-abc", "200", "180000.00", sig, "other-key"))
}

func TestNewSnapClientEnv(t *testing.T) {
	assert.NotNil(t, NewSnapClient("k", "sandbox"))
	assert.NotNil(t, NewSnapClient("k", "production"))
}
