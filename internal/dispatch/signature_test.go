package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	const secret = "webhook-secret"
	body := []byte(`{"chainId":"0x1","txs":[]}`)

	t.Run("accepts the signature produced from the same secret and body", func(t *testing.T) {
		assert.True(t, verifySignature(secret, body, signBody(secret, body)))
	})

	t.Run("rejects a signature computed with a different secret", func(t *testing.T) {
		assert.False(t, verifySignature(secret, body, signBody("other-secret", body)))
	})

	t.Run("rejects a signature over a tampered body", func(t *testing.T) {
		sig := signBody(secret, body)
		tampered := []byte(`{"chainId":"0x1","txs":[{}]}`)
		assert.False(t, verifySignature(secret, tampered, sig))
	})

	t.Run("rejects a non-hex signature", func(t *testing.T) {
		assert.False(t, verifySignature(secret, body, "not-hex"))
	})

	t.Run("rejects a truncated signature", func(t *testing.T) {
		sig := signBody(secret, body)
		assert.False(t, verifySignature(secret, body, sig[:len(sig)-2]))
	})
}
