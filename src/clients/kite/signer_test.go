package kite_test

import (
	"testing"

	"kitesync/src/clients/kite"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	t.Run("matches known digests", func(t *testing.T) {
		assert.Equal(t,
			"ff6a6d3d60c9d974df906ba6f787ac38300cfa68b41801b486ea1007e52e8942",
			kite.Checksum("api_key", "request_token", "api_secret"))
		assert.Equal(t,
			"b7bace3d1f56b26972aad152edb7320529ccd8c967d77423d25d98427dcfbd75",
			kite.Checksum("k", "t", "s"))
		assert.Equal(t,
			"d90990da9d0a9d76eb67fbf9d03926bdbc19c5f5aae8aa1f3de385f6fb0cc35b",
			kite.Checksum("abc123", "tok456", "sec789"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		first := kite.Checksum("key", "token", "secret")
		second := kite.Checksum("key", "token", "secret")
		assert.Equal(t, first, second)
	})

	t.Run("changes when any input changes", func(t *testing.T) {
		base := kite.Checksum("key", "token", "secret")
		assert.NotEqual(t, base, kite.Checksum("key2", "token", "secret"))
		assert.NotEqual(t, base, kite.Checksum("key", "token2", "secret"))
		assert.NotEqual(t, base, kite.Checksum("key", "token", "secret2"))
	})

	t.Run("is sensitive to concatenation order", func(t *testing.T) {
		assert.NotEqual(t,
			kite.Checksum("a", "b", "c"),
			kite.Checksum("c", "b", "a"))
	})
}
