package kaspa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKasToSompi(t *testing.T) {
	assert.Equal(t, int64(100_000_000), KasToSompi(1))
	assert.Equal(t, int64(50_000_000), KasToSompi(0.5))
	assert.Equal(t, int64(10_000_000_000), KasToSompi(100))
	assert.Equal(t, int64(1), KasToSompi(0.00000001))
	assert.Equal(t, int64(0), KasToSompi(0))

	// Values that are not exactly representable in binary must still round
	// to the correct integer sompi amount.
	assert.Equal(t, int64(10_000_000), KasToSompi(0.1))
	assert.Equal(t, int64(12_345_678), KasToSompi(0.12345678))
}

func TestSompiToKas(t *testing.T) {
	assert.Equal(t, 1.0, SompiToKas(100_000_000))
	assert.Equal(t, 0.25, SompiToKas(25_000_000))
	assert.Equal(t, 0.0, SompiToKas(0))
}

func TestIsValidAddress(t *testing.T) {
	valid := []string{
		"kaspa:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",
		"kaspatest:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",
		"kaspa:0123456789",
	}
	for _, addr := range valid {
		assert.True(t, IsValidAddress(addr), addr)
	}

	invalid := []string{
		"",
		"kaspa:",
		"kaspa:short",
		"bitcoin:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",
		"kaspa:QZ0S22ECE8EJ08HC",                            // uppercase body
		"qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",          // missing prefix
		"kaspa:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0v extra",  // trailing junk
	}
	for _, addr := range invalid {
		assert.False(t, IsValidAddress(addr), addr)
	}
}

func TestNormalizeTxID(t *testing.T) {
	hash := "c87f2a8e9d3b14f6a05e7c1d2b8a96e4f3d0c5b7a1892e6f4d3c2b1a09e8f7d6"

	t.Run("bare id passes through", func(t *testing.T) {
		assert.Equal(t, hash, NormalizeTxID(hash))
		assert.Equal(t, hash, NormalizeTxID("  "+hash+"\n"))
	})

	t.Run("json envelope field names", func(t *testing.T) {
		assert.Equal(t, hash, NormalizeTxID(`{"id":"`+hash+`"}`))
		assert.Equal(t, hash, NormalizeTxID(`{"txId":"`+hash+`"}`))
		assert.Equal(t, hash, NormalizeTxID(`{"txid":"`+hash+`"}`))
		assert.Equal(t, hash, NormalizeTxID(`{"transaction_id":"`+hash+`"}`))
	})

	t.Run("hex hash buried in unknown envelope", func(t *testing.T) {
		raw := `{"result":{"hash":"` + hash + `","mass":1690}}`
		assert.Equal(t, hash, NormalizeTxID(raw))
	})

	t.Run("unextractable value returned as-is", func(t *testing.T) {
		raw := `{"status":"submitted"}`
		assert.Equal(t, raw, NormalizeTxID(raw))
	})
}
