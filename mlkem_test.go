package mlkem

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip512(t *testing.T) {
	key, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)

	ek := key.EncapsulationKey()
	require.Len(t, ek.Bytes(), EncapsulationKeySize512)

	ct, ss, err := ek.Encapsulate(rand.Reader)
	require.NoError(t, err)
	require.Len(t, ct, CiphertextSize512)
	require.Len(t, ss, SharedKeySize)

	ss2, err := key.Decapsulate(ct)
	require.NoError(t, err)
	require.Equal(t, ss, ss2)
}

func TestRoundTrip768(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)

	ek := key.EncapsulationKey()
	require.Len(t, ek.Bytes(), EncapsulationKeySize768)

	ct, ss, err := ek.Encapsulate(rand.Reader)
	require.NoError(t, err)
	require.Len(t, ct, CiphertextSize768)
	require.Len(t, ss, SharedKeySize)

	ss2, err := key.Decapsulate(ct)
	require.NoError(t, err)
	require.Equal(t, ss, ss2)
}

func TestRoundTrip1024(t *testing.T) {
	key, err := GenerateKey1024(rand.Reader)
	require.NoError(t, err)

	ek := key.EncapsulationKey()
	require.Len(t, ek.Bytes(), EncapsulationKeySize1024)

	ct, ss, err := ek.Encapsulate(rand.Reader)
	require.NoError(t, err)
	require.Len(t, ct, CiphertextSize1024)
	require.Len(t, ss, SharedKeySize)

	ss2, err := key.Decapsulate(ct)
	require.NoError(t, err)
	require.Equal(t, ss, ss2)
}

func TestDeterministicKeyGen(t *testing.T) {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}

	a, err := NewKey768(seed)
	require.NoError(t, err)
	b, err := NewKey768(seed)
	require.NoError(t, err)

	require.Equal(t, a.Bytes(), seed)
	require.Equal(t, a.EncapsulationKey().Bytes(), b.EncapsulationKey().Bytes())
	require.Equal(t, a.DecapsulationKeyBytes(), b.DecapsulationKeyBytes())

	// A different seed must give a different key.
	seed[0] ^= 1
	c, err := NewKey768(seed)
	require.NoError(t, err)
	require.NotEqual(t, a.EncapsulationKey().Bytes(), c.EncapsulationKey().Bytes())
}

func TestImplicitRejection(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)

	ct, ss, err := key.EncapsulationKey().Encapsulate(rand.Reader)
	require.NoError(t, err)

	// Any bit flip must change the shared key without surfacing an
	// error, and the rejection key must be stable for a given
	// ciphertext.
	tampered := make([]byte, len(ct))
	for _, pos := range []int{0, 1, len(ct) / 2, len(ct) - 1} {
		copy(tampered, ct)
		tampered[pos] ^= 0x40

		rej, err := key.Decapsulate(tampered)
		require.NoError(t, err)
		require.NotEqual(t, ss, rej)

		rej2, err := key.Decapsulate(tampered)
		require.NoError(t, err)
		require.Equal(t, rej, rej2)
	}
}

func TestEncapsulationKeyParse(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)
	raw := key.EncapsulationKey().Bytes()

	ek, err := NewEncapsulationKey768(raw)
	require.NoError(t, err)
	require.Equal(t, raw, ek.Bytes())
	require.True(t, ek.Equal(key.EncapsulationKey()))

	ct, ss, err := ek.Encapsulate(rand.Reader)
	require.NoError(t, err)
	ss2, err := key.Decapsulate(ct)
	require.NoError(t, err)
	require.Equal(t, ss, ss2)
}

func TestEncapsulationKeyNotCanonical(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)
	raw := key.EncapsulationKey().Bytes()

	// Force the first encoded coefficient to q, which is congruent to
	// zero but not canonical; such a key must be rejected.
	raw[0] = q & 0xff
	raw[1] = raw[1]&0xf0 | q>>8
	_, err = NewEncapsulationKey768(raw)
	require.Error(t, err)
}

func TestKeyFromExpanded(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)
	expanded := key.DecapsulationKeyBytes()
	require.Len(t, expanded, DecapsulationKeySize768)

	key2, err := NewKeyFromExpanded768(expanded)
	require.NoError(t, err)
	require.Nil(t, key2.Bytes())
	require.Equal(t, expanded, key2.DecapsulationKeyBytes())
	require.Equal(t, key.EncapsulationKey().Bytes(), key2.EncapsulationKey().Bytes())

	ct, ss, err := key.EncapsulationKey().Encapsulate(rand.Reader)
	require.NoError(t, err)
	ss2, err := key2.Decapsulate(ct)
	require.NoError(t, err)
	require.Equal(t, ss, ss2)

	// A corrupted embedded key hash must be rejected.
	bad := make([]byte, len(expanded))
	copy(bad, expanded)
	bad[len(bad)-33] ^= 1
	_, err = NewKeyFromExpanded768(bad)
	require.Error(t, err)
}

func TestInvalidLengths(t *testing.T) {
	_, err := NewKey768(make([]byte, SeedSize-1))
	require.Error(t, err)

	_, err = NewEncapsulationKey768(make([]byte, EncapsulationKeySize768+1))
	require.Error(t, err)

	_, err = NewKeyFromExpanded768(make([]byte, DecapsulationKeySize768-1))
	require.Error(t, err)

	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)
	_, err = key.Decapsulate(make([]byte, CiphertextSize768-1))
	require.Error(t, err)
}

func TestCrossLevelIndependence(t *testing.T) {
	// The rank byte fed into G separates the levels: one seed must give
	// unrelated rho values at different security levels.
	seed := make([]byte, SeedSize)
	keyA, err := NewKey512(seed)
	require.NoError(t, err)
	keyB, err := NewKey768(seed)
	require.NoError(t, err)

	rho512 := keyA.EncapsulationKey().Bytes()[EncapsulationKeySize512-32:]
	rho768 := keyB.EncapsulationKey().Bytes()[EncapsulationKeySize768-32:]
	require.NotEqual(t, rho512, rho768)
}

func TestSharedKeyVariability(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)
	ek := key.EncapsulationKey()

	ct1, ss1, err := ek.Encapsulate(rand.Reader)
	require.NoError(t, err)
	ct2, ss2, err := ek.Encapsulate(rand.Reader)
	require.NoError(t, err)

	require.False(t, bytes.Equal(ct1, ct2))
	require.False(t, bytes.Equal(ss1, ss2))
}

func BenchmarkKeyGen768(b *testing.B) {
	seed := make([]byte, SeedSize)
	rand.Read(seed)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewKey768(seed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncapsulate768(b *testing.B) {
	key, err := GenerateKey768(rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	ek := key.EncapsulationKey()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ek.Encapsulate(rand.Reader); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecapsulate768(b *testing.B) {
	key, err := GenerateKey768(rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	ct, _, err := key.EncapsulationKey().Encapsulate(rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := key.Decapsulate(ct); err != nil {
			b.Fatal(err)
		}
	}
}
