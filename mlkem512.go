package mlkem

import (
	"crypto/subtle"
	"errors"
	"io"
)

// Key512 is a decapsulation key for ML-KEM-512, together with the seed
// it was derived from when one is known.
type Key512 struct {
	seed []byte
	kemKey
}

// EncapsulationKey512 is an encapsulation key for ML-KEM-512.
type EncapsulationKey512 struct {
	encapKey
}

// GenerateKey512 generates a new ML-KEM-512 key pair.
func GenerateKey512(rand io.Reader) (*Key512, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return NewKey512(seed[:])
}

// NewKey512 derives a key pair from a 64-byte d || z seed.
func NewKey512(seed []byte) (*Key512, error) {
	if len(seed) != SeedSize {
		return nil, errors.New("mlkem: invalid seed length")
	}

	key := &Key512{seed: append([]byte(nil), seed...)}
	key.kemKey = *kemKeyGen(&params512, seed[:32], seed[32:])
	return key, nil
}

// NewKeyFromExpanded512 parses an expanded (FIPS 203 format)
// decapsulation key.
func NewKeyFromExpanded512(b []byte) (*Key512, error) {
	if len(b) != DecapsulationKeySize512 {
		return nil, errors.New("mlkem: invalid decapsulation key length")
	}

	k, err := parseKemKey(b, &params512)
	if err != nil {
		return nil, err
	}
	return &Key512{kemKey: *k}, nil
}

// Bytes returns the seed, or nil for a key parsed from expanded form.
func (key *Key512) Bytes() []byte {
	if key.seed == nil {
		return nil
	}
	b := make([]byte, SeedSize)
	copy(b, key.seed)
	return b
}

// DecapsulationKeyBytes returns the key in the expanded FIPS 203 format.
func (key *Key512) DecapsulationKeyBytes() []byte {
	b := make([]byte, DecapsulationKeySize512)
	decapsulationKeyBytes(b, &key.kemKey)
	return b
}

// EncapsulationKey returns the public encapsulation key.
func (key *Key512) EncapsulationKey() *EncapsulationKey512 {
	return &EncapsulationKey512{key.ek}
}

// Decapsulate recovers the shared key from a ciphertext. An invalid
// ciphertext of the right length yields an implicit rejection key
// rather than an error.
func (key *Key512) Decapsulate(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != CiphertextSize512 {
		return nil, errors.New("mlkem: invalid ciphertext length")
	}

	ss := make([]byte, SharedKeySize)
	kemDecapsulate(ss, &key.kemKey, ciphertext)
	return ss, nil
}

// NewEncapsulationKey512 parses an encoded encapsulation key, rejecting
// keys with non-canonical coefficients.
func NewEncapsulationKey512(b []byte) (*EncapsulationKey512, error) {
	if len(b) != EncapsulationKeySize512 {
		return nil, errors.New("mlkem: invalid encapsulation key length")
	}

	key, err := parseEncryptionKey(b, &params512)
	if err != nil {
		return nil, err
	}

	raw := append([]byte(nil), b...)
	return &EncapsulationKey512{encapKey{
		params: &params512,
		key:    *key,
		raw:    raw,
		h:      hashH(raw),
	}}, nil
}

// Bytes returns the encoded encapsulation key.
func (ek *EncapsulationKey512) Bytes() []byte {
	return append([]byte(nil), ek.raw...)
}

// Equal reports whether ek and other are the same encapsulation key.
func (ek *EncapsulationKey512) Equal(other *EncapsulationKey512) bool {
	return subtle.ConstantTimeCompare(ek.raw, other.raw) == 1
}

// Encapsulate generates a shared key and the ciphertext that conveys it
// to the holder of the decapsulation key.
func (ek *EncapsulationKey512) Encapsulate(rand io.Reader) (ciphertext, sharedKey []byte, err error) {
	var m [MessageSize]byte
	if _, err := io.ReadFull(rand, m[:]); err != nil {
		return nil, nil, err
	}
	return ek.encapsulate(m[:])
}

func (ek *EncapsulationKey512) encapsulate(m []byte) (ciphertext, sharedKey []byte, err error) {
	ciphertext = make([]byte, CiphertextSize512)
	sharedKey = make([]byte, SharedKeySize)
	kemEncapsulate(ciphertext, sharedKey, &ek.encapKey, m)
	return ciphertext, sharedKey, nil
}
