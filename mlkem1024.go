package mlkem

import (
	"crypto/subtle"
	"errors"
	"io"
)

// Key1024 is a decapsulation key for ML-KEM-1024, together with the
// seed it was derived from when one is known.
type Key1024 struct {
	seed []byte
	kemKey
}

// EncapsulationKey1024 is an encapsulation key for ML-KEM-1024.
type EncapsulationKey1024 struct {
	encapKey
}

// GenerateKey1024 generates a new ML-KEM-1024 key pair.
func GenerateKey1024(rand io.Reader) (*Key1024, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return NewKey1024(seed[:])
}

// NewKey1024 derives a key pair from a 64-byte d || z seed.
func NewKey1024(seed []byte) (*Key1024, error) {
	if len(seed) != SeedSize {
		return nil, errors.New("mlkem: invalid seed length")
	}

	key := &Key1024{seed: append([]byte(nil), seed...)}
	key.kemKey = *kemKeyGen(&params1024, seed[:32], seed[32:])
	return key, nil
}

// NewKeyFromExpanded1024 parses an expanded (FIPS 203 format)
// decapsulation key.
func NewKeyFromExpanded1024(b []byte) (*Key1024, error) {
	if len(b) != DecapsulationKeySize1024 {
		return nil, errors.New("mlkem: invalid decapsulation key length")
	}

	k, err := parseKemKey(b, &params1024)
	if err != nil {
		return nil, err
	}
	return &Key1024{kemKey: *k}, nil
}

// Bytes returns the seed, or nil for a key parsed from expanded form.
func (key *Key1024) Bytes() []byte {
	if key.seed == nil {
		return nil
	}
	b := make([]byte, SeedSize)
	copy(b, key.seed)
	return b
}

// DecapsulationKeyBytes returns the key in the expanded FIPS 203 format.
func (key *Key1024) DecapsulationKeyBytes() []byte {
	b := make([]byte, DecapsulationKeySize1024)
	decapsulationKeyBytes(b, &key.kemKey)
	return b
}

// EncapsulationKey returns the public encapsulation key.
func (key *Key1024) EncapsulationKey() *EncapsulationKey1024 {
	return &EncapsulationKey1024{key.ek}
}

// Decapsulate recovers the shared key from a ciphertext. An invalid
// ciphertext of the right length yields an implicit rejection key
// rather than an error.
func (key *Key1024) Decapsulate(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != CiphertextSize1024 {
		return nil, errors.New("mlkem: invalid ciphertext length")
	}

	ss := make([]byte, SharedKeySize)
	kemDecapsulate(ss, &key.kemKey, ciphertext)
	return ss, nil
}

// NewEncapsulationKey1024 parses an encoded encapsulation key, rejecting
// keys with non-canonical coefficients.
func NewEncapsulationKey1024(b []byte) (*EncapsulationKey1024, error) {
	if len(b) != EncapsulationKeySize1024 {
		return nil, errors.New("mlkem: invalid encapsulation key length")
	}

	key, err := parseEncryptionKey(b, &params1024)
	if err != nil {
		return nil, err
	}

	raw := append([]byte(nil), b...)
	return &EncapsulationKey1024{encapKey{
		params: &params1024,
		key:    *key,
		raw:    raw,
		h:      hashH(raw),
	}}, nil
}

// Bytes returns the encoded encapsulation key.
func (ek *EncapsulationKey1024) Bytes() []byte {
	return append([]byte(nil), ek.raw...)
}

// Equal reports whether ek and other are the same encapsulation key.
func (ek *EncapsulationKey1024) Equal(other *EncapsulationKey1024) bool {
	return subtle.ConstantTimeCompare(ek.raw, other.raw) == 1
}

// Encapsulate generates a shared key and the ciphertext that conveys it
// to the holder of the decapsulation key.
func (ek *EncapsulationKey1024) Encapsulate(rand io.Reader) (ciphertext, sharedKey []byte, err error) {
	var m [MessageSize]byte
	if _, err := io.ReadFull(rand, m[:]); err != nil {
		return nil, nil, err
	}
	return ek.encapsulate(m[:])
}

func (ek *EncapsulationKey1024) encapsulate(m []byte) (ciphertext, sharedKey []byte, err error) {
	ciphertext = make([]byte, CiphertextSize1024)
	sharedKey = make([]byte, SharedKeySize)
	kemEncapsulate(ciphertext, sharedKey, &ek.encapKey, m)
	return ciphertext, sharedKey, nil
}
