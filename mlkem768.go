package mlkem

import (
	"crypto/subtle"
	"errors"
	"io"
)

// Key768 is a decapsulation key for ML-KEM-768, together with the seed
// it was derived from when one is known.
type Key768 struct {
	seed []byte // d || z, nil when the key was parsed from expanded form
	kemKey
}

// EncapsulationKey768 is an encapsulation key for ML-KEM-768.
type EncapsulationKey768 struct {
	encapKey
}

// GenerateKey768 generates a new ML-KEM-768 key pair.
func GenerateKey768(rand io.Reader) (*Key768, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return NewKey768(seed[:])
}

// NewKey768 derives a key pair from a 64-byte seed, the concatenation
// of the 32-byte key generation seed d and the 32-byte implicit
// rejection secret z. Derivation is deterministic: the same seed always
// yields the same key.
func NewKey768(seed []byte) (*Key768, error) {
	if len(seed) != SeedSize {
		return nil, errors.New("mlkem: invalid seed length")
	}

	key := &Key768{seed: append([]byte(nil), seed...)}
	key.kemKey = *kemKeyGen(&params768, seed[:32], seed[32:])
	return key, nil
}

// NewKeyFromExpanded768 parses an expanded (FIPS 203 format)
// decapsulation key. The seed is not recoverable from this form.
func NewKeyFromExpanded768(b []byte) (*Key768, error) {
	if len(b) != DecapsulationKeySize768 {
		return nil, errors.New("mlkem: invalid decapsulation key length")
	}

	k, err := parseKemKey(b, &params768)
	if err != nil {
		return nil, err
	}
	return &Key768{kemKey: *k}, nil
}

// Bytes returns the seed, or nil for a key parsed from expanded form.
func (key *Key768) Bytes() []byte {
	if key.seed == nil {
		return nil
	}
	b := make([]byte, SeedSize)
	copy(b, key.seed)
	return b
}

// DecapsulationKeyBytes returns the key in the expanded FIPS 203
// format. Prefer storing the seed; it is smaller and can derive this
// form at any time.
func (key *Key768) DecapsulationKeyBytes() []byte {
	b := make([]byte, DecapsulationKeySize768)
	decapsulationKeyBytes(b, &key.kemKey)
	return b
}

// EncapsulationKey returns the public encapsulation key.
func (key *Key768) EncapsulationKey() *EncapsulationKey768 {
	return &EncapsulationKey768{key.ek}
}

// Decapsulate recovers the shared key from a ciphertext. Only a
// malformed ciphertext length produces an error; a well-formed but
// invalid ciphertext yields an implicit rejection key instead, so the
// return value never reveals whether decapsulation succeeded.
func (key *Key768) Decapsulate(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != CiphertextSize768 {
		return nil, errors.New("mlkem: invalid ciphertext length")
	}

	ss := make([]byte, SharedKeySize)
	kemDecapsulate(ss, &key.kemKey, ciphertext)
	return ss, nil
}

// NewEncapsulationKey768 parses an encoded encapsulation key, rejecting
// keys with non-canonical coefficients.
func NewEncapsulationKey768(b []byte) (*EncapsulationKey768, error) {
	if len(b) != EncapsulationKeySize768 {
		return nil, errors.New("mlkem: invalid encapsulation key length")
	}

	key, err := parseEncryptionKey(b, &params768)
	if err != nil {
		return nil, err
	}

	raw := append([]byte(nil), b...)
	return &EncapsulationKey768{encapKey{
		params: &params768,
		key:    *key,
		raw:    raw,
		h:      hashH(raw),
	}}, nil
}

// Bytes returns the encoded encapsulation key.
func (ek *EncapsulationKey768) Bytes() []byte {
	return append([]byte(nil), ek.raw...)
}

// Equal reports whether ek and other are the same encapsulation key.
func (ek *EncapsulationKey768) Equal(other *EncapsulationKey768) bool {
	return subtle.ConstantTimeCompare(ek.raw, other.raw) == 1
}

// Encapsulate generates a shared key and the ciphertext that conveys it
// to the holder of the decapsulation key.
func (ek *EncapsulationKey768) Encapsulate(rand io.Reader) (ciphertext, sharedKey []byte, err error) {
	var m [MessageSize]byte
	if _, err := io.ReadFull(rand, m[:]); err != nil {
		return nil, nil, err
	}
	return ek.encapsulate(m[:])
}

// encapsulate is the deterministic core of Encapsulate, split out for
// known-answer testing.
func (ek *EncapsulationKey768) encapsulate(m []byte) (ciphertext, sharedKey []byte, err error) {
	ciphertext = make([]byte, CiphertextSize768)
	sharedKey = make([]byte, SharedKeySize)
	kemEncapsulate(ciphertext, sharedKey, &ek.encapKey, m)
	return ciphertext, sharedKey, nil
}
