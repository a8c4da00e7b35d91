package mlkem

import (
	"crypto/subtle"
	"errors"
)

// The Fujisaki-Okamoto transform with implicit rejection (ML-KEM,
// FIPS 203 §7) on top of the K-PKE scheme in pke.go. Decapsulation
// never reports failure: an invalid ciphertext yields a shared key
// derived from the rejection secret z, indistinguishable from a valid
// one to anybody not holding the decapsulation key.

// encapKey is a parsed encapsulation key together with its FIPS 203
// encoding and hash, both needed on every encapsulation.
type encapKey struct {
	params *parameterSet
	key    encryptionKey
	raw    []byte   // ByteEncode_12(t) || rho
	h      [32]byte // H(raw)
}

// kemKey holds a full decapsulation key: the encapsulation key, the
// K-PKE decryption key and the implicit rejection secret.
type kemKey struct {
	params *parameterSet
	ek     encapKey
	dk     decryptionKey
	z      [32]byte
}

// kemKeyGen derives a key pair from the 32-byte keygen seed d and the
// 32-byte rejection secret z. Implements FIPS 203 Algorithm 16.
func kemKeyGen(p *parameterSet, d, z []byte) *kemKey {
	enc, dec := pkeKeyGen(p, d)

	raw := make([]byte, p.encapsulationKeySize)
	encryptionKeyBytes(raw, enc, p)

	k := &kemKey{
		params: p,
		ek: encapKey{
			params: p,
			key:    *enc,
			raw:    raw,
			h:      hashH(raw),
		},
		dk: *dec,
	}
	copy(k.z[:], z)
	return k
}

// kemEncapsulate produces a ciphertext and shared key for ek from the
// 32-byte message m, writing them to ct and ss. Deterministic in m;
// callers draw m from a CSPRNG. Implements FIPS 203 Algorithm 17.
func kemEncapsulate(ct, ss []byte, ek *encapKey, m []byte) {
	kbar, coins := hashG(m, ek.h[:])
	pkeEncrypt(ct, &ek.key, m, coins[:], ek.params)
	copy(ss, kbar[:])
}

// kemDecapsulate recovers the shared key from ct, writing it to ss.
// The ciphertext comparison and the selection between the real and the
// rejection key are constant time; everything before the comparison
// only depends on the secret through pkeDecrypt, which is itself
// constant time. Implements FIPS 203 Algorithm 18.
func kemDecapsulate(ss []byte, k *kemKey, ct []byte) {
	var m [MessageSize]byte
	pkeDecrypt(m[:], &k.dk, ct, k.params)

	kbar, coins := hashG(m[:], k.ek.h[:])

	rej := make([]byte, SharedKeySize)
	rejectionKey(rej, k.z[:], ct)

	ct2 := make([]byte, k.params.ciphertextSize)
	pkeEncrypt(ct2, &k.ek.key, m[:], coins[:], k.params)

	ok := subtle.ConstantTimeCompare(ct, ct2)
	copy(ss, kbar[:])
	subtle.ConstantTimeCopy(1-ok, ss, rej)
}

// decapsulationKeyBytes serializes k in the FIPS 203 form
// dk_PKE || ek || H(ek) || z.
func decapsulationKeyBytes(buf []byte, k *kemKey) {
	p := k.params
	vecToBytes(buf, k.dk.sHat)
	off := p.k * polyBytes
	copy(buf[off:], k.ek.raw)
	off += p.encapsulationKeySize
	copy(buf[off:], k.ek.h[:])
	off += 32
	copy(buf[off:], k.z[:])
}

// parseKemKey parses a serialized decapsulation key, rejecting one
// whose embedded encapsulation key fails validation or whose stored
// hash does not match it.
func parseKemKey(b []byte, p *parameterSet) (*kemKey, error) {
	dk := parseDecryptionKey(b, p)
	off := p.k * polyBytes

	raw := b[off : off+p.encapsulationKeySize]
	enc, err := parseEncryptionKey(raw, p)
	if err != nil {
		return nil, err
	}
	off += p.encapsulationKeySize

	h := hashH(raw)
	if subtle.ConstantTimeCompare(h[:], b[off:off+32]) != 1 {
		return nil, errors.New("mlkem: decapsulation key hash mismatch")
	}
	off += 32

	k := &kemKey{
		params: p,
		ek: encapKey{
			params: p,
			key:    *enc,
			raw:    append([]byte(nil), raw...),
			h:      h,
		},
		dk: *dk,
	}
	copy(k.z[:], b[off:])
	return k, nil
}
