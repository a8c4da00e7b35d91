package mlkem

import (
	"golang.org/x/crypto/sha3"
)

// The symmetric primitives of FIPS 203, all instantiated from the SHA3
// family:
//
//	H = SHA3-256, G = SHA3-512,
//	PRF(s, b) = SHAKE-256(s || b), J(s) = SHAKE-256(s),
//	XOF(rho, i, j) = SHAKE-128(rho || i || j).
//
// shake256x4 evaluates four independent SHAKE-256 lanes; the reference
// implementation runs them sequentially, so it is bit-identical to four
// single-lane calls by construction. An accelerated build may replace
// it with a 4-way permutation.

// hashH computes H(data) = SHA3-256(data).
func hashH(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// hashG computes G(a || b) = SHA3-512(a || b) and splits the digest
// into two 32-byte halves.
func hashG(a, b []byte) (lo, hi [32]byte) {
	h := sha3.New512()
	h.Write(a)
	h.Write(b)
	var out [64]byte
	h.Sum(out[:0])
	copy(lo[:], out[:32])
	copy(hi[:], out[32:])
	return lo, hi
}

// prf writes len(out) bytes of SHAKE-256(seed || nonce) into out.
func prf(out, seed []byte, nonce byte) {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{nonce})
	h.Read(out)
}

// rejectionKey computes J(z || ct) = SHAKE-256(z || ct, 32), the
// implicit-rejection shared secret.
func rejectionKey(out []byte, z, ct []byte) {
	h := sha3.NewShake256()
	h.Write(z)
	h.Write(ct)
	h.Read(out[:SharedKeySize])
}

// newXOF returns the SHAKE-128 stream for one matrix cell, absorbed
// over rho || x || y.
func newXOF(rho []byte, x, y byte) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{x, y})
	return h
}

// shake256x4 fills each out[i] with SHAKE-256(seed || nonces[i]). The
// four lanes are independent; no state is shared between them.
func shake256x4(out *[4][]byte, seed []byte, nonces [4]byte) {
	for i := 0; i < 4; i++ {
		prf(out[i], seed, nonces[i])
	}
}
