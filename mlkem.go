// Package mlkem implements ML-KEM (Module-Lattice Key-Encapsulation
// Mechanism) as specified in FIPS 203.
//
// ML-KEM is a post-quantum key-encapsulation mechanism standardized by
// NIST. This package supports three security levels:
//   - ML-KEM-512: NIST security level 1 (comparable to AES-128)
//   - ML-KEM-768: NIST security level 3 (comparable to AES-192)
//   - ML-KEM-1024: NIST security level 5 (comparable to AES-256)
//
// Basic usage:
//
//	key, err := mlkem.GenerateKey768(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ct, ss, err := key.EncapsulationKey().Encapsulate(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ss2, err := key.Decapsulate(ct)
package mlkem

// Global ML-KEM constants from FIPS 203.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 13*2^8 + 1 = 3329
	q = 3329

	// SeedSize is the size of the d||z seed used for key generation.
	SeedSize = 64

	// SharedKeySize is the size of the shared secret produced by
	// encapsulation and decapsulation.
	SharedKeySize = 32

	// MessageSize is the size of the message encrypted by the
	// underlying IND-CPA scheme.
	MessageSize = 32
)

// Derived constants.
const (
	halfQ = (q + 1) / 2 // 1665

	// polyBytes is the size of a serialized polynomial: 12 bits per
	// coefficient.
	polyBytes = n * 12 / 8 // 384

	// eta2 is the noise parameter for the error terms e1, e2; it is 2
	// for all security levels.
	eta2 = 2
)

// ML-KEM-512 parameters.
const (
	k512    = 2
	eta1512 = 3
	du512   = 10
	dv512   = 4

	EncapsulationKeySize512 = k512*polyBytes + 32
	DecapsulationKeySize512 = k512*polyBytes + EncapsulationKeySize512 + 64
	CiphertextSize512       = k512*du512*n/8 + dv512*n/8
)

// ML-KEM-768 parameters.
const (
	k768    = 3
	eta1768 = 2
	du768   = 10
	dv768   = 4

	EncapsulationKeySize768 = k768*polyBytes + 32
	DecapsulationKeySize768 = k768*polyBytes + EncapsulationKeySize768 + 64
	CiphertextSize768       = k768*du768*n/8 + dv768*n/8
)

// ML-KEM-1024 parameters.
const (
	k1024    = 4
	eta11024 = 2
	du1024   = 11
	dv1024   = 5

	EncapsulationKeySize1024 = k1024*polyBytes + 32
	DecapsulationKeySize1024 = k1024*polyBytes + EncapsulationKeySize1024 + 64
	CiphertextSize1024       = k1024*du1024*n/8 + dv1024*n/8
)

// parameterSet is the sealed per-security-level configuration. The three
// instances below are the only values ever used; nothing mutates them at
// run time.
type parameterSet struct {
	k    int // module rank
	eta1 int // noise parameter for s, e and r
	du   int // ciphertext compression width for the u vector
	dv   int // ciphertext compression width for the v polynomial

	encapsulationKeySize int
	decapsulationKeySize int
	ciphertextSize       int
}

var (
	params512 = parameterSet{
		k: k512, eta1: eta1512, du: du512, dv: dv512,
		encapsulationKeySize: EncapsulationKeySize512,
		decapsulationKeySize: DecapsulationKeySize512,
		ciphertextSize:       CiphertextSize512,
	}
	params768 = parameterSet{
		k: k768, eta1: eta1768, du: du768, dv: dv768,
		encapsulationKeySize: EncapsulationKeySize768,
		decapsulationKeySize: DecapsulationKeySize768,
		ciphertextSize:       CiphertextSize768,
	}
	params1024 = parameterSet{
		k: k1024, eta1: eta11024, du: du1024, dv: dv1024,
		encapsulationKeySize: EncapsulationKeySize1024,
		decapsulationKeySize: DecapsulationKeySize1024,
		ciphertextSize:       CiphertextSize1024,
	}
)
