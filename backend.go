package mlkem

// Backend seam.
//
// A fixed set of operations may be replaced by hand-optimized kernels:
// forward/inverse NTT, polynomial serialization, reduction to unsigned
// canonical form, Montgomery-domain conversion, mulcache computation,
// and the cached inner-product accumulate (specialized per vector
// length). The portable implementations in this package are the
// reference; any substitute must be bit-identical on all inputs.
//
// Selection is a build-time property: backend_generic.go binds every
// operation to the portable kernel unless an accelerated build supplies
// its own file under the same build tag, in the manner of the
// platform-specific files of the stdlib crypto packages. There is no
// runtime dispatch and no mutable selection state.

// The generic kernels double as the reference for the backend
// equivalence tests; keep their signatures in sync with the method set
// bound in backend_generic.go.
var (
	_ func(*poly)                             = nttGeneric
	_ func(*poly)                             = invNTTGeneric
	_ func(*poly)                             = normalizeGeneric
	_ func(*poly)                             = toMontGeneric
	_ func([]byte, *poly)                     = toBytesGeneric
	_ func(*poly, []byte)                     = fromBytesGeneric
	_ func(*mulcache, *poly)                  = mulcacheComputeGeneric
	_ func(*poly, []poly, []poly, []mulcache) = basemulAccCachedGeneric
)
