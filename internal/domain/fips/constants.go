package fips

// Handle is an opaque reference to a live module context.
// The zero value is the null handle and never resolves.
type Handle uint64

// NullHandle is returned by every failed context creation.
const NullHandle Handle = 0

// DigestID identifies a digest algorithm by its numeric object identifier (NID).
type DigestID int32

// Digest identifiers understood by the validated module
const (
	DigestSHA1       DigestID = 64
	DigestSHA224     DigestID = 675
	DigestSHA256     DigestID = 672
	DigestSHA384     DigestID = 673
	DigestSHA512     DigestID = 674
	DigestSHA512_224 DigestID = 1094
	DigestSHA512_256 DigestID = 1095
)

// CurveID identifies a named elliptic curve by its NID.
type CurveID int32

// Curve identifiers understood by the validated module
const (
	CurveP256 CurveID = 415
	CurveP384 CurveID = 715
	CurveP521 CurveID = 716
)

// Padding selects the RSA signature padding scheme.
type Padding int32

// RSA padding modes
const (
	PaddingPKCS1v15 Padding = 1
	PaddingPSS      Padding = 6
)

// Outcome is the signed verification result code.
type Outcome int32

// Verification outcomes
const (
	OutcomeError   Outcome = -1
	OutcomeInvalid Outcome = 0
	OutcomeValid   Outcome = 1
)

// FingerprintSize is the length in bytes of the module integrity fingerprints.
const FingerprintSize = 20

// MaxDigestSize is the size of the scratch area digests are finalized into.
const MaxDigestSize = 64

// Context family names, used for logging, metrics and audit records
const (
	FamilyDigest = "digest"
	FamilyRSA    = "rsa"
	FamilyEC     = "ecdsa"
	FamilyRandom = "drbg"
)
