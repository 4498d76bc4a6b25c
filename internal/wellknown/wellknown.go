// Package wellknown collects object identifiers for common curves, hash and
// signature algorithms, and X.509 extensions.
//
// The table is built with oid.Static so it costs no allocation at init.
// TestTableIsValid reads every entry, so a typo in an arc shows up in tests
// rather than at the first lookup in production.
package wellknown

import (
	"slices"
	"strings"

	"github.com/roach88/oidkit/internal/oid"
)

// Elliptic curves and key types.
var (
	// PublicKeyECDSA (id-ecPublicKey) is defined in RFC 5480 2.1.1
	PublicKeyECDSA = oid.Static([]uint32{1, 2, 840, 10045, 2, 1})

	// P256 (secp256r1 / prime256v1) is defined in RFC 5480 2.1.1.1
	P256 = oid.Static([]uint32{1, 2, 840, 10045, 3, 1, 7})

	// P384 (secp384r1) is defined in RFC 5480 2.1.1.1
	P384 = oid.Static([]uint32{1, 3, 132, 0, 34})

	// P521 (secp521r1) is defined in RFC 5480 2.1.1.1
	P521 = oid.Static([]uint32{1, 3, 132, 0, 35})

	Secp256k1 = oid.Static([]uint32{1, 3, 132, 0, 10})

	// Ed25519 and X25519 are defined in RFC 8410 3
	Ed25519 = oid.Static([]uint32{1, 3, 101, 112})
	X25519  = oid.Static([]uint32{1, 3, 101, 110})

	// RSA (rsaEncryption) is defined in RFC 8017 C
	RSA = oid.Static([]uint32{1, 2, 840, 113549, 1, 1, 1})
)

// Hash algorithms.
var (
	// SHA1 (id-sha1) is defined in RFC 8017 B.1
	SHA1 = oid.Static([]uint32{1, 3, 14, 3, 2, 26})

	// SHA256, SHA384 and SHA512 are defined in RFC 8017 B.1
	SHA256 = oid.Static([]uint32{2, 16, 840, 1, 101, 3, 4, 2, 1})
	SHA384 = oid.Static([]uint32{2, 16, 840, 1, 101, 3, 4, 2, 2})
	SHA512 = oid.Static([]uint32{2, 16, 840, 1, 101, 3, 4, 2, 3})

	SHA3_256 = oid.Static([]uint32{2, 16, 840, 1, 101, 3, 4, 2, 8})
	SHA3_384 = oid.Static([]uint32{2, 16, 840, 1, 101, 3, 4, 2, 9})
	SHA3_512 = oid.Static([]uint32{2, 16, 840, 1, 101, 3, 4, 2, 10})
)

// Signature algorithms.
var (
	SHA256WithRSA = oid.Static([]uint32{1, 2, 840, 113549, 1, 1, 11})
	SHA384WithRSA = oid.Static([]uint32{1, 2, 840, 113549, 1, 1, 12})
	SHA512WithRSA = oid.Static([]uint32{1, 2, 840, 113549, 1, 1, 13})

	// ECDSAWithSHA256, ECDSAWithSHA384 and ECDSAWithSHA512 are defined in RFC 5758 3.2
	ECDSAWithSHA256 = oid.Static([]uint32{1, 2, 840, 10045, 4, 3, 2})
	ECDSAWithSHA384 = oid.Static([]uint32{1, 2, 840, 10045, 4, 3, 3})
	ECDSAWithSHA512 = oid.Static([]uint32{1, 2, 840, 10045, 4, 3, 4})
)

// X.509 certificate extensions (RFC 5280 4.2).
var (
	SubjectKeyIdentifier   = oid.Static([]uint32{2, 5, 29, 14})
	KeyUsage               = oid.Static([]uint32{2, 5, 29, 15})
	SubjectAltName         = oid.Static([]uint32{2, 5, 29, 17})
	BasicConstraints       = oid.Static([]uint32{2, 5, 29, 19})
	CertificatePolicies    = oid.Static([]uint32{2, 5, 29, 32})
	AuthorityKeyIdentifier = oid.Static([]uint32{2, 5, 29, 35})
	ExtKeyUsage            = oid.Static([]uint32{2, 5, 29, 37})
)

// Extended key usages (RFC 5280 4.2.1.12).
var (
	ServerAuth   = oid.Static([]uint32{1, 3, 6, 1, 5, 5, 7, 3, 1})
	ClientAuth   = oid.Static([]uint32{1, 3, 6, 1, 5, 5, 7, 3, 2})
	CodeSigning  = oid.Static([]uint32{1, 3, 6, 1, 5, 5, 7, 3, 3})
	TimeStamping = oid.Static([]uint32{1, 3, 6, 1, 5, 5, 7, 3, 8})
)

// Entry is a named well-known identifier.
type Entry struct {
	Name        string               `json:"name"`
	OID         oid.ObjectIdentifier `json:"oid"`
	Description string               `json:"description"`
}

// table is kept sorted by name; TestTableSorted enforces it.
var table = []Entry{
	{"authority-key-identifier", AuthorityKeyIdentifier, "X.509 authority key identifier extension"},
	{"basic-constraints", BasicConstraints, "X.509 basic constraints extension"},
	{"certificate-policies", CertificatePolicies, "X.509 certificate policies extension"},
	{"client-auth", ClientAuth, "TLS client authentication key usage"},
	{"code-signing", CodeSigning, "code signing key usage"},
	{"ecdsa-with-sha256", ECDSAWithSHA256, "ECDSA signature with SHA-256"},
	{"ecdsa-with-sha384", ECDSAWithSHA384, "ECDSA signature with SHA-384"},
	{"ecdsa-with-sha512", ECDSAWithSHA512, "ECDSA signature with SHA-512"},
	{"ed25519", Ed25519, "Ed25519 signature key"},
	{"ext-key-usage", ExtKeyUsage, "X.509 extended key usage extension"},
	{"id-ec-public-key", PublicKeyECDSA, "elliptic curve public key"},
	{"key-usage", KeyUsage, "X.509 key usage extension"},
	{"p256", P256, "NIST P-256 curve (prime256v1)"},
	{"p384", P384, "NIST P-384 curve (secp384r1)"},
	{"p521", P521, "NIST P-521 curve (secp521r1)"},
	{"rsa", RSA, "RSA encryption key"},
	{"secp256k1", Secp256k1, "SEC 2 secp256k1 curve"},
	{"server-auth", ServerAuth, "TLS server authentication key usage"},
	{"sha1", SHA1, "SHA-1 hash"},
	{"sha256", SHA256, "SHA-256 hash"},
	{"sha256-with-rsa", SHA256WithRSA, "RSA PKCS#1 v1.5 signature with SHA-256"},
	{"sha3-256", SHA3_256, "SHA3-256 hash"},
	{"sha3-384", SHA3_384, "SHA3-384 hash"},
	{"sha3-512", SHA3_512, "SHA3-512 hash"},
	{"sha384", SHA384, "SHA-384 hash"},
	{"sha384-with-rsa", SHA384WithRSA, "RSA PKCS#1 v1.5 signature with SHA-384"},
	{"sha512", SHA512, "SHA-512 hash"},
	{"sha512-with-rsa", SHA512WithRSA, "RSA PKCS#1 v1.5 signature with SHA-512"},
	{"subject-alt-name", SubjectAltName, "X.509 subject alternative name extension"},
	{"subject-key-identifier", SubjectKeyIdentifier, "X.509 subject key identifier extension"},
	{"time-stamping", TimeStamping, "RFC 3161 time stamping key usage"},
	{"x25519", X25519, "X25519 key agreement key"},
}

// All returns every entry, sorted by name.
func All() []Entry {
	return slices.Clone(table)
}

// Lookup returns the entry with the given name. Names are case-insensitive.
func Lookup(name string) (Entry, bool) {
	name = strings.ToLower(name)
	i, found := slices.BinarySearchFunc(table, name, func(e Entry, target string) int {
		return strings.Compare(e.Name, target)
	})
	if !found {
		return Entry{}, false
	}
	return table[i], true
}

// Find returns the entry whose identifier equals o.
func Find(o oid.ObjectIdentifier) (Entry, bool) {
	for _, e := range table {
		if e.OID.Equal(o) {
			return e, true
		}
	}
	return Entry{}, false
}
