package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"
)

// Provider identity
const (
	ProviderName    = "GoFIPSProvider"
	ProviderVersion = "1.0"
	ProviderInfo    = "Go FIPS 140-3 Provider 1.0, implements SecureRandom/SHA-1/SHA-224/SHA-256/SHA-384/SHA-512"
)

// Algorithm types served by the provider
const (
	TypeMessageDigest = "MessageDigest"
	TypeSecureRandom  = "SecureRandom"
	TypeSignature     = "Signature"
)

// DefaultSecureRandom is the SecureRandom algorithm used when none is named.
const DefaultSecureRandom = "NativePRNG"

type signatureAlgorithm struct {
	family  string
	digest  fips.DigestID
	padding fips.Padding
}

// Provider maps algorithm names and aliases to bridge-backed engines.
type Provider struct {
	bridge fips.ContextBridge
	logger logger.Logger

	digests    map[string]fips.DigestID
	signatures map[string]signatureAlgorithm

	// aliases maps type -> upper-cased alias -> canonical name
	aliases map[string]map[string]string
}

// NewProvider creates a Provider with the full algorithm table registered.
func NewProvider(bridge fips.ContextBridge, logger logger.Logger) *Provider {
	p := &Provider{
		bridge:     bridge,
		logger:     logger,
		digests:    make(map[string]fips.DigestID),
		signatures: make(map[string]signatureAlgorithm),
		aliases: map[string]map[string]string{
			TypeMessageDigest: {},
			TypeSecureRandom:  {},
			TypeSignature:     {},
		},
	}

	p.alias(TypeSecureRandom, "NativePRNG", "NativePRNG")
	p.alias(TypeSecureRandom, "SHA1PRNG", "SHA1PRNG")

	p.digests["SHA-1"] = fips.DigestSHA1
	p.digests["SHA224"] = fips.DigestSHA224
	p.digests["SHA256"] = fips.DigestSHA256
	p.digests["SHA384"] = fips.DigestSHA384
	p.digests["SHA512"] = fips.DigestSHA512
	p.alias(TypeMessageDigest, "SHA-1", "SHA-1", "SHA", "SHA1")
	p.alias(TypeMessageDigest, "SHA224", "SHA224", "SHA-224")
	p.alias(TypeMessageDigest, "SHA256", "SHA256", "SHA-256")
	p.alias(TypeMessageDigest, "SHA384", "SHA384", "SHA-384")
	p.alias(TypeMessageDigest, "SHA512", "SHA512", "SHA-512")

	rsaDigests := []struct {
		prefix string
		digest fips.DigestID
		oids   []string
	}{
		{"SHA1", fips.DigestSHA1, []string{"1.2.840.113549.1.1.5", "1.3.14.3.2.29"}},
		{"SHA224", fips.DigestSHA224, []string{"1.2.840.113549.1.1.14"}},
		{"SHA256", fips.DigestSHA256, []string{"1.2.840.113549.1.1.11"}},
		{"SHA384", fips.DigestSHA384, []string{"1.2.840.113549.1.1.12"}},
		{"SHA512", fips.DigestSHA512, []string{"1.2.840.113549.1.1.13"}},
	}
	for _, d := range rsaDigests {
		pkcs1 := d.prefix + "withRSA"
		pss := d.prefix + "withRSAandMGF1"
		p.signatures[pkcs1] = signatureAlgorithm{family: fips.FamilyRSA, digest: d.digest, padding: fips.PaddingPKCS1v15}
		p.signatures[pss] = signatureAlgorithm{family: fips.FamilyRSA, digest: d.digest, padding: fips.PaddingPSS}
		p.alias(TypeSignature, pkcs1, append([]string{pkcs1}, d.oids...)...)
		p.alias(TypeSignature, pss, pss)
	}

	p.signatures["SHA256withECDSA"] = signatureAlgorithm{family: fips.FamilyEC, digest: fips.DigestSHA256}
	p.signatures["SHA384withECDSA"] = signatureAlgorithm{family: fips.FamilyEC, digest: fips.DigestSHA384}
	p.alias(TypeSignature, "SHA256withECDSA", "SHA256withECDSA", "1.2.840.10045.4.3.2")
	p.alias(TypeSignature, "SHA384withECDSA", "SHA384withECDSA", "1.2.840.10045.4.3.3")

	return p
}

func (p *Provider) alias(typ, canonical string, names ...string) {
	for _, name := range names {
		p.aliases[typ][strings.ToUpper(name)] = canonical
	}
}

// Resolve returns the canonical algorithm name for name, which may be an alias or an OID
// with or without the "OID." prefix. Lookup is case-insensitive.
func (p *Provider) Resolve(typ, name string) (string, error) {
	table, ok := p.aliases[typ]
	if !ok {
		return "", fmt.Errorf("%w: unknown algorithm type %s", fips.ErrUnknownAlgorithm, typ)
	}
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "OID.")
	canonical, ok := table[key]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", fips.ErrUnknownAlgorithm, typ, name)
	}
	return canonical, nil
}

// Algorithms lists every registered algorithm with its aliases, sorted by type and name.
func (p *Provider) Algorithms() []fips.Algorithm {
	byName := make(map[string]*fips.Algorithm)
	for typ, table := range p.aliases {
		for alias, canonical := range table {
			key := typ + "." + canonical
			alg, ok := byName[key]
			if !ok {
				alg = &fips.Algorithm{Type: typ, Name: canonical}
				byName[key] = alg
			}
			if alias != strings.ToUpper(canonical) {
				alg.Aliases = append(alg.Aliases, alias)
			}
		}
	}

	algorithms := make([]fips.Algorithm, 0, len(byName))
	for _, alg := range byName {
		sort.Strings(alg.Aliases)
		algorithms = append(algorithms, *alg)
	}
	sort.Slice(algorithms, func(i, j int) bool {
		if algorithms[i].Type != algorithms[j].Type {
			return algorithms[i].Type < algorithms[j].Type
		}
		return algorithms[i].Name < algorithms[j].Name
	})
	return algorithms
}

// NewMessageDigest creates a MessageDigest engine for name.
func (p *Provider) NewMessageDigest(name string) (*MessageDigest, error) {
	canonical, err := p.Resolve(TypeMessageDigest, name)
	if err != nil {
		return nil, err
	}
	return newMessageDigest(p.bridge, canonical, p.digests[canonical])
}

// NewSignature creates a verify-only Signature engine for name.
func (p *Provider) NewSignature(name string) (*Signature, error) {
	canonical, err := p.Resolve(TypeSignature, name)
	if err != nil {
		return nil, err
	}
	return &Signature{
		bridge:    p.bridge,
		logger:    p.logger,
		name:      canonical,
		algorithm: p.signatures[canonical],
	}, nil
}

// NewSecureRandom creates a SecureRandom engine for name.
func (p *Provider) NewSecureRandom(name string) (*SecureRandom, error) {
	canonical, err := p.Resolve(TypeSecureRandom, name)
	if err != nil {
		return nil, err
	}
	return &SecureRandom{bridge: p.bridge, name: canonical}, nil
}
