package app

import (
	"bytes"
	"context"
	"crypto"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"

	"github.com/google/uuid"
)

// maxRecordMessage bounds the diagnostic stored with a verification record.
const maxRecordMessage = 1024

// digestService implements the DigestService interface
type digestService struct {
	provider *Provider
	logger   logger.Logger
}

// NewDigestService creates a new digestService instance
func NewDigestService(provider *Provider, logger logger.Logger) (fips.DigestService, error) {
	return &digestService{
		provider: provider,
		logger:   logger,
	}, nil
}

// Digest hashes data with the named algorithm.
func (s *digestService) Digest(ctx context.Context, algorithm string, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md, err := s.provider.NewMessageDigest(algorithm)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := md.Close(); err != nil {
			s.logger.Warn("failed to release digest context: ", err)
		}
	}()

	if _, err := md.Write(data); err != nil {
		return nil, fmt.Errorf("failed to update %s digest: %w", md.Name(), err)
	}
	digest, err := md.Digest()
	if err != nil {
		return nil, fmt.Errorf("failed to finalize %s digest: %w", md.Name(), err)
	}

	s.logger.Debug("Computed ", md.Name(), " digest over ", len(data), " bytes")
	return digest, nil
}

// randomService implements the RandomService interface
type randomService struct {
	provider *Provider
	logger   logger.Logger
}

// NewRandomService creates a new randomService instance
func NewRandomService(provider *Provider, logger logger.Logger) (fips.RandomService, error) {
	return &randomService{
		provider: provider,
		logger:   logger,
	}, nil
}

// Generate returns n bytes of DRBG output.
func (s *randomService) Generate(ctx context.Context, n int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng, err := s.provider.NewSecureRandom(DefaultSecureRandom)
	if err != nil {
		return nil, err
	}
	out, err := rng.GenerateSeed(n)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %d random bytes: %w", n, err)
	}
	return out, nil
}

// verificationService implements the VerificationService interface
type verificationService struct {
	provider *Provider
	mode     fips.ModeReporter
	repo     fips.VerificationRepository
	logger   logger.Logger
}

// NewVerificationService creates a new verificationService instance
func NewVerificationService(provider *Provider, mode fips.ModeReporter, repo fips.VerificationRepository, logger logger.Logger) (fips.VerificationService, error) {
	return &verificationService{
		provider: provider,
		mode:     mode,
		repo:     repo,
		logger:   logger,
	}, nil
}

// Verify runs one signature verification and stores its audit record.
func (s *verificationService) Verify(ctx context.Context, algorithm string, publicKey crypto.PublicKey, message, signature []byte) (*fips.VerificationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engine, err := s.provider.NewSignature(algorithm)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			s.logger.Warn("failed to release verify context: ", err)
		}
	}()

	if err := engine.InitVerify(publicKey); err != nil {
		return nil, fmt.Errorf("failed to initialize %s verification: %w", engine.Name(), err)
	}
	if _, err := engine.Write(message); err != nil {
		return nil, err
	}

	valid, verr := engine.Verify(signature)

	record := &fips.VerificationRecord{
		ID:              uuid.New().String(),
		Algorithm:       engine.Name(),
		Family:          engine.Family(),
		Outcome:         fips.OutcomeValid,
		FIPSMode:        s.mode.Enabled(),
		DateTimeCreated: time.Now().UTC(),
	}
	switch {
	case verr != nil:
		record.Outcome = fips.OutcomeInvalid
		if !errors.Is(verr, fips.ErrSignatureMismatch) {
			record.Outcome = fips.OutcomeError
		}
		record.ErrorKind = fips.KindOf(verr).String()
		record.Message = truncate(verr.Error(), maxRecordMessage)
	case !valid:
		record.Outcome = fips.OutcomeInvalid
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid verification record: %w", err)
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store verification record: %w", err)
	}

	s.logger.Info("Verified ", record.Algorithm, " signature: outcome ", record.Outcome, ", record ", record.ID)
	return record, nil
}

// List retrieves verification records matching query.
func (s *verificationService) List(ctx context.Context, query *fips.VerificationQuery) ([]*fips.VerificationRecord, error) {
	if query == nil {
		query = fips.NewVerificationQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	records, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list verification records: %w", err)
	}
	return records, nil
}

// GetByID retrieves a single verification record.
func (s *verificationService) GetByID(ctx context.Context, id string) (*fips.VerificationRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification record %s: %w", id, err)
	}
	return record, nil
}

// moduleService implements the ModuleService interface
type moduleService struct {
	provider *Provider
	mode     fips.ModeReporter
	logger   logger.Logger
}

// NewModuleService creates a new moduleService instance
func NewModuleService(provider *Provider, mode fips.ModeReporter, logger logger.Logger) (fips.ModuleService, error) {
	return &moduleService{
		provider: provider,
		mode:     mode,
		logger:   logger,
	}, nil
}

// Status returns the module metadata, mode and fingerprints.
// A fingerprint that cannot be computed is reported as missing rather than failing the call.
func (s *moduleService) Status(ctx context.Context) (*fips.ModuleStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status := &fips.ModuleStatus{
		Info: fips.ModuleInfo{
			Version:  s.mode.Version(),
			CFlags:   s.mode.CFlags(),
			BuiltOn:  s.mode.BuiltOn(),
			Platform: s.mode.Platform(),
			Dir:      s.mode.Dir(),
		},
		FIPSMode:             s.mode.Enabled(),
		ReferenceFingerprint: s.mode.ReferenceSignature(),
	}

	computed, err := s.mode.ComputedSignature()
	if err != nil {
		s.logger.Warn("in-core fingerprint unavailable: ", err)
		return status, nil
	}
	status.ComputedFingerprint = computed

	unset := make([]byte, fips.FingerprintSize)
	status.IntegrityVerified = !bytes.Equal(status.ReferenceFingerprint, unset) &&
		bytes.Equal(status.ReferenceFingerprint, computed)

	return status, nil
}

// Algorithms lists the registered provider algorithms.
func (s *moduleService) Algorithms(_ context.Context) []fips.Algorithm {
	return s.provider.Algorithms()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
