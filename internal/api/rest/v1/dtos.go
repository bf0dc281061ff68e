package v1

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error message
type ErrorResponse struct {
	Message string `json:"message"`
}

// DigestRequest holds the data to hash. Data is base64 encoded in JSON.
type DigestRequest struct {
	Algorithm string `json:"algorithm" validate:"required,max=64"`
	Data      []byte `json:"data"`
}

// Validate for validating DigestRequest struct
func (r *DigestRequest) Validate() error {
	return validateRequest(r)
}

// DigestResponse holds a hex encoded digest
type DigestResponse struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

// RandomRequest selects how many DRBG bytes to return
type RandomRequest struct {
	Length int `json:"length" validate:"gte=0,lte=65536"`
}

// Validate for validating RandomRequest struct
func (r *RandomRequest) Validate() error {
	return validateRequest(r)
}

// RandomResponse holds DRBG output, base64 encoded in JSON
type RandomResponse struct {
	Bytes []byte `json:"bytes"`
}

// VerifyRequest holds a signature verification. Message and Signature are base64 encoded in JSON.
type VerifyRequest struct {
	Algorithm string `json:"algorithm" validate:"required,max=64"`
	PublicKey string `json:"public_key" validate:"required"`
	Message   []byte `json:"message"`
	Signature []byte `json:"signature" validate:"required"`
}

// Validate for validating VerifyRequest struct
func (r *VerifyRequest) Validate() error {
	return validateRequest(r)
}

// VerificationResponse represents a stored verification record
type VerificationResponse struct {
	ID              string    `json:"id"`
	Algorithm       string    `json:"algorithm"`
	Family          string    `json:"family"`
	Outcome         int32     `json:"outcome"`
	Valid           bool      `json:"valid"`
	ErrorKind       string    `json:"error_kind,omitempty"`
	Message         string    `json:"message,omitempty"`
	FIPSMode        bool      `json:"fips_mode"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newVerificationResponse(record *fips.VerificationRecord) VerificationResponse {
	return VerificationResponse{
		ID:              record.ID,
		Algorithm:       record.Algorithm,
		Family:          record.Family,
		Outcome:         int32(record.Outcome),
		Valid:           record.Valid(),
		ErrorKind:       record.ErrorKind,
		Message:         record.Message,
		FIPSMode:        record.FIPSMode,
		DateTimeCreated: record.DateTimeCreated,
	}
}

// ModuleResponse represents the module metadata, mode and integrity state
type ModuleResponse struct {
	Version              string `json:"version"`
	CFlags               string `json:"cflags"`
	BuiltOn              string `json:"built_on"`
	Platform             string `json:"platform"`
	Dir                  string `json:"dir"`
	FIPSMode             bool   `json:"fips_mode"`
	ReferenceFingerprint string `json:"reference_fingerprint"`
	ComputedFingerprint  string `json:"computed_fingerprint,omitempty"`
	IntegrityVerified    bool   `json:"integrity_verified"`
}

func newModuleResponse(status *fips.ModuleStatus) ModuleResponse {
	return ModuleResponse{
		Version:              status.Info.Version,
		CFlags:               status.Info.CFlags,
		BuiltOn:              status.Info.BuiltOn,
		Platform:             status.Info.Platform,
		Dir:                  status.Info.Dir,
		FIPSMode:             status.FIPSMode,
		ReferenceFingerprint: hex.EncodeToString(status.ReferenceFingerprint),
		ComputedFingerprint:  hex.EncodeToString(status.ComputedFingerprint),
		IntegrityVerified:    status.IntegrityVerified,
	}
}

// AlgorithmResponse represents one registered algorithm
type AlgorithmResponse struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

func validateRequest(s interface{}) error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
