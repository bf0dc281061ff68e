package fips

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/fips-provider/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// RSAParams selects the digest and padding for an RSA verification.
// SaltLength is only meaningful for PaddingPSS.
type RSAParams struct {
	Digest     DigestID
	Padding    Padding
	SaltLength int
}

// ModuleInfo holds the read-only build metadata of a Module.
type ModuleInfo struct {
	Version  string
	CFlags   string
	BuiltOn  string
	Platform string
	Dir      string
}

// ModuleStatus is a snapshot of a Module's metadata, mode and integrity fingerprints.
type ModuleStatus struct {
	Info                 ModuleInfo
	FIPSMode             bool
	ReferenceFingerprint []byte
	ComputedFingerprint  []byte
	IntegrityVerified    bool
}

// Algorithm describes one registered provider algorithm.
type Algorithm struct {
	Type    string
	Name    string
	Aliases []string
}

// VerificationRecord is the audit entry of one signature verification.
type VerificationRecord struct {
	ID              string    `validate:"required,uuid4"`
	Algorithm       string    `validate:"required,min=1,max=64"`
	Family          string    `validate:"required,oneof=rsa ecdsa,algorithmFamily"`
	Outcome         Outcome   `validate:"min=-1,max=1"`
	ErrorKind       string    `validate:"omitempty,max=32"`
	Message         string    `validate:"max=1024"`
	FIPSMode        bool
	DateTimeCreated time.Time `validate:"required"`
}

// Valid reports whether the recorded verification succeeded.
func (r *VerificationRecord) Valid() bool {
	return r.Outcome == OutcomeValid
}

// Validate for validating VerificationRecord struct
func (r *VerificationRecord) Validate() error {
	return validateStruct(r)
}

// VerificationQuery filters verification records.
type VerificationQuery struct {
	Algorithm       string    `validate:"omitempty,max=64"`
	Family          string    `validate:"omitempty,oneof=rsa ecdsa,algorithmFamily"`
	Outcome         *Outcome  `validate:"omitempty,min=-1,max=1"`
	DateTimeCreated time.Time `validate:"omitempty"`

	Limit     int    `validate:"omitempty,gt=0"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=id algorithm family outcome date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewVerificationQuery creates a VerificationQuery with default values.
func NewVerificationQuery() *VerificationQuery {
	return &VerificationQuery{
		Limit:     100,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating VerificationQuery struct
func (q *VerificationQuery) Validate() error {
	return validateStruct(q)
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	if err := validate.RegisterValidation("algorithmFamily", validators.AlgorithmFamilyValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
