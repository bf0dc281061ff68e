//go:build unit
// +build unit

package fips

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVerificationRecordValidation(t *testing.T) {
	valid := func() *VerificationRecord {
		return &VerificationRecord{
			ID:              uuid.New().String(),
			Algorithm:       "SHA256withRSA",
			Family:          FamilyRSA,
			Outcome:         OutcomeValid,
			DateTimeCreated: time.Now(),
		}
	}

	tests := []struct {
		name          string
		mutate        func(r *VerificationRecord)
		expectedError bool
	}{
		{"valid record", func(r *VerificationRecord) {}, false},
		{"invalid outcome", func(r *VerificationRecord) { r.Outcome = 2 }, true},
		{"error outcome", func(r *VerificationRecord) { r.Outcome = OutcomeError; r.ErrorKind = "OperationError" }, false},
		{"missing algorithm", func(r *VerificationRecord) { r.Algorithm = "" }, true},
		{"unknown family", func(r *VerificationRecord) { r.Family = "dsa" }, true},
		{"non uuid id", func(r *VerificationRecord) { r.ID = "abc" }, true},
		{"family does not match algorithm", func(r *VerificationRecord) { r.Family = FamilyEC }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := valid()
			tt.mutate(record)

			err := record.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerificationQueryValidation(t *testing.T) {
	query := NewVerificationQuery()
	assert.NoError(t, query.Validate())

	query.SortOrder = "sideways"
	err := query.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Field: SortOrder, Tag: oneof")

	outcome := Outcome(5)
	query = NewVerificationQuery()
	query.Outcome = &outcome
	assert.Error(t, query.Validate())

	query = NewVerificationQuery()
	query.Algorithm = "SHA256withECDSA"
	query.Family = FamilyRSA
	assert.Error(t, query.Validate())
}
