//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/stretchr/testify/assert"
)

func TestVerificationModel_ToDomain(t *testing.T) {
	now := time.Now().UTC()
	model := &VerificationModel{
		ID:              "b8b1c1de-6b7e-4a8f-9a57-3c1a2f6c0d11",
		Algorithm:       "SHA256withECDSA",
		Family:          fips.FamilyEC,
		Outcome:         -1,
		ErrorKind:       "OperationError",
		Message:         "ecdsa.verify: OperationError: verification failed",
		FIPSMode:        true,
		DateTimeCreated: now,
	}

	record := model.ToDomain()

	assert.Equal(t, model.ID, record.ID)
	assert.Equal(t, model.Algorithm, record.Algorithm)
	assert.Equal(t, model.Family, record.Family)
	assert.Equal(t, fips.OutcomeError, record.Outcome)
	assert.Equal(t, model.ErrorKind, record.ErrorKind)
	assert.Equal(t, model.Message, record.Message)
	assert.True(t, record.FIPSMode)
	assert.Equal(t, now, record.DateTimeCreated)
}

func TestVerificationModel_FromDomain(t *testing.T) {
	record := &fips.VerificationRecord{
		ID:              "0f3e5d5a-2a49-4c1e-8f7b-5a1d9c3b2e44",
		Algorithm:       "SHA256withRSA",
		Family:          fips.FamilyRSA,
		Outcome:         fips.OutcomeValid,
		DateTimeCreated: time.Now(),
	}

	model := &VerificationModel{}
	model.FromDomain(record)

	assert.Equal(t, record.ID, model.ID)
	assert.Equal(t, int32(1), model.Outcome)
	assert.Equal(t, record, model.ToDomain())
	assert.Equal(t, "verifications", model.TableName())
}
