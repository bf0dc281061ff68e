package models

import (
	"time"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

// VerificationModel is the GORM database model for verification records (infrastructure concern)
type VerificationModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Algorithm       string    `gorm:"not null;index;type:varchar(64)"`
	Family          string    `gorm:"not null;index;type:varchar(16)"`
	Outcome         int32     `gorm:"not null;index"`
	ErrorKind       string    `gorm:"type:varchar(32)"`
	Message         string    `gorm:"type:varchar(1024)"`
	FIPSMode        bool      `gorm:"column:fips_mode;not null"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (VerificationModel) TableName() string {
	return "verifications"
}

// ToDomain converts GORM model to domain entity
func (m *VerificationModel) ToDomain() *fips.VerificationRecord {
	return &fips.VerificationRecord{
		ID:              m.ID,
		Algorithm:       m.Algorithm,
		Family:          m.Family,
		Outcome:         fips.Outcome(m.Outcome),
		ErrorKind:       m.ErrorKind,
		Message:         m.Message,
		FIPSMode:        m.FIPSMode,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *VerificationModel) FromDomain(r *fips.VerificationRecord) {
	m.ID = r.ID
	m.Algorithm = r.Algorithm
	m.Family = r.Family
	m.Outcome = int32(r.Outcome)
	m.ErrorKind = r.ErrorKind
	m.Message = r.Message
	m.FIPSMode = r.FIPSMode
	m.DateTimeCreated = r.DateTimeCreated
}
