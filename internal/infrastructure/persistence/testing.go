//go:build integration
// +build integration

package persistence

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestAlgorithmRSA   = "SHA256withRSA"
	TestAlgorithmECDSA = "SHA256withECDSA"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	VerificationRepo fips.VerificationRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		// a file database, since every pooled connection to ":memory:" opens its own empty database
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  filepath.Join(t.TempDir(), "verifications.db"),
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)
	repo, err := NewGormVerificationRepository(db, logger)
	require.NoError(t, err, "Failed to create verification repository")

	return &TestContext{
		DB:               db,
		VerificationRepo: repo,
	}
}

// CreateTestRecord creates a verification record with default values
func CreateTestRecord(t *testing.T, algorithm, family string, outcome fips.Outcome) *fips.VerificationRecord {
	t.Helper()

	record := &fips.VerificationRecord{
		ID:              uuid.NewString(),
		Algorithm:       algorithm,
		Family:          family,
		Outcome:         outcome,
		FIPSMode:        false,
		DateTimeCreated: time.Now().UTC(),
	}
	if outcome != fips.OutcomeValid {
		record.ErrorKind = fips.KindSignatureMismatch.String()
		record.Message = "bad signature"
	}
	return record
}
