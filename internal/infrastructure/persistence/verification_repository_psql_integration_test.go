//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationPsqlRepository_CreateAndList(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)
	bg := context.Background()

	rsaRecord := CreateTestRecord(t, TestAlgorithmRSA, fips.FamilyRSA, fips.OutcomeValid)
	ecRecord := CreateTestRecord(t, TestAlgorithmECDSA, fips.FamilyEC, fips.OutcomeInvalid)
	require.NoError(t, ctx.VerificationRepo.Create(bg, rsaRecord))
	require.NoError(t, ctx.VerificationRepo.Create(bg, ecRecord))

	fetched, err := ctx.VerificationRepo.GetByID(bg, ecRecord.ID)
	require.NoError(t, err)
	assert.Equal(t, fips.OutcomeInvalid, fetched.Outcome)
	assert.Equal(t, ecRecord.ErrorKind, fetched.ErrorKind)

	query := fips.NewVerificationQuery()
	query.Algorithm = TestAlgorithmRSA
	list, err := ctx.VerificationRepo.List(bg, query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rsaRecord.ID, list[0].ID)
}
