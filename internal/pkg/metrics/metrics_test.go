//go:build unit
// +build unit

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	t.Run("HandleLifecycle", func(t *testing.T) {
		m.HandleAllocated("digest")
		m.HandleAllocated("digest")
		m.HandleReleased("digest")

		assert.Equal(t, float64(2), testutil.ToFloat64(m.HandleAllocations.WithLabelValues("digest")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.HandleReleases.WithLabelValues("digest")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.LiveHandles.WithLabelValues("digest")))
	})

	t.Run("StaleHandle", func(t *testing.T) {
		m.StaleHandle("rsa")
		assert.Equal(t, float64(1), testutil.ToFloat64(m.StaleHandles.WithLabelValues("rsa")))
	})

	t.Run("Verifications", func(t *testing.T) {
		m.VerificationCompleted("ecdsa", 1)
		m.VerificationCompleted("ecdsa", -1)
		m.VerificationCompleted("ecdsa", 1)

		assert.Equal(t, float64(2), testutil.ToFloat64(m.Verifications.WithLabelValues("ecdsa", "1")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Verifications.WithLabelValues("ecdsa", "-1")))
	})

	t.Run("RandomAndMode", func(t *testing.T) {
		m.RandomGenerated(32)
		m.SetMode(true)

		assert.Equal(t, float64(32), testutil.ToFloat64(m.RandomBytes))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.ModeEnabled))
	})

	t.Run("Gather", func(t *testing.T) {
		families, err := m.GetGatherer().Gather()
		require.NoError(t, err)

		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		assert.Contains(t, names, "fips_bridge_verifications_total")
		assert.Contains(t, names, "fips_bridge_live_handles")
	})
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.HandleAllocated("digest")
		m.HandleReleased("digest")
		m.StaleHandle("digest")
		m.VerificationCompleted("rsa", 0)
		m.RandomGenerated(16)
		m.SetMode(false)
	})
	assert.NotNil(t, m.GetGatherer())
}
