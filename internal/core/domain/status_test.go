package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		pct  int
		want domain.Status
	}{
		{150, domain.StatusOnTrack},
		{100, domain.StatusOnTrack},
		{70, domain.StatusOnTrack},
		{69, domain.StatusAtRisk},
		{50, domain.StatusAtRisk},
		{49, domain.StatusBehind},
		{0, domain.StatusBehind},
		{-20, domain.StatusBehind},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ClassifyStatus(tt.pct), "pct=%d", tt.pct)
	}
}

func TestThresholds(t *testing.T) {
	t.Run("Invalid thresholds fall back to defaults", func(t *testing.T) {
		bad := []domain.Thresholds{
			{OnTrack: 40, AtRisk: 60},
			{OnTrack: 70, AtRisk: -1},
			{OnTrack: math.NaN(), AtRisk: 50},
		}
		for _, th := range bad {
			assert.False(t, th.Valid())
			assert.Equal(t, domain.DefaultThresholds(), th.Normalize())
			assert.Equal(t, domain.StatusAtRisk, th.Classify(55))
		}
	})

	t.Run("Custom thresholds are honoured", func(t *testing.T) {
		th := domain.Thresholds{OnTrack: 90, AtRisk: 70}
		assert.Equal(t, domain.StatusOnTrack, th.Classify(90))
		assert.Equal(t, domain.StatusAtRisk, th.Classify(89.9))
		assert.Equal(t, domain.StatusBehind, th.Classify(69))
	})

	t.Run("NaN percentage is behind", func(t *testing.T) {
		assert.Equal(t, domain.StatusBehind, domain.DefaultThresholds().Classify(math.NaN()))
	})
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Winning", domain.StatusOnTrack.Label().Label)
	assert.Equal(t, "green", domain.StatusOnTrack.Label().Color)
	assert.Equal(t, "Caution", domain.StatusAtRisk.Label().Label)
	assert.Equal(t, "yellow", domain.StatusAtRisk.Label().Color)
	assert.Equal(t, "Needs Help", domain.StatusBehind.Label().Label)
	assert.Equal(t, "red", domain.StatusBehind.Label().Color)

	assert.False(t, domain.Status("green").Valid())
	assert.Equal(t, "Needs Help", domain.Status("unknown").Label().Label)
}
