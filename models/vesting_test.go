package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVestingIntervalSeconds verifica as durações das cadências
func TestVestingIntervalSeconds(t *testing.T) {
	assert.Equal(t, uint64(60), IntervalMinute.Seconds())
	assert.Equal(t, uint64(3600), IntervalHour.Seconds())
	assert.Equal(t, uint64(86400), IntervalDay.Seconds())
	assert.Equal(t, uint64(2_592_000), IntervalMonth.Seconds())
	assert.False(t, VestingInterval("semana").Valid())
}

// TestScheduleDistribution verifica que parcela × intervalos + resto fecha no
// total para divisões inexatas
func TestScheduleDistribution(t *testing.T) {
	cases := []struct {
		total     uint64
		duration  uint64
		intervals uint64
		per       uint64
		remainder uint64
	}{
		{1000, 600, 10, 100, 0},
		{1000, 420, 7, 142, 6},
		{7, 180, 3, 2, 1},
		{5, 600, 10, 0, 5},
	}

	for _, c := range cases {
		s := VestingSchedule{
			TotalAmount:   c.total,
			TotalDuration: c.duration,
			Interval:      IntervalMinute,
		}
		assert.Equal(t, c.intervals, s.TotalIntervals())
		assert.Equal(t, c.per, s.AmountPerInterval())
		assert.Equal(t, c.remainder, s.Remainder())
		assert.Equal(t, c.total, c.per*c.intervals+c.remainder)
	}
}

// TestScheduleCliffReducesIntervals verifica que o cliff sai da janela de
// intervalos
func TestScheduleCliffReducesIntervals(t *testing.T) {
	s := VestingSchedule{
		TotalAmount:   1000,
		CliffDuration: 120,
		TotalDuration: 720,
		Interval:      IntervalMinute,
	}
	assert.Equal(t, uint64(10), s.TotalIntervals())
}

// TestTerminationTypeValid verifica os tipos de encerramento conhecidos
func TestTerminationTypeValid(t *testing.T) {
	assert.True(t, TerminationStandard.Valid())
	assert.True(t, TerminationForCause.Valid())
	assert.True(t, TerminationAccelerated.Valid())
	assert.False(t, TerminationType("amigavel").Valid())
}
