package effects_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-progression/internal/effects"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
)

type TrackerTestSuite struct {
	suite.Suite
	tracker     *effects.Tracker
	buffChanges int
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) SetupTest() {
	s.buffChanges = 0
	var err error
	s.tracker, err = effects.NewTracker(&effects.Config{
		IDGenerator: idgen.NewSequential("fx"),
		OnBuffChange: func() {
			s.buffChanges++
		},
	})
	s.Require().NoError(err)
}

func (s *TrackerTestSuite) TestHealRemainderOnFinalTurn() {
	testCases := []struct {
		name     string
		total    int
		turns    int
		expected []int
	}{
		{name: "even split", total: 30, turns: 3, expected: []int{10, 10, 10}},
		{name: "remainder on last turn", total: 10, turns: 3, expected: []int{3, 3, 4}},
		{name: "less than one per turn", total: 2, turns: 4, expected: []int{0, 0, 0, 2}},
		{name: "single turn", total: 7, turns: 1, expected: []int{7}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			_, err := s.tracker.Apply(effects.HealOverTime{Total: tc.total, Turns: tc.turns})
			s.Require().NoError(err)

			sum := 0
			for i, want := range tc.expected {
				result := s.tracker.Tick(int64(i + 1))
				s.Equal(want, result.Healed, "turn %d", i+1)
				sum += result.Healed
			}
			s.Equal(tc.total, sum)
			s.Empty(s.tracker.Active())
		})
	}
}

func (s *TrackerTestSuite) TestTickIsIdempotentPerTurn() {
	id, err := s.tracker.Apply(effects.HealOverTime{Total: 20, Turns: 4})
	s.Require().NoError(err)

	first := s.tracker.Tick(5)
	s.False(first.Skipped)
	s.Equal(5, first.Healed)

	again := s.tracker.Tick(5)
	s.True(again.Skipped)
	s.Equal(0, again.Healed)

	earlier := s.tracker.Tick(3)
	s.True(earlier.Skipped)

	active := s.tracker.Active()
	s.Require().Len(active, 1)
	s.Equal(id, active[0].ID)
	s.Equal(3, active[0].Remaining)
	s.Equal(5, active[0].Healed)
}

func (s *TrackerTestSuite) TestStatBuffFeedsItemStats() {
	_, err := s.tracker.Apply(effects.StatBuff{Stat: entities.StatAD, Value: 15, Turns: 2})
	s.Require().NoError(err)
	_, err = s.tracker.Apply(effects.StatBuff{Stat: entities.StatAD, Value: 5, Turns: 1})
	s.Require().NoError(err)
	s.Equal(2, s.buffChanges)
	s.Equal(20.0, s.tracker.BuffStats().GetStat(entities.StatAD))

	result := s.tracker.Tick(1)
	s.Len(result.Expired, 1)
	s.Equal(3, s.buffChanges)
	s.Equal(15.0, s.tracker.BuffStats().GetStat(entities.StatAD))

	s.tracker.Tick(2)
	s.Equal(4, s.buffChanges)
	s.True(s.tracker.BuffStats().IsEmpty())
}

func (s *TrackerTestSuite) TestHealExpiryDoesNotTouchBuffs() {
	_, err := s.tracker.Apply(effects.HealOverTime{Total: 4, Turns: 1})
	s.Require().NoError(err)
	s.tracker.Tick(1)
	s.Equal(0, s.buffChanges)
}

func (s *TrackerTestSuite) TestApplyValidation() {
	testCases := []struct {
		name   string
		effect effects.Effect
	}{
		{name: "nil effect", effect: nil},
		{name: "zero heal", effect: effects.HealOverTime{Total: 0, Turns: 3}},
		{name: "zero turns", effect: effects.HealOverTime{Total: 10, Turns: 0}},
		{name: "unknown stat", effect: effects.StatBuff{Stat: entities.Stat("luck"), Value: 1, Turns: 2}},
		{name: "negative turns", effect: effects.StatBuff{Stat: entities.StatAP, Value: 1, Turns: -1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.tracker.Apply(tc.effect)
			s.True(errors.IsInvalidArgument(err))
		})
	}
	s.Empty(s.tracker.Active())
}

func (s *TrackerTestSuite) TestClear() {
	_, err := s.tracker.Apply(effects.StatBuff{Stat: entities.StatDefense, Value: 4, Turns: 5})
	s.Require().NoError(err)
	s.tracker.Clear()
	s.Empty(s.tracker.Active())
	s.Equal(2, s.buffChanges)

	s.tracker.Clear()
	s.Equal(2, s.buffChanges)
}
