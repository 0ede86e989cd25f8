package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	charrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
	"github.com/KirkDiggler/rpg-progression/internal/testutils"
)

type maxRoller struct{}

func (maxRoller) Roll(size int) (int, error) {
	return size, nil
}

func (maxRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = size
	}
	return out, nil
}

type SessionTestSuite struct {
	suite.Suite
	ctx   context.Context
	out   *bytes.Buffer
	items *catalog.Static
	repo  charrepo.Repository
}

func (s *SessionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.out = &bytes.Buffer{}

	items, err := catalog.Default()
	s.Require().NoError(err)
	s.items = items

	client, _ := testutils.CreateTestRedisClient(s.T())
	repo, err := charrepo.NewRedis(&charrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SessionTestSuite) sessionConfig() *sessionConfig {
	return &sessionConfig{
		CharacterID: "hero",
		PlayerID:    "player_1",
		Name:        "Hero",
		Attributes:  entities.AttributeSet{STR: 10, INT: 10, AGI: 10, END: 10, WIS: 10},
		Experience:  500,
		Allocate:    entities.AttributeSTR,
		Turns:       3,
		Tuning:      config.Default(),
		Catalog:     s.items,
		IDGenerator: idgen.NewSequential("inst"),
		Clock:       clock.NewFixed(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)),
		Roller:      maxRoller{},
		Repository:  s.repo,
		Out:         s.out,
	}
}

func (s *SessionTestSuite) TestRunSession() {
	c, err := runSession(s.ctx, s.sessionConfig())
	s.Require().NoError(err)

	level := c.LevelState()
	s.GreaterOrEqual(level.Level, 3)
	s.Zero(level.UnallocatedPoints)
	s.Zero(c.PendingPoints())
	s.Greater(c.Attributes().STR, 10)

	s.Equal("iron_sword", itemIn(c.Equipment().ItemIn(entities.SlotWeapon)))
	s.Equal("leather_cap", itemIn(c.Equipment().ItemIn(entities.SlotHelmet)))
	s.Equal("ruby_ring", itemIn(c.Equipment().ItemIn(entities.SlotAccessory1)))

	s.Equal(4, c.Inventory().Quantity("small_potion", entities.LocationPocket))
	s.Equal(12, c.Inventory().Quantity("iron_ore", entities.LocationStorage))
	s.Zero(c.Inventory().Count(entities.LocationBag))
	s.Greater(c.CurrentHP(), c.Stats().MaxHP/2)

	printed := s.out.String()
	s.Contains(printed, "ok   added 1 iron_sword to bag")
	s.Contains(printed, "* equip weapon")
	s.Contains(printed, "* hero reached level")
	s.Contains(printed, "stored 1 items, 0 failed")
	s.Contains(printed, "saved snapshot hero")
}

func (s *SessionTestSuite) TestSavedSnapshotRestores() {
	played, err := runSession(s.ctx, s.sessionConfig())
	s.Require().NoError(err)

	shown := &bytes.Buffer{}
	s.Require().NoError(showCharacter(s.ctx, shown, s.repo, config.Default(), s.items, "hero"))
	s.Contains(shown.String(), "Hero (hero) level")
	s.Contains(shown.String(), "Iron Sword")

	got, err := s.repo.Get(s.ctx, charrepo.GetInput{ID: "hero"})
	s.Require().NoError(err)
	s.Equal(played.Attributes(), got.Snapshot.Attributes)
	s.Equal(played.LevelState(), got.Snapshot.Level)
}

func (s *SessionTestSuite) TestShowMissing() {
	err := showCharacter(s.ctx, &bytes.Buffer{}, s.repo, config.Default(), s.items, "nobody")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *SessionTestSuite) TestInvalidSessionConfig() {
	testCases := []struct {
		name   string
		mutate func(cfg *sessionConfig)
	}{
		{name: "missing id", mutate: func(cfg *sessionConfig) { cfg.CharacterID = "" }},
		{name: "unknown attribute", mutate: func(cfg *sessionConfig) { cfg.Allocate = "luck" }},
		{name: "negative experience", mutate: func(cfg *sessionConfig) { cfg.Experience = -1 }},
		{name: "missing roller", mutate: func(cfg *sessionConfig) { cfg.Roller = nil }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := s.sessionConfig()
			tc.mutate(cfg)
			_, err := runSession(s.ctx, cfg)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *SessionTestSuite) TestParseLogLevel() {
	level, err := parseLogLevel("DEBUG")
	s.Require().NoError(err)
	s.Equal(slog.LevelDebug, level)

	_, err = parseLogLevel("loud")
	s.True(errors.IsInvalidArgument(err))
}

func itemIn(def *entities.ItemDefinition, ok bool) string {
	if !ok {
		return ""
	}
	return def.ID
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
