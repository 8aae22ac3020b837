// Package sim runs batches of games between registered strategies and
// aggregates the outcomes.
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/unosim/internal/bot"
	"github.com/peterkuimelis/unosim/internal/game"
)

// PlayerSpec seats one named player with a registered strategy.
type PlayerSpec struct {
	Name     string `yaml:"name" json:"name"`
	Strategy string `yaml:"strategy" json:"strategy"`
}

// RuleSpec selects the house rules for every game in a batch.
type RuleSpec struct {
	Stacking         bool `yaml:"stacking" json:"stacking"`
	UnoPenalty       bool `yaml:"unoPenalty" json:"unoPenalty"`
	NoReverseSkip    bool `yaml:"noReverseSkip" json:"noReverseSkip"`
	StartingHandSize int  `yaml:"startingHandSize" json:"startingHandSize"`
	MaxTurns         int  `yaml:"maxTurns" json:"maxTurns"`
}

// BatchSpec configures one batch run.
type BatchSpec struct {
	Games   int          `yaml:"games" json:"games"`
	Seed    int64        `yaml:"seed" json:"seed"`
	Workers int          `yaml:"workers" json:"workers"`
	Players []PlayerSpec `yaml:"players" json:"players"`
	Rules   RuleSpec     `yaml:"rules" json:"rules"`
}

// ParseBatchSpec decodes and validates a YAML batch spec.
func ParseBatchSpec(data []byte) (*BatchSpec, error) {
	var spec BatchSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse batch spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadBatchSpec reads a batch spec from a YAML file.
func LoadBatchSpec(path string) (*BatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch spec: %w", err)
	}
	return ParseBatchSpec(data)
}

// Validate checks the spec and fills in defaults: a missing player name
// falls back to its strategy name, and Games defaults to 100.
func (s *BatchSpec) Validate() error {
	if s.Games == 0 {
		s.Games = 100
	}
	if s.Games < 0 {
		return fmt.Errorf("games must be positive, got %d", s.Games)
	}
	if len(s.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(s.Players))
	}
	if len(s.Players) > game.MaxPlayers {
		return fmt.Errorf("at most %d players, got %d", game.MaxPlayers, len(s.Players))
	}

	seen := make(map[string]bool, len(s.Players))
	for i := range s.Players {
		p := &s.Players[i]
		if p.Strategy == "" {
			return fmt.Errorf("player %d has no strategy", i)
		}
		if _, ok := bot.Registry[p.Strategy]; !ok {
			return fmt.Errorf("player %d: unknown strategy %q", i, p.Strategy)
		}
		if p.Name == "" {
			p.Name = p.Strategy
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// gameConfig translates the rule selection into a session config for the
// given per-game seed.
func (s *BatchSpec) gameConfig(seed int64) game.Config {
	return game.Config{
		Stacking:         s.Rules.Stacking,
		UnoPenalty:       s.Rules.UnoPenalty,
		NoReverseSkip:    s.Rules.NoReverseSkip,
		StartingHandSize: s.Rules.StartingHandSize,
		MaxTurns:         s.Rules.MaxTurns,
		Seed:             seed,
	}
}
