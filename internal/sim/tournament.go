package sim

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Standing is one strategy's record across a tournament.
type Standing struct {
	Strategy string  `json:"strategy"`
	Wins     int     `json:"wins"`
	Games    int     `json:"games"`
	WinRate  float64 `json:"winRate"`
}

// TournamentSpec configures a round-robin tournament: every pair of
// strategies plays a head-to-head batch under the same rules.
type TournamentSpec struct {
	Strategies   []string `yaml:"strategies" json:"strategies"`
	GamesPerPair int      `yaml:"gamesPerPair" json:"gamesPerPair"`
	Seed         int64    `yaml:"seed" json:"seed"`
	Workers      int      `yaml:"workers" json:"workers"`
	Rules        RuleSpec `yaml:"rules" json:"rules"`
}

// RunTournament plays every pairing and returns standings sorted by win
// rate, ties broken by name. Pair batches get distinct seeds derived
// from the tournament seed so reruns reproduce exactly.
func RunTournament(ctx context.Context, spec *TournamentSpec) ([]Standing, error) {
	if len(spec.Strategies) < 2 {
		return nil, fmt.Errorf("need at least 2 strategies, got %d", len(spec.Strategies))
	}
	if spec.GamesPerPair <= 0 {
		spec.GamesPerPair = 100
	}

	if spec.Seed == 0 {
		spec.Seed = time.Now().UnixNano()
	}

	wins := make(map[string]int, len(spec.Strategies))
	games := make(map[string]int, len(spec.Strategies))
	for _, name := range spec.Strategies {
		if _, dup := wins[name]; dup {
			return nil, fmt.Errorf("duplicate strategy %q", name)
		}
		wins[name] = 0
		games[name] = 0
	}

	pair := 0
	for i := 0; i < len(spec.Strategies); i++ {
		for j := i + 1; j < len(spec.Strategies); j++ {
			pair++
			a, b := spec.Strategies[i], spec.Strategies[j]
			batch := &BatchSpec{
				Games:   spec.GamesPerPair,
				Seed:    spec.Seed + int64(pair),
				Workers: spec.Workers,
				Players: []PlayerSpec{
					{Name: a, Strategy: a},
					{Name: b, Strategy: b},
				},
				Rules: spec.Rules,
			}
			stats, _, err := RunBatch(ctx, batch)
			if err != nil {
				return nil, fmt.Errorf("pairing %s vs %s: %w", a, b, err)
			}
			completed := stats.Games - stats.Errors
			wins[a] += stats.Wins[a]
			wins[b] += stats.Wins[b]
			games[a] += completed
			games[b] += completed
		}
	}

	standings := make([]Standing, 0, len(spec.Strategies))
	for _, name := range spec.Strategies {
		s := Standing{Strategy: name, Wins: wins[name], Games: games[name]}
		if s.Games > 0 {
			s.WinRate = float64(s.Wins) / float64(s.Games)
		}
		standings = append(standings, s)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].WinRate != standings[j].WinRate {
			return standings[i].WinRate > standings[j].WinRate
		}
		return standings[i].Strategy < standings[j].Strategy
	})
	return standings, nil
}
