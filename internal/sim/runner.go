package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/peterkuimelis/unosim/internal/bot"
	"github.com/peterkuimelis/unosim/internal/game"
)

// GameResult is the outcome of a single game within a batch.
type GameResult struct {
	Game       int    `json:"game"`
	Seed       int64  `json:"seed"`
	Winner     int    `json:"winner"`
	WinnerName string `json:"winnerName"`
	Turns      int    `json:"turns"`
	Reason     string `json:"reason"`
	Faults     int    `json:"faults"`
	Err        string `json:"error,omitempty"`
}

// Stats summarizes a batch.
type Stats struct {
	Games       int                `json:"games"`
	Wins        map[string]int     `json:"wins"`
	WinRates    map[string]float64 `json:"winRates"`
	SeatWins    []int              `json:"seatWins"`
	AvgTurns    float64            `json:"avgTurns"`
	MedianTurns int                `json:"medianTurns"`
	Faults      int                `json:"faults"`
	Errors      int                `json:"errors"`
	Elapsed     time.Duration      `json:"elapsedNs"`
	GamesPerSec float64            `json:"gamesPerSec"`
}

// RunBatch plays the configured number of games and aggregates the
// results. The master seed expands into one seed per game, so a batch
// replays identically regardless of worker count; Workers above 1 runs
// the games on a pool.
func RunBatch(ctx context.Context, spec *BatchSpec) (*Stats, []GameResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}
	if spec.Seed == 0 {
		spec.Seed = time.Now().UnixNano()
	}

	seeds := gameSeeds(spec.Seed, spec.Games)
	start := time.Now()

	var results []GameResult
	var err error
	if spec.Workers > 1 {
		results, err = runParallel(ctx, spec, seeds)
	} else {
		results, err = runSerial(ctx, spec, seeds)
	}
	if err != nil {
		return nil, nil, err
	}

	stats := aggregate(spec, results, time.Since(start))
	return stats, results, nil
}

// gameSeeds expands the master seed into per-game seeds, generated up
// front so serial and parallel runs play the same games.
func gameSeeds(master int64, n int) []int64 {
	rng := rand.New(rand.NewSource(master))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	return seeds
}

func runSerial(ctx context.Context, spec *BatchSpec, seeds []int64) ([]GameResult, error) {
	results := make([]GameResult, len(seeds))
	for i, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = runOne(ctx, spec, i, seed)
	}
	return results, nil
}

// runOne plays a single game with fresh strategy instances. Setup errors
// and abandoned games land in the result's Err field rather than
// aborting the batch.
func runOne(ctx context.Context, spec *BatchSpec, index int, seed int64) GameResult {
	result := GameResult{Game: index, Seed: seed, Winner: -1}

	seats := make([]game.Seat, len(spec.Players))
	for i, p := range spec.Players {
		strategy, err := bot.New(p.Strategy, seed+int64(i))
		if err != nil {
			result.Err = err.Error()
			return result
		}
		seats[i] = game.Seat{Name: p.Name, Strategy: strategy}
	}

	session, err := game.NewSession(spec.gameConfig(seed), seats)
	if err != nil {
		result.Err = fmt.Sprintf("game %d: %v", index, err)
		return result
	}
	outcome, err := session.Run(ctx)
	if err != nil {
		result.Err = fmt.Sprintf("game %d: %v", index, err)
		return result
	}

	result.Winner = outcome.Winner
	result.WinnerName = outcome.WinnerName
	result.Turns = outcome.Turns
	result.Reason = outcome.Reason
	result.Faults = outcome.Faults
	return result
}

// aggregate folds per-game results into batch statistics.
func aggregate(spec *BatchSpec, results []GameResult, elapsed time.Duration) *Stats {
	stats := &Stats{
		Games:    len(results),
		Wins:     make(map[string]int, len(spec.Players)),
		WinRates: make(map[string]float64, len(spec.Players)),
		SeatWins: make([]int, len(spec.Players)),
		Elapsed:  elapsed,
	}
	for _, p := range spec.Players {
		stats.Wins[p.Name] = 0
	}

	var turns []int
	for _, r := range results {
		if r.Err != "" {
			stats.Errors++
			continue
		}
		stats.Wins[r.WinnerName]++
		stats.SeatWins[r.Winner]++
		stats.Faults += r.Faults
		turns = append(turns, r.Turns)
	}

	if len(turns) > 0 {
		sum := 0
		for _, t := range turns {
			sum += t
		}
		stats.AvgTurns = float64(sum) / float64(len(turns))
		sort.Ints(turns)
		mid := len(turns) / 2
		if len(turns)%2 == 0 {
			stats.MedianTurns = (turns[mid-1] + turns[mid]) / 2
		} else {
			stats.MedianTurns = turns[mid]
		}
	}

	completed := stats.Games - stats.Errors
	for name, wins := range stats.Wins {
		if completed > 0 {
			stats.WinRates[name] = float64(wins) / float64(completed)
		}
	}
	if secs := elapsed.Seconds(); secs > 0 {
		stats.GamesPerSec = float64(stats.Games) / secs
	}
	return stats
}
