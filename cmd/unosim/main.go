package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterkuimelis/unosim/internal/bot"
	"github.com/peterkuimelis/unosim/internal/game"
	"github.com/peterkuimelis/unosim/internal/log"
	"github.com/peterkuimelis/unosim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		runBatch(os.Args[2:])
	case "tournament":
		runTournament(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "bots":
		listBots()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  unosim run [--config FILE | --players LIST] [--games N] [--seed N] [--workers N] [--out FILE]")
	fmt.Println("  unosim tournament [--strategies LIST] [--games-per-pair N] [--seed N]")
	fmt.Println("  unosim watch [--players LIST] [--seed N]")
	fmt.Println("  unosim bots")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run         Simulate a batch of games and print aggregate statistics")
	fmt.Println("  tournament  Play every strategy pairing head to head and print standings")
	fmt.Println("  watch       Play a single game and print its full event log")
	fmt.Println("  bots        List the registered strategies")
}

// ruleFlags registers the shared house-rule flags on a flag set.
type ruleFlags struct {
	stacking      *bool
	unoPenalty    *bool
	noReverseSkip *bool
	handSize      *int
	maxTurns      *int
}

func addRuleFlags(fs *flag.FlagSet) *ruleFlags {
	return &ruleFlags{
		stacking:      fs.Bool("stacking", false, "allow answering a DrawTwo/WildDrawFour with another draw card"),
		unoPenalty:    fs.Bool("uno-penalty", false, "penalize a missed UNO call with 4 cards"),
		noReverseSkip: fs.Bool("no-reverse-skip", false, "disable Reverse acting as Skip in two-player games"),
		handSize:      fs.Int("hand", 0, "starting hand size (default 7)"),
		maxTurns:      fs.Int("max-turns", 0, "turn cutoff before scoring hands (default 1000)"),
	}
}

func (rf *ruleFlags) spec() sim.RuleSpec {
	return sim.RuleSpec{
		Stacking:         *rf.stacking,
		UnoPenalty:       *rf.unoPenalty,
		NoReverseSkip:    *rf.noReverseSkip,
		StartingHandSize: *rf.handSize,
		MaxTurns:         *rf.maxTurns,
	}
}

// parsePlayers converts a comma-separated strategy list into player
// specs, numbering duplicates so names stay unique.
func parsePlayers(list string) ([]sim.PlayerSpec, error) {
	var players []sim.PlayerSpec
	counts := map[string]int{}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		counts[name]++
		p := sim.PlayerSpec{Name: name, Strategy: name}
		if counts[name] > 1 {
			p.Name = fmt.Sprintf("%s-%d", name, counts[name])
		}
		players = append(players, p)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no players given")
	}
	return players, nil
}

func runBatch(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configFile := fs.String("config", "", "YAML batch spec (overrides the other flags)")
	players := fs.String("players", "random,actionfirst", "comma-separated strategy names")
	games := fs.Int("games", 1000, "number of games to play")
	seed := fs.Int64("seed", 0, "master seed (default time-based)")
	workers := fs.Int("workers", 0, "parallel workers (0 = serial)")
	out := fs.String("out", "", "write a JSON report to this file")
	rules := addRuleFlags(fs)
	fs.Parse(args)

	var spec *sim.BatchSpec
	if *configFile != "" {
		loaded, err := sim.LoadBatchSpec(*configFile)
		if err != nil {
			fatal(err)
		}
		spec = loaded
	} else {
		ps, err := parsePlayers(*players)
		if err != nil {
			fatal(err)
		}
		spec = &sim.BatchSpec{
			Games:   *games,
			Seed:    *seed,
			Workers: *workers,
			Players: ps,
			Rules:   rules.spec(),
		}
	}

	stats, results, err := sim.RunBatch(context.Background(), spec)
	if err != nil {
		fatal(err)
	}

	printStats(spec, stats)

	if *out != "" {
		report := sim.NewReport(spec, stats, results)
		if err := report.SaveFile(*out); err != nil {
			fatal(err)
		}
		fmt.Printf("\nReport %s written to %s\n", report.RunID, *out)
	}
}

func printStats(spec *sim.BatchSpec, stats *sim.Stats) {
	fmt.Printf("Results over %d games (seed %d):\n", stats.Games, spec.Seed)

	names := make([]string, 0, len(stats.Wins))
	for name := range stats.Wins {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if stats.Wins[names[i]] != stats.Wins[names[j]] {
			return stats.Wins[names[i]] > stats.Wins[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Printf("  %-16s %6d wins  (%5.1f%%)\n", name, stats.Wins[name], stats.WinRates[name]*100)
	}

	fmt.Printf("Average turns: %.1f  Median: %d\n", stats.AvgTurns, stats.MedianTurns)
	fmt.Printf("Elapsed: %s (%.1f games/sec)\n", stats.Elapsed.Round(time.Millisecond), stats.GamesPerSec)
	if stats.Faults > 0 || stats.Errors > 0 {
		fmt.Printf("Faults: %d  Errors: %d\n", stats.Faults, stats.Errors)
	}
}

func runTournament(args []string) {
	fs := flag.NewFlagSet("tournament", flag.ExitOnError)
	strategies := fs.String("strategies", strings.Join(bot.Names(), ","), "comma-separated strategy names")
	gamesPerPair := fs.Int("games-per-pair", 200, "games per pairing")
	seed := fs.Int64("seed", 0, "tournament seed (default time-based)")
	workers := fs.Int("workers", 0, "parallel workers (0 = serial)")
	rules := addRuleFlags(fs)
	fs.Parse(args)

	var names []string
	for _, name := range strings.Split(*strategies, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	spec := &sim.TournamentSpec{
		Strategies:   names,
		GamesPerPair: *gamesPerPair,
		Seed:         *seed,
		Workers:      *workers,
		Rules:        rules.spec(),
	}
	standings, err := sim.RunTournament(context.Background(), spec)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Round robin, %d games per pairing (seed %d):\n", spec.GamesPerPair, spec.Seed)
	for i, s := range standings {
		fmt.Printf("  %d. %-16s %6d/%d wins  (%5.1f%%)\n", i+1, s.Strategy, s.Wins, s.Games, s.WinRate*100)
	}
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	players := fs.String("players", "random,actionfirst", "comma-separated strategy names")
	seed := fs.Int64("seed", 0, "shuffle seed (default time-based)")
	rules := addRuleFlags(fs)
	fs.Parse(args)

	ps, err := parsePlayers(*players)
	if err != nil {
		fatal(err)
	}

	seats := make([]game.Seat, len(ps))
	for i, p := range ps {
		strategy, err := bot.New(p.Strategy, *seed+int64(i))
		if err != nil {
			fatal(err)
		}
		seats[i] = game.Seat{Name: p.Name, Strategy: strategy}
	}

	rs := rules.spec()
	cfg := game.Config{
		Stacking:         rs.Stacking,
		UnoPenalty:       rs.UnoPenalty,
		NoReverseSkip:    rs.NoReverseSkip,
		StartingHandSize: rs.StartingHandSize,
		MaxTurns:         rs.MaxTurns,
		Seed:             *seed,
		Logger:           log.NewTextLogger(os.Stdout),
	}
	session, err := game.NewSession(cfg, seats)
	if err != nil {
		fatal(err)
	}
	outcome, err := session.Run(context.Background())
	if err != nil {
		fatal(err)
	}

	fmt.Printf("\n%s wins after %d turns (%s). Scores: %v\n",
		outcome.WinnerName, outcome.Turns, outcome.Reason, outcome.Scores)
}

func listBots() {
	for _, name := range bot.Names() {
		fmt.Println(name)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
