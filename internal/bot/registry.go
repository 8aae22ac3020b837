package bot

import (
	"fmt"
	"sort"

	"github.com/peterkuimelis/unosim/internal/game"
)

// Registry maps strategy names to their constructor functions. The seed
// only matters to strategies that randomize; the rest ignore it.
var Registry = map[string]func(seed int64) game.Strategy{
	"random":      func(seed int64) game.Strategy { return NewRandom(seed) },
	"wildfirst":   func(int64) game.Strategy { return NewWildFirst() },
	"wildlast":    func(int64) game.Strategy { return NewWildLast() },
	"actionfirst": func(int64) game.Strategy { return NewActionFirst() },
	"hoarder":     func(int64) game.Strategy { return NewHoarder() },
}

// New constructs the named strategy.
func New(name string, seed int64) (game.Strategy, error) {
	ctor, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return ctor(seed), nil
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
