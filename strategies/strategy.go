// Package strategies decides when the engine should open or close the
// simulated position.
package strategies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rustyeddy/simbot/indicators"
	"github.com/rustyeddy/simbot/ledger"
)

// Signal is the action a strategy asks the engine to take this tick.
type Signal int

const (
	SignalNone Signal = iota
	SignalOpenLong
	SignalOpenShort
	SignalClose
)

// Strategy evaluates the previous and current indicator snapshots against the
// open position, if any. The engine only calls Evaluate once two consecutive
// actionable snapshots exist; the first actionable tick has no predecessor
// and is never evaluated.
type Strategy interface {
	Name() string
	Evaluate(prev, cur indicators.Snapshot, pos *ledger.Position) Signal
}

var registry = make(map[string]func() Strategy)

// Register adds a strategy constructor under a lookup name. Strategies
// register themselves from init.
func Register(name string, build func() Strategy) {
	registry[name] = build
}

// Names returns the registered strategy names for error messages.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a strategy from its configured name. An empty name selects
// rsi-cross, the default.
func ByName(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "rsi-cross"
	}
	if build, ok := registry[key]; ok {
		return build(), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (supported: %s)", name, strings.Join(Names(), ", "))
}
