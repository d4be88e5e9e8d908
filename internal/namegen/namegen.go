// Package namegen produces short display names for new games.
package namegen

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"amber", "bold", "calm", "daring", "eager", "fuzzy", "gentle",
	"hazy", "ivory", "jolly", "keen", "lucky", "mellow", "nimble",
	"olive", "plucky", "quiet", "rusty", "swift", "tidy", "vivid",
}

var nouns = []string{
	"badger", "comet", "dune", "ember", "falcon", "grove", "harbor",
	"iris", "jackal", "kestrel", "lagoon", "meadow", "nebula", "otter",
	"pebble", "quarry", "ridge", "sparrow", "thicket", "willow",
}

// Generator draws names from an injected random source.
type Generator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Generator { return &Generator{rng: rng} }

// Name returns an adjective-noun pair like "swift otter".
func (g *Generator) Name() string {
	return fmt.Sprintf("%s %s", adjectives[g.rng.Intn(len(adjectives))], nouns[g.rng.Intn(len(nouns))])
}
