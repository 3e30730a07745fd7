// Package namegen produces random three-word hyphenated names in
// adjective-color-animal form, used as the slug generator's random
// fallback tier.
package namegen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"agile", "ancient", "bold", "brave", "bright", "calm", "clever",
	"cosmic", "crisp", "curious", "daring", "eager", "fancy", "fierce",
	"gentle", "giant", "happy", "hidden", "humble", "jolly", "keen",
	"lively", "lucky", "mellow", "mighty", "noble", "proud", "quick",
	"quiet", "rapid", "rustic", "silent", "sleek", "smooth", "snappy",
	"solid", "swift", "tiny", "vivid", "wild", "wise", "witty", "zesty",
}

var colors = []string{
	"amber", "aqua", "azure", "beige", "bronze", "coral", "crimson",
	"cyan", "ebony", "emerald", "fuchsia", "gold", "gray", "green",
	"indigo", "ivory", "jade", "lavender", "lime", "magenta", "maroon",
	"navy", "olive", "orange", "pearl", "pink", "plum", "purple", "red",
	"rose", "ruby", "salmon", "sapphire", "scarlet", "silver", "teal",
	"violet", "white", "yellow",
}

var animals = []string{
	"badger", "bear", "beaver", "bison", "cobra", "condor", "coyote",
	"crane", "dolphin", "eagle", "falcon", "ferret", "fox", "gazelle",
	"gecko", "heron", "ibex", "jaguar", "koala", "lemur", "leopard",
	"lynx", "marmot", "meerkat", "mongoose", "otter", "owl", "panda",
	"panther", "pelican", "puma", "raven", "salamander", "seal", "shark",
	"sparrow", "stork", "tiger", "toucan", "viper", "walrus", "wolf",
	"wombat", "yak", "zebra",
}

// Generator combines dictionary words into random hyphenated names.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a deterministic sequence, used in tests.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a lowercase adjective-color-animal name.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%s",
		adjectives[g.rng.Intn(len(adjectives))],
		colors[g.rng.Intn(len(colors))],
		animals[g.rng.Intn(len(animals))],
	)
}
