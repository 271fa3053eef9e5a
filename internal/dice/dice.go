package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/jailbird/internal/dice Roller

// Roller is the source of randomness for challenge generation and spectator
// influence rolls
type Roller interface {
	// Roll returns a value in [1, sides]
	Roll(sides int) int

	// Chance reports whether a percent-probability trial succeeded
	Chance(percent int) bool
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// roller is safe for concurrent use; gateway events roll from many goroutines
type roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *roller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// Chance rolls a d100 against percent
func (r *roller) Chance(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return r.Roll(100) <= percent
}

// Pick returns a random element of options using the roller
func Pick[T any](r Roller, options []T) T {
	return options[r.Roll(len(options))-1]
}
