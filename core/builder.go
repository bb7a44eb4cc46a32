package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	if freq <= 0 {
		panic("frequency must be positive")
	}
	b.freq = freq
	return b
}

func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		panic("engine is not set")
	}

	c := &Core{}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
