package config

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/handheld/api"
	"github.com/sarchlab/handheld/core"
)

// Platform is a console wired to a driver on a shared engine.
type Platform struct {
	Engine  sim.Engine
	Console *core.Core
	Driver  api.Driver
}

// PlatformBuilder can build console platforms.
type PlatformBuilder struct {
	engine sim.Engine
	freq   sim.Freq
}

// WithEngine sets the engine that drives the platform simulation.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the console.
func (b PlatformBuilder) WithFreq(freq sim.Freq) PlatformBuilder {
	b.freq = freq
	return b
}

// WithConfig takes the frequency from the configuration.
func (b PlatformBuilder) WithConfig(cfg Config) PlatformBuilder {
	return b.WithFreq(sim.Freq(cfg.FreqGHz) * sim.GHz)
}

// Build creates a platform. A serial engine is created if none is set.
func (b PlatformBuilder) Build(name string) Platform {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	coreBuilder := core.NewBuilder().WithEngine(engine)
	if b.freq > 0 {
		coreBuilder = coreBuilder.WithFreq(b.freq)
	}

	console := coreBuilder.Build(name + ".Console")

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		Build(name + ".Driver")
	driver.RegisterConsole(console)

	return Platform{
		Engine:  engine,
		Console: console,
		Driver:  driver,
	}
}
