package api

import "github.com/sarchlab/akita/v4/sim"

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine sim.Engine
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.engine == nil {
		panic("engine is not set")
	}

	return &driverImpl{
		name:   name,
		engine: b.engine,
	}
}
