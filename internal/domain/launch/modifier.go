package launch

import "github.com/GriffinCanCode/launchpad/internal/domain/process"

// Modifier mutates the command of one instance just before it is spawned
type Modifier interface {
	Modify(spec *process.Spec) error
}

// ModifierFunc adapts a function to Modifier
type ModifierFunc func(spec *process.Spec) error

// Modify calls f
func (f ModifierFunc) Modify(spec *process.Spec) error {
	return f(spec)
}

// Chain applies modifiers in order, stopping at the first error
type Chain []Modifier

// Modify runs every modifier of the chain
func (c Chain) Modify(spec *process.Spec) error {
	for _, m := range c {
		if m == nil {
			continue
		}
		if err := m.Modify(spec); err != nil {
			return err
		}
	}
	return nil
}
