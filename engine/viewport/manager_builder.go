package viewport

import (
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// ManagerBuilderOption is a function that configures a Manager during construction.
type ManagerBuilderOption func(*Manager)

// WithLoader sets the module loader used to resolve default renderers. The manager does not close it.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithLoader(l loader.Loader) ManagerBuilderOption {
	return func(m *Manager) {
		m.loader = l
	}
}

// WithStatePool shares a state pool with other managers.
//
// Parameters:
//   - sp: the state pool
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithStatePool(sp *statepool.StatePool) ManagerBuilderOption {
	return func(m *Manager) {
		m.statePool = sp
	}
}

// WithDefaultRenderer sets the module name loaded for viewports without a renderer.
//
// Parameters:
//   - name: the module name
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithDefaultRenderer(name string) ManagerBuilderOption {
	return func(m *Manager) {
		if name != "" {
			m.defaultRenderer = name
		}
	}
}

// WithTieBreak selects the placement of viewports with equal zorder.
//
// Parameters:
//   - tb: the tie-break rule
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithTieBreak(tb TieBreak) ManagerBuilderOption {
	return func(m *Manager) {
		m.tieBreak = tb
	}
}
