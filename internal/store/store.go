// Package store defines the repository contract for simulation results.
// The engine itself never touches a store; host applications persist
// results through this interface with whatever backend they choose, and
// MemStore covers the ones that do not bring their own.
package store

import (
	"errors"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

// ErrNotFound is returned when no result exists for the requested ID.
var ErrNotFound = errors.New("simulation result not found")

// Store is a key-value repository of simulation results keyed by the
// engine-generated run ID.
type Store interface {
	SaveResult(result *simulation.SimulationResult) error
	GetResult(id string) (*simulation.SimulationResult, error)
	ListResults() ([]*simulation.SimulationResult, error)
	DeleteResult(id string) error
}
