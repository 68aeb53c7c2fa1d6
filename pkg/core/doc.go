// Package core defines the shared language of the pins system.
//
// This package contains:
//   - Domain entities (PinnedItem, OrderAssignment, Resource)
//   - Service interfaces (PinStore)
//   - Sentinel errors shared by the storage and HTTP layers
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
