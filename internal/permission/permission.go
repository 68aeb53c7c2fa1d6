// Package permission decides whether an actor may read or change the pin list.
package permission

import (
	"context"
	"strings"

	"github.com/leapstack-labs/pins/internal/actor"
)

// Capability is a named permission.
type Capability string

// Pin capabilities.
const (
	ReadPins  Capability = "read-pins"
	WritePins Capability = "write-pins"
)

// AnyActor grants a capability to every authenticated actor.
const AnyActor = "*"

// Evaluator answers whether an actor holds a capability.
// Implementations must deny when unsure.
type Evaluator interface {
	Allowed(ctx context.Context, a *actor.Actor, c Capability) bool
}

// Policy is an Evaluator backed by a static grant table.
type Policy struct {
	grants map[Capability]map[string]struct{}
}

// NewPolicy builds a policy from capability -> actor id grants.
// Keys are matched leniently so "write_pins" and "Write-Pins" both mean WritePins.
func NewPolicy(grants map[string][]string) *Policy {
	p := &Policy{grants: make(map[Capability]map[string]struct{}, len(grants))}
	for name, ids := range grants {
		c := NormalizeCapability(name)
		set, ok := p.grants[c]
		if !ok {
			set = make(map[string]struct{}, len(ids))
			p.grants[c] = set
		}
		for _, id := range ids {
			if id = strings.TrimSpace(id); id != "" {
				set[id] = struct{}{}
			}
		}
	}
	return p
}

// NormalizeCapability lower-cases a capability name and maps underscores to hyphens.
func NormalizeCapability(name string) Capability {
	return Capability(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-"))
}

// Allowed implements Evaluator. Anonymous actors are always denied.
func (p *Policy) Allowed(_ context.Context, a *actor.Actor, c Capability) bool {
	if a == nil || a.ID == "" {
		return false
	}
	set := p.grants[c]
	if _, ok := set[a.ID]; ok {
		return true
	}
	_, ok := set[AnyActor]
	return ok
}

// Requirement is what a route demands of the requesting actor.
type Requirement int

const (
	// Public routes run without a capability check.
	Public Requirement = iota
	// Read needs read-pins or write-pins.
	Read
	// Write needs write-pins.
	Write
)

func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// Satisfied reports whether the actor meets the requirement.
func Satisfied(ctx context.Context, e Evaluator, a *actor.Actor, req Requirement) bool {
	switch req {
	case Public:
		return true
	case Read:
		return e.Allowed(ctx, a, ReadPins) || e.Allowed(ctx, a, WritePins)
	case Write:
		return e.Allowed(ctx, a, WritePins)
	default:
		return false
	}
}
