// Package actions decides which pin affordance to offer for a resource.
package actions

import (
	"context"
	"fmt"
	"net/http"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Action labels.
const (
	LabelPin   = "Pin"
	LabelUnpin = "Unpin"
)

// Action is a declarative description of a request the client should make
// when the affordance is used.
type Action struct {
	Label    string         `json:"label"`
	Endpoint string         `json:"endpoint"`
	Method   string         `json:"method"`
	Payload  map[string]any `json:"payload"`
}

// PinAction builds the action that pins res.
func PinAction(basePath string, res core.Resource) *Action {
	return &Action{
		Label:    LabelPin,
		Endpoint: basePath + "/api/pin",
		Method:   http.MethodPost,
		Payload: map[string]any{
			"item_type":       string(res.Kind),
			"origin_database": res.Database,
			"origin_table":    res.Table,
		},
	}
}

// UnpinAction builds the action that removes pin id.
func UnpinAction(basePath string, id int64) *Action {
	return &Action{
		Label:    LabelUnpin,
		Endpoint: basePath + "/api/unpin",
		Method:   http.MethodPost,
		Payload:  map[string]any{"item_id": id},
	}
}

// Provider chooses between Pin and Unpin for a resource.
type Provider struct {
	store     core.PinStore
	evaluator permission.Evaluator
	basePath  string
}

// NewProvider creates a provider.
func NewProvider(store core.PinStore, evaluator permission.Evaluator, basePath string) *Provider {
	return &Provider{store: store, evaluator: evaluator, basePath: basePath}
}

// For returns the action to offer, or nil when the actor may not see pins.
func (p *Provider) For(ctx context.Context, a *actor.Actor, res core.Resource) (*Action, error) {
	if res.Kind == "" || res.Database == "" {
		return nil, fmt.Errorf("%w: resource kind and database are required", core.ErrMalformedInput)
	}
	if err := core.CheckTable(res.Kind, res.Table); err != nil {
		return nil, err
	}
	if !permission.Satisfied(ctx, p.evaluator, a, permission.Read) {
		return nil, nil
	}

	id, found, err := p.store.FindPin(ctx, res.Kind, res.Database, res.Table)
	if err != nil {
		return nil, err
	}
	if found {
		return UnpinAction(p.basePath, id), nil
	}
	return PinAction(p.basePath, res), nil
}
