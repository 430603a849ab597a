package control

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fennwald/huecore/internal/bridge"
	"github.com/fennwald/huecore/internal/graph"
	"github.com/fennwald/huecore/internal/resource"
)

// defaultConcurrency bounds member fan-out when no limit is configured.
const defaultConcurrency = 5

// Transport issues resource updates. *bridge.Client satisfies it.
type Transport interface {
	Put(ctx context.Context, endpoint string, payload any) (*bridge.Envelope, error)
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// TargetResult is the outcome of one resource update within a dispatch.
type TargetResult struct {
	Type resource.Type `json:"type"`
	ID   string        `json:"id"`
	Err  error         `json:"-"`
}

// OK reports whether the update succeeded.
func (r TargetResult) OK() bool {
	return r.Err == nil
}

// Dispatch is the full outcome of one control operation.
type Dispatch struct {
	Targets []TargetResult `json:"targets"`
}

// Failed counts targets whose update failed.
func (d Dispatch) Failed() int {
	n := 0
	for _, t := range d.Targets {
		if t.Err != nil {
			n++
		}
	}
	return n
}

// Dispatcher turns desired-state documents into resource updates against
// the bridge, resolving group targets through the graph.
//
// Updates are not idempotent from the bridge's point of view, so the
// dispatcher never retries a PUT; a failed target is reported, not
// replayed.
type Dispatcher struct {
	transport   Transport
	graph       *graph.Graph
	concurrency int
	logger      Logger
}

// NewDispatcher builds a dispatcher over the given transport and graph.
// A concurrency of zero or less falls back to the default limit.
func NewDispatcher(transport Transport, g *graph.Graph, concurrency int) *Dispatcher {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Dispatcher{
		transport:   transport,
		graph:       g,
		concurrency: concurrency,
		logger:      noopLogger{},
	}
}

// SetLogger sets the logger for the dispatcher.
func (d *Dispatcher) SetLogger(logger Logger) {
	d.logger = logger
}

// ControlLight applies the state to a single light. Validation runs
// against the light's own record (advertised mirek schema, capability
// set) before anything touches the network.
func (d *Dispatcher) ControlLight(ctx context.Context, id string, state State) (Dispatch, error) {
	if err := uuid.Validate(id); err != nil {
		return Dispatch{}, fmt.Errorf("%w: %q", ErrInvalidTarget, id)
	}

	var schema *resource.MirekSchema
	if light, ok := d.graph.Light(id); ok {
		if err := state.checkCapabilities(light); err != nil {
			return Dispatch{}, err
		}
		if light.ColorTemperature != nil {
			schema = &light.ColorTemperature.MirekSchema
		}
	}
	if err := state.validate(schema); err != nil {
		return Dispatch{}, err
	}

	result := d.put(ctx, resource.TypeLight, id, state.payload())
	d.logger.Debug("light update dispatched", "light_id", id, "ok", result.OK())

	dispatch := Dispatch{Targets: []TargetResult{result}}
	if result.Err != nil {
		return dispatch, result.Err
	}
	return dispatch, nil
}

// ControlRoom applies the state to a room or zone.
//
// When the group has a grouped_light service the whole operation is one
// update to it and the bridge handles member fan-out. Otherwise the
// member lights are updated individually, at most `concurrency` in
// flight, with per-target failure isolation: one light failing never
// stops the others, and the result names every target either way.
// Cancelling the context skips sub-requests that have not started.
func (d *Dispatcher) ControlRoom(ctx context.Context, id string, state State) (Dispatch, error) {
	if err := uuid.Validate(id); err != nil {
		return Dispatch{}, fmt.Errorf("%w: %q", ErrInvalidTarget, id)
	}
	// Member schemas can disagree, so grouped validation uses the widest
	// accepted range.
	if err := state.validate(nil); err != nil {
		return Dispatch{}, err
	}

	target, err := d.graph.ControlTarget(id)
	if err != nil {
		return Dispatch{}, err
	}

	switch {
	case target.Grouped():
		result := d.put(ctx, resource.TypeGroupedLight, target.GroupedLight, state.payload())
		d.logger.Debug("grouped update dispatched",
			"group_id", id, "grouped_light_id", target.GroupedLight, "ok", result.OK())

		dispatch := Dispatch{Targets: []TargetResult{result}}
		if result.Err != nil {
			return dispatch, result.Err
		}
		return dispatch, nil

	case target.Empty():
		d.logger.Debug("group has no controllable members", "group_id", id)
		return Dispatch{}, nil

	default:
		return d.fanOut(ctx, id, target.Lights, state)
	}
}

// fanOut updates each member light concurrently and collects per-target
// outcomes.
func (d *Dispatcher) fanOut(ctx context.Context, groupID string, lights []string, state State) (Dispatch, error) {
	payload := state.payload()
	results := make([]TargetResult, len(lights))

	var group errgroup.Group
	group.SetLimit(d.concurrency)

	for i, lightID := range lights {
		i, lightID := i, lightID
		group.Go(func() error {
			// Each goroutine owns one slot; no shared state beyond that.
			if err := ctx.Err(); err != nil {
				results[i] = TargetResult{Type: resource.TypeLight, ID: lightID, Err: err}
				return nil
			}
			results[i] = d.put(ctx, resource.TypeLight, lightID, payload)
			// Always nil: a member failure must not cancel the siblings.
			return nil
		})
	}
	group.Wait()

	dispatch := Dispatch{Targets: results}
	failed := dispatch.Failed()
	d.logger.Info("room fan-out complete",
		"group_id", groupID, "targets", len(lights), "failed", failed)

	switch {
	case failed == 0:
		return dispatch, nil
	case failed == len(lights):
		return dispatch, fmt.Errorf("control: all %d targets failed: %w", failed, results[0].Err)
	default:
		return dispatch, fmt.Errorf("%w: %d of %d targets failed", ErrPartialFailure, failed, len(lights))
	}
}

// ActivateScene recalls a scene. One update to the scene resource; the
// bridge applies the stored per-light states itself.
func (d *Dispatcher) ActivateScene(ctx context.Context, id string) (Dispatch, error) {
	if err := uuid.Validate(id); err != nil {
		return Dispatch{}, fmt.Errorf("%w: %q", ErrInvalidTarget, id)
	}

	payload := map[string]any{
		"recall": map[string]any{"action": "active"},
	}
	result := d.put(ctx, resource.TypeScene, id, payload)
	d.logger.Debug("scene recall dispatched", "scene_id", id, "ok", result.OK())

	dispatch := Dispatch{Targets: []TargetResult{result}}
	if result.Err != nil {
		return dispatch, result.Err
	}
	return dispatch, nil
}

// put issues one resource update and wraps the outcome.
func (d *Dispatcher) put(ctx context.Context, typ resource.Type, id string, payload any) TargetResult {
	endpoint := fmt.Sprintf("/resource/%s/%s", typ, id)
	_, err := d.transport.Put(ctx, endpoint, payload)
	if err != nil {
		d.logger.Warn("resource update failed", "type", string(typ), "id", id, "error", err)
	}
	return TargetResult{Type: typ, ID: id, Err: err}
}
