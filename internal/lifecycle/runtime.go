package lifecycle

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Component interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type namedComponent struct {
	name string
	Component
}

// Runtime starts components in registration order and stops them in reverse.
type Runtime struct {
	components []namedComponent
}

func NewRuntime() *Runtime {
	return &Runtime{}
}

func (r *Runtime) Register(name string, component Component) {
	if component == nil {
		return
	}
	r.components = append(r.components, namedComponent{name: name, Component: component})
}

// Start stops the already started components if one of them fails.
func (r *Runtime) Start(ctx context.Context) error {
	started := make([]namedComponent, 0, len(r.components))
	for _, component := range r.components {
		if err := component.Start(ctx); err != nil {
			_ = stopComponents(ctx, started)
			return fmt.Errorf("start %s: %w", component.name, err)
		}
		log.WithField("component", component.name).Debug("started")
		started = append(started, component)
	}
	return nil
}

func (r *Runtime) Stop(ctx context.Context) error {
	return stopComponents(ctx, r.components)
}

func stopComponents(ctx context.Context, components []namedComponent) error {
	var stopErr error
	for i := len(components) - 1; i >= 0; i-- {
		component := components[i]
		if err := component.Stop(ctx); err != nil {
			stopErr = errors.Join(stopErr, fmt.Errorf("stop %s: %w", component.name, err))
			continue
		}
		log.WithField("component", component.name).Debug("stopped")
	}
	return stopErr
}
