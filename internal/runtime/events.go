package runtime

import (
	"context"
	"time"

	"github.com/aretw0/kestrel/pkg/domain"
)

func (e *Engine) emitStepStart(ctx context.Context, service string, nonstrict bool) {
	if e.hooks.OnStepStart == nil {
		return
	}
	e.hooks.OnStepStart(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepStart},
		Service:   service,
		Nonstrict: nonstrict,
	})
}

func (e *Engine) emitStepSkipped(ctx context.Context, service string, nonstrict bool) {
	if e.hooks.OnStepSkipped == nil {
		return
	}
	e.hooks.OnStepSkipped(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepSkip},
		Service:   service,
		Nonstrict: nonstrict,
	})
}

func (e *Engine) emitBindingFailure(ctx context.Context, service, key string) {
	if e.hooks.OnBindingFailure == nil {
		return
	}
	e.hooks.OnBindingFailure(ctx, &domain.BindingEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBindingFailure},
		Service:   service,
		Key:       key,
	})
}

func (e *Engine) emitServiceReturn(ctx context.Context, service string, valid bool, d time.Duration) {
	if e.hooks.OnServiceReturn == nil {
		return
	}
	e.hooks.OnServiceReturn(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventServiceReturn},
		Service:   service,
		Valid:     valid,
		Duration:  d,
	})
}

func (e *Engine) emitLaunch(ctx context.Context, root string, found bool) {
	if e.hooks.OnLaunch == nil {
		return
	}
	e.hooks.OnLaunch(ctx, &domain.LaunchEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventLaunch},
		Root:      root,
		Found:     found,
	})
}
