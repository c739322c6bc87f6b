package tenancy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

// Stage is one step of the request pipeline. A non-nil error ends the pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context, rc *RequestContext) error
}

const (
	StageResolve = "resolve"
	StageBind    = "bind"
	StageGate    = "gate"
	StageGuard   = "guard"
)

// Pipeline runs the tenancy stages in a fixed order before any handler:
// resolve, bind, gate, guard.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(resolver *Resolver, binder *Binder, directory Directory, gate *Gate, guard *Guard) *Pipeline {
	return newPipeline(resolver, binder, directory, gate, guard, time.Now)
}

func newPipeline(resolver *Resolver, binder *Binder, directory Directory, gate *Gate, guard *Guard, now func() time.Time) *Pipeline {
	return &Pipeline{stages: []Stage{
		{Name: StageResolve, Run: func(ctx context.Context, rc *RequestContext) error {
			tenant, sig, err := resolver.Resolve(ctx, rc.Request)
			rc.Signal = sig
			if err != nil {
				return err
			}
			rc.Tenant = tenant
			return nil
		}},
		{Name: StageBind, Run: func(ctx context.Context, rc *RequestContext) error {
			binding, err := binder.Bind(ctx, rc.Tenant)
			if err != nil {
				return err
			}
			rc.Binding = binding
			return nil
		}},
		{Name: StageGate, Run: func(ctx context.Context, rc *RequestContext) error {
			sub, err := directory.CurrentSubscription(ctx, rc.Tenant.ID)
			switch {
			case errors.Is(err, ErrSubscriptionNotFound):
				sub = nil
			case err != nil:
				return StoreUnavailable(rc.Tenant.Code, err)
			}
			rc.Subscription = sub
			return gate.Check(rc.Tenant, sub, now())
		}},
		{Name: StageGuard, Run: func(ctx context.Context, rc *RequestContext) error {
			return guard.Check(ctx, rc.Principal, rc.Tenant, rc.Info)
		}},
	}}
}

// Stages lists stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run executes every stage against rc. On any failure, including a panic, the
// binding acquired so far is released before returning. On success the caller
// owns rc and must call rc.Release once the request is done.
func (p *Pipeline) Run(ctx context.Context, rc *RequestContext) error {
	completed := false
	defer func() {
		if !completed {
			rc.Release()
		}
	}()

	for _, s := range p.stages {
		if err := s.Run(ctx, rc); err != nil {
			return err
		}
	}
	completed = true
	return nil
}

// NewRequestContext starts a RequestContext for the pipeline.
func NewRequestContext(req *http.Request, principal *domain.Principal, info RequestInfo) *RequestContext {
	return &RequestContext{Request: req, Principal: principal, Info: info}
}
