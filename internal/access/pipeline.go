// Package access resolves the resources named in a request path and decides
// whether the caller may act on them.
//
// A request runs one Pipeline: an ordered list of stages that each either
// enrich the Scope or reject the request. Pipelines are built with the route
// builders in routes.go, which only allow project → task → note ordering and
// always end in exactly one gate.
package access

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/uptask/internal/domain"
)

// Scope is everything resolved so far for one request.
type Scope struct {
	Identity domain.Identity
	Project  *domain.Project
	Task     *domain.Task
	Note     *domain.Note
}

// Params looks up path parameters by name. *gin.Context satisfies it.
type Params interface {
	Param(name string) string
}

// Result is the outcome of one stage: a Scope to continue with, or an error.
type Result struct {
	scope Scope
	err   error
}

func Continue(s Scope) Result { return Result{scope: s} }

func Reject(err error) Result { return Result{err: err} }

func (r Result) Rejected() bool { return r.err != nil }

type Stage struct {
	Name string
	Run  func(ctx context.Context, p Params, s Scope) Result
}

// Rejection reports which stage stopped a pipeline. It unwraps to the stage's error.
type Rejection struct {
	Stage string
	Err   error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %v", r.Stage, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

// Pipeline is a finished, gated stage list. The zero value runs nothing.
type Pipeline struct {
	stages []Stage
}

// Run executes the stages in order starting from identity and stops at the first rejection.
func (p Pipeline) Run(ctx context.Context, params Params, identity domain.Identity) (Scope, error) {
	scope := Scope{Identity: identity}
	for _, st := range p.stages {
		res := st.Run(ctx, params, scope)
		if res.Rejected() {
			return Scope{}, &Rejection{Stage: st.Name, Err: res.err}
		}
		scope = res.scope
	}
	return scope, nil
}

// Stages lists the stage names in execution order.
func (p Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.Name
	}
	return names
}
