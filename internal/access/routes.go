package access

import (
	"context"
	"errors"
	"slices"
)

// errUnrooted is returned by a pipeline whose stages do not start at the project.
var errUnrooted = errors.New("access: route does not resolve a project first")

// Resolvers holds the finders every route builder draws from.
type Resolvers struct {
	Projects ProjectFinder
	Tasks    TaskFinder
	Notes    NoteFinder
}

// Project starts a route that resolves the project named by param. It is the
// only way to obtain a route, so task and note stages always follow a project.
func (r Resolvers) Project(param string) projectRoute {
	return projectRoute{r: r, stages: []Stage{projectStage(r.Projects, param)}}
}

// projectRoute has resolved a project and nothing below it.
type projectRoute struct {
	r      Resolvers
	stages []Stage
}

// Task resolves the task named by param and checks it belongs to the project.
func (pr projectRoute) Task(param string) taskRoute {
	return taskRoute{r: pr.r, stages: extend(pr.stages, taskStage(pr.r.Tasks, param), taskInProject)}
}

func (pr projectRoute) Manager() Pipeline { return finish(pr.stages, managerGate) }
func (pr projectRoute) Member() Pipeline { return finish(pr.stages, memberGate) }

// taskRoute has resolved a project and one of its tasks.
type taskRoute struct {
	r      Resolvers
	stages []Stage
}

// Note resolves the note named by param and checks it belongs to the task.
func (tr taskRoute) Note(param string) noteRoute {
	return noteRoute{stages: extend(tr.stages, noteStage(tr.r.Notes, param), noteInTask)}
}

func (tr taskRoute) Manager() Pipeline { return finish(tr.stages, managerGate) }
func (tr taskRoute) Member() Pipeline { return finish(tr.stages, memberGate) }

// noteRoute has resolved a project, one of its tasks and one of that task's notes.
type noteRoute struct {
	stages []Stage
}

// NoteAuthor lets through the note's author and the project manager.
func (nr noteRoute) NoteAuthor() Pipeline { return finish(nr.stages, noteAuthorGate) }

// extend copies base so sibling routes built from one prefix never share a backing array.
func extend(base []Stage, more ...Stage) []Stage {
	return append(slices.Clone(base), more...)
}

// finish appends the gate. A zero-value route has no project stage, and its
// pipeline rejects every request instead of dereferencing a missing parent.
func finish(stages []Stage, gate Stage) Pipeline {
	if len(stages) == 0 || stages[0].Name != projectStageName {
		return Pipeline{stages: []Stage{{
			Name: "route",
			Run:  func(_ context.Context, _ Params, _ Scope) Result { return Reject(errUnrooted) },
		}}}
	}
	return Pipeline{stages: extend(stages, gate)}
}
