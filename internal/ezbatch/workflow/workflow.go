// Package workflow holds the workflow model and the graph engine that
// validates dependencies and computes a deterministic submission order.
package workflow

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agext/levenshtein"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/job"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

// ErrUnresolvableOrder means no job became eligible while some remained
// unplaced. Validate rules this out, so seeing it is a bug.
var ErrUnresolvableOrder = errors.New("internal error: submission order could not place every job")

// Workflow is a named set of jobs plus the dependencies between them.
// Dependencies maps a job to the jobs that must succeed before it starts.
type Workflow struct {
	Name         string              `json:"name" yaml:"name"`
	Jobs         *Jobs               `json:"jobs" yaml:"jobs"`
	Dependencies map[string][]string `json:"dependencies" yaml:"dependencies"`
}

func New(name string) *Workflow {
	return &Workflow{
		Name:         name,
		Jobs:         NewJobs(),
		Dependencies: make(map[string][]string),
	}
}

// AddJob declares a job and, optionally, what it depends on.
func (w *Workflow) AddJob(name string, spec job.Spec, dependsOn ...string) error {
	if w.Jobs == nil {
		w.Jobs = NewJobs()
	}
	if err := w.Jobs.Add(name, spec); err != nil {
		return err
	}
	if len(dependsOn) > 0 {
		if w.Dependencies == nil {
			w.Dependencies = make(map[string][]string)
		}
		w.Dependencies[name] = append(w.Dependencies[name], dependsOn...)
	}
	return nil
}

// DependenciesOf returns the declared dependencies of name with duplicates
// removed, in declaration order.
func (w *Workflow) DependenciesOf(name string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, dep := range w.Dependencies[name] {
		if !seen[dep] {
			seen[dep] = true
			out = append(out, dep)
		}
	}
	return out
}

// Validate checks that every name in the dependency map is a declared job
// and that the dependency relation is acyclic.
func Validate(w *Workflow) error {
	if w == nil {
		return fmt.Errorf("workflow is nil")
	}
	names := w.Jobs.Names()

	for _, key := range dependencyKeys(names, w.Dependencies) {
		if !w.Jobs.Has(key) {
			return &ezerrors.UnknownJobReferenceError{
				Reference:  key,
				Suggestion: suggest(key, names),
			}
		}
		for _, dep := range w.Dependencies[key] {
			if !w.Jobs.Has(dep) {
				return &ezerrors.UnknownJobReferenceError{
					Job:        key,
					Reference:  dep,
					Suggestion: suggest(dep, names),
				}
			}
		}
	}

	if cycle := findCycle(names, w.Dependencies); cycle != nil {
		return &ezerrors.CyclicDependencyError{Cycle: cycle}
	}
	return nil
}

// Validate is shorthand for Validate(w).
func (w *Workflow) Validate() error {
	return Validate(w)
}

// Order validates the workflow and returns its submission order.
func (w *Workflow) Order() ([]string, error) {
	if err := Validate(w); err != nil {
		return nil, err
	}
	return ComputeSubmissionOrder(w.Jobs.Names(), w.Dependencies)
}

// dependencyKeys lists dependency map keys with declared jobs first, in
// declaration order, then undeclared keys sorted so reports are stable.
func dependencyKeys(names []string, deps map[string][]string) []string {
	keys := make([]string, 0, len(deps))
	declared := make(map[string]bool, len(names))
	for _, name := range names {
		declared[name] = true
		if _, ok := deps[name]; ok {
			keys = append(keys, name)
		}
	}
	var extra []string
	for key := range deps {
		if !declared[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// suggest returns the declared name closest to ref, if any is close enough
// to be a likely typo.
func suggest(ref string, names []string) string {
	best, bestDist := "", -1
	for _, name := range names {
		d := levenshtein.Distance(ref, name, nil)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	if bestDist < 0 || bestDist > 3 || bestDist >= len(ref) {
		return ""
	}
	return best
}

const (
	white = iota
	grey
	black
)

// findCycle runs a coloured DFS in declaration order and returns the first
// cycle found, with its starting job repeated at the end.
func findCycle(names []string, deps map[string][]string) []string {
	color := make(map[string]int, len(names))
	var stack []string
	var cycle []string

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = grey
		stack = append(stack, node)
		for _, dep := range deps[node] {
			switch color[dep] {
			case grey:
				for i, n := range stack {
					if n == dep {
						cycle = append(append([]string{}, stack[i:]...), dep)
						return true
					}
				}
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[node] = black
		return false
	}

	for _, name := range names {
		if color[name] == white && visit(name) {
			return cycle
		}
	}
	return nil
}

// ComputeSubmissionOrder sorts names so every job comes after all of its
// dependencies. Among eligible jobs the one declared first wins, which makes
// the result deterministic for identical input.
func ComputeSubmissionOrder(names []string, deps map[string][]string) ([]string, error) {
	placed := make(map[string]bool, len(names))
	order := make([]string, 0, len(names))

	ready := func(name string) bool {
		for _, dep := range deps[name] {
			if !placed[dep] {
				return false
			}
		}
		return true
	}

	for len(order) < len(names) {
		progressed := false
		for _, name := range names {
			if placed[name] || !ready(name) {
				continue
			}
			placed[name] = true
			order = append(order, name)
			progressed = true
			break
		}
		if !progressed {
			var remaining []string
			for _, name := range names {
				if !placed[name] {
					remaining = append(remaining, name)
				}
			}
			return nil, fmt.Errorf("%w: unplaced %v", ErrUnresolvableOrder, remaining)
		}
	}
	return order, nil
}
