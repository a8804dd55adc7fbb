// Package prune removes cached source trees no keep-rule protects. Rules
// accumulate reasons per entry; an entry with no reason is removed without
// further confirmation. Dry-run computes the same removal set but deletes
// nothing.
package prune

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	version "github.com/hashicorp/go-version"

	"github.com/srcstash/srcstash/internal/logger"
	"github.com/srcstash/srcstash/pkg/model"
	"github.com/srcstash/srcstash/pkg/project"
	"github.com/srcstash/srcstash/pkg/store"
)

// Keep reasons, in rule evaluation order.
const (
	ReasonLatest            = "latest"
	ReasonProjectDependency = "project dependency"
	ReasonExplicit          = "explicitly kept"
)

// Options is the keep-rule input surface.
type Options struct {
	// KeepLatest keeps the newest N versions of every package. 0 disables
	// the rule.
	KeepLatest int
	// KeepProjectDeps keeps the target version of every declared project
	// dependency.
	KeepProjectDeps bool
	// Keep lists literal "name@version" references to retain.
	Keep []string
	// DryRun reports the removal set without deleting anything.
	DryRun bool
}

// DefaultOptions returns the default rule configuration.
func DefaultOptions() Options {
	return Options{KeepLatest: 1, KeepProjectDeps: true}
}

// Result reports one prune run.
type Result struct {
	// Removed lists the entries deleted (or, under dry-run, that would be).
	Removed []store.Entry
	// Kept maps each retained "name@version" to its accumulated reasons.
	Kept map[string][]string
	// Warnings carries non-fatal problems: malformed keep references and
	// dependencies whose target version could not be resolved.
	Warnings []string
	// DryRun echoes the option the run was made with.
	DryRun bool
}

// Engine evaluates keep-rules over the store.
type Engine struct {
	store   *store.Manager
	project project.Info
}

// NewEngine creates a prune engine. project may be nil when no project
// context is available; the project-dependency rule then contributes nothing.
func NewEngine(st *store.Manager, proj project.Info) *Engine {
	return &Engine{store: st, project: proj}
}

// Run evaluates all rules and removes every unprotected entry.
func (e *Engine) Run(ctx context.Context, opts Options) (*Result, error) {
	entries, err := e.store.List()
	if err != nil {
		return nil, err
	}

	result := &Result{Kept: make(map[string][]string), DryRun: opts.DryRun}

	reasons := make(map[string][]string, len(entries))
	e.applyKeepLatest(entries, opts.KeepLatest, reasons)
	if opts.KeepProjectDeps {
		e.applyProjectDependencies(ctx, entries, reasons, result)
	}
	e.applyExplicitKeeps(entries, opts.Keep, reasons, result)

	var removeErrs *multierror.Error
	for _, entry := range entries {
		key := entry.Ref.String()
		if kept := reasons[key]; len(kept) > 0 {
			result.Kept[key] = kept
			continue
		}
		result.Removed = append(result.Removed, entry)
		if opts.DryRun {
			continue
		}
		if err := e.store.Remove(entry.Ref); err != nil {
			removeErrs = multierror.Append(removeErrs, err)
		}
	}

	sort.Slice(result.Removed, func(i, j int) bool {
		return result.Removed[i].Ref.String() < result.Removed[j].Ref.String()
	})
	return result, removeErrs.ErrorOrNil()
}

// applyKeepLatest protects the newest n versions of every package.
func (e *Engine) applyKeepLatest(entries []store.Entry, n int, reasons map[string][]string) {
	if n <= 0 {
		return
	}
	groups := make(map[string][]store.Entry)
	for _, entry := range entries {
		groups[entry.Ref.Name] = append(groups[entry.Ref.Name], entry)
	}
	for _, group := range groups {
		sortVersionsDescending(group)
		for i := 0; i < n && i < len(group); i++ {
			addReason(reasons, group[i].Ref, ReasonLatest)
		}
	}
}

// applyProjectDependencies protects the target version of every declared
// dependency: the installed version when resolvable, else a concrete version
// normalized out of the declared range. Per-dependency failures are warnings;
// they never stop the run.
func (e *Engine) applyProjectDependencies(ctx context.Context, entries []store.Entry, reasons map[string][]string, result *Result) {
	if e.project == nil {
		return
	}
	deps, err := e.project.Dependencies(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not read project dependencies: %v", err))
		return
	}

	present := make(map[string]model.Ref, len(entries))
	for _, entry := range entries {
		present[entry.Ref.String()] = entry.Ref
	}

	seen := make(map[string]bool, len(deps))
	for _, dep := range deps {
		if seen[dep.Name] {
			continue
		}
		seen[dep.Name] = true

		target, ok := e.targetVersion(ctx, dep)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("could not resolve a target version for %s (%q)", dep.Name, dep.Specifier))
			continue
		}
		ref := model.Ref{Name: dep.Name, Version: target}
		if _, cached := present[ref.String()]; cached {
			addReason(reasons, ref, ReasonProjectDependency)
		}
	}
}

// targetVersion resolves one dependency's concrete version.
func (e *Engine) targetVersion(ctx context.Context, dep model.DeclaredDependency) (string, bool) {
	installed, err := e.project.InstalledVersion(ctx, dep.Name)
	if err == nil && installed != "" {
		return installed, true
	}
	logger.Debugf("no installed version for %s, normalizing %q", dep.Name, dep.Specifier)
	return model.NormalizeVersionSpec(dep.Specifier)
}

// applyExplicitKeeps protects literal "name@version" references. Malformed
// references warn and are skipped.
func (e *Engine) applyExplicitKeeps(entries []store.Entry, keep []string, reasons map[string][]string, result *Result) {
	present := make(map[string]model.Ref, len(entries))
	for _, entry := range entries {
		present[entry.Ref.String()] = entry.Ref
	}
	for _, raw := range keep {
		ref, err := model.ParseRef(raw)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("ignoring malformed keep reference %q", raw))
			continue
		}
		if _, cached := present[ref.String()]; cached {
			addReason(reasons, ref, ReasonExplicit)
		}
	}
}

func addReason(reasons map[string][]string, ref model.Ref, reason string) {
	key := ref.String()
	for _, existing := range reasons[key] {
		if existing == reason {
			return
		}
	}
	reasons[key] = append(reasons[key], reason)
}

// sortVersionsDescending orders one package's entries newest first with
// numeric-aware comparison. Versions go-version cannot parse sort below every
// parsable version, lexically among themselves; listing never fails on them.
func sortVersionsDescending(group []store.Entry) {
	sort.SliceStable(group, func(i, j int) bool {
		vi, erri := version.NewVersion(group[i].Ref.Version)
		vj, errj := version.NewVersion(group[j].Ref.Version)
		switch {
		case erri == nil && errj == nil:
			return vi.GreaterThan(vj)
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return group[i].Ref.Version > group[j].Ref.Version
		}
	})
}
