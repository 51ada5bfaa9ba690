// Package regen drives repository regeneration for a set of tags and
// decides the partial-failure semantics of a run.
package regen

import (
	"github.com/osg-htc/kojicron/internal/errors"
	"github.com/osg-htc/kojicron/internal/logger"
	"github.com/osg-htc/kojicron/internal/tags"
)

// Regenerator regenerates the repository for a single tag. The bool is
// the per-tag outcome; a non-nil error means the client could not be
// invoked at all and aborts the run regardless of policy.
type Regenerator interface {
	RegenRepo(tag string, wait bool) (bool, error)
}

// Options controls the regeneration policy for a run.
type Options struct {
	// Wait blocks on each regen completing instead of just queueing it.
	Wait bool

	// ContinueOnFailure keeps going after a failed tag instead of aborting.
	ContinueOnFailure bool
}

// Run drains the tag set in sorted order, regenerating each tag. Without
// ContinueOnFailure the first failure aborts the run, naming the failed
// tag and the tags never attempted. With it, failures are collected and
// the accumulated failed set is returned; the caller decides whether a
// non-empty set fails the run overall.
func Run(r Regenerator, log logger.Logger, working tags.Set, opts Options) (tags.Set, error) {
	failed := make(tags.Set)

	// Sorted drain keeps the order deterministic within a run while the
	// shrinking set tracks what is left for failure diagnostics.
	for _, tag := range working.Sorted() {
		working.Remove(tag)

		ok, err := r.RegenRepo(tag, opts.Wait)
		if err != nil {
			return failed, err
		}
		if !ok {
			if !opts.ContinueOnFailure {
				return failed, errors.RegenAborted(tag, working.Sorted())
			}
			log.Info("Continuing")
			failed.Add(tag)
		}
	}

	return failed, nil
}
