// Package orchestrators implements the per-entity validate → resolve →
// enrich → merge → section-gate pipeline (spec §4.6). Each orchestrator
// fans enrichment out over golang.org/x/sync/errgroup, one goroutine per
// requested section, each bounded by its own timeout; a section that
// fails or times out degrades to an empty result plus a structured
// Warning rather than failing the whole request (spec §4.6 "failure/
// timeout degrades to empty + structured warning").
package orchestrators

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// sectionTimeout bounds each enrichment goroutine (spec §4.6 "each wrapped
// context.WithTimeout(ctx, 8*time.Second)").
const sectionTimeout = 8 * time.Second

// Warning is a structured, non-fatal degradation note attached to an
// orchestrator result when a section's enrichment failed or timed out.
type Warning struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// resultCollector accumulates Warnings from concurrent section goroutines
// under a mutex, since errgroup only barriers on completion, not on shared
// state access.
type resultCollector struct {
	mu       sync.Mutex
	warnings []Warning
}

func (r *resultCollector) warn(section, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{Section: section, Message: message})
}

func (r *resultCollector) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

// runSection runs fn under sectionTimeout, logging and recording a Warning
// on failure instead of propagating the error — the section's corresponding
// entity field is simply left empty.
func runSection(ctx context.Context, rc *resultCollector, logger *logrus.Logger, section string, fn func(ctx context.Context) error) func() error {
	return func() error {
		sctx, cancel := context.WithTimeout(ctx, sectionTimeout)
		defer cancel()
		if err := fn(sctx); err != nil {
			if logger != nil {
				logger.WithFields(logrus.Fields{"section": section}).WithError(err).Warn("section enrichment degraded")
			}
			rc.warn(section, err.Error())
		}
		return nil
	}
}
