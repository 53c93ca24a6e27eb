/*package diag collects non-fatal diagnostics raised while annotations are
parsed and tables are built. Loading never writes to a process-wide logger:
callers hand a *Sink to the loaders and decide afterwards what to do with the
collected warnings. A Sink may optionally forward to a zap logger so
interactive tools see warnings as they happen.
*/
package diag

import (
	"fmt"

	"go.uber.org/zap"
)

// Warning is one non-fatal condition hit during loading. Scope names the
// component that raised it (e.g. `info "wino.info"`).
type Warning struct {
	Scope   string
	Message string
}

func (w Warning) String() string {
	return w.Scope + ": " + w.Message
}

// Sink accumulates warnings. The zero value is ready to use. A nil *Sink is
// valid everywhere and discards everything.
type Sink struct {
	logger   *zap.Logger
	warnings []Warning
}

// New returns an empty collecting sink.
func New() *Sink {
	return &Sink{}
}

// NewLogged returns a sink that collects warnings and also forwards them to
// logger as they arrive.
func NewLogged(logger *zap.Logger) *Sink {
	return &Sink{logger: logger}
}

// Warnf records a warning under the given scope.
func (s *Sink) Warnf(scope, format string, args ...interface{}) {
	if s == nil {
		return
	}
	w := Warning{Scope: scope, Message: fmt.Sprintf(format, args...)}
	s.warnings = append(s.warnings, w)
	if s.logger != nil {
		s.logger.Warn(w.Message, zap.String("scope", w.Scope))
	}
}

// Warnings returns the warnings collected so far, oldest first.
func (s *Sink) Warnings() []Warning {
	if s == nil {
		return nil
	}
	return s.warnings
}
