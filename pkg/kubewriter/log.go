package kubewriter

import "github.com/common-fate/clio"

// Logger receives the non-fatal diagnostics of a build.
// *zap.SugaredLogger satisfies it. A nil Logger discards them.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// ClioLogger writes diagnostics through clio.
type ClioLogger struct{}

func (ClioLogger) Infof(format string, args ...any) { clio.Infof(format, args...) }
func (ClioLogger) Warnf(format string, args ...any) { clio.Warnf(format, args...) }

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}

func orNop(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
