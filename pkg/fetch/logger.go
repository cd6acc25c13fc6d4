package fetch

import "log"

// Logger is the minimal logging interface used by this package. Errors
// are logged once at the point of detection and then returned to the
// caller unchanged.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes through the standard library logger.
type DefaultLogger struct{}

func (l *DefaultLogger) Infof(format string, args ...any) {
	log.Printf("INFO "+format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	log.Printf("ERROR "+format, args...)
}
