package graph

import "log"

// Reporter receives diagnostic messages produced during graph construction:
// schema violations, component attachment rejections, and clone
// precondition failures. The graph core never aborts on malformed input; it
// reports the condition here and keeps going.
type Reporter interface {
	Report(msg string)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(msg string)

// Report calls f(msg).
func (f ReporterFunc) Report(msg string) {
	f(msg)
}

// logReporter writes diagnostics through the standard library logger.
type logReporter struct{}

func (logReporter) Report(msg string) {
	log.Printf("graph: %s", msg)
}
