// Package trace provides a build-tag-gated logger for following CPU and
// MBC activity during development. Under the "trace" build tag it writes
// to stderr; otherwise every call is a no-op, so release binaries pay
// nothing for it.
package trace

// Logger is the interface swapped by the trace/notrace build-tagged
// implementations.
type Logger interface {
	Printf(format string, a ...interface{})
	Println(a ...interface{})
}

var log Logger

func Printf(format string, a ...interface{}) {
	log.Printf(format, a...)
}

func Println(a ...interface{}) {
	log.Println(a...)
}
