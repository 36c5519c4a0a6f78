package logger

import "sync"

// components caches one tagged logger per component name.
var components sync.Map

// Get returns the logger for a component, deriving it from the global
// logger on first use. Every line it writes carries component=name.
func Get(name string) *Logger {
	if l, ok := components.Load(name); ok {
		return l.(*Logger)
	}
	l, _ := components.LoadOrStore(name, global().WithComponent(name))
	return l.(*Logger)
}

// resetComponents drops cached component loggers so they pick up the
// configuration of a later Init.
func resetComponents() {
	components.Clear()
}
