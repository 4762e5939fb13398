// Copyright © 2018 The ELPS authors

package lisp

// Profiler observes function calls made by a Machine.  Start is called when
// a function is invoked and End when its frame returns or is unwound by an
// error, so calls are always balanced.
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session and flush any output
	Complete() error
	// Marks the start of a function call
	Start(fn EnvItem)
	// Marks the end of a function call
	End(fn EnvItem)
}
