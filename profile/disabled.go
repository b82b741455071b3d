//go:build !pprof

package profile

// Enabled reports whether profiling support is compiled in.
const Enabled = false

// Modes returns nothing without the pprof build tag.
func Modes() []string { return nil }

func start(Config) Stopper { return nop{} }
