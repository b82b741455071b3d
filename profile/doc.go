// Package profile starts and stops runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the build tag named by [Tag]:
//
//	go build -tags pprof .
//
// Without it, [Modes] is empty and [Config.Start] never profiles.
package profile
