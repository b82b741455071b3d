// Package pipeline turns a resolved [Config] into output.
//
// A run is strictly linear:
//
//	Select → Load → Aggregate → Write
//
// The stages:
//
//   - [Select] decides which raw text sources to read: the named input
//     files, the inline text, or standard input.
//   - [Load] reads and parses each source in order, stopping at the first
//     failure.
//   - [Aggregate] reduces the parsed documents to one root document,
//     wrapping two or more in a tuple.
//   - [Write] renders the root document to the output file or to standard
//     output.
//
// Every failure is returned as an *[Error] naming the operation and the
// path or stream involved. Nothing here exits the process; [Run] returns
// the first error to its caller.
package pipeline
