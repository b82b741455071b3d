// Package cli resolves the command line of aq into a [pipeline.Config]
// and runs it.
//
// # Usage
//
//	aq [OPTIONS] [QUERY_EXPRESSION] [INPUT_FILES...]
//
// Input comes from the named files, from --text, or from standard input,
// in that order of preference. The result goes to --output or standard
// output.
//
// # Configuration
//
// Flag defaults may be set in $XDG_CONFIG_HOME/aq/config.ason, an ASON
// object keyed by flag name:
//
//	{
//	  log_level: "debug"
//	  format: "json"
//	  indent: 2
//	}
//
// A config.json in the same directory is read as well. Environment
// variables named AQ_<FLAG> (for example AQ_LOG_LEVEL) also set flags.
// Values on the command line take precedence over all of these.
//
// # Errors
//
// [Run] returns errors instead of exiting. [Report] writes the two-line
// diagnostic for an error and returns the exit status.
package cli
