// Package config loads the launcher configuration.
//
// Every value the launcher needs (application directory, interpreter
// version, package manager, dependency set) has a built-in default, so
// running with no config file and no environment variables reproduces the
// fixed behavior of the original bootstrap script. Overrides are layered
// with viper: defaults, then an optional config file, then WEATHERDASH_*
// environment variables.
//
// Config files may be YAML, JSON, or JSONC. JSONC files are passed through
// github.com/tidwall/jsonc to strip comments and trailing commas before
// viper parses them as JSON.
package config
