// Package config loads the rate exploration setup: the bracket schema,
// the preset catalog, the population dataset, and runtime settings.
//
// Schedule configuration is written in CUE and loaded from a directory of
// .cue files; every section is optional and falls back to the built-in
// Illinois defaults. Runtime settings (database paths, timeouts) come
// from environment variables.
package config
