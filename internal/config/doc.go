// Package config provides findstorm's layered configuration.
//
// Values come from three layers, lowest priority first:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file
//  3. FINDSTORM_* environment variables
//
// The merged map is decoded into a typed Config and validated. A Manager
// owns the current Config, reloads it when the file changes and notifies
// registered handlers with the old and new values. A reload that fails to
// parse or validate keeps the previous Config.
package config
