// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. JSON config file named by the CONFIG environment variable
//  3. Built-in [Defaults]
//
// The application takes no command-line flags; [GetStructuredConfig] is the
// only entry point.
package config
