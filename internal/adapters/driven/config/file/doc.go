// Package file loads the landscape2 build configuration from a TOML file.
//
// Every value has a default, so a missing configuration file is not an
// error. Credentials are never read from the file: GitHub tokens and the
// Crunchbase API key come from the environment.
package file
