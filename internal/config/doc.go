// Package config defines the format-agnostic configuration model, along with
// the Loader interface for reading it from a concrete source.
//
// A config.Model is what the builder package turns into a registry and a
// process. The HCL implementation of Loader lives in internal/hcl.
package config
