// Package factory provides a small generic registry used to build modules
// (charger variants, metrics sinks) from configuration by name.
package factory
