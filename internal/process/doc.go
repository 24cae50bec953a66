// Package process assembles declared components into paths and paths into a
// schedule, together with the source, services and options of a process.
//
// Assembly is pure data: the resulting Process describes what the host
// framework should run and in which order. Dependencies and CheckOrdering
// inspect that description; nothing here executes a component.
package process
