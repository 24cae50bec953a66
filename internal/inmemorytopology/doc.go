// Package inmemorytopology provides a thread-safe, in-memory implementation
// of the topologystore.Store interface. Process topologies are small enough
// to keep entirely in memory.
package inmemorytopology
