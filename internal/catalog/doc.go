// Package catalog collects the built-in declaration modules and assembles the
// test harness process from them.
package catalog
