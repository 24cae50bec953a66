/*
Package parampath provides a structured representation for paths into a
nested parameter set, based on the canonical format `path`.

The format is a dot-separated sequence of segments, each segment being a
parameter key optionally followed by an index into an ordered sequence of
records, e.g. `DuplicateRemoval.WidthZ0` or `mvaConfigurations[1].mvaTag`.

This package enforces the path schema and centralizes all formatting and
parsing logic so that lookups and error messages agree on the same spelling.
*/
package parampath
