/*
Package builder turns a format-agnostic config.Model into declarations and a
process.

The construction is a multi-phase process:

 1. Declaration: every module of the model is declared in the registry under
    its label. Unknown component identifiers and duplicate labels are
    collected and reported together.

 2. Path assembly: when the model defines a process, its paths are added in
    model order. A path may only name declared labels.

 3. Schedule and settings: the schedule is fixed (all paths in model order
    when none is given), then the source, services, event limit and options
    are applied.

Nothing is executed. The resulting *process.Process is a description for the
host framework.
*/
package builder
