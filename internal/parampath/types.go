package parampath

// Segment represents a single component of a parameter path, e.g., `name[index]`.
type Segment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewSegment creates a new path segment without an index.
func NewSegment(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// NewSegmentWithIndex creates a new path segment that includes an index.
func NewSegmentWithIndex(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// HasIndex returns true if the path segment has an explicit index.
func (s Segment) HasIndex() bool {
	return s.Index != -1
}

// Address is the structured representation of a path into a parameter set.
type Address struct {
	Path []Segment
}

// Append returns a new Address with the segment appended. The receiver is
// left untouched.
func (a *Address) Append(seg Segment) *Address {
	out := &Address{Path: make([]Segment, 0, len(a.Path)+1)}
	out.Path = append(out.Path, a.Path...)
	out.Path = append(out.Path, seg)
	return out
}
