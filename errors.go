package cacheproxy

import "fmt"

// UnsupportedOpError reports an Invoke operation the resolved value does not
// support. Kind names the capability class of the resolved value: "record",
// "sequence" or "scalar".
type UnsupportedOpError struct {
	Op   string
	Kind string
}

func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("cacheproxy: op %q not supported on %s value", e.Op, e.Kind)
}

// ReadOnlyKeyError reports a write to an attribute-style boolean key (one
// ending in the query marker). Those accessors are read-only by convention.
type ReadOnlyKeyError struct {
	Key string
}

func (e *ReadOnlyKeyError) Error() string {
	return fmt.Sprintf("cacheproxy: key %q is a boolean query accessor and is read-only", e.Key)
}
