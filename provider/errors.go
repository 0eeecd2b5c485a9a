package provider

import "fmt"

// CapabilityError reports that a Provider does not implement the
// requested operation. Op names the Provider method: a concrete
// provider is free to implement any subset of the interface, and every
// method it leaves unimplemented must report this typed error rather
// than panic or silently return an empty Grid.
type CapabilityError struct {
	Op string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("provider: %s not implemented", e.Op)
}
