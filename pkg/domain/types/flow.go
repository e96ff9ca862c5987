package types

import "fmt"

// FlowKind identifies a multi-field data-collection flow
type FlowKind string

const (
	// FlowQuote is the sales quote request flow
	FlowQuote FlowKind = "quote"
	// FlowAfterSales is the after-sales service request flow
	FlowAfterSales FlowKind = "aftersales"
)

// AllFlowKinds returns all valid flow kinds
func AllFlowKinds() []FlowKind {
	return []FlowKind{FlowQuote, FlowAfterSales}
}

// IsValid checks if the flow kind is valid
func (k FlowKind) IsValid() bool {
	switch k {
	case FlowQuote, FlowAfterSales:
		return true
	default:
		return false
	}
}

// String returns the string representation of the flow kind
func (k FlowKind) String() string {
	return string(k)
}

// ParseFlowKind parses a string into a FlowKind
func ParseFlowKind(s string) (FlowKind, error) {
	kind := FlowKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid flow kind: %s", s)
	}
	return kind, nil
}
