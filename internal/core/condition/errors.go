// Package condition defines domain-specific errors
package condition

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Node errors
	ErrInvalidNodeID      = errors.New("invalid node ID")
	ErrUnknownField       = errors.New("unknown condition field")
	ErrUnknownOperator    = errors.New("unknown condition operator")
	ErrOperatorNotAllowed = errors.New("operator not allowed for field category")
	ErrNodeNotFound       = errors.New("node not found")
	ErrDuplicateNodeID    = errors.New("duplicate node ID")

	// Edge errors
	ErrInvalidEdgeID      = errors.New("invalid edge ID")
	ErrInvalidSource      = errors.New("invalid source node")
	ErrInvalidTarget      = errors.New("invalid target node")
	ErrSourceNodeNotFound = errors.New("source node not found")
	ErrTargetNodeNotFound = errors.New("target node not found")
	ErrDuplicateEdgeID    = errors.New("duplicate edge ID")
)
