package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// CalculationID identifies a single calculator invocation. Every
// result and history row carries one.
type CalculationID ID

func (id CalculationID) String() string { return ID(id).String() }

// NewCalculationID creates a fresh calculation identifier.
func NewCalculationID() CalculationID {
	return CalculationID(NewID())
}

// ParseCalculationID parses a string into a CalculationID.
func ParseCalculationID(s string) (CalculationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("calculation ID cannot be empty")
	}
	return CalculationID(s), nil
}
