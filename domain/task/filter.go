package task

import (
	"fmt"
)

// StatusFilter selects which task states a listing includes.
type StatusFilter string

const (
	// FilterAny retains tasks in every state.
	FilterAny StatusFilter = "any"
	// FilterPending retains only pending tasks.
	FilterPending StatusFilter = "pending"
	// FilterCompleted retains only completed tasks.
	FilterCompleted StatusFilter = "completed"
)

// ParseStatusFilter maps a query-string keyword to a StatusFilter.
// The empty string means no filter and parses as FilterAny.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch s {
	case "", "any", "all":
		return FilterAny, nil
	case "pending":
		return FilterPending, nil
	case "completed":
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid status filter %q", s)
	}
}

// ListFilter holds the optional narrowing applied to a task listing.
// Zero values mean "not applied": FilterAny keeps every state and an
// empty Search string performs no text matching at all.
type ListFilter struct {
	Status StatusFilter
	Search string
}
