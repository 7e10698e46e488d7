// Package search defines the typed search filter for the Candid
// grants-transactions API and the query parameter encoding it expects.
package search

import (
	"fmt"
)

// Year bounds accepted for filter validation.
const (
	MinYear = 1900
	MaxYear = 2100
)

// YearRange restricts results to grants issued between Start and End
// inclusive. A nil field means unbounded on that side, except that End
// requires Start to be set.
type YearRange struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

// IsZero reports whether no year restriction is set.
func (r YearRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// DollarRange restricts results to grants between Min and Max dollars.
// Max requires Min to be set.
type DollarRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// IsZero reports whether no amount restriction is set.
func (r DollarRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Filter holds one set of search parameters for the transactions endpoint.
// Subject, population and support strategy values are opaque taxonomy codes
// owned by the API; locations are geonameids. Order of the list fields is
// preserved in the encoded query.
type Filter struct {
	Years             YearRange   `json:"year_range"`
	Dollars           DollarRange `json:"dollar_range"`
	Subjects          []string    `json:"subjects"`
	Populations       []string    `json:"populations"`
	Locations         []string    `json:"locations"`
	SupportStrategies []string    `json:"support_strategies"`
}

// ValidationError describes a filter field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the range invariants. It returns a *ValidationError for
// the first violation found, nil otherwise.
func (f Filter) Validate() error {
	if f.Years.End != nil && f.Years.Start == nil {
		return &ValidationError{Field: "year_range", Reason: "end year requires a start year"}
	}
	if f.Years.Start != nil {
		if *f.Years.Start < MinYear || *f.Years.Start > MaxYear {
			return &ValidationError{
				Field:  "year_range",
				Reason: fmt.Sprintf("start year %d outside %d-%d", *f.Years.Start, MinYear, MaxYear),
			}
		}
	}
	if f.Years.End != nil {
		if *f.Years.End < MinYear || *f.Years.End > MaxYear {
			return &ValidationError{
				Field:  "year_range",
				Reason: fmt.Sprintf("end year %d outside %d-%d", *f.Years.End, MinYear, MaxYear),
			}
		}
		if *f.Years.End < *f.Years.Start {
			return &ValidationError{Field: "year_range", Reason: "end year before start year"}
		}
	}

	if f.Dollars.Max != nil && f.Dollars.Min == nil {
		return &ValidationError{Field: "dollar_range", Reason: "maximum amount requires a minimum amount"}
	}
	if f.Dollars.Min != nil && *f.Dollars.Min < 0 {
		return &ValidationError{Field: "dollar_range", Reason: "minimum amount must not be negative"}
	}
	if f.Dollars.Max != nil && *f.Dollars.Max < *f.Dollars.Min {
		return &ValidationError{Field: "dollar_range", Reason: "maximum amount below minimum amount"}
	}

	return nil
}
