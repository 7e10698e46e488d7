package search

import (
	"errors"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func TestFilter_Validate(t *testing.T) {
	tests := []struct {
		name        string
		filter      Filter
		expectError bool
		field       string
	}{
		{
			name:        "empty filter",
			filter:      Filter{},
			expectError: false,
		},
		{
			name: "valid year range",
			filter: Filter{
				Years: YearRange{Start: intPtr(2020), End: intPtr(2022)},
			},
			expectError: false,
		},
		{
			name: "start year only",
			filter: Filter{
				Years: YearRange{Start: intPtr(2020)},
			},
			expectError: false,
		},
		{
			name: "end year without start year",
			filter: Filter{
				Years: YearRange{End: intPtr(2022)},
			},
			expectError: true,
			field:       "year_range",
		},
		{
			name: "end year before start year",
			filter: Filter{
				Years: YearRange{Start: intPtr(2022), End: intPtr(2020)},
			},
			expectError: true,
			field:       "year_range",
		},
		{
			name: "start year out of bounds",
			filter: Filter{
				Years: YearRange{Start: intPtr(1850)},
			},
			expectError: true,
			field:       "year_range",
		},
		{
			name: "end year out of bounds",
			filter: Filter{
				Years: YearRange{Start: intPtr(2020), End: intPtr(2150)},
			},
			expectError: true,
			field:       "year_range",
		},
		{
			name: "valid dollar range",
			filter: Filter{
				Dollars: DollarRange{Min: intPtr(25000), Max: intPtr(10000000)},
			},
			expectError: false,
		},
		{
			name: "max amount without min amount",
			filter: Filter{
				Dollars: DollarRange{Max: intPtr(100)},
			},
			expectError: true,
			field:       "dollar_range",
		},
		{
			name: "max amount below min amount",
			filter: Filter{
				Dollars: DollarRange{Min: intPtr(50000), Max: intPtr(100)},
			},
			expectError: true,
			field:       "dollar_range",
		},
		{
			name: "negative min amount",
			filter: Filter{
				Dollars: DollarRange{Min: intPtr(-1)},
			},
			expectError: true,
			field:       "dollar_range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()

			if !tt.expectError {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected error but got nil")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Error type = %T, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "year_range", Reason: "end year before start year"}
	want := "invalid year_range: end year before start year"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
