package search

import (
	"reflect"
	"testing"
)

func TestParams_FixedValues(t *testing.T) {
	params := Filter{}.Params(3)

	fixed := map[string]string{
		"page":        "3",
		"include_gov": "yes",
		"sort_by":     "year_issued",
		"sort_order":  "desc",
		"format":      "json",
	}

	for key, want := range fixed {
		if got := params.Get(key); got != want {
			t.Errorf("params[%q] = %q, want %q", key, got, want)
		}
	}

	if len(params) != len(fixed) {
		t.Errorf("Empty filter produced %d params, want %d", len(params), len(fixed))
	}
}

func TestParams_YearExpansion(t *testing.T) {
	tests := []struct {
		name  string
		years YearRange
		want  string
	}{
		{
			name:  "multi-year range",
			years: YearRange{Start: intPtr(2020), End: intPtr(2022)},
			want:  "2020,2021,2022",
		},
		{
			name:  "single year range",
			years: YearRange{Start: intPtr(2021), End: intPtr(2021)},
			want:  "2021",
		},
		{
			name:  "start year only",
			years: YearRange{Start: intPtr(2019)},
			want:  "2019",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Filter{Years: tt.years}.Params(1)
			if got := params.Get("year"); got != tt.want {
				t.Errorf("year = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParams_NoYearRange(t *testing.T) {
	params := Filter{}.Params(1)
	if params.Has("year") {
		t.Errorf("year param present for empty year range: %q", params.Get("year"))
	}
}

func TestParams_Locations(t *testing.T) {
	filter := Filter{Locations: []string{"4671654", "4736286"}}
	params := filter.Params(1)

	if got := params.Get("location"); got != "4671654,4736286" {
		t.Errorf("location = %q, want %q", got, "4671654,4736286")
	}
	if got := params.Get("geo_id_type"); got != "geonameid" {
		t.Errorf("geo_id_type = %q, want %q", got, "geonameid")
	}
	if got := params.Get("location_type"); got != "area_served" {
		t.Errorf("location_type = %q, want %q", got, "area_served")
	}
}

func TestParams_NoLocations(t *testing.T) {
	params := Filter{}.Params(1)

	for _, key := range []string{"location", "geo_id_type", "location_type"} {
		if params.Has(key) {
			t.Errorf("%s param present for empty locations", key)
		}
	}
}

func TestParams_TaxonomyCodes(t *testing.T) {
	filter := Filter{
		Subjects:          []string{"SJ02", "SJ05"},
		Populations:       []string{"PA010000", "PC040000"},
		SupportStrategies: []string{"UA", "UB"},
	}
	params := filter.Params(1)

	if got := params.Get("subject"); got != "SJ02,SJ05" {
		t.Errorf("subject = %q, want %q", got, "SJ02,SJ05")
	}
	if got := params.Get("population"); got != "PA010000,PC040000" {
		t.Errorf("population = %q, want %q", got, "PA010000,PC040000")
	}
	if got := params.Get("support"); got != "UA,UB" {
		t.Errorf("support = %q, want %q", got, "UA,UB")
	}
}

func TestParams_DollarRange(t *testing.T) {
	tests := []struct {
		name    string
		dollars DollarRange
		wantMin string
		wantMax string
	}{
		{
			name:    "min only",
			dollars: DollarRange{Min: intPtr(25000)},
			wantMin: "25000",
			wantMax: "",
		},
		{
			name:    "min and max",
			dollars: DollarRange{Min: intPtr(25000), Max: intPtr(10000000)},
			wantMin: "25000",
			wantMax: "10000000",
		},
		{
			// min gates max: an unvalidated max without min encodes neither key
			name:    "max only",
			dollars: DollarRange{Max: intPtr(100)},
			wantMin: "",
			wantMax: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Filter{Dollars: tt.dollars}.Params(1)

			if got := params.Get("min_amt"); got != tt.wantMin {
				t.Errorf("min_amt = %q, want %q", got, tt.wantMin)
			}
			if got := params.Get("max_amt"); got != tt.wantMax {
				t.Errorf("max_amt = %q, want %q", got, tt.wantMax)
			}
		})
	}
}

func TestParams_Deterministic(t *testing.T) {
	filter := Filter{
		Years:             YearRange{Start: intPtr(2020), End: intPtr(2022)},
		Dollars:           DollarRange{Min: intPtr(25000), Max: intPtr(10000000)},
		Subjects:          []string{"SJ02"},
		Populations:       []string{"PA010000"},
		Locations:         []string{"4671654"},
		SupportStrategies: []string{"UA"},
	}

	first := filter.Params(2)
	second := filter.Params(2)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Params() not deterministic:\nfirst:  %v\nsecond: %v", first, second)
	}
}
