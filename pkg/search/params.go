package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Params encodes the filter plus a page number into the query parameters
// the transactions endpoint expects. The mapping is deterministic: the same
// filter and page always produce the same values.
//
// The API takes year restrictions as an enumerated list, not a range
// string, so a start/end pair expands to one value per year.
func (f Filter) Params(page int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("include_gov", "yes")
	params.Set("sort_by", "year_issued")
	params.Set("sort_order", "desc")
	params.Set("format", "json")

	if len(f.Locations) > 0 {
		params.Set("location", strings.Join(f.Locations, ","))
		params.Set("geo_id_type", "geonameid")
		params.Set("location_type", "area_served")
	}

	if !f.Years.IsZero() {
		params.Set("year", strings.Join(f.yearList(), ","))
	}

	if len(f.Subjects) > 0 {
		params.Set("subject", strings.Join(f.Subjects, ","))
	}

	if len(f.Populations) > 0 {
		params.Set("population", strings.Join(f.Populations, ","))
	}

	if len(f.SupportStrategies) > 0 {
		params.Set("support", strings.Join(f.SupportStrategies, ","))
	}

	if f.Dollars.Min != nil {
		params.Set("min_amt", strconv.Itoa(*f.Dollars.Min))
		if f.Dollars.Max != nil {
			params.Set("max_amt", strconv.Itoa(*f.Dollars.Max))
		}
	}

	return params
}

// yearList expands the year range into individual years. A missing bound
// collapses the range to the bound that is set.
func (f Filter) yearList() []string {
	var start, end int
	switch {
	case f.Years.Start != nil && f.Years.End != nil:
		start, end = *f.Years.Start, *f.Years.End
	case f.Years.Start != nil:
		start, end = *f.Years.Start, *f.Years.Start
	default:
		start, end = *f.Years.End, *f.Years.End
	}
	if end < start {
		end = start
	}

	years := make([]string, 0, end-start+1)
	for y := start; y <= end; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years
}
