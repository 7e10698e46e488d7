// Package pagination provides sequential page fetching for the Candid
// transactions endpoint.
//
// The Candid quota (9 requests per 60 seconds) rules out parallel fetching,
// so the pager requests one page at a time with a fixed inter-request delay
// and accumulates rows as it goes.
//
// Example usage:
//
//	pager := pagination.NewPager(candidClient, limiter, pagination.DefaultConfig())
//	rows, err := pager.FetchPages(ctx, 1, 10, filter)
//
// The pager:
//   - Waits on the throttle before every request (the first is free)
//   - Appends each page's rows to the accumulator
//   - Stops at the first failed page and returns what it has (partial data)
//
// A non-nil error from FetchPages always accompanies the rows fetched
// before the failure; there is no retry and no rollback.
package pagination
