// Package shell implements the interactive menu loop of the grants
// fetcher: parameter entry, fetch orchestration, and saved-search
// management. All input and output runs through injected reader/writer
// handles so the loop is testable.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/candid-tools/grants-fetcher/pkg/logging"
	"github.com/candid-tools/grants-fetcher/pkg/pagination"
	"github.com/candid-tools/grants-fetcher/pkg/search"
	"github.com/candid-tools/grants-fetcher/pkg/searchstore"
)

// defaultPageCount is offered when the user is asked how many pages to fetch.
const defaultPageCount = 10

// Pager drives a multi-page fetch. *pagination.Pager implements it.
type Pager interface {
	FetchPages(ctx context.Context, startPage, numPages int, filter search.Filter) ([]json.RawMessage, error)
}

// ResultWriter persists accumulated rows. *results.Writer implements it.
type ResultWriter interface {
	Write(grants []json.RawMessage, prefix string, pageStart, pageEnd int) (string, error)
}

// Options wires the shell's collaborators.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Probe  pagination.PageFetcher
	Pager  Pager
	Writer ResultWriter
	Store  *searchstore.Store

	// AnimationDelay is the per-rune delay of animated banner text.
	// Zero disables the animation effect (tests).
	AnimationDelay time.Duration

	// ClearScreen enables ANSI screen clearing between menu actions.
	ClearScreen bool
}

// Shell holds the interactive session state: the current filter and the
// output prefix it will be written under.
type Shell struct {
	in     *bufio.Scanner
	out    io.Writer
	probe  pagination.PageFetcher
	pager  Pager
	writer ResultWriter
	store  *searchstore.Store
	opts   Options
	logger zerolog.Logger

	filter search.Filter
	prefix string
}

// New creates a shell from its collaborators.
func New(opts Options) *Shell {
	return &Shell{
		in:     bufio.NewScanner(opts.In),
		out:    opts.Out,
		probe:  opts.Probe,
		pager:  opts.Pager,
		writer: opts.Writer,
		store:  opts.Store,
		opts:   opts,
		logger: logging.NewLogger("shell"),
	}
}

var menuOptions = []string{
	"Enter Search Parameters",
	"Display Current Search Parameters",
	"Fetch Grants Data",
	"Save Search Configuration",
	"Load Search Configuration",
	"Exit",
}

// Run executes the menu loop until the user exits or input is exhausted.
// Errors from individual menu actions are reported and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	s.clear()
	s.animate("Welcome to the Candid API Grants Data Fetcher!")
	s.animate("This tool will guide you through the process of fetching grants data from the Candid API.")
	s.animate("Press Enter to skip any field and keep its current value.")

	for {
		choice, err := s.menu()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var actionErr error
		switch choice {
		case 1:
			actionErr = s.enterParameters()
		case 2:
			actionErr = s.displayParameters()
		case 3:
			actionErr = s.fetch(ctx)
		case 4:
			actionErr = s.saveConfig()
		case 5:
			actionErr = s.loadConfig()
		case 6:
			s.clear()
			fmt.Fprintln(s.out, "Thank you for using the Candid API Grants Data Fetcher!")
			return nil
		}

		if actionErr != nil {
			if errors.Is(actionErr, io.EOF) {
				return nil
			}
			s.logger.Error().Err(actionErr).Msg("Menu action failed")
			fmt.Fprintf(s.out, "An error occurred: %v\n", actionErr)
		}
	}
}

// menu displays the main menu and reads a valid selection.
func (s *Shell) menu() (int, error) {
	fmt.Fprintln(s.out, "\nMain Menu")
	for i, option := range menuOptions {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, option)
	}

	for {
		line, err := s.prompt("Please select an option")
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(line)
		if err != nil || choice < 1 || choice > len(menuOptions) {
			fmt.Fprintf(s.out, "Please enter a number between 1 and %d\n", len(menuOptions))
			continue
		}
		return choice, nil
	}
}

// enterParameters collects a full filter, re-prompting on invalid values.
func (s *Shell) enterParameters() error {
	s.clear()

	startYear, err := s.promptOptionalInt("Enter the start year (e.g., 2022)", s.filter.Years.Start, search.MinYear, search.MaxYear)
	if err != nil {
		return err
	}

	var endYear *int
	if startYear != nil {
		endYear, err = s.promptOptionalInt("Enter the end year (e.g., 2023)", s.filter.Years.End, *startYear, search.MaxYear)
		if err != nil {
			return err
		}
	}

	minAmt, err := s.promptOptionalInt("Enter the minimum dollar amount (e.g., 25000)", s.filter.Dollars.Min, 0, 0)
	if err != nil {
		return err
	}

	var maxAmt *int
	if minAmt != nil {
		maxAmt, err = s.promptOptionalInt("Enter the maximum dollar amount (e.g., 10000000)", s.filter.Dollars.Max, *minAmt, 0)
		if err != nil {
			return err
		}
	}

	subjects, err := s.promptList("Enter the subjects (comma-separated, e.g., SJ02,SJ05)", s.filter.Subjects)
	if err != nil {
		return err
	}
	populations, err := s.promptList("Enter the populations (comma-separated, e.g., PA010000,PC040000)", s.filter.Populations)
	if err != nil {
		return err
	}
	locations, err := s.promptList("Enter the locations (comma-separated geonameid, e.g., 4671654,4736286)", s.filter.Locations)
	if err != nil {
		return err
	}
	strategies, err := s.promptList("Enter the support strategies (comma-separated, e.g., UA,UB)", s.filter.SupportStrategies)
	if err != nil {
		return err
	}

	defaultPrefix := s.prefix
	if defaultPrefix == "" {
		defaultPrefix = time.Now().Format("20060102_150405")
	}
	prefix, err := s.promptDefault("Enter a name for your search results file", defaultPrefix)
	if err != nil {
		return err
	}

	filter := search.Filter{
		Years:             search.YearRange{Start: startYear, End: endYear},
		Dollars:           search.DollarRange{Min: minAmt, Max: maxAmt},
		Subjects:          subjects,
		Populations:       populations,
		Locations:         locations,
		SupportStrategies: strategies,
	}
	if err := filter.Validate(); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return nil
	}

	s.filter = filter
	s.prefix = prefix
	return nil
}

// displayParameters prints the current filter.
func (s *Shell) displayParameters() error {
	s.clear()
	fmt.Fprintln(s.out, "\nCurrent Search Parameters:")
	fmt.Fprintf(s.out, "Year Range: %s - %s\n", formatOptional(s.filter.Years.Start), formatOptional(s.filter.Years.End))
	fmt.Fprintf(s.out, "Dollar Range: %s - %s\n", formatOptional(s.filter.Dollars.Min), formatOptional(s.filter.Dollars.Max))
	fmt.Fprintf(s.out, "Subjects: %s\n", strings.Join(s.filter.Subjects, ", "))
	fmt.Fprintf(s.out, "Populations: %s\n", strings.Join(s.filter.Populations, ", "))
	fmt.Fprintf(s.out, "Locations: %s\n", strings.Join(s.filter.Locations, ", "))
	fmt.Fprintf(s.out, "Support Strategies: %s\n", strings.Join(s.filter.SupportStrategies, ", "))
	fmt.Fprintf(s.out, "Output Prefix: %s\n", s.prefix)

	_, err := s.prompt("Press Enter to continue...")
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// fetch runs the full fetch flow: probe page 1 for totals, fetch the
// requested pages, write them out, then offer a continuation.
func (s *Shell) fetch(ctx context.Context) error {
	s.clear()
	s.animate("Contacting the Candid Server...")

	probe, err := s.probe.FetchPage(ctx, 1, s.filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Initial page probe failed")
		s.animate("Error connecting to the Candid Server. Please try again later.")
		return nil
	}

	s.animate("Connection Established! Gathering Results...")
	fmt.Fprintf(s.out, "Total hits: %d\n", probe.TotalHits)
	fmt.Fprintf(s.out, "Total pages: %d\n", probe.TotalPages)

	if probe.TotalPages < 1 {
		fmt.Fprintln(s.out, "No results for the current search parameters.")
		return nil
	}

	numPages, err := s.promptBoundedInt("Enter the number of pages to fetch", min(defaultPageCount, probe.TotalPages), 1, probe.TotalPages)
	if err != nil {
		return err
	}

	grants, fetchErr := s.pager.FetchPages(ctx, 1, numPages, s.filter)
	if fetchErr != nil {
		fmt.Fprintf(s.out, "Fetch stopped early: %v\n", fetchErr)
	}

	path, err := s.writer.Write(grants, s.prefix, 1, numPages)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Grants data saved to %s\n", path)
	fmt.Fprintf(s.out, "Total grants fetched: %d\n", len(grants))

	if fetchErr != nil {
		return nil
	}

	return s.fetchMore(ctx, grants, numPages, probe.TotalPages)
}

// fetchMore offers the additional-pages continuation after a successful
// fetch. The combined accumulator is written under the continuation range.
func (s *Shell) fetchMore(ctx context.Context, grants []json.RawMessage, fetched, totalPages int) error {
	answer, err := s.promptDefault("Do you want to fetch more pages? (Y/N)", "N")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	remaining := totalPages - fetched
	if remaining < 1 {
		fmt.Fprintln(s.out, "No more pages available to fetch.")
		return nil
	}

	additional, err := s.promptBoundedInt(
		fmt.Sprintf("Enter the number of additional pages to fetch (max %d)", remaining),
		remaining, 1, remaining)
	if err != nil {
		return err
	}

	more, fetchErr := s.pager.FetchPages(ctx, fetched+1, additional, s.filter)
	if fetchErr != nil {
		fmt.Fprintf(s.out, "Fetch stopped early: %v\n", fetchErr)
	}
	grants = append(grants, more...)

	path, err := s.writer.Write(grants, s.prefix, fetched+1, fetched+additional)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Grants data saved to %s\n", path)
	fmt.Fprintf(s.out, "Total grants fetched: %d\n", len(grants))
	return nil
}

// saveConfig persists the current filter and prefix under a chosen name.
func (s *Shell) saveConfig() error {
	s.clear()
	name, err := s.prompt("Enter a name for the search configuration")
	if err != nil {
		return err
	}

	if err := s.store.Save(name, searchstore.SavedSearch{
		Filter:       s.filter,
		OutputPrefix: s.prefix,
	}); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Search configuration saved as %q\n", name)
	return nil
}

// loadConfig restores a previously saved filter and prefix.
func (s *Shell) loadConfig() error {
	s.clear()

	names, err := s.store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No saved search configurations found.")
		return nil
	}

	fmt.Fprintln(s.out, "Saved Searches:")
	for i, name := range names {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, name)
	}

	choice, err := s.promptBoundedInt("Please select a search configuration", 1, 1, len(names))
	if err != nil {
		return err
	}

	saved, err := s.store.Load(names[choice-1])
	if err != nil {
		return err
	}

	s.filter = saved.Filter
	s.prefix = saved.OutputPrefix
	fmt.Fprintf(s.out, "Search configuration %q loaded\n", names[choice-1])
	return nil
}

func formatOptional(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
