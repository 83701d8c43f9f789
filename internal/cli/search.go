package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/bookfinder/internal/app"
	"github.com/five82/bookfinder/internal/catalog"
	"github.com/five82/bookfinder/internal/search"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	Title   string
	Author  string
	Subject string
	Sort    string
	Format  string
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog by title, author or subject",
		Long: `Search the Open Library catalog and print at most 20 results.

Any combination of --title, --author and --subject may be given; each one
is sent as a separate filter. At least one must be non-empty.`,
		Example: `  bookfinder search --title dune
  bookfinder search --author "le guin" --sort year --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "title filter")
	cmd.Flags().StringVar(&opts.Author, "author", "", "author filter")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "subject filter")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort order: none|title|author|year|year-desc (default from prefs)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	return cmd
}

func runSearch(cmd *cobra.Command, rootOpts *RootOptions, opts *SearchOptions) error {
	if !isValidFormat(opts.Format, ListFormats) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ListFormats))
	}

	env, err := app.Open(rootOpts.appOptions())
	if err != nil {
		return WrapExitError(ExitCommandError, "startup failed", err)
	}
	defer func() { _ = env.Close() }()

	if err := applySort(env, opts.Sort); err != nil {
		return err
	}

	q := catalog.Query{Title: opts.Title, Author: opts.Author, Subject: opts.Subject}
	err = env.State.Search(cmd.Context(), env.Catalog, q)

	var (
		invalid *search.ValidationError
		empty   *search.EmptyResultError
		network *search.NetworkError
	)
	switch {
	case errors.As(err, &invalid):
		return NewExitError(ExitCommandError, search.MsgEmptyQuery)
	case errors.As(err, &network):
		return WrapExitError(ExitFailure, search.MsgNetwork, network.Err)
	case err != nil && !errors.As(err, &empty):
		return WrapExitError(ExitFailure, "search failed", err)
	}

	snap := env.State.Snapshot()
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Records(RecordList{
		Query:   q.String(),
		Sort:    snap.Sort.String(),
		Records: snap.View,
	}, search.MsgNoResults)
}

// applySort sets the store's sort key from a flag value. An empty value keeps
// the key loaded from prefs.
func applySort(env *app.Env, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	key, err := search.ParseSortKey(raw)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --sort", err)
	}
	env.State.SortChanged(key)
	return nil
}
