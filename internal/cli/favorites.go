package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/bookfinder/internal/app"
	"github.com/five82/bookfinder/internal/book"
	"github.com/five82/bookfinder/internal/favorites"
	"github.com/five82/bookfinder/internal/search"
)

// ExportFormats are the formats accepted by favorites export.
var ExportFormats = []string{"json", "yaml", "toml"}

const msgNoFavorites = "No favorites yet."

// NewFavoritesCommand creates the favorites command group.
func NewFavoritesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and edit saved favorites",
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newFavoritesListCommand(rootOpts))
	cmd.AddCommand(newFavoritesAddCommand(rootOpts))
	cmd.AddCommand(newFavoritesRemoveCommand(rootOpts))
	cmd.AddCommand(newFavoritesClearCommand(rootOpts))
	cmd.AddCommand(newFavoritesExportCommand(rootOpts))

	return cmd
}

// withEnv opens the application environment for the duration of fn.
func withEnv(rootOpts *RootOptions, fn func(env *app.Env) error) error {
	env, err := app.Open(rootOpts.appOptions())
	if err != nil {
		return WrapExitError(ExitCommandError, "startup failed", err)
	}
	defer func() { _ = env.Close() }()
	return fn(env)
}

// persistError turns a store failure into an exit error. The in-memory change
// is already gone once the command exits, so it counts as a failure here.
func persistError(err error) error {
	if err == nil {
		return nil
	}
	return WrapExitError(ExitFailure, "favorites not saved", err)
}

func newFavoritesListCommand(rootOpts *RootOptions) *cobra.Command {
	var sortFlag, format string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "Print saved favorites",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(format, ListFormats) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", format, ListFormats))
			}
			return withEnv(rootOpts, func(env *app.Env) error {
				if err := applySort(env, sortFlag); err != nil {
					return err
				}
				snap := env.State.Snapshot()
				out := &OutputFormatter{Format: format, Writer: cmd.OutOrStdout()}
				return out.Records(RecordList{
					Sort:    snap.Sort.String(),
					Records: search.SortedView(snap.Favorites, snap.Sort),
				}, msgNoFavorites)
			})
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "", "sort order: none|title|author|year|year-desc (default from prefs)")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}

func newFavoritesAddCommand(rootOpts *RootOptions) *cobra.Command {
	var r book.Record

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the favorites",
		Example: `  bookfinder favorites add --key /works/OL893415W --title Dune --author "Frank Herbert" --year 1965`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r.Key = strings.TrimSpace(r.Key)
			if !r.HasKey() {
				return NewExitError(ExitCommandError, "--key must not be empty")
			}
			return withEnv(rootOpts, func(env *app.Env) error {
				out := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout()}
				if env.State.Snapshot().IsFavorite(r) {
					return out.Message("Already a favorite: " + r.DisplayTitle())
				}
				if err := persistError(env.State.FavoriteAdded(r)); err != nil {
					return err
				}
				return out.Message("Added: " + r.DisplayTitle())
			})
		},
	}

	cmd.Flags().StringVar(&r.Key, "key", "", "catalog work key, e.g. /works/OL893415W")
	cmd.Flags().StringVar(&r.Title, "title", "", "book title")
	cmd.Flags().StringArrayVar(&r.AuthorNames, "author", nil, "author name (repeatable)")
	cmd.Flags().IntVar(&r.FirstPublishYear, "year", 0, "first publication year")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newFavoritesRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	var workKey string

	cmd := &cobra.Command{
		Use:           "remove",
		Aliases:       []string{"rm"},
		Short:         "Remove a book from the favorites",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := book.Record{Key: strings.TrimSpace(workKey)}
			if !target.HasKey() {
				return NewExitError(ExitCommandError, "--key must not be empty")
			}
			return withEnv(rootOpts, func(env *app.Env) error {
				out := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout()}
				var found *book.Record
				for _, fav := range env.State.Snapshot().Favorites {
					if fav.SameAs(target) {
						found = &fav
						break
					}
				}
				if found == nil {
					return out.Message("Not a favorite: " + target.Key)
				}
				if err := persistError(env.State.FavoriteRemoved(*found)); err != nil {
					return err
				}
				return out.Message("Removed: " + found.DisplayTitle())
			})
		},
	}

	cmd.Flags().StringVar(&workKey, "key", "", "catalog work key")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newFavoritesClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Remove every favorite",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(rootOpts, func(env *app.Env) error {
				n := len(env.State.Snapshot().Favorites)
				if err := persistError(env.State.FavoritesCleared()); err != nil {
					return err
				}
				out := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout()}
				return out.Message(fmt.Sprintf("Cleared %d favorites.", n))
			})
		},
	}
}

// exportDocument is the TOML shape of an export; TOML needs a top-level table.
type exportDocument struct {
	Favorites []book.Record `toml:"favorites"`
}

func newFavoritesExportCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write the favorites as JSON, YAML or TOML",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(format, ExportFormats) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", format, ExportFormats))
			}
			return withEnv(rootOpts, func(env *app.Env) error {
				data, err := exportFavorites(env.State.Snapshot().Favorites, format)
				if err != nil {
					return WrapExitError(ExitFailure, "export failed", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (json|yaml|toml)")
	return cmd
}

func exportFavorites(c favorites.Collection, format string) ([]byte, error) {
	records := []book.Record(c)
	if records == nil {
		records = []book.Record{}
	}
	switch format {
	case "yaml":
		return yaml.Marshal(records)
	case "toml":
		return toml.Marshal(exportDocument{Favorites: records})
	default:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
