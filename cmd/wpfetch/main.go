// Package main provides the wpfetch CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/wpfetch/internal/config"
	"github.com/gauthierbraillon/wpfetch/internal/display"
	"github.com/gauthierbraillon/wpfetch/internal/export"
	"github.com/gauthierbraillon/wpfetch/internal/wordpress"
	"github.com/gauthierbraillon/wpfetch/pkg/browser"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	configFile string
	asJSON     bool

	cfg    config.Config
	logger *slog.Logger
}

func (a *app) client() *wordpress.Client {
	return wordpress.NewClient(
		wordpress.WithBaseURL(a.cfg.APIURL),
		wordpress.WithLogger(a.logger),
	)
}

func (a *app) formatter() *display.TerminalFormatter {
	return display.NewTerminalFormatter(a.cfg.SiteRoot(), nil)
}

// context bounds a command by the configured timeout; zero means no limit.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.Timeout)
}

// output prints v as JSON when --json is set and text otherwise.
func (a *app) output(cmd *cobra.Command, v interface{}, text string) error {
	if !a.asJSON {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newRootCmd creates the root command for wpfetch CLI.
func newRootCmd() *cobra.Command {
	a := &app{}
	info, _ := debug.ReadBuildInfo()

	rootCmd := &cobra.Command{
		Use:          "wpfetch",
		Short:        "Read posts from a WordPress site",
		Long:         "Wpfetch reads posts from the WordPress REST API for static site generation: single posts, pages, related posts, search results and full exports.",
		Version:      resolveVersion(version, info),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{File: a.configFile})
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
			return nil
		},
	}

	rootCmd.SetVersionTemplate("wpfetch version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is ./wpfetch.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(newPostCmd(a))
	rootCmd.AddCommand(newPostsCmd(a))
	rootCmd.AddCommand(newRelatedCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newPathsCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// newPostCmd creates the post subcommand.
func newPostCmd(a *app) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "post <slug>",
		Short: "Show a single post by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			post := a.client().PostBySlug(ctx, args[0])
			if post == nil {
				return fmt.Errorf("no post found for slug %q", args[0])
			}

			if err := a.output(cmd, post, a.formatter().FormatPost(*post)); err != nil {
				return err
			}

			if open {
				permalink := a.cfg.SiteRoot() + post.Path()
				if err := browser.Open(permalink); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser. Please visit:\n%s\n", permalink)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the post permalink in a browser")

	return cmd
}

// newPostsCmd creates the posts subcommand.
func newPostsCmd(a *app) *cobra.Command {
	var page, perPage int
	var embed bool

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List one page of posts",
		Long:  "List one page of posts, newest first, with the total number of posts and pages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			if !cmd.Flags().Changed("per-page") {
				perPage = a.cfg.PerPage
			}

			result := a.client().Posts(ctx, page, perPage, wordpress.PageOptions{Embed: embed})
			return a.output(cmd, result, a.formatter().FormatPage(result, page))
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number, starting at 1")
	cmd.Flags().IntVarP(&perPage, "per-page", "n", wordpress.DefaultPerPage, "Posts per page (defaults to per_page from config)")
	cmd.Flags().BoolVarP(&embed, "embed", "e", false, "Include authors, terms and featured media")

	return cmd
}

// newRelatedCmd creates the related subcommand.
func newRelatedCmd(a *app) *cobra.Command {
	var exclude, limit int
	var slug string

	cmd := &cobra.Command{
		Use:   "related [category-id]",
		Short: "List posts related by category",
		Long:  "List posts in a category, or with --slug, posts sharing the first category of that post.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			client := a.client()

			var posts []wordpress.Post
			switch {
			case slug != "":
				post := client.PostBySlug(ctx, slug)
				if post == nil {
					return fmt.Errorf("no post found for slug %q", slug)
				}
				posts = client.RelatedTo(ctx, *post, limit)
			case len(args) == 1:
				categoryID, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid category id %q: must be a number", args[0])
				}
				posts = client.RelatedPosts(ctx, categoryID, exclude, limit)
			default:
				return fmt.Errorf("missing category id: pass a category id or --slug")
			}

			return a.output(cmd, posts, a.formatter().FormatPosts(posts))
		},
	}

	cmd.Flags().IntVarP(&exclude, "exclude", "x", 0, "Post ID to leave out")
	cmd.Flags().IntVarP(&limit, "limit", "l", wordpress.DefaultRelatedLimit, "Maximum number of posts")
	cmd.Flags().StringVarP(&slug, "slug", "s", "", "Find posts related to this post")

	return cmd
}

// newSearchCmd creates the search subcommand.
func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search posts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			posts := a.client().SearchPosts(ctx, strings.Join(args, " "), limit)
			return a.output(cmd, posts, a.formatter().FormatPosts(posts))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", wordpress.DefaultSearchLimit, "Maximum number of results")

	return cmd
}

// newPathsCmd creates the paths subcommand.
func newPathsCmd(a *app) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print static paths for every post",
		Long:  "Fetch every post in batches and print one permalink per post, or with --json, the full path descriptors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			if !cmd.Flags().Changed("batch-size") {
				batchSize = a.cfg.BatchSize
			}

			paths := a.client().StaticPaths(ctx, batchSize)

			var text strings.Builder
			for _, p := range paths {
				text.WriteString(p.Props.Post.Path() + "\n")
			}
			return a.output(cmd, paths, text.String())
		},
	}

	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", wordpress.DefaultBatchSize, "Posts per request (defaults to batch_size from config)")

	return cmd
}

// newExportCmd creates the export subcommand.
func newExportCmd(a *app) *cobra.Command {
	var out string
	var batchSize int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every post as Markdown",
		Long:  "Fetch every post and write it as Markdown with YAML front matter to <out>/YYYY/MM/DD/<slug>/index.md.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			if !cmd.Flags().Changed("out") {
				out = a.cfg.OutputDir
			}
			if !cmd.Flags().Changed("batch-size") {
				batchSize = a.cfg.BatchSize
			}

			posts := a.client().AllPosts(ctx, batchSize)
			if len(posts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No posts to export.")
				return nil
			}

			written, err := export.NewExporter(out, nil).WriteAll(posts)
			if err != nil {
				return fmt.Errorf("export failed after %d posts: %w", len(written), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d posts to %s\n", len(written), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (defaults to output_dir from config)")
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", wordpress.DefaultBatchSize, "Posts per request (defaults to batch_size from config)")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the effective configuration after defaults, config file, .env and WPFETCH_* variables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var text strings.Builder
			fmt.Fprintf(&text, "API URL:     %s\n", a.cfg.APIURL)
			fmt.Fprintf(&text, "Site URL:    %s\n", a.cfg.SiteRoot())
			fmt.Fprintf(&text, "Per page:    %d\n", a.cfg.PerPage)
			fmt.Fprintf(&text, "Batch size:  %d\n", a.cfg.BatchSize)
			fmt.Fprintf(&text, "Timeout:     %s\n", a.cfg.Timeout)
			fmt.Fprintf(&text, "Log level:   %s\n", a.cfg.LogLevel)
			fmt.Fprintf(&text, "Output dir:  %s\n", a.cfg.OutputDir)
			return a.output(cmd, a.cfg, text.String())
		},
	}

	return cmd
}
