package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vitrine/internal/diag"
	"vitrine/internal/diagfmt"
	"vitrine/internal/driver"
	"vitrine/internal/highlight"
	"vitrine/internal/htmlpage"
	"vitrine/internal/source"
	"vitrine/internal/termfmt"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] [path]",
	Short: "Render source files as cross-referenced HTML",
	Long: `Render turns source files into styled, cross-referenced HTML markup.
Identifiers are enriched with type signatures, documentation and
jump-to-definition links from an analysis index when one is available.
A directory argument renders every .go file beneath it in parallel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("index", "", "analysis index file (defaults to [analysis].index in vitrine.toml)")
	renderCmd.Flags().String("out", "", "output directory (defaults to [render].out in vitrine.toml)")
	renderCmd.Flags().Bool("standalone", false, "wrap output in a complete HTML page with the default stylesheet")
	renderCmd.Flags().String("format", "html", "single-file output format (html|term)")
	renderCmd.Flags().String("project-root", "", "project root for link targets (defaults to the manifest directory)")
	renderCmd.Flags().Int("jobs", 0, "parallel render workers for directories (0 = GOMAXPROCS)")
	renderCmd.Flags().String("ui", "auto", "progress UI for directory renders (auto|on|off)")
	renderCmd.Flags().Bool("stats", false, "print a per-file summary table after a directory render")
	renderCmd.Flags().Bool("no-cache", false, "bypass the render cache")
	renderCmd.Flags().StringArray("mark", nil, "overlay a byte range as start:end[:class[:id]]; repeatable, disables enrichment")
}

type renderSettings struct {
	target      string
	isDir       bool
	format      string
	out         string
	standalone  bool
	projectRoot string
	jobs        int
	ui          uiMode
	stats       bool
	marks       []highlight.OverlayRange
	quiet       bool
	timings     bool
	maxDiags    int
	options     driver.RenderOptions
	manifest    *projectManifest
}

func runRender(cmd *cobra.Command, args []string) error {
	settings, err := collectRenderSettings(cmd, args)
	if err != nil {
		return err
	}
	ctx := loggingContext(cmd)

	if len(settings.marks) > 0 {
		if settings.isDir {
			return fmt.Errorf("--mark renders a single file, got directory %s", settings.target)
		}
		return renderOverlay(cmd, settings)
	}

	if settings.isDir {
		return renderDirectory(cmd, ctx, settings)
	}
	return renderSingleFile(cmd, ctx, settings)
}

func collectRenderSettings(cmd *cobra.Command, args []string) (*renderSettings, error) {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("cannot render %s: %w", target, err)
	}

	startDir := target
	if !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	manifest, _, err := loadProjectManifest(startDir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	persistent := cmd.Root().PersistentFlags()

	s := &renderSettings{
		target:   target,
		isDir:    info.IsDir(),
		manifest: manifest,
	}
	s.format, _ = flags.GetString("format")
	s.out, _ = flags.GetString("out")
	s.standalone, _ = flags.GetBool("standalone")
	s.projectRoot, _ = flags.GetString("project-root")
	s.jobs, _ = flags.GetInt("jobs")
	s.stats, _ = flags.GetBool("stats")
	s.quiet, _ = persistent.GetBool("quiet")
	s.timings, _ = persistent.GetBool("timings")
	s.maxDiags, _ = persistent.GetInt("max-diagnostics")

	uiValue, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiValue); err != nil {
		return nil, err
	}

	switch s.format {
	case "html", "term":
	default:
		return nil, fmt.Errorf("unknown format %q (expected html or term)", s.format)
	}

	indexPath, _ := flags.GetString("index")
	if manifest != nil {
		if indexPath == "" {
			indexPath = manifest.IndexPath()
		}
		if s.out == "" {
			s.out = manifest.OutDir()
		}
		if !flags.Changed("standalone") {
			s.standalone = manifest.Config.Render.Standalone
		}
		if s.projectRoot == "" {
			s.projectRoot = manifest.Root
		}
	}
	if s.projectRoot == "" {
		s.projectRoot = startDir
	}
	if abs, err := filepath.Abs(s.projectRoot); err == nil {
		s.projectRoot = abs
	}

	marks, _ := flags.GetStringArray("mark")
	if s.marks, err = parseMarks(marks); err != nil {
		return nil, err
	}

	s.options = driver.RenderOptions{
		IndexPath:      indexPath,
		ProjectRoot:    s.projectRoot,
		MaxDiagnostics: s.maxDiags,
		Timings:        s.timings,
	}
	if noCache, _ := flags.GetBool("no-cache"); !noCache {
		cache, err := driver.OpenDiskCache("vitrine")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: render cache unavailable: %v\n", err)
		} else {
			s.options.Cache = cache
		}
	}
	return s, nil
}

// parseMarks reads start:end[:class[:id]] overlay specs.
func parseMarks(specs []string) ([]highlight.OverlayRange, error) {
	ranges := make([]highlight.OverlayRange, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 4)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid --mark %q (expected start:end[:class[:id]])", spec)
		}
		start, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid --mark start in %q: %w", spec, err)
		}
		end, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid --mark end in %q: %w", spec, err)
		}
		if end <= start {
			return nil, fmt.Errorf("invalid --mark %q: end must be greater than start", spec)
		}
		// overlay class suffixes carry their leading space (see highlight.OverlayRange)
		r := highlight.OverlayRange{Start: uint32(start), End: uint32(end), Class: " highlight"}
		if len(parts) >= 3 && parts[2] != "" {
			r.Class = " " + parts[2]
		}
		if len(parts) == 4 {
			r.ID = parts[3]
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func renderSingleFile(cmd *cobra.Command, ctx context.Context, s *renderSettings) error {
	res, err := driver.RenderFile(ctx, s.target, s.options)
	if err != nil {
		return err
	}
	printDiagnostics(cmd, res.Bag, res.FileSet)

	switch s.format {
	case "term":
		return termfmt.Render(os.Stdout, res.Tokens, termfmt.Options{
			Color:       useColor(cmd, os.Stdout),
			LineNumbers: true,
		})
	default:
		return writeSingleHTML(cmd, s, res.File, res.HTML)
	}
}

func writeSingleHTML(cmd *cobra.Command, s *renderSettings, file *source.File, html string) error {
	content := html
	if s.standalone {
		content = htmlpage.Page(file.FormatPath("basename", ""), html)
	}
	if s.out == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
		return err
	}
	outPath := filepath.Join(s.out, file.FormatPath("basename", "")+".html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	}
	return nil
}

// renderOverlay tokenizes the file and stamps the registered byte ranges,
// skipping semantic enrichment entirely.
func renderOverlay(cmd *cobra.Command, s *renderSettings) error {
	res, err := driver.Tokenize(s.target, s.maxDiags)
	if err != nil {
		return err
	}
	printDiagnostics(cmd, res.Bag, res.FileSet)

	overlay := highlight.NewOverlay()
	for _, mark := range s.marks {
		overlay.RegisterOverlay(mark.Start, mark.End, mark.Class, mark.ID)
	}
	return writeSingleHTML(cmd, s, res.File, overlay.Render(res.Tokens))
}

func renderDirectory(cmd *cobra.Command, ctx context.Context, s *renderSettings) error {
	req := driver.DirRequest{
		Dir:        s.target,
		OutDir:     s.out,
		Standalone: s.standalone,
		Jobs:       s.jobs,
		Options:    s.options,
	}

	var res *driver.DirResult
	var err error
	if shouldUseTUI(s.ui) {
		files, listErr := driver.ListGoFiles(s.target)
		if listErr != nil {
			return listErr
		}
		res, err = runRenderDirWithUI(ctx, "rendering "+s.target, files, req)
	} else {
		res, err = driver.RenderDir(ctx, req)
	}
	if err != nil {
		return err
	}

	printDiagnostics(cmd, res.Bag, res.FileSet)
	if s.stats {
		printStatsTable(cmd.OutOrStdout(), res)
	}
	if !s.quiet {
		printDirSummary(cmd, res)
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("render finished with errors")
	}
	return nil
}

func printDirSummary(cmd *cobra.Command, res *driver.DirResult) {
	cached := 0
	written := 0
	for _, f := range res.Files {
		if f.FromCache {
			cached++
		}
		if f.OutPath != "" {
			written++
		}
	}
	msg := fmt.Sprintf("rendered %d files in %s", len(res.Files), res.Elapsed.Round(time.Millisecond))
	if cached > 0 {
		msg += fmt.Sprintf(" (%d from cache)", cached)
	}
	if written > 0 {
		msg += fmt.Sprintf(", wrote %d", written)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		ShowNotes: true,
	})
}
