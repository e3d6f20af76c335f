package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"vitrine/internal/diag"
	"vitrine/internal/highlight"
	"vitrine/internal/htmlpage"
	"vitrine/internal/observ"
	"vitrine/internal/renderpipeline"
	"vitrine/internal/scan"
	"vitrine/internal/source"
)

// DirRequest configures rendering of a whole directory tree.
type DirRequest struct {
	Dir string

	// OutDir receives one .html file per source file when set.
	OutDir string
	// Standalone wraps each written file into a complete HTML page.
	Standalone bool

	// Jobs caps worker parallelism, 0 means GOMAXPROCS.
	Jobs int

	// Progress receives stage events, may be nil.
	Progress renderpipeline.ProgressSink

	// Options applies to every file. A custom Host must be safe for
	// concurrent use; IndexHost and NullHost always are.
	Options RenderOptions
}

// DirFileResult is the render outcome for one file.
type DirFileResult struct {
	Path      string // path as discovered on disk
	Display   string // slash-separated path relative to the request dir
	OutPath   string // written file, "" when nothing was written
	HTML      string
	FromCache bool
	Bag       *diag.Bag
}

// DirResult aggregates a directory render.
type DirResult struct {
	FileSet *source.FileSet
	Files   []DirFileResult
	Bag     *diag.Bag // merged and sorted across all files
	Elapsed time.Duration
}

// listGoFiles returns a sorted list of all .go files under dir, skipping
// hidden and vendor directories.
func listGoFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (name == "vendor" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ListGoFiles returns the display names of the files RenderDir would process
// under dir, in the same order RenderDir processes them. Callers driving a
// progress UI use it to seed the file list before the render starts.
func ListGoFiles(dir string) ([]string, error) {
	files, err := listGoFiles(dir)
	if err != nil {
		return nil, err
	}
	displays := make([]string, len(files))
	for i, path := range files {
		displays[i] = displayPath(path, dir)
	}
	return displays, nil
}

func displayPath(path, baseDir string) string {
	if rel, err := filepath.Rel(baseDir, path); err == nil &&
		rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func emitEvent(sink renderpipeline.ProgressSink, file string, stage renderpipeline.Stage, status renderpipeline.Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(renderpipeline.Event{
		File:    file,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: elapsed,
	})
}

// RenderDir renders every .go file under req.Dir in parallel.
// Per-file failures become diagnostics, not errors: the walk keeps going.
func RenderDir(ctx context.Context, req DirRequest) (*DirResult, error) {
	log := zerolog.Ctx(ctx)
	timer := observ.NewTimer()
	started := time.Now()

	listIdx := timer.Begin("list")
	files, err := listGoFiles(req.Dir)
	if err != nil {
		return nil, err
	}
	timer.End(listIdx, pluralFiles(len(files)))

	dirBag := diag.NewBag(req.Options.maxDiagnostics())
	if len(files) == 0 {
		return &DirResult{
			FileSet: source.NewFileSetWithBase(req.Dir),
			Bag:     dirBag,
			Elapsed: time.Since(started),
		}, nil
	}

	// FileSet mutation is not concurrent-safe, load everything up front
	loadIdx := timer.Begin("load")
	fileSet := source.NewFileSetWithBase(req.Dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	timer.End(loadIdx, pluralFiles(len(fileIDs)))

	host := resolveHost(&req.Options, dirBag, log)
	indexDigest, digestOK := hostDigest(host)
	cacheable := digestOK && req.Options.Cache != nil

	displays := make([]string, len(files))
	for i, path := range files {
		displays[i] = displayPath(path, req.Dir)
	}
	renderpipeline.EmitQueued(req.Progress, displays)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// indexes are unique per goroutine, no mutex needed
	results := make([]DirFileResult, len(files))

	renderIdx := timer.Begin("render")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				display := displays[i]
				bag := diag.NewBag(req.Options.maxDiagnostics())
				out := DirFileResult{Path: path, Display: display, Bag: bag}

				if loadErr, hadError := loadErrors[path]; hadError {
					bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
						"failed to load file: "+loadErr.Error()))
					emitEvent(req.Progress, display, renderpipeline.StageLoad, renderpipeline.StatusError, loadErr, 0)
					results[i] = out
					return nil
				}
				emitEvent(req.Progress, display, renderpipeline.StageLoad, renderpipeline.StatusDone, nil, 0)
				file := fileSet.Get(fileIDs[path])

				var key Digest
				if cacheable {
					key = renderCacheKey(Digest(file.Hash), indexDigest, req.Options.ProjectRoot)
					var payload DiskPayload
					ok, err := req.Options.Cache.Get(key, &payload)
					switch {
					case err != nil:
						bag.Add(diag.New(diag.SevWarning, diag.IOCacheReadError, source.Span{},
							"render cache read failed: "+err.Error()))
					case ok:
						out.HTML = payload.HTML
						out.FromCache = true
					}
				}

				if !out.FromCache {
					start := time.Now()
					emitEvent(req.Progress, display, renderpipeline.StageScan, renderpipeline.StatusWorking, nil, 0)
					toks := scan.Tokens(file, scan.Options{
						Reporter: &scan.ReporterAdapter{Bag: bag},
					})
					emitEvent(req.Progress, display, renderpipeline.StageScan, renderpipeline.StatusDone, nil, time.Since(start))

					start = time.Now()
					emitEvent(req.Progress, display, renderpipeline.StageRender, renderpipeline.StatusWorking, nil, 0)
					renderer := highlight.New(highlight.Options{
						Host:        host,
						ProjectRoot: req.Options.ProjectRoot,
					})
					out.HTML = renderer.Render(fileSet, file.ID, toks)
					emitEvent(req.Progress, display, renderpipeline.StageRender, renderpipeline.StatusDone, nil, time.Since(start))

					if cacheable {
						payload := &DiskPayload{
							Schema:      diskCacheSchemaVersion,
							Path:        path,
							ProjectRoot: req.Options.ProjectRoot,
							ContentHash: Digest(file.Hash),
							IndexHash:   indexDigest,
							HTML:        out.HTML,
							RenderedAt:  time.Now().Unix(),
						}
						if err := req.Options.Cache.Put(key, payload); err != nil {
							bag.Add(diag.New(diag.SevWarning, diag.IOCacheWriteError, source.Span{},
								"render cache write failed: "+err.Error()))
						}
					}
				} else {
					emitEvent(req.Progress, display, renderpipeline.StageRender, renderpipeline.StatusDone, nil, 0)
				}

				if req.OutDir != "" {
					start := time.Now()
					emitEvent(req.Progress, display, renderpipeline.StageWrite, renderpipeline.StatusWorking, nil, 0)
					outPath, err := writeRendered(&req, display, out.HTML)
					if err != nil {
						bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{},
							"failed to write output: "+err.Error()))
						emitEvent(req.Progress, display, renderpipeline.StageWrite, renderpipeline.StatusError, err, time.Since(start))
					} else {
						out.OutPath = outPath
						emitEvent(req.Progress, display, renderpipeline.StageWrite, renderpipeline.StatusDone, nil, time.Since(start))
					}
				}

				results[i] = out
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	timer.End(renderIdx, pluralFiles(len(files)))

	merged := diag.NewBag(req.Options.maxDiagnostics())
	merged.Merge(dirBag)
	for i := range results {
		if results[i].Bag != nil {
			merged.Merge(results[i].Bag)
		}
	}
	merged.Sort()

	if req.Options.Timings {
		report := timer.Report()
		appendTimingDiagnostic(merged, timingPayload{
			Kind:    "render-dir",
			Path:    req.Dir,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	log.Debug().
		Str("dir", req.Dir).
		Int("files", len(files)).
		Dur("elapsed", time.Since(started)).
		Msg("rendered directory")

	return &DirResult{
		FileSet: fileSet,
		Files:   results,
		Bag:     merged,
		Elapsed: time.Since(started),
	}, nil
}

func writeRendered(req *DirRequest, display, html string) (string, error) {
	outPath := filepath.Join(req.OutDir, filepath.FromSlash(display)+".html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	content := html
	if req.Standalone {
		content = htmlpage.Page(display, html)
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return strconv.Itoa(n) + " files"
}
