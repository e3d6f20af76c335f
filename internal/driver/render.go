package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"vitrine/internal/analysis"
	"vitrine/internal/diag"
	"vitrine/internal/highlight"
	"vitrine/internal/observ"
	"vitrine/internal/scan"
	"vitrine/internal/source"
	"vitrine/internal/token"
)

// DefaultMaxDiagnostics caps per-file diagnostics when callers pass no limit.
const DefaultMaxDiagnostics = 100

// RenderOptions configures a render pass.
type RenderOptions struct {
	// Host answers enrichment queries. When nil, IndexPath is consulted;
	// with neither, markup is emitted unenriched.
	Host      analysis.Host
	IndexPath string

	// ProjectRoot is stripped from goto-def link targets.
	ProjectRoot string

	MaxDiagnostics int
	Timings        bool

	// Cache holds previously rendered markup. Nil disables caching.
	Cache *DiskCache
}

func (o *RenderOptions) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// RenderResult is the outcome of rendering one file.
type RenderResult struct {
	FileSet   *source.FileSet
	FileID    source.FileID
	File      *source.File
	Tokens    []token.Token
	HTML      string
	Bag       *diag.Bag
	FromCache bool
}

// RenderFile loads, scans and renders a single file into span markup.
func RenderFile(ctx context.Context, path string, opts RenderOptions) (*RenderResult, error) {
	log := zerolog.Ctx(ctx)
	timer := observ.NewTimer()

	loadIdx := timer.Begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	file := fs.Get(fileID)
	timer.End(loadIdx, fmt.Sprintf("%d bytes", len(file.Content)))

	bag := diag.NewBag(opts.maxDiagnostics())
	host := resolveHost(&opts, bag, log)

	res := &RenderResult{
		FileSet: fs,
		FileID:  fileID,
		File:    file,
		Bag:     bag,
	}

	key, cacheable := cacheKeyFor(&opts, host, file)
	if cacheable {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.IOCacheReadError, source.Span{},
				fmt.Sprintf("render cache read failed: %v", err)).Emit()
		case ok:
			log.Debug().Str("path", path).Msg("render cache hit")
			res.HTML = payload.HTML
			res.FromCache = true
			appendRenderTimings(bag, &opts, path, timer)
			return res, nil
		}
	}

	scanIdx := timer.Begin("scan")
	res.Tokens = scan.Tokens(file, scan.Options{
		Reporter: &scan.ReporterAdapter{Bag: bag},
	})
	timer.End(scanIdx, fmt.Sprintf("%d tokens", len(res.Tokens)))

	renderIdx := timer.Begin("render")
	renderer := highlight.New(highlight.Options{
		Host:        host,
		ProjectRoot: opts.ProjectRoot,
	})
	res.HTML = renderer.Render(fs, fileID, res.Tokens)
	timer.End(renderIdx, "")

	if cacheable {
		payload := &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Path:        path,
			ProjectRoot: opts.ProjectRoot,
			ContentHash: Digest(file.Hash),
			IndexHash:   hostDigestOrZero(host),
			HTML:        res.HTML,
			RenderedAt:  time.Now().Unix(),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.IOCacheWriteError, source.Span{},
				fmt.Sprintf("render cache write failed: %v", err)).Emit()
		}
	}

	log.Debug().
		Str("path", path).
		Int("tokens", len(res.Tokens)).
		Int("bytes", len(res.HTML)).
		Msg("rendered file")

	appendRenderTimings(bag, &opts, path, timer)
	return res, nil
}

func appendRenderTimings(bag *diag.Bag, opts *RenderOptions, path string, timer *observ.Timer) {
	if !opts.Timings {
		return
	}
	report := timer.Report()
	appendTimingDiagnostic(bag, timingPayload{
		Kind:    "render",
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
}

// resolveHost picks the enrichment backend for this pass. A broken index
// degrades to unenriched markup with a warning instead of failing the render.
func resolveHost(opts *RenderOptions, bag *diag.Bag, log *zerolog.Logger) analysis.Host {
	if opts.Host != nil {
		return opts.Host
	}
	if opts.IndexPath == "" {
		return analysis.NullHost{}
	}
	host, err := analysis.LoadIndex(opts.IndexPath)
	if err != nil {
		diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.IdxLoadFailed, source.Span{},
			fmt.Sprintf("markup will not be enriched: %v", err)).Emit()
		log.Warn().Err(err).Str("index", opts.IndexPath).Msg("index load failed")
		return analysis.NullHost{}
	}
	stats := host.Stats()
	log.Debug().
		Str("index", opts.IndexPath).
		Int("symbols", stats.Symbols).
		Int("refs", stats.Refs).
		Msg("index loaded")
	return host
}

// cacheKeyFor derives the cache key when the host's answers are captured by
// a digest. Custom Host implementations are opaque, so they disable caching.
func cacheKeyFor(opts *RenderOptions, host analysis.Host, file *source.File) (Digest, bool) {
	if opts.Cache == nil {
		return Digest{}, false
	}
	index, ok := hostDigest(host)
	if !ok {
		return Digest{}, false
	}
	return renderCacheKey(Digest(file.Hash), index, opts.ProjectRoot), true
}

func hostDigest(host analysis.Host) (Digest, bool) {
	switch h := host.(type) {
	case analysis.NullHost:
		return Digest{}, true
	case *analysis.IndexHost:
		return Digest(h.Hash()), true
	}
	return Digest{}, false
}

func hostDigestOrZero(host analysis.Host) Digest {
	d, _ := hostDigest(host)
	return d
}
