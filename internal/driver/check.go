package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/observ"
	"quill/internal/parser"
	"quill/internal/project"
	"quill/internal/resolver"
	"quill/internal/source"
	"quill/internal/token"
)

// CheckStage limits how deep the pipeline runs.
type CheckStage string

const (
	StageTokenize CheckStage = "tokenize"
	StageSyntax   CheckStage = "syntax"
	StageAll      CheckStage = "all"
)

const defaultMaxDiagnostics = 256

type CheckOptions struct {
	Stage          CheckStage
	MaxDiagnostics int
	EnableTimings  bool
	Observer       PhaseObserver
	// Jobs caps tokenize-phase parallelism; 0 means NumCPU.
	Jobs     int
	Cache    *DiskCache
	Manifest *project.Manifest
}

func (o *CheckOptions) normalize() {
	if o.Stage == "" {
		o.Stage = StageAll
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = defaultMaxDiagnostics
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.NumCPU()
	}
}

type CheckResult struct {
	FileSet    *source.FileSet
	Builder    *ast.Builder
	Files      []ast.FileID
	Resolution *resolver.Result
	Manifest   *project.Manifest
	Bag        *diag.Bag
	// CachedClean is set when the disk cache proved the tree unchanged
	// since a fully clean run; the pipeline was skipped entirely.
	CachedClean bool
}

// Check runs the pipeline over units: load, tokenize, parse, resolve.
// Tokenizing is per-unit parallel; parsing feeds one shared builder and
// resolution needs the whole tree, so both run on one goroutine.
func Check(ctx context.Context, paths []string, opts CheckOptions) (*CheckResult, error) {
	opts.normalize()

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	ph := phaseRunner{timer: timer, observer: opts.Observer}

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	res := &CheckResult{Bag: bag, Manifest: opts.Manifest}

	if opts.Manifest != nil {
		opts.Manifest.Validate(rep)
	}

	// load: IO in parallel, FileSet registration in unit order
	loadIdx := ph.begin("load", len(paths))
	fs := source.NewFileSet()
	files, err := loadUnits(ctx, fs, paths, opts.Jobs)
	ph.end(loadIdx, "load", len(paths), "")
	if err != nil {
		return nil, err
	}
	res.FileSet = fs

	if opts.Cache != nil && opts.Stage == StageAll {
		if hitCachedClean(opts.Cache, fs, files, opts.Manifest) {
			res.CachedClean = true
			ph.finish(bag, opts)
			return res, nil
		}
	}

	tokIdx := ph.begin("tokenize", len(files))
	tokens, err := tokenizeUnits(ctx, fs, files, opts, bag)
	ph.end(tokIdx, "tokenize", len(files), fmt.Sprintf("tokens=%d diags=%d", tokens, bag.Len()))
	if err != nil {
		return nil, err
	}
	if opts.Stage == StageTokenize {
		ph.finish(bag, opts)
		return res, nil
	}

	parseIdx := ph.begin("parse", len(files))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	astFiles, err := parseUnits(fs, files, builder, opts, bag)
	ph.end(parseIdx, "parse", len(files), fmt.Sprintf("items=%d", totalItems(builder, astFiles)))
	if err != nil {
		return nil, err
	}
	res.Builder = builder
	res.Files = astFiles
	if opts.Stage == StageSyntax {
		ph.finish(bag, opts)
		return res, nil
	}

	resolveIdx := ph.begin("resolve", len(files))
	res.Resolution = resolver.Resolve(builder, astFiles, nil, ResolverConfig(opts.Manifest), rep)
	ph.end(resolveIdx, "resolve", len(files), fmt.Sprintf("bindings=%d", len(res.Resolution.Bindings)))

	if opts.Cache != nil && !bag.HasErrors() && !bag.HasWarnings() {
		storeCleanRun(opts.Cache, fs, files, opts.Manifest)
	}

	ph.finish(bag, opts)
	return res, nil
}

// CheckDir discovers every unit under dir, loads the nearest manifest
// and checks the whole tree.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*CheckResult, error) {
	if opts.Manifest == nil {
		m, ok, err := project.LoadFromDir(dir)
		if err != nil {
			return nil, err
		}
		if ok {
			opts.Manifest = m
		}
	}
	paths, err := project.DiscoverSources(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files under %s", project.SourceExt, dir)
	}
	return Check(ctx, paths, opts)
}

// ResolverConfig maps the manifest's [stdlib] table onto the resolver.
func ResolverConfig(m *project.Manifest) resolver.Config {
	if m == nil {
		return resolver.Config{}
	}
	return resolver.Config{
		EnabledStd:    m.Stdlib.Std,
		DisabledCore:  m.Stdlib.DisableCore,
		PreludeModule: m.Stdlib.PreludeModule,
	}
}

func loadUnits(ctx context.Context, fs *source.FileSet, paths []string, jobs int) ([]source.FileID, error) {
	contents := make([][]byte, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// registration stays ordered so FileIDs are stable run to run
	files := make([]source.FileID, len(paths))
	for i, path := range paths {
		files[i] = fs.Add(path, contents[i], 0)
	}
	return files, nil
}

// tokenizeUnits scans every unit in parallel, each into its own bag,
// then merges the bags in unit order. Returns the total token count.
func tokenizeUnits(ctx context.Context, fs *source.FileSet, files []source.FileID, opts CheckOptions, bag *diag.Bag) (int, error) {
	bags := make([]*diag.Bag, len(files))
	counts := make([]int, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, fileID := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			unitBag := diag.NewBag(opts.MaxDiagnostics)
			lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: unitBag}})
			for {
				tok := lx.Next()
				counts[i]++
				if tok.Kind == token.EOF {
					break
				}
			}
			bags[i] = unitBag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for i, unitBag := range bags {
		total += counts[i]
		if unitBag != nil && unitBag.Len() > 0 {
			bag.Merge(unitBag)
		}
	}
	return total, nil
}

// parseUnits feeds every unit into the shared builder. Lexers run
// without a reporter here: lexical findings were already collected by
// the tokenize phase and would double up.
func parseUnits(fs *source.FileSet, files []source.FileID, builder *ast.Builder, opts CheckOptions, bag *diag.Bag) ([]ast.FileID, error) {
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}

	astFiles := make([]ast.FileID, 0, len(files))
	for _, fileID := range files {
		current, err := safecast.Conv[uint](bag.ErrorCount())
		if err != nil {
			return nil, err
		}
		lx := lexer.New(fs.Get(fileID), lexer.Options{})
		result := parser.ParseFile(fs, lx, builder, parser.Options{
			Reporter:      diag.BagReporter{Bag: bag},
			MaxErrors:     maxErrors,
			CurrentErrors: current,
		})
		astFiles = append(astFiles, result.File)
	}
	return astFiles, nil
}

func totalItems(builder *ast.Builder, files []ast.FileID) int {
	n := 0
	for _, id := range files {
		if f := builder.File(id); f != nil {
			n += len(f.Items)
		}
	}
	return n
}

// phaseRunner feeds both the timer and the live observer.
type phaseRunner struct {
	timer    *observ.Timer
	observer PhaseObserver
}

func (p *phaseRunner) begin(name string, units int) int {
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart, Units: units})
	}
	if p.timer == nil {
		return -1
	}
	return p.timer.Begin(name)
}

func (p *phaseRunner) end(idx int, name string, units int, note string) {
	if p.timer != nil && idx >= 0 {
		p.timer.End(idx, note)
	}
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseEnd, Units: units})
	}
}

func (p *phaseRunner) finish(bag *diag.Bag, opts CheckOptions) {
	if p.timer == nil || !opts.EnableTimings {
		return
	}
	rep := p.timer.Report()
	appendTimingDiagnostic(bag, timingPayload{
		Kind:    "check",
		TotalMS: rep.TotalMS,
		Phases:  rep.Phases,
	})
}
