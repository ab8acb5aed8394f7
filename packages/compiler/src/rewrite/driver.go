package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"

	"wcc-go/packages/compiler/src/config"
	"wcc-go/packages/compiler/src/util"
)

var (
	// ErrParse is returned when the source is not valid TypeScript
	ErrParse = errors.New("cannot parse source")
	// ErrMalformedCallSite is returned when a then/catch call does not hold exactly one argument
	ErrMalformedCallSite = errors.New("malformed call site")
	// ErrReservedName is returned when a class already declares the collaborator name
	ErrReservedName = errors.New("reserved name already declared")
	// ErrUnsupportedConstructor is returned when the collaborator cannot be
	// threaded into the constructor of a class
	ErrUnsupportedConstructor = errors.New("unsupported constructor")
)

// RewriteError reports the class, and method when known, a rewrite failed in
type RewriteError struct {
	Class  string
	Method string
	Pos    *util.ParseLocation
	Err    error
}

// Error implements error
func (e *RewriteError) Error() string {
	where := "class " + e.Class
	if e.Method != "" {
		where += ", method " + e.Method
	}
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s: %v", e.Pos, where, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

// Unwrap returns the underlying error
func (e *RewriteError) Unwrap() error {
	return e.Err
}

// ClassReport summarizes the rewrite of one class
type ClassReport struct {
	Name     string
	Sites    int
	Injected bool
}

// Result represents the outcome of rewriting one file
type Result struct {
	Source  []byte
	Classes []ClassReport
	// Errors holds the classes skipped with ContinueOnError
	Errors []*RewriteError
}

// Changed reports whether any class was rewritten
func (r *Result) Changed() bool {
	for _, c := range r.Classes {
		if c.Sites > 0 {
			return true
		}
	}
	return false
}

// NameGenerator hands out `<prefix><n>` names that are not spelled
// anywhere in the file
type NameGenerator struct {
	prefix string
	taken  map[string]bool
	next   int
}

// NewNameGenerator creates a new NameGenerator
func NewNameGenerator(prefix string, taken map[string]bool) *NameGenerator {
	return &NameGenerator{prefix: prefix, taken: taken}
}

// Next returns a fresh name
func (g *NameGenerator) Next() string {
	for {
		name := g.prefix + strconv.Itoa(g.next)
		g.next++
		if !g.taken[name] {
			g.taken[name] = true
			return name
		}
	}
}

// Driver instruments the then/catch callbacks of every class of a file and
// threads the collaborator into the constructor of each instrumented class
type Driver struct {
	Collaborator    Param
	ResultPrefix    string
	Injector        Injector
	ContinueOnError bool
	Logger          *slog.Logger
}

// DriverOption is a function that modifies Driver
type DriverOption func(*Driver)

// WithInjector sets the statements injected at call sites
func WithInjector(injector Injector) DriverOption {
	return func(d *Driver) {
		d.Injector = injector
	}
}

// WithContinueOnError keeps rewriting the other classes when one fails
func WithContinueOnError(continueOnError bool) DriverOption {
	return func(d *Driver) {
		d.ContinueOnError = continueOnError
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.Logger = logger
	}
}

// NewDriver creates a new Driver from the collaborator settings of cfg.
// By default each call site calls `this.<collaborator>.<method>()`.
func NewDriver(cfg *config.CompilerConfig, opts ...DriverOption) *Driver {
	d := &Driver{
		Collaborator: Param{
			Scope: cfg.Collaborator.Scope,
			Name:  cfg.Collaborator.Name,
			Type:  cfg.Collaborator.Type,
		},
		ResultPrefix: cfg.ResultPrefix,
		Injector:     CallInjector(cfg.Collaborator.Name, cfg.Collaborator.Method),
		Logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RewriteSource parses src and rewrites every class in it. Classes are
// independent units: a nested class is rewritten on its own and its edits
// are carried into the text of the enclosing class.
func (d *Driver) RewriteSource(ctx context.Context, src []byte, url string) (*Result, error) {
	source, err := ParseSource(ctx, src, url)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	plan := NewEditPlan(source.Content)
	names := NewNameGenerator(d.ResultPrefix, source.Identifiers())
	result := &Result{}

	classes := source.Classes()
	reports := make(map[*Class]ClassReport, len(classes))
	ordered := append([]*Class(nil), classes...)
	sortInnermostFirst(ordered, func(c *Class) *sitter.Node { return c.Node })

	for _, c := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snapshot := plan.Snapshot()
		report, rerr := d.rewriteClass(source, c, plan, names)
		if rerr != nil {
			if !d.ContinueOnError {
				return nil, rerr
			}
			d.Logger.Warn("skipping class", slog.String("file", url), slog.String("error", rerr.Error()))
			plan.Restore(snapshot)
			result.Errors = append(result.Errors, rerr)
			report = ClassReport{Name: c.Name}
		}
		reports[c] = report
	}

	for _, c := range classes {
		result.Classes = append(result.Classes, reports[c])
	}
	result.Source = plan.Apply()
	return result, nil
}

func (d *Driver) rewriteClass(s *Source, c *Class, plan *EditPlan, names *NameGenerator) (ClassReport, *RewriteError) {
	report := ClassReport{Name: c.Name}

	var sites []*CallSite
	for _, m := range s.Methods(c) {
		sites = append(sites, s.CallSites(c, m)...)
	}
	if len(sites) == 0 {
		return report, nil
	}

	if member, err := checkReservedName(s, c, d.Collaborator.Name); err != nil {
		return report, &RewriteError{Class: c.Name, Pos: s.Location(member), Err: err}
	}

	for _, site := range sites {
		slot, err := site.Slot()
		if err != nil {
			return report, &RewriteError{Class: c.Name, Method: site.Method, Pos: s.Location(site.Call), Err: err}
		}
		callback, _ := Canonicalize(slot, plan)
		var write WriterFunc
		if d.Injector != nil {
			write = d.Injector(site)
		}
		plan.ReplaceNode(slot, Inject(callback, names.Next(), write))
		report.Sites++

		loc := s.Location(site.Call)
		d.Logger.Debug("rewrote call site",
			slog.String("file", s.URL),
			slog.String("class", c.Name),
			slog.String("method", site.Method),
			slog.String("property", site.Property),
			slog.Int("line", loc.Line),
			slog.Int("col", loc.Col))
	}

	if err := InjectParam(s, c, plan, d.Collaborator); err != nil {
		at := c.Node
		if ctor := s.Constructor(c); ctor != nil {
			at = ctor
		}
		return report, &RewriteError{Class: c.Name, Pos: s.Location(at), Err: err}
	}
	report.Injected = true
	d.Logger.Debug("injected collaborator",
		slog.String("file", s.URL),
		slog.String("class", c.Name),
		slog.String("param", d.Collaborator.String()),
		slog.Int("sites", report.Sites))
	return report, nil
}
