// Package generator derives JSON codecs for sealed interface families: Go
// interfaces closed by an unexported marker method. It discovers the variant
// set with go/types, classifies records and singletons, and emits tagged
// union codecs as colocated generated files.
package generator

import (
	"fmt"

	"go.uber.org/zap"
)

// Config controls one generation run.
type Config struct {
	// Dir is the working directory package patterns resolve against.
	Dir string

	// Patterns are the package patterns to scan, ./... by default.
	Patterns []string

	// Requests are the families to derive. When empty, the scanned packages
	// are searched for //sealedgen:family directives instead.
	Requests []Request

	// Suffix overrides the generated file suffix.
	Suffix string

	// Output redirects all generated code into one file instead of
	// colocating it. All requested families must share a package.
	Output string

	// DryRun renders everything without writing files.
	DryRun bool
}

// Report summarizes a completed run.
type Report struct {
	Families []*Family
	Files    []string
}

// Generator derives JSON codecs for sealed interface families.
type Generator struct {
	cfg Config
	log *zap.Logger
}

// New creates a generator. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{cfg: cfg, log: log}
}

// Resolve loads the configured packages and discovers every requested family
// without writing anything.
func (g *Generator) Resolve() ([]*Family, error) {
	srcs, err := Load(g.cfg.Dir, g.cfg.Patterns...)
	if err != nil {
		return nil, err
	}
	g.log.Debug("loaded packages", zap.Int("packages", len(srcs)))

	requests := g.cfg.Requests
	if len(requests) == 0 {
		requests, err = FindDirectives(srcs)
		if err != nil {
			return nil, err
		}
		g.log.Debug("scanned for directives", zap.Int("requests", len(requests)))
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no families requested: pass --type or mark interfaces with //%s", DirectiveMarker)
	}

	fams := make([]*Family, 0, len(requests))
	seen := make(map[string]bool, len(requests))
	for _, req := range requests {
		if seen[req.Type] {
			return nil, fmt.Errorf("family %s requested more than once", req.Type)
		}
		seen[req.Type] = true

		fam, err := Discover(srcs, req.Type)
		if err != nil {
			return nil, err
		}
		if req.Tag != "" {
			fam.TagField = req.Tag
		}
		if req.Ops != "" {
			fam.Ops = req.Ops
		}
		if len(fam.Variants) == 0 {
			g.log.Warn("family has no variants; its decoder will reject every input",
				zap.String("family", fam.Name))
		}
		g.log.Debug("discovered family",
			zap.String("family", fam.Name),
			zap.String("tag", fam.TagField),
			zap.String("ops", string(fam.Ops)),
			zap.Int("variants", len(fam.Variants)),
			zap.Strings("intermediates", fam.Intermediates))
		fams = append(fams, fam)
	}
	return fams, nil
}

// Run discovers the requested families and writes their generated files.
func (g *Generator) Run() (*Report, error) {
	fams, err := g.Resolve()
	if err != nil {
		return nil, err
	}
	rep := &Report{Families: fams}

	switch {
	case g.cfg.Output != "":
		content, err := RenderSingle(fams)
		if err != nil {
			return nil, err
		}
		rep.Files = []string{g.cfg.Output}
		if g.cfg.DryRun {
			g.log.Info("dry run: would write file",
				zap.String("path", g.cfg.Output), zap.Int("bytes", len(content)))
			return rep, nil
		}
		if err := writeFile(g.cfg.Output, content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", g.cfg.Output, err)
		}

	case g.cfg.DryRun:
		outs, err := RenderColocated(fams, g.cfg.Suffix)
		if err != nil {
			return nil, err
		}
		for _, out := range outs {
			g.log.Info("dry run: would write file",
				zap.String("path", out.Path), zap.Int("bytes", len(out.Content)))
			rep.Files = append(rep.Files, out.Path)
		}
		return rep, nil

	default:
		files, err := GenerateColocatedFiles(fams, g.cfg.Suffix)
		if err != nil {
			return nil, err
		}
		rep.Files = files
	}

	for _, file := range rep.Files {
		g.log.Info("wrote generated file", zap.String("path", file))
	}
	return rep, nil
}
