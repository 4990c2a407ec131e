package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chrisuehlinger/scriptdom/binding"
	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/chrisuehlinger/scriptdom/html"
	"github.com/chrisuehlinger/scriptdom/js"
)

// page is a parsed document bound to a script executor.
type page struct {
	doc      *dom.Document
	registry *binding.Registry
	exec     *js.ScriptExecutor
}

// openPage parses the HTML at path ("-" reads stdin) and binds it to a new
// script executor.
func (a *app) openPage(path string, stdin io.Reader) (*page, error) {
	doc, err := a.parse(path, stdin)
	if err != nil {
		return nil, err
	}

	registry := binding.NewRegistry(binding.WithLogger(a.logger), binding.WithGoAccessors())
	exec := js.NewScriptExecutor(js.NewRuntime(a.logger), registry, a.logger)
	if err := exec.SetupDocument(doc); err != nil {
		return nil, fmt.Errorf("failed to bind document: %w", err)
	}
	return &page{doc: doc, registry: registry, exec: exec}, nil
}

func (a *app) parse(path string, stdin io.Reader) (*dom.Document, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open page: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := html.ParseReader(r)
	if err != nil {
		return nil, err
	}
	doc.SetHandlerPrefix(a.cfg.Script.HandlerPrefix)
	return doc, nil
}

// runScripts executes the inline scripts, unless disabled, and then the
// event loop. Script errors are logged and returned together.
func (a *app) runScripts(ctx context.Context, p *page) error {
	var errs []error
	if a.cfg.Script.RunInlineScripts {
		errs = p.exec.ExecuteScripts(p.doc)
	} else {
		a.logger.Debug("inline scripts disabled")
	}
	if err := a.runEventLoop(ctx, p); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// runEventLoop runs pending timers until none remain or the configured
// timeout passes. Reaching the timeout is not an error.
func (a *app) runEventLoop(ctx context.Context, p *page) error {
	timeout := a.cfg.Script.EventLoopTimeout
	if timeout == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := p.exec.RunEventLoop(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		a.logger.Warn("event loop timed out with pending timers", "timeout", timeout)
		return nil
	}
	return err
}
