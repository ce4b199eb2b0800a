// Package app wires configuration, logging, command dispatch and scripting
// around a single open document.
package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/swapsel/internal/config"
	"github.com/dshills/swapsel/internal/dispatcher"
	"github.com/dshills/swapsel/internal/dispatcher/handler"
	editorhandler "github.com/dshills/swapsel/internal/dispatcher/handlers/editor"
	"github.com/dshills/swapsel/internal/engine"
	"github.com/dshills/swapsel/internal/engine/buffer"
	"github.com/dshills/swapsel/internal/engine/cursor"
	"github.com/dshills/swapsel/internal/plugin/api"
)

// Application coordinates the components around one open document.
type Application struct {
	mu sync.RWMutex

	config     *config.Config
	logger     *Logger
	dispatcher *dispatcher.Dispatcher
	scripts    *api.Runner

	document *Document

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML configuration file. Empty uses
	// the built-in defaults.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// ReadOnly opens documents read-only regardless of configuration.
	ReadOnly bool

	// LookupEnv reads SWAPSEL_* overrides. Defaults to os.LookupEnv.
	LookupEnv config.LookupFunc
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes the components in dependency order.
func (app *Application) bootstrap() error {
	cfg, err := app.loadConfig()
	if err != nil {
		return &ComponentError{Component: "config", Action: "load", Err: err}
	}
	app.config = cfg

	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Logging.Level),
		Output: app.opts.LogOutput,
		Prefix: cfg.Logging.Prefix,
	})

	app.dispatcher = dispatcher.New(dispatcher.Config{
		EnableMetrics:    cfg.Dispatcher.EnableMetrics,
		RecoverFromPanic: cfg.Dispatcher.RecoverFromPanic,
	})
	app.dispatcher.RegisterNamespace(editorhandler.Namespace, editorhandler.NewCombinedHandler())
	logHook := dispatcher.NewLoggingHook(app.logger.WithComponent("dispatcher").Debug)
	app.dispatcher.RegisterPreHook(logHook)
	app.dispatcher.RegisterPostHook(logHook)

	registry, err := api.DefaultRegistry(&api.Context{
		Selections: scriptSelections{app},
		Swapper:    scriptSwapper{app},
	})
	if err != nil {
		return &ComponentError{Component: "scripts", Action: "register modules", Err: err}
	}
	app.scripts = api.NewRunner(registry,
		api.WithTimeout(time.Duration(cfg.Plugin.TimeoutMS)*time.Millisecond),
		api.WithDisabled(!cfg.Plugin.Enabled),
	)

	app.logger.Debug("initialized (config %q)", app.opts.ConfigPath)
	return nil
}

// loadConfig layers defaults, the config file, SWAPSEL_* variables and
// the options, in that order.
func (app *Application) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if app.opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(app.opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	lookup := app.opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnvFrom(lookup); err != nil {
		return nil, err
	}

	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.ReadOnly {
		cfg.Editor.ReadOnly = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ============================================================================
// Documents
// ============================================================================

// Open reads the file at path and makes it the active document.
func (app *Application) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	return app.activate(absPath, "", content)
}

// OpenReader reads r as a scratch document named name and makes it active.
func (app *Application) OpenReader(name string, r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, NewOperationError("open", name, err)
	}
	return app.activate("", name, content)
}

func (app *Application) activate(path, name string, content []byte) (*Document, error) {
	target := path
	if target == "" {
		target = name
	}

	opts, err := app.engineOptions(content)
	if err != nil {
		return nil, NewOperationError("open", target, err)
	}

	eng, err := engine.NewFromReader(bytes.NewReader(content), opts...)
	if err != nil {
		return nil, NewOperationError("open", target, err)
	}

	doc := NewDocument(path, name, eng)

	app.mu.Lock()
	app.document = doc
	app.mu.Unlock()

	app.dispatcher.SetEngine(eng)
	app.dispatcher.SetFilePath(path)

	app.logger.WithField("document", doc.ID).Info("opened %s (%d bytes, %s)", doc.Name, eng.Len(), eng.LineEnding())
	return doc, nil
}

// engineOptions builds engine options from the editor configuration.
// With "auto" the content is kept byte for byte, so selection offsets
// given against the input stay valid.
func (app *Application) engineOptions(content []byte) ([]engine.Option, error) {
	editorCfg := app.config.Editor

	opts := []engine.Option{
		engine.WithMaxUndoEntries(editorCfg.UndoLimit),
	}

	if editorCfg.LineEnding == "auto" {
		opts = append(opts,
			engine.WithLineEnding(buffer.DetectLineEnding(string(content))),
			engine.WithVerbatimContent(),
		)
	} else {
		le, err := buffer.ParseLineEnding(editorCfg.LineEnding)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithLineEnding(le))
	}
	if editorCfg.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return opts, nil
}

// Document returns the active document, or nil.
func (app *Application) Document() *Document {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.document
}

func (app *Application) activeDocument() (*Document, error) {
	doc := app.Document()
	if doc == nil {
		return nil, ErrNoActiveDocument
	}
	return doc, nil
}

// ============================================================================
// Editing
// ============================================================================

// Select replaces the active document's selections.
func (app *Application) Select(sels ...cursor.Selection) error {
	doc, err := app.activeDocument()
	if err != nil {
		return err
	}
	doc.Engine.SetSelections(sels...)
	return nil
}

// CanSwap reports whether the active document has exactly two non-empty
// selections.
func (app *Application) CanSwap() bool {
	if app.Document() == nil {
		return false
	}
	return app.dispatcher.QueryStatus(editorhandler.ActionSwapSelections).Enabled
}

// Swap exchanges the texts of the two non-empty selections as one undoable
// edit. It returns false, nil when the selections do not form a pair, and
// the buffer's error unchanged when the edit is rejected.
func (app *Application) Swap() (bool, error) {
	return app.swap(handler.SourceCommand)
}

func (app *Application) swap(source handler.ActionSource) (bool, error) {
	doc, err := app.activeDocument()
	if err != nil {
		return false, err
	}

	action := handler.NewAction(editorhandler.ActionSwapSelections).WithSource(source)
	result := app.dispatcher.Dispatch(action)

	switch result.Status {
	case handler.StatusError:
		app.logger.WithField("document", doc.ID).Warn("swap failed: %v", result.Error)
		return false, result.Error
	case handler.StatusOK:
		swapped := result.GetDataBool(editorhandler.DataSwapped)
		if swapped {
			doc.SetModified(true)
		}
		return swapped, nil
	default:
		return false, nil
	}
}

// Undo reverts the last edit. It returns false, nil when there is nothing
// to undo.
func (app *Application) Undo() (bool, error) {
	return app.runHistory(editorhandler.ActionUndo)
}

// Redo re-applies the last undone edit. It returns false, nil when there
// is nothing to redo.
func (app *Application) Redo() (bool, error) {
	return app.runHistory(editorhandler.ActionRedo)
}

func (app *Application) runHistory(actionName string) (bool, error) {
	doc, err := app.activeDocument()
	if err != nil {
		return false, err
	}

	result := app.dispatcher.Dispatch(handler.NewAction(actionName))
	switch result.Status {
	case handler.StatusError:
		return false, result.Error
	case handler.StatusOK:
		doc.SetModified(true)
		return true, nil
	default:
		return false, nil
	}
}

// ============================================================================
// Scripts
// ============================================================================

// RunScript runs Lua source against the active document.
func (app *Application) RunScript(ctx context.Context, name, src string) error {
	if _, err := app.activeDocument(); err != nil {
		return err
	}

	app.logger.WithComponent("scripts").Debug("running %s", name)
	if err := app.scripts.Run(ctx, name, src); err != nil {
		return NewOperationError("run script", name, err)
	}
	return nil
}

// RunScriptFile runs the Lua file at path against the active document.
func (app *Application) RunScriptFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return NewOperationError("run script", path, err)
	}
	return app.RunScript(ctx, filepath.Base(path), string(src))
}

// scriptSelections exposes the active document's selections to scripts.
type scriptSelections struct {
	app *Application
}

func (s scriptSelections) SelectedSpans() []buffer.Span {
	if doc := s.app.Document(); doc != nil {
		return doc.Engine.SelectedSpans()
	}
	return nil
}

func (s scriptSelections) SelectionCount() int {
	if doc := s.app.Document(); doc != nil {
		return doc.Engine.SelectionCount()
	}
	return 0
}

func (s scriptSelections) SetSelections(sels ...cursor.Selection) error {
	return s.app.Select(sels...)
}

// scriptSwapper dispatches swaps requested by scripts.
type scriptSwapper struct {
	app *Application
}

func (s scriptSwapper) CanSwap() bool {
	return s.app.CanSwap()
}

func (s scriptSwapper) Swap() (bool, error) {
	return s.app.swap(handler.SourceScript)
}

// ============================================================================
// Output
// ============================================================================

// WriteTo writes the active document's text to w.
func (app *Application) WriteTo(w io.Writer) (int64, error) {
	doc, err := app.activeDocument()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, doc.Content())
	return int64(n), err
}

// Save writes the active document back to its file, keeping its mode.
func (app *Application) Save() error {
	doc, err := app.activeDocument()
	if err != nil {
		return err
	}
	if doc.IsScratch() {
		return NewOperationError("save", doc.Name, ErrScratchDocument)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(doc.Path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return NewOperationError("save", doc.Path, err)
	}

	if err := os.WriteFile(doc.Path, []byte(doc.Content()), mode); err != nil {
		return NewOperationError("save", doc.Path, err)
	}
	doc.SetModified(false)
	app.logger.WithField("document", doc.ID).Info("saved %s", doc.Path)
	return nil
}

// LogMetrics logs per-action dispatch statistics at info level. It does
// nothing unless dispatcher metrics are enabled.
func (app *Application) LogMetrics() {
	m := app.dispatcher.Metrics()
	if m == nil {
		return
	}

	log := app.logger.WithComponent("metrics")
	snap := m.Snapshot()
	log.Info("%d dispatches, %d errors, %d no-ops, %d panics", snap.TotalDispatches, snap.TotalErrors, snap.TotalNoOps, snap.TotalPanics)
	for _, am := range m.TopActions(metricsTopN) {
		log.Info("%s: %d dispatches, avg %s, max %s", am.Name, am.DispatchCount, am.AverageActionDuration(), am.MaxDuration)
	}
}

const metricsTopN = 5

// ============================================================================
// Accessors
// ============================================================================

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}
