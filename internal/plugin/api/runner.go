package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Runner executes scripts in fresh sandboxed Lua states.
type Runner struct {
	registry *Registry
	timeout  time.Duration
	disabled bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout bounds each script's run time. Zero means no limit.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithDisabled makes every Run fail with ErrScriptsDisabled.
func WithDisabled(disabled bool) RunnerOption {
	return func(r *Runner) {
		r.disabled = disabled
	}
}

// NewRunner creates a runner that injects the registry's modules.
func NewRunner(registry *Registry, opts ...RunnerOption) *Runner {
	r := &Runner{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes src as the chunk named chunk.
// Failures are reported as *ScriptError; a cancelled or expired context
// stops the script and is reachable through errors.Is.
func (r *Runner) Run(ctx context.Context, chunk, src string) error {
	if r.disabled {
		return ErrScriptsDisabled
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if err := openSafeLibraries(L); err != nil {
		return fmt.Errorf("opening lua libraries: %w", err)
	}
	if err := r.registry.InjectAll(L); err != nil {
		return err
	}
	L.SetContext(ctx)

	fn, err := L.Load(strings.NewReader(src), chunk)
	if err != nil {
		return &ScriptError{Chunk: chunk, Message: err.Error(), Err: err}
	}

	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return scriptError(ctx, chunk, err)
	}
	return nil
}

func scriptError(ctx context.Context, chunk string, err error) *ScriptError {
	se := &ScriptError{Chunk: chunk, Message: err.Error(), Err: err}

	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		se.Message = apiErr.Object.String()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		se.Err = ctxErr
	}
	return se
}

// openSafeLibraries opens the base, package, table, string and math
// libraries, then removes file and string loading.
//
// Not opened: io, os, debug, channel, coroutine.
func openSafeLibraries(L *lua.LState) error {
	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return err
		}
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	// require only resolves package.preload.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}
	return nil
}
