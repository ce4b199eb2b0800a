// Package dispatcher routes named actions to handlers and coordinates execution.
//
// The dispatcher is the command plumbing between a host (the CLI, a script,
// a key binding) and editor functionality. It receives actions by name and
// routes them to handlers based on exact names and namespace prefixes.
//
// # Architecture
//
// The dispatcher uses a two-tier routing system:
//
//  1. Namespace Router: Routes actions by namespace prefix (e.g.,
//     "editor.swapSelections" is routed to the "editor" namespace handler).
//
//  2. Handler Registry: Maps exact action names to handlers. Multiple handlers
//     can be registered for the same action, sorted by priority.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built around the active engine
//  2. Pre-dispatch hooks are called (can modify or cancel the action)
//  3. The router finds the appropriate handler
//  4. The handler is executed (with optional panic recovery)
//  5. Post-dispatch hooks are called
//  6. Metrics are recorded (if enabled)
//
// Unknown actions fail with an *UnknownActionError that matches
// ErrUnknownAction and carries the closest known action name.
//
// # Command Status
//
// QueryStatus asks a handler whether its command should currently be shown
// and enabled, without running it. Handlers opt in by implementing
// handler.StatusQuerier:
//
//	status := d.QueryStatus(editor.ActionSwapSelections)
//	if status.Enabled {
//	    result := d.Dispatch(handler.NewAction(editor.ActionSwapSelections))
//	}
//
// # Usage
//
//	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
//	d.RegisterNamespace("editor", editor.NewCombinedHandler())
//	d.SetEngine(eng)
//
//	result := d.Dispatch(handler.NewAction(editor.ActionSwapSelections))
//	if result.IsError() {
//	    return result.Error
//	}
package dispatcher
