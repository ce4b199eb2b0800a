package handler

// ActionSource indicates where an action originated.
type ActionSource uint8

const (
	// SourceCommand is an action invoked by name (command palette, CLI).
	SourceCommand ActionSource = iota
	// SourceKeymap is an action bound to a key sequence.
	SourceKeymap
	// SourceScript is an action issued by a script.
	SourceScript
)

// String returns a string representation of the source.
func (s ActionSource) String() string {
	switch s {
	case SourceCommand:
		return "command"
	case SourceKeymap:
		return "keymap"
	case SourceScript:
		return "script"
	default:
		return "unknown"
	}
}

// Action is a named command request.
type Action struct {
	// Name is the command identifier (e.g., "editor.swapSelections").
	Name string

	// Args contains command-specific arguments.
	Args map[string]any

	// Source indicates where this action originated.
	Source ActionSource
}

// NewAction creates an action invoked by name.
func NewAction(name string) Action {
	return Action{Name: name, Source: SourceCommand}
}

// WithArg returns a copy of the action with an argument set.
func (a Action) WithArg(key string, value any) Action {
	args := make(map[string]any, len(a.Args)+1)
	for k, v := range a.Args {
		args[k] = v
	}
	args[key] = value
	a.Args = args
	return a
}

// WithSource returns a copy of the action with the specified source.
func (a Action) WithSource(source ActionSource) Action {
	a.Source = source
	return a
}

// Arg returns an argument value.
func (a Action) Arg(key string) (any, bool) {
	v, ok := a.Args[key]
	return v, ok
}
