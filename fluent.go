package mimic

// CallBuilder provides a fluent API for constructing Calls.
type CallBuilder struct {
	call Call
}

// CallTo creates a new CallBuilder for the given command.
func CallTo(command string) *CallBuilder {
	return &CallBuilder{
		call: Call{
			Command: command,
		},
	}
}

// Arg adds a single argument.
func (b *CallBuilder) Arg(arg Arg) *CallBuilder {
	b.call.Args = append(b.call.Args, arg)
	return b
}

// Args adds multiple arguments.
func (b *CallBuilder) Args(args ...Arg) *CallBuilder {
	b.call.Args = append(b.call.Args, args...)
	return b
}

// Named adds a named argument.
func (b *CallBuilder) Named(name string, value any) *CallBuilder {
	b.call.Args = append(b.call.Args, Named(name, value))
	return b
}

// Positional adds positional argument values.
func (b *CallBuilder) Positional(values ...any) *CallBuilder {
	for _, v := range values {
		b.call.Args = append(b.call.Args, Positional(v))
	}

	return b
}

// Build returns the constructed Call.
func (b *CallBuilder) Build() Call {
	return b.call
}
