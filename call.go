package mimic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Arg is a single bound argument. Name is empty for positional values.
type Arg struct {
	Name  string
	Value any
}

// Named creates a named argument.
func Named(name string, value any) Arg {
	return Arg{Name: name, Value: value}
}

// Positional creates a positional argument.
func Positional(value any) Arg {
	return Arg{Value: value}
}

// Args is the ordered sequence of bound arguments for one call.
type Args []Arg

// Get returns the value of the named argument, or nil when it is absent.
// When the same name is bound more than once, the last binding wins.
func (a Args) Get(name string) any {
	v, _ := a.Lookup(name)
	return v
}

// Lookup returns the value of the named argument and whether it is present.
// Use it when nil is a meaningful bound value.
func (a Args) Lookup(name string) (any, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Name == name {
			return a[i].Value, true
		}
	}

	return nil, false
}

// Has reports whether the named argument is present.
func (a Args) Has(name string) bool {
	_, ok := a.Lookup(name)
	return ok
}

// Positional returns the unnamed argument values in order.
func (a Args) Positional() []any {
	var vals []any

	for _, arg := range a {
		if arg.Name == "" {
			vals = append(vals, arg.Value)
		}
	}

	return vals
}

// Clone returns a copy of the argument sequence. Argument values themselves
// are shared; callers must not mutate them.
func (a Args) Clone() Args {
	if a == nil {
		return nil
	}

	out := make(Args, len(a))
	copy(out, a)

	return out
}

// String returns a simplified, shell-like rendering of the arguments.
func (a Args) String() string {
	var b strings.Builder

	for i, arg := range a {
		if i > 0 {
			b.WriteString(" ")
		}

		if arg.Name != "" {
			fmt.Fprintf(&b, "%s=", arg.Name)
		}

		val := fmt.Sprint(arg.Value)
		if strings.Contains(val, " ") {
			fmt.Fprintf(&b, "%q", val)
		} else {
			b.WriteString(val)
		}
	}

	return b.String()
}

// Call is a request to dispatch a named command with bound arguments.
type Call struct {
	Command string
	Args    Args
}

// NewCall creates a new Call for the given command and arguments.
func NewCall(command string, args ...Arg) Call {
	return Call{
		Command: command,
		Args:    args,
	}
}

// Validate checks that the call is well-formed.
func (c Call) Validate() error {
	if strings.TrimSpace(c.Command) == "" {
		return errors.New("call command cannot be empty")
	}

	return nil
}

// String returns a simplified string representation of the call.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}

	return c.Command + " " + c.Args.String()
}

// ParseCall parses a shell-style command line into a Call using shlex, so
// quoted arguments are handled correctly.
//
// Tokens of the form "-name value" or "--name=value" bind named arguments; a
// dash-prefixed token with no value binds the name to true (a switch). All
// other tokens bind positional values. Parsed values are strings (or bool for
// switches).
func ParseCall(line string) (Call, error) {
	parts, err := shlex.Split(line)
	if err != nil {
		return Call{}, fmt.Errorf("failed to parse call: %w", err)
	}

	if len(parts) == 0 {
		return Call{}, errors.New("empty call")
	}

	call := Call{Command: parts[0], Args: Args{}}

	rest := parts[1:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]

		if !isFlagToken(tok) {
			call.Args = append(call.Args, Positional(tok))
			continue
		}

		name := strings.TrimLeft(tok, "-")

		if eq := strings.IndexByte(name, '='); eq >= 0 {
			call.Args = append(call.Args, Named(name[:eq], name[eq+1:]))
			continue
		}

		if i+1 < len(rest) && !isFlagToken(rest[i+1]) {
			call.Args = append(call.Args, Named(name, rest[i+1]))
			i++

			continue
		}

		call.Args = append(call.Args, Named(name, true))
	}

	return call, nil
}

// isFlagToken reports whether tok introduces a named argument.
// A bare "-" or "--" is treated as a positional value.
func isFlagToken(tok string) bool {
	return strings.HasPrefix(tok, "-") && strings.TrimLeft(tok, "-") != ""
}
