package mimic

import "reflect"

// Filter decides whether a mock registration applies to a particular set of
// call arguments. A nil Filter matches every call.
type Filter func(args Args) bool

// WhereArg matches calls whose named argument is present and equal to value.
// Equality is reflect.DeepEqual, so slice and map values compare by content.
func WhereArg(name string, value any) Filter {
	return func(args Args) bool {
		got, ok := args.Lookup(name)
		return ok && reflect.DeepEqual(got, value)
	}
}

// WhereArgFunc matches calls whose named argument is present and satisfies fn.
func WhereArgFunc(name string, fn func(value any) bool) Filter {
	return func(args Args) bool {
		got, ok := args.Lookup(name)
		return ok && fn(got)
	}
}

// HasArg matches calls that bind the named argument, whatever its value.
func HasArg(name string) Filter {
	return func(args Args) bool {
		return args.Has(name)
	}
}

// AllOf matches calls that satisfy every given filter.
func AllOf(filters ...Filter) Filter {
	return func(args Args) bool {
		for _, f := range filters {
			if f != nil && !f(args) {
				return false
			}
		}

		return true
	}
}

// AnyOf matches calls that satisfy at least one of the given filters.
func AnyOf(filters ...Filter) Filter {
	return func(args Args) bool {
		for _, f := range filters {
			if f == nil || f(args) {
				return true
			}
		}

		return false
	}
}
