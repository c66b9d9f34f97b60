package interp

import (
	"strconv"
)

// isTruthy implements Lox truthiness: nil and false are false, every
// other value (including 0 and the empty string) is true.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox `==`: nil only equals nil, numbers/strings/bools
// compare by value, and everything else (functions, classes, instances)
// compares by reference identity via Go's own `==` on the dynamic value.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	if aIsNum != bIsNum {
		return false
	}
	return a == b
}

// stringify renders a value the way `print` writes it to stdout.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		// FormatFloat's shortest ('-1' precision) representation already
		// omits a trailing ".0" for integral values.
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case *Function:
		return "<fn " + v.decl.Name.Lexeme + ">"
	case *NativeFunction:
		return "<native fn " + v.name + ">"
	case *Class:
		return v.Name
	case *Instance:
		return v.class.Name + " instance"
	default:
		return "<unknown>"
	}
}

