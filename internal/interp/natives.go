package interp

// defineNatives installs the builtins every interpreter starts with into
// the global environment.
func (i *Interpreter) defineNatives() {
	i.globals.Define("clock", NewNativeFunction("clock", 0, func(_ *Interpreter, _ []any) (any, error) {
		return float64(i.clock().UnixNano()) / 1e9, nil
	}))
}
