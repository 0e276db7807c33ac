package config

// Variable is a textual expression with a memoized resolved value.
// The expression never changes after load; only the cache does.
type Variable struct {
	Expr  string
	value *string
}

// NewVariable creates an unevaluated variable from an expression.
func NewVariable(expr string) *Variable {
	return &Variable{Expr: expr}
}

// NewVariableValue creates a variable whose value is already known.
func NewVariableValue(value string) *Variable {
	v := &Variable{Expr: value}
	v.SetValue(value)
	return v
}

// Value returns the cached value and whether one is present.
func (v *Variable) Value() (string, bool) {
	if v.value == nil {
		return "", false
	}
	return *v.value, true
}

// SetValue caches the resolved value.
func (v *Variable) SetValue(value string) {
	v.value = &value
}

// Reset clears the cached value so the next evaluation recomputes it.
func (v *Variable) Reset() {
	v.value = nil
}

// Clone returns an independent copy, cache included.
func (v *Variable) Clone() *Variable {
	clone := &Variable{Expr: v.Expr}
	if v.value != nil {
		clone.SetValue(*v.value)
	}
	return clone
}

// NamedVariable is a Variable with a name. Used for variables, remotes
// and gitconfig entries.
type NamedVariable struct {
	Name string
	Variable
}

// NewNamedVariable creates a named, unevaluated variable.
func NewNamedVariable(name, expr string) *NamedVariable {
	return &NamedVariable{Name: name, Variable: Variable{Expr: expr}}
}

// Clone returns an independent copy.
func (n *NamedVariable) Clone() *NamedVariable {
	return &NamedVariable{Name: n.Name, Variable: *n.Variable.Clone()}
}

// MultiVariable is a name plus an ordered sequence of variables.
// Multi-line commands and PATH-like environment chains use this shape.
type MultiVariable struct {
	Name   string
	Values []*Variable
}

// NewMultiVariable creates a multi-valued variable from expressions.
func NewMultiVariable(name string, exprs ...string) *MultiVariable {
	values := make([]*Variable, 0, len(exprs))
	for _, expr := range exprs {
		values = append(values, NewVariable(expr))
	}
	return &MultiVariable{Name: name, Values: values}
}

// Clone returns an independent copy.
func (m *MultiVariable) Clone() *MultiVariable {
	values := make([]*Variable, 0, len(m.Values))
	for _, v := range m.Values {
		values = append(values, v.Clone())
	}
	return &MultiVariable{Name: m.Name, Values: values}
}

func cloneNamedVariables(vars []*NamedVariable) []*NamedVariable {
	result := make([]*NamedVariable, 0, len(vars))
	for _, v := range vars {
		result = append(result, v.Clone())
	}
	return result
}

func cloneMultiVariables(vars []*MultiVariable) []*MultiVariable {
	result := make([]*MultiVariable, 0, len(vars))
	for _, v := range vars {
		result = append(result, v.Clone())
	}
	return result
}

func resetNamedVariables(vars []*NamedVariable) {
	for _, v := range vars {
		v.Reset()
	}
}

func resetMultiVariables(vars []*MultiVariable) {
	for _, m := range vars {
		for _, v := range m.Values {
			v.Reset()
		}
	}
}

// findNamed returns the first variable with the given name.
func findNamed(vars []*NamedVariable, name string) *NamedVariable {
	for _, v := range vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}
