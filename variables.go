package greenflag

import (
	"fmt"
	"strconv"
)

// Variable is a named number. Variables declared on the stage are global;
// variables declared on a sprite are local to it and to each of its clones.
// Visible marks the variable's stage monitor as shown.
type Variable struct {
	Name    string
	Value   float64
	Visible bool

	owner string // owner ID; StageOwnerID for globals
}

// Owner returns the owner ID of the target the variable belongs to.
func (v *Variable) Owner() string { return v.owner }

// String formats the variable for a monitor, "name: value".
func (v *Variable) String() string {
	return v.Name + ": " + strconv.FormatFloat(v.Value, 'g', -1, 64)
}

// variableSet keeps variables by name in declaration order.
type variableSet struct {
	byName map[string]*Variable
	order  []*Variable
}

func (s *variableSet) get(name string) (*Variable, bool) {
	v, ok := s.byName[name]
	return v, ok
}

// declare adds a variable or resets an existing one.
func (s *variableSet) declare(owner, name string, value float64, visible bool) *Variable {
	if v, ok := s.byName[name]; ok {
		v.Value, v.Visible = value, visible
		return v
	}
	if s.byName == nil {
		s.byName = make(map[string]*Variable)
	}
	v := &Variable{Name: name, Value: value, Visible: visible, owner: owner}
	s.byName[name] = v
	s.order = append(s.order, v)
	return v
}

// copyTo declares every variable of s on dst under owner, keeping values.
func (s *variableSet) copyTo(dst *variableSet, owner string) {
	for _, v := range s.order {
		dst.declare(owner, v.Name, v.Value, v.Visible)
	}
}

// DeclareVariable creates a global variable, or resets it when it already
// exists. An empty name is rejected.
func (rt *Runtime) DeclareVariable(name string, value float64, visible bool) (*Variable, error) {
	return rt.stageTarget.DeclareVariable(name, value, visible)
}

// DeclareVariable creates a variable local to a, or resets it when it
// already exists. On the stage target the variable is global. Clones
// created later start with a copy of a's local variables.
func (a *Actor) DeclareVariable(name string, value float64, visible bool) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("declare variable on %s: empty name", a.name)
	}
	if a.id == StageOwnerID {
		return a.rt.globals.declare(StageOwnerID, name, value, visible), nil
	}
	return a.vars.declare(a.id, name, value, visible), nil
}

// LookupVariable finds the variable name as seen from a: a's own local
// variable first, then the global one.
func (a *Actor) LookupVariable(name string) (*Variable, bool) {
	if v, ok := a.vars.get(name); ok {
		return v, true
	}
	return a.rt.globals.get(name)
}

// Variables returns every declared variable: globals first, then the
// locals of each sprite and clone in creation order.
func (rt *Runtime) Variables() []*Variable {
	out := append([]*Variable(nil), rt.globals.order...)
	for _, a := range rt.actors {
		out = append(out, a.vars.order...)
	}
	return out
}

// --- Variable blocks ---

// variable resolves name for a variable block, logging when it is unknown.
func (c *ScriptContext) variable(block, name string) *Variable {
	v, ok := c.actor.LookupVariable(name)
	if !ok {
		c.rt.log.Warn().Str("block", block).Str("variable", name).
			Str("thread", string(c.thread.id)).Str("owner", c.thread.owner).
			Msg("unresolved variable")
		return nil
	}
	return v
}

func (c *ScriptContext) variableChanged(v *Variable) {
	c.rt.emit(RuntimeEvent{Kind: EventVariableChanged, OwnerID: v.owner, Variable: v.Name, Value: v.Value})
}

// SetVariable sets the variable name to value.
func (c *ScriptContext) SetVariable(name string, value float64) {
	if v := c.variable("set variable", name); v != nil {
		v.Value = value
		c.variableChanged(v)
	}
}

// ChangeVariable adds delta to the variable name.
func (c *ScriptContext) ChangeVariable(name string, delta float64) {
	if v := c.variable("change variable", name); v != nil {
		v.Value += delta
		c.variableChanged(v)
	}
}

// ShowVariable shows the monitor of the variable name.
func (c *ScriptContext) ShowVariable(name string) {
	if v := c.variable("show variable", name); v != nil {
		v.Visible = true
	}
}

// HideVariable hides the monitor of the variable name.
func (c *ScriptContext) HideVariable(name string) {
	if v := c.variable("hide variable", name); v != nil {
		v.Visible = false
	}
}

// Variable reports the value of the variable name, or 0 when it is unknown.
func (c *ScriptContext) Variable(name string) float64 {
	if v, ok := c.actor.LookupVariable(name); ok {
		return v.Value
	}
	return 0
}

// MonitorLines returns the text of every shown variable monitor, in
// Variables order. Local variables are prefixed with their sprite's name.
func (rt *Runtime) MonitorLines() []string {
	var lines []string
	for _, v := range rt.Variables() {
		if !v.Visible {
			continue
		}
		line := v.String()
		if a, ok := rt.byOwner[v.owner]; ok && v.owner != StageOwnerID {
			line = a.name + ": " + line
		}
		lines = append(lines, line)
	}
	return lines
}
