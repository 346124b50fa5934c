package ast

import (
	"fmt"
	"strings"
)

// WhileStatement represents a while loop.
type WhileStatement struct {
	BaseNode
	Condition     Expression `json:"condition"`
	Body          Statement  `json:"body"`
	IsAlternative bool       `json:"is_alternative,omitempty"`
}

func (w *WhileStatement) GetChildren() []Node { return []Node{w.Condition, w.Body} }
func (w *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) %s", w.Condition.String(), w.Body.String())
}
func (w *WhileStatement) statementNode() {}

// DoWhileStatement represents a do/while loop.
type DoWhileStatement struct {
	BaseNode
	Body      Statement  `json:"body"`
	Condition Expression `json:"condition"`
}

func (d *DoWhileStatement) GetChildren() []Node { return []Node{d.Body, d.Condition} }
func (d *DoWhileStatement) String() string {
	return fmt.Sprintf("do %s while (%s);", d.Body.String(), d.Condition.String())
}
func (d *DoWhileStatement) statementNode() {}

// ForStatement represents a C-style for loop.
type ForStatement struct {
	BaseNode
	Init          []Expression `json:"init,omitempty"`
	Condition     []Expression `json:"condition,omitempty"`
	Update        []Expression `json:"update,omitempty"`
	Body          Statement    `json:"body"`
	IsAlternative bool         `json:"is_alternative,omitempty"`
}

func (f *ForStatement) GetChildren() []Node {
	var children []Node
	for _, e := range f.Init {
		children = append(children, e)
	}
	for _, e := range f.Condition {
		children = append(children, e)
	}
	for _, e := range f.Update {
		children = append(children, e)
	}
	children = append(children, f.Body)
	return children
}
func (f *ForStatement) String() string { return "for (...) " + f.Body.String() }
func (f *ForStatement) statementNode() {}

// ForeachStatement represents a foreach loop.
type ForeachStatement struct {
	BaseNode
	Iterable      Expression `json:"iterable"`
	Key           Expression `json:"key,omitempty"`
	Value         Expression `json:"value"`
	Body          Statement  `json:"body"`
	IsReference   bool       `json:"is_reference,omitempty"`
	IsAlternative bool       `json:"is_alternative,omitempty"`
}

func (f *ForeachStatement) GetChildren() []Node {
	children := []Node{f.Iterable}
	if f.Key != nil {
		children = append(children, f.Key)
	}
	children = append(children, f.Value, f.Body)
	return children
}
func (f *ForeachStatement) String() string {
	return fmt.Sprintf("foreach (%s as %s) %s", f.Iterable.String(), f.Value.String(), f.Body.String())
}
func (f *ForeachStatement) statementNode() {}

// SwitchStatement represents a switch statement. Cases are *CaseStatement nodes
// (already defined in node.go) in source order, default case (if any) marked IsDefault.
type SwitchStatement struct {
	BaseNode
	Discriminant  Expression       `json:"discriminant"`
	Cases         []*CaseStatement `json:"cases"`
	IsAlternative bool             `json:"is_alternative,omitempty"`
}

func (s *SwitchStatement) GetChildren() []Node {
	children := []Node{s.Discriminant}
	for _, c := range s.Cases {
		children = append(children, c)
	}
	return children
}
func (s *SwitchStatement) String() string {
	return fmt.Sprintf("switch (%s) { ... }", s.Discriminant.String())
}
func (s *SwitchStatement) statementNode() {}

// BreakStatement represents break [N];
type BreakStatement struct {
	BaseNode
	Level Expression `json:"level,omitempty"`
}

func (b *BreakStatement) GetChildren() []Node {
	if b.Level != nil {
		return []Node{b.Level}
	}
	return nil
}
func (b *BreakStatement) String() string { return "break;" }
func (b *BreakStatement) statementNode() {}

// ContinueStatement represents continue [N];
type ContinueStatement struct {
	BaseNode
	Level Expression `json:"level,omitempty"`
}

func (c *ContinueStatement) GetChildren() []Node {
	if c.Level != nil {
		return []Node{c.Level}
	}
	return nil
}
func (c *ContinueStatement) String() string { return "continue;" }
func (c *ContinueStatement) statementNode() {}

// GotoStatement represents goto label;
type GotoStatement struct {
	BaseNode
	Label string `json:"label"`
}

func (g *GotoStatement) GetChildren() []Node { return nil }
func (g *GotoStatement) String() string      { return fmt.Sprintf("goto %s;", g.Label) }
func (g *GotoStatement) statementNode()      {}

// ThrowStatement represents throw expr;
type ThrowStatement struct {
	BaseNode
	Argument Expression `json:"argument"`
}

func (t *ThrowStatement) GetChildren() []Node { return []Node{t.Argument} }
func (t *ThrowStatement) String() string      { return fmt.Sprintf("throw %s;", t.Argument.String()) }
func (t *ThrowStatement) statementNode()      {}

// CatchClause represents a single catch (Type $var) { ... } clause.
type CatchClause struct {
	BaseNode
	Types     []string   `json:"types"`
	Parameter *Variable  `json:"parameter,omitempty"`
	Body      *BlockStatement `json:"body"`
}

func (c *CatchClause) GetChildren() []Node {
	children := []Node{}
	if c.Parameter != nil {
		children = append(children, c.Parameter)
	}
	children = append(children, c.Body)
	return children
}
func (c *CatchClause) String() string {
	return fmt.Sprintf("catch (%s) %s", strings.Join(c.Types, "|"), c.Body.String())
}

// TryStatement represents try/catch/finally.
type TryStatement struct {
	BaseNode
	Body         *BlockStatement `json:"body"`
	CatchClauses []*CatchClause  `json:"catches,omitempty"`
	Finally      *BlockStatement `json:"finally,omitempty"`
}

func (t *TryStatement) GetChildren() []Node {
	children := []Node{t.Body}
	for _, c := range t.CatchClauses {
		children = append(children, c)
	}
	if t.Finally != nil {
		children = append(children, t.Finally)
	}
	return children
}
func (t *TryStatement) String() string { return "try " + t.Body.String() }
func (t *TryStatement) statementNode() {}

// EchoStatement represents echo expr, expr, ...;
type EchoStatement struct {
	BaseNode
	Arguments []Expression `json:"arguments"`
}

func (e *EchoStatement) GetChildren() []Node {
	var children []Node
	for _, a := range e.Arguments {
		children = append(children, a)
	}
	return children
}
func (e *EchoStatement) String() string { return "echo ...;" }
func (e *EchoStatement) statementNode() {}

// GlobalStatement represents global $a, $b;
type GlobalStatement struct {
	BaseNode
	Variables []*Variable `json:"variables"`
}

func (g *GlobalStatement) GetChildren() []Node {
	var children []Node
	for _, v := range g.Variables {
		children = append(children, v)
	}
	return children
}
func (g *GlobalStatement) String() string { return "global ...;" }
func (g *GlobalStatement) statementNode() {}

// StaticVariable is a single `$name [= default]` entry in a static statement.
type StaticVariable struct {
	BaseNode
	Variable *Variable  `json:"variable"`
	Default  Expression `json:"default,omitempty"`
}

func (s *StaticVariable) GetChildren() []Node {
	if s.Default != nil {
		return []Node{s.Variable, s.Default}
	}
	return []Node{s.Variable}
}
func (s *StaticVariable) String() string { return s.Variable.String() }

// StaticStatement represents static $a = 1, $b;
type StaticStatement struct {
	BaseNode
	Variables []*StaticVariable `json:"variables"`
}

func (s *StaticStatement) GetChildren() []Node {
	var children []Node
	for _, v := range s.Variables {
		children = append(children, v)
	}
	return children
}
func (s *StaticStatement) String() string { return "static ...;" }
func (s *StaticStatement) statementNode() {}

// UnsetStatement represents unset($a, $b);
type UnsetStatement struct {
	BaseNode
	Variables []Expression `json:"variables"`
}

func (u *UnsetStatement) GetChildren() []Node {
	var children []Node
	for _, v := range u.Variables {
		children = append(children, v)
	}
	return children
}
func (u *UnsetStatement) String() string { return "unset(...);" }
func (u *UnsetStatement) statementNode() {}
