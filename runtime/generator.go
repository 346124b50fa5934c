package runtime

import (
	"fmt"

	"github.com/wudi/hey/registry"
	"github.com/wudi/hey/values"
)

// vmExecutor is the minimal surface the VM exposes to drive a generator or
// fiber without runtime importing the vm package (which itself imports
// runtime for exceptions and extension data — importing back would cycle).
type vmExecutor interface {
	CreateExecutionContext() interface{}
	CreateCallFrame(*registry.Function, []*values.Value) interface{}
	ExecuteUntilYield(ctx, frame interface{}) (bool, error)
	ResumeFromYield(ctx, frame interface{}) (bool, error)
}

// Generator implements PHP generators: an Iterator wrapping a call frame that
// is lifted out of the VM's call stack at each yield and reinstalled on
// resume. See vm.ExecuteUntilYield / vm.ResumeFromYield for the lifting
// mechanism; this type only tracks generator-level bookkeeping (current
// key/value, delegation, return value).
type Generator struct {
	function *registry.Function
	args     []*values.Value
	vm       vmExecutor

	started   bool
	finished  bool
	suspended bool

	currentKey   *values.Value
	currentValue *values.Value
	returnValue  *values.Value

	// sentValue carries the argument of a pending send() into the next resume;
	// the VM's yield-result operand reads it back as the yield expression's value.
	sentValue      *values.Value
	pendingThrow   *values.Value
	autoKeyCounter int64

	delegating        bool
	delegateIterable  *values.Value
	delegateKeys      []interface{}
	delegateIndex     int
	delegateGenerator *Generator

	suspendedContext *GeneratorExecutionState
}

// GeneratorExecutionState preserves VM execution state at yield points.
type GeneratorExecutionState struct {
	frame interface{}
	ctx   interface{}
}

// NewGenerator wraps a generator-bodied function's call. Calling this does
// not run the body; the first Next()/Current() resumes it to its first yield.
func NewGenerator(function *registry.Function, args []*values.Value, vm interface{}) *Generator {
	executor, _ := vm.(vmExecutor)
	return &Generator{
		function:     function,
		args:         args,
		vm:           executor,
		currentKey:   values.NewNull(),
		currentValue: values.NewNull(),
		returnValue:  values.NewNull(),
	}
}

// NewChannelGenerator is kept for call sites still spelling out the historical
// name; it is identical to NewGenerator.
func NewChannelGenerator(function interface{}, args []*values.Value, vm interface{}) *Generator {
	fn, ok := function.(*registry.Function)
	if !ok {
		return nil
	}
	return NewGenerator(fn, args, vm)
}

// Next advances the generator to the next yielded value, returning false once
// the body has returned or thrown without yielding again.
func (g *Generator) Next() bool {
	if g.finished {
		return false
	}
	if g.delegating {
		return g.handleDelegateNext()
	}
	if !g.started {
		g.started = true
		return g.executeUntilYield()
	}
	if g.suspended {
		return g.resumeFromYield()
	}
	return false
}

// Send resumes the generator, delivering value as the result of the
// suspended yield expression, and returns the next yielded value.
func (g *Generator) Send(value *values.Value) *values.Value {
	if !g.started {
		// PHP runs the body up to the first yield before the sent value is
		// observable; the first send() is equivalent to priming with Next().
		g.Next()
		return g.currentValue
	}
	g.sentValue = value
	g.Next()
	return g.currentValue
}

// Throw resumes the generator by raising exc at the suspension point.
func (g *Generator) Throw(exc *values.Value) *values.Value {
	if !g.started {
		g.finished = true
		return values.NewNull()
	}
	g.pendingThrow = exc
	g.Next()
	return g.currentValue
}

// GetReturn returns the value the generator's body returned. Valid only once
// the generator has finished.
func (g *Generator) GetReturn() *values.Value {
	return g.returnValue
}

// SetReturn records the body's return value; called by the VM when a
// generator-scoped OP_RETURN/OP_GENERATOR_RETURN completes the frame.
func (g *Generator) SetReturn(v *values.Value) {
	if v == nil {
		v = values.NewNull()
	}
	g.returnValue = v
}

func (g *Generator) executeUntilYield() bool {
	if g.vm == nil {
		g.finished = true
		return false
	}
	ctx := g.vm.CreateExecutionContext()
	frame := g.vm.CreateCallFrame(g.function, g.args)
	if frameTyped, ok := frame.(interface{ SetGenerator(interface{}) }); ok {
		frameTyped.SetGenerator(g)
	}

	yielded, err := g.vm.ExecuteUntilYield(ctx, frame)
	if err != nil || !yielded {
		g.finished = true
		return false
	}
	g.saveExecutionState(ctx, frame)
	g.suspended = true
	return true
}

func (g *Generator) resumeFromYield() bool {
	if g.suspendedContext == nil {
		return false
	}
	ctx, frame := g.restoreExecutionState()
	g.suspended = false

	yielded, err := g.vm.ResumeFromYield(ctx, frame)
	if err != nil {
		g.finished = true
		return false
	}
	if !yielded {
		g.finished = true
		g.suspendedContext = nil
		return false
	}
	g.saveExecutionState(ctx, frame)
	g.suspended = true
	return true
}

func (g *Generator) saveExecutionState(ctx, frame interface{}) {
	g.suspendedContext = &GeneratorExecutionState{frame: frame, ctx: ctx}
}

func (g *Generator) restoreExecutionState() (interface{}, interface{}) {
	if g.suspendedContext == nil {
		return nil, nil
	}
	return g.suspendedContext.ctx, g.suspendedContext.frame
}

// Current returns the most recently yielded value.
func (g *Generator) Current() *values.Value { return g.currentValue }

// Key returns the most recently yielded key.
func (g *Generator) Key() *values.Value { return g.currentKey }

// Valid reports whether the generator still has a current value.
func (g *Generator) Valid() bool { return !g.finished && g.started }

// Rewind validates PHP's rule that a started generator cannot rewind.
func (g *Generator) Rewind() error {
	if g.started {
		return fmt.Errorf("cannot rewind a generator that was already run")
	}
	return nil
}

// TakeSentValue consumes and clears the value delivered by the last Send(),
// used by the VM when materializing a yield expression's result.
func (g *Generator) TakeSentValue() *values.Value {
	v := g.sentValue
	g.sentValue = nil
	if v == nil {
		return values.NewNull()
	}
	return v
}

// TakePendingThrow consumes and clears an exception requested via Throw().
func (g *Generator) TakePendingThrow() *values.Value {
	v := g.pendingThrow
	g.pendingThrow = nil
	return v
}

// NextAutoKey returns successive integer keys for yields without an explicit key.
func (g *Generator) NextAutoKey() int64 {
	k := g.autoKeyCounter
	g.autoKeyCounter++
	return k
}

// Yield records the key/value pair produced by an OP_YIELD at the
// instruction itself; suspension is driven by ExecuteUntilYield stopping
// dispatch at the yield instruction, not by this method.
func (g *Generator) Yield(key, value *values.Value) {
	g.currentKey = key
	g.currentValue = value
}

// StartDelegation begins a `yield from $iterable` delegation.
func (g *Generator) StartDelegation(iterable *values.Value) error {
	g.delegating = true
	g.delegateIterable = iterable
	g.delegateIndex = 0

	switch {
	case iterable.IsArray():
		arr := iterable.Data.(*values.Array)
		g.delegateKeys = arr.OrderedKeys()
		if len(g.delegateKeys) > 0 {
			g.advanceArrayDelegate(arr)
		} else {
			g.delegating = false
		}
	case iterable.IsObject() && iterable.Data.(*values.Object).ClassName == "Generator":
		obj := iterable.Data.(*values.Object)
		genVal, ok := obj.Properties["__channel_generator"]
		if !ok {
			return fmt.Errorf("generator object missing internal state")
		}
		delegate, ok := genVal.Data.(*Generator)
		if !ok {
			return fmt.Errorf("invalid generator for delegation")
		}
		g.delegateGenerator = delegate
		if !delegate.started {
			delegate.Next()
		}
		if delegate.Valid() {
			g.currentKey = delegate.Key()
			g.currentValue = delegate.Current()
		} else {
			g.delegating = false
		}
	default:
		return fmt.Errorf("yield from requires an iterable (array or Generator)")
	}
	return nil
}

func (g *Generator) advanceArrayDelegate(arr *values.Array) {
	key := g.delegateKeys[g.delegateIndex]
	val, _ := arr.Elements[key]
	g.currentKey = values.NewArrayKeyValue(key)
	g.currentValue = val
	g.delegateIndex++
}

func (g *Generator) handleDelegateNext() bool {
	if g.delegateIterable != nil && g.delegateIterable.IsArray() {
		if g.delegateIndex >= len(g.delegateKeys) {
			g.delegating = false
			return g.resumeDelegationHost()
		}
		arr := g.delegateIterable.Data.(*values.Array)
		g.advanceArrayDelegate(arr)
		return true
	}
	if g.delegateGenerator != nil {
		if g.delegateGenerator.Next() {
			g.currentKey = g.delegateGenerator.Key()
			g.currentValue = g.delegateGenerator.Current()
			return true
		}
		g.delegating = false
		// `yield from` evaluates to the delegate's return value.
		g.sentValue = g.delegateGenerator.GetReturn()
		return g.resumeDelegationHost()
	}
	g.delegating = false
	return false
}

func (g *Generator) resumeDelegationHost() bool {
	if !g.started {
		return g.executeUntilYield()
	}
	if g.suspended {
		return g.resumeFromYield()
	}
	return false
}
