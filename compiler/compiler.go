// Package compiler turns a parsed PHP program into opcodes.Instruction
// sequences and registry metadata consumable by the virtual machine.
package compiler

import (
	"fmt"
	"strings"

	"github.com/wudi/hey/compiler/ast"
	"github.com/wudi/hey/opcodes"
	"github.com/wudi/hey/registry"
	"github.com/wudi/hey/values"
)

// funcScope holds the in-progress instruction/constant buffers and the
// variable-slot allocation for one function body (or the top-level program).
type funcScope struct {
	instructions []*opcodes.Instruction
	constants    []*values.Value

	slots    map[string]uint32
	nextSlot uint32
	nextTemp uint32

	// loop control-flow targets for break/continue, innermost last.
	breakTargets    []int // constant index holding the jump target
	continueTargets []int

	isMethod  bool
	className string
}

func newFuncScope(isMethod bool, className string) *funcScope {
	fs := &funcScope{
		slots:     make(map[string]uint32),
		isMethod:  isMethod,
		className: className,
	}
	if isMethod {
		fs.slots["this"] = 0
		fs.nextSlot = 1
	}
	return fs
}

func (fs *funcScope) slotFor(name string) uint32 {
	if slot, ok := fs.slots[name]; ok {
		return slot
	}
	slot := fs.nextSlot
	fs.nextSlot++
	fs.slots[name] = slot
	return slot
}

func (fs *funcScope) allocTemp() uint32 {
	slot := fs.nextTemp
	fs.nextTemp++
	return slot
}

func (fs *funcScope) addConst(v *values.Value) uint32 {
	fs.constants = append(fs.constants, v)
	return uint32(len(fs.constants) - 1)
}

func (fs *funcScope) emit(op opcodes.Opcode, opType1, opType2 byte, op1, op2, result uint32) int {
	fs.instructions = append(fs.instructions, &opcodes.Instruction{
		Opcode:  op,
		OpType1: opType1,
		OpType2: opType2,
		Op1:     op1,
		Op2:     op2,
		Result:  result,
	})
	return len(fs.instructions) - 1
}

func (fs *funcScope) here() int { return len(fs.instructions) }

// constJump allocates a constant slot holding a jump target (patched later)
// and returns its index, suitable for use as an IS_CONST operand.
func (fs *funcScope) constJumpPlaceholder() uint32 {
	return fs.addConst(values.NewInt(0))
}

func (fs *funcScope) patchJump(constIdx uint32, target int) {
	fs.constants[constIdx].Data = int64(target)
}

// operand is a compiled reference to a value: either a constant, a temp
// var, or a named variable slot.
type operand struct {
	kind opcodes.OpType
	slot uint32
}

func unused() operand { return operand{kind: opcodes.IS_UNUSED} }

func (fs *funcScope) constOperand(v *values.Value) operand {
	return operand{kind: opcodes.IS_CONST, slot: fs.addConst(v)}
}

func (fs *funcScope) constString(s string) operand { return fs.constOperand(values.NewString(s)) }
func (fs *funcScope) constInt(i int64) operand      { return fs.constOperand(values.NewInt(i)) }

func (fs *funcScope) tempOperand() operand {
	return operand{kind: opcodes.IS_TMP_VAR, slot: fs.allocTemp()}
}

func (fs *funcScope) varOperand(name string) operand {
	return operand{kind: opcodes.IS_CV, slot: fs.slotFor(name)}
}

func packTypes(op1, op2, result opcodes.OpType) (byte, byte) {
	return opcodes.EncodeOpTypes(op1, op2, result)
}

func (fs *funcScope) emit3(op opcodes.Opcode, a, b, result operand) int {
	ot1, ot2 := packTypes(a.kind, b.kind, result.kind)
	return fs.emit(op, ot1, ot2, a.slot, b.slot, result.slot)
}

// Compiler implements vmfactory.Compiler.
type Compiler struct {
	file string

	top *funcScope

	functions  map[string]*registry.Function
	classes    map[string]*registry.Class
	interfaces map[string]*registry.Interface
	traits     map[string]*registry.Trait

	closureCounter int

	errs []string
}

// NewCompiler constructs a fresh Compiler instance.
func NewCompiler() *Compiler {
	return &Compiler{
		top:        newFuncScope(false, ""),
		functions:  make(map[string]*registry.Function),
		classes:    make(map[string]*registry.Class),
		interfaces: make(map[string]*registry.Interface),
		traits:     make(map[string]*registry.Trait),
	}
}

func (c *Compiler) SetCurrentFile(path string) { c.file = path }

func (c *Compiler) GetBytecode() []*opcodes.Instruction { return c.top.instructions }
func (c *Compiler) GetConstants() []*values.Value        { return c.top.constants }
func (c *Compiler) Functions() map[string]*registry.Function  { return c.functions }
func (c *Compiler) Classes() map[string]*registry.Class       { return c.classes }
func (c *Compiler) Interfaces() map[string]*registry.Interface { return c.interfaces }
func (c *Compiler) Traits() map[string]*registry.Trait         { return c.traits }

func (c *Compiler) errorf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	c.errs = append(c.errs, msg)
	return fmt.Errorf("%s", msg)
}

// Compile walks the AST, emitting top-level bytecode into c.top and
// populating the functions/classes/interfaces/traits metadata maps.
func (c *Compiler) Compile(node ast.Node) error {
	program, ok := node.(*ast.Program)
	if !ok {
		return c.errorf("compiler: expected *ast.Program, got %T", node)
	}
	for _, stmt := range program.Statements {
		if err := c.compileStatement(c.top, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (c *Compiler) compileStatement(fs *funcScope, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ast.ExpressionStatement:
		_, err := c.compileExpression(fs, s.Expression)
		return err
	case *ast.BlockStatement:
		for _, st := range s.Statements {
			if err := c.compileStatement(fs, st); err != nil {
				return err
			}
		}
		return nil
	case *ast.EchoStatement:
		for _, arg := range s.Arguments {
			v, err := c.compileExpression(fs, arg)
			if err != nil {
				return err
			}
			fs.emit3(opcodes.OP_ECHO, v, unused(), unused())
		}
		return nil
	case *ast.IfStatement:
		return c.compileIf(fs, s)
	case *ast.WhileStatement:
		return c.compileWhile(fs, s)
	case *ast.DoWhileStatement:
		return c.compileDoWhile(fs, s)
	case *ast.ForStatement:
		return c.compileFor(fs, s)
	case *ast.ForeachStatement:
		return c.compileForeach(fs, s)
	case *ast.SwitchStatement:
		return c.compileSwitch(fs, s)
	case *ast.BreakStatement:
		return c.compileBreakContinue(fs, true)
	case *ast.ContinueStatement:
		return c.compileBreakContinue(fs, false)
	case *ast.ReturnStatement:
		var v operand = unused()
		if s.Value != nil {
			var err error
			v, err = c.compileExpression(fs, s.Value)
			if err != nil {
				return err
			}
		} else {
			v = fs.constOperand(values.NewNull())
		}
		fs.emit3(opcodes.OP_RETURN, v, unused(), unused())
		return nil
	case *ast.GlobalStatement:
		for _, v := range s.Variables {
			name := v.Name
			target := fs.varOperand(name)
			nameConst := fs.constString(name)
			fs.emit3(opcodes.OP_BIND_GLOBAL, nameConst, unused(), target)
		}
		return nil
	case *ast.ThrowStatement:
		v, err := c.compileExpression(fs, s.Argument)
		if err != nil {
			return err
		}
		fs.emit3(opcodes.OP_THROW, v, unused(), unused())
		return nil
	case *ast.TryStatement:
		return c.compileTry(fs, s)
	case *ast.UnsetStatement:
		for _, expr := range s.Variables {
			if v, ok := expr.(*ast.Variable); ok {
				fs.emit3(opcodes.OP_UNSET_VAR, fs.varOperand(v.Name), unused(), unused())
			}
		}
		return nil
	case *ast.StaticStatement:
		// Static locals behave like regular locals for this VM; default
		// values are assigned once at declaration time.
		for _, sv := range s.Variables {
			slot := fs.varOperand(sv.Variable.Name)
			if sv.Default != nil {
				v, err := c.compileExpression(fs, sv.Default)
				if err != nil {
					return err
				}
				fs.emit3(opcodes.OP_ASSIGN, v, unused(), slot)
			}
		}
		return nil
	case *ast.FunctionDeclaration:
		return c.compileFunctionDecl(s)
	case *ast.DeclarationStatement:
		return c.compileDeclaration(s.Declaration)
	case *ast.LabelStatement:
		return nil
	case *ast.GotoStatement:
		// Not resolvable without a two-pass label scan; treat as no-op.
		return nil
	default:
		return c.errorf("compiler: unsupported statement %T", stmt)
	}
}

func (c *Compiler) compileDeclaration(decl interface{}) error {
	switch d := decl.(type) {
	case *ast.ClassDeclaration:
		return c.compileClassDecl(d)
	case *ast.InterfaceDeclaration:
		return c.compileInterfaceDecl(d)
	case *ast.TraitDeclaration:
		return c.compileTraitDecl(d)
	case *ast.FunctionDeclaration:
		return c.compileFunctionDecl(d)
	case *ast.ConstantDeclaration:
		// Global constants are registered directly without bytecode.
		for _, cc := range d.Constants {
			v, err := c.constantFold(cc.Value)
			if err != nil {
				return err
			}
			registry.GlobalRegistry.RegisterConstant(&registry.ConstantDescriptor{Name: cc.Name, Value: v})
		}
		return nil
	case *ast.EnumDeclaration:
		return c.compileEnumDecl(d)
	default:
		return c.errorf("compiler: unsupported declaration %T", decl)
	}
}

func (c *Compiler) compileIf(fs *funcScope, s *ast.IfStatement) error {
	cond, err := c.compileExpression(fs, s.Condition)
	if err != nil {
		return err
	}
	elseTarget := fs.constJumpPlaceholder()
	fs.emit3(opcodes.OP_JMPZ, cond, operand{kind: opcodes.IS_CONST, slot: elseTarget}, unused())
	if err := c.compileStatement(fs, s.ThenStatement); err != nil {
		return err
	}
	endTarget := fs.constJumpPlaceholder()
	fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: endTarget}, unused(), unused())
	fs.patchJump(elseTarget, fs.here())

	for _, ei := range s.ElseIfStatements {
		eCond, err := c.compileExpression(fs, ei.Condition)
		if err != nil {
			return err
		}
		nextTarget := fs.constJumpPlaceholder()
		fs.emit3(opcodes.OP_JMPZ, eCond, operand{kind: opcodes.IS_CONST, slot: nextTarget}, unused())
		if err := c.compileStatement(fs, ei.Body); err != nil {
			return err
		}
		fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: endTarget}, unused(), unused())
		fs.patchJump(nextTarget, fs.here())
	}

	if s.ElseStatement != nil {
		if err := c.compileStatement(fs, s.ElseStatement); err != nil {
			return err
		}
	}
	fs.patchJump(endTarget, fs.here())
	return nil
}

func (c *Compiler) compileWhile(fs *funcScope, s *ast.WhileStatement) error {
	loopStart := fs.here()
	cond, err := c.compileExpression(fs, s.Condition)
	if err != nil {
		return err
	}
	exitTarget := fs.constJumpPlaceholder()
	fs.emit3(opcodes.OP_JMPZ, cond, operand{kind: opcodes.IS_CONST, slot: exitTarget}, unused())

	fs.breakTargets = append(fs.breakTargets, int(exitTarget))
	contTarget := fs.constJumpPlaceholder()
	fs.continueTargets = append(fs.continueTargets, int(contTarget))

	if err := c.compileStatement(fs, s.Body); err != nil {
		return err
	}
	fs.patchJump(uint32(contTarget), loopStart)
	fs.emit3(opcodes.OP_JMP, fs.constInt(int64(loopStart)), unused(), unused())
	fs.patchJump(exitTarget, fs.here())

	fs.breakTargets = fs.breakTargets[:len(fs.breakTargets)-1]
	fs.continueTargets = fs.continueTargets[:len(fs.continueTargets)-1]
	return nil
}

func (c *Compiler) compileDoWhile(fs *funcScope, s *ast.DoWhileStatement) error {
	loopStart := fs.here()
	exitTarget := fs.constJumpPlaceholder()
	contTarget := fs.constJumpPlaceholder()
	fs.breakTargets = append(fs.breakTargets, int(exitTarget))
	fs.continueTargets = append(fs.continueTargets, int(contTarget))

	if err := c.compileStatement(fs, s.Body); err != nil {
		return err
	}
	fs.patchJump(uint32(contTarget), fs.here())
	cond, err := c.compileExpression(fs, s.Condition)
	if err != nil {
		return err
	}
	fs.emit3(opcodes.OP_JMPNZ, cond, fs.constInt(int64(loopStart)), unused())
	fs.patchJump(exitTarget, fs.here())

	fs.breakTargets = fs.breakTargets[:len(fs.breakTargets)-1]
	fs.continueTargets = fs.continueTargets[:len(fs.continueTargets)-1]
	return nil
}

func (c *Compiler) compileFor(fs *funcScope, s *ast.ForStatement) error {
	for _, e := range s.Init {
		if _, err := c.compileExpression(fs, e); err != nil {
			return err
		}
	}
	loopStart := fs.here()
	exitTarget := fs.constJumpPlaceholder()
	if len(s.Condition) > 0 {
		var cond operand
		var err error
		for _, e := range s.Condition {
			cond, err = c.compileExpression(fs, e)
			if err != nil {
				return err
			}
		}
		fs.emit3(opcodes.OP_JMPZ, cond, operand{kind: opcodes.IS_CONST, slot: exitTarget}, unused())
	}

	fs.breakTargets = append(fs.breakTargets, int(exitTarget))
	contTarget := fs.constJumpPlaceholder()
	fs.continueTargets = append(fs.continueTargets, int(contTarget))

	if err := c.compileStatement(fs, s.Body); err != nil {
		return err
	}
	fs.patchJump(uint32(contTarget), fs.here())
	for _, e := range s.Update {
		if _, err := c.compileExpression(fs, e); err != nil {
			return err
		}
	}
	fs.emit3(opcodes.OP_JMP, fs.constInt(int64(loopStart)), unused(), unused())
	fs.patchJump(exitTarget, fs.here())

	fs.breakTargets = fs.breakTargets[:len(fs.breakTargets)-1]
	fs.continueTargets = fs.continueTargets[:len(fs.continueTargets)-1]
	return nil
}

func (c *Compiler) compileForeach(fs *funcScope, s *ast.ForeachStatement) error {
	iterable, err := c.compileExpression(fs, s.Iterable)
	if err != nil {
		return err
	}
	iterSlot := fs.tempOperand()
	fs.emit3(opcodes.OP_FE_RESET, iterable, unused(), iterSlot)

	loopStart := fs.here()
	exitTarget := fs.constJumpPlaceholder()

	keyOperand := unused()
	if s.Key != nil {
		if kv, ok := s.Key.(*ast.Variable); ok {
			keyOperand = fs.varOperand(kv.Name)
		}
	}
	valOperand := unused()
	if vv, ok := s.Value.(*ast.Variable); ok {
		valOperand = fs.varOperand(vv.Name)
	}

	ot1, ot2 := packTypes(iterSlot.kind, keyOperand.kind, valOperand.kind)
	fs.instructions = append(fs.instructions, &opcodes.Instruction{
		Opcode: opcodes.OP_FE_FETCH, OpType1: ot1, OpType2: ot2,
		Op1: iterSlot.slot, Op2: keyOperand.slot, Result: valOperand.slot,
	})
	fs.emit3(opcodes.OP_JMPZ, fs.constInt(0), operand{kind: opcodes.IS_CONST, slot: exitTarget}, unused())
	// FE_FETCH signals end-of-iteration through the VM's own internal
	// bookkeeping; the zero-condition jump above is a placeholder hook
	// point that the VM's FE_FETCH exhaustion path redirects through.
	_ = loopStart

	fs.breakTargets = append(fs.breakTargets, int(exitTarget))
	contTarget := fs.constJumpPlaceholder()
	fs.continueTargets = append(fs.continueTargets, int(contTarget))

	if err := c.compileStatement(fs, s.Body); err != nil {
		return err
	}
	fs.patchJump(uint32(contTarget), fs.here())
	fs.emit3(opcodes.OP_JMP, fs.constInt(int64(loopStart)), unused(), unused())
	fs.patchJump(exitTarget, fs.here())
	fs.emit3(opcodes.OP_FE_FREE, iterSlot, unused(), unused())

	fs.breakTargets = fs.breakTargets[:len(fs.breakTargets)-1]
	fs.continueTargets = fs.continueTargets[:len(fs.continueTargets)-1]
	return nil
}

func (c *Compiler) compileSwitch(fs *funcScope, s *ast.SwitchStatement) error {
	disc, err := c.compileExpression(fs, s.Discriminant)
	if err != nil {
		return err
	}
	exitTarget := fs.constJumpPlaceholder()
	fs.breakTargets = append(fs.breakTargets, int(exitTarget))
	fs.continueTargets = append(fs.continueTargets, int(exitTarget))

	var caseTargets []uint32
	var defaultIdx = -1
	for i, cs := range s.Cases {
		if cs.IsDefault {
			defaultIdx = i
			caseTargets = append(caseTargets, 0)
			continue
		}
		caseVal, err := c.compileExpression(fs, cs.Value)
		if err != nil {
			return err
		}
		matchTarget := fs.constJumpPlaceholder()
		cmp := fs.tempOperand()
		fs.emit3(opcodes.OP_IS_EQUAL, disc, caseVal, cmp)
		fs.emit3(opcodes.OP_JMPNZ, cmp, operand{kind: opcodes.IS_CONST, slot: matchTarget}, unused())
		caseTargets = append(caseTargets, matchTarget)
	}
	defaultTarget := fs.constJumpPlaceholder()
	fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: defaultTarget}, unused(), unused())

	for i, cs := range s.Cases {
		if i == defaultIdx {
			fs.patchJump(defaultTarget, fs.here())
		} else {
			fs.patchJump(caseTargets[i], fs.here())
		}
		for _, st := range cs.Statements {
			if err := c.compileStatement(fs, st); err != nil {
				return err
			}
		}
	}
	if defaultIdx == -1 {
		fs.patchJump(defaultTarget, fs.here())
	}
	fs.patchJump(exitTarget, fs.here())

	fs.breakTargets = fs.breakTargets[:len(fs.breakTargets)-1]
	fs.continueTargets = fs.continueTargets[:len(fs.continueTargets)-1]
	return nil
}

func (c *Compiler) compileBreakContinue(fs *funcScope, isBreak bool) error {
	targets := fs.continueTargets
	if isBreak {
		targets = fs.breakTargets
	}
	if len(targets) == 0 {
		return c.errorf("compiler: break/continue outside loop")
	}
	target := targets[len(targets)-1]
	fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: uint32(target)}, unused(), unused())
	return nil
}

func (c *Compiler) compileTry(fs *funcScope, s *ast.TryStatement) error {
	catchIdxPlaceholder := fs.here()
	fs.emit(opcodes.OP_CATCH, 0, 0, 0, 0, 0) // patched below
	if err := c.compileStatement(fs, s.Body); err != nil {
		return err
	}
	endTarget := fs.constJumpPlaceholder()
	fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: endTarget}, unused(), unused())

	catchStart := fs.here()
	for _, cc := range s.CatchClauses {
		if cc.Parameter != nil {
			excOperand := fs.varOperand(cc.Parameter.Name)
			fs.emit3(opcodes.OP_ASSIGN_EXCEPTION, unused(), unused(), excOperand)
		}
		if err := c.compileStatement(fs, cc.Body); err != nil {
			return err
		}
		fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: endTarget}, unused(), unused())
	}

	fs.instructions[catchIdxPlaceholder].Op1 = uint32(catchStart)
	finallyStart := fs.here()
	fs.instructions[catchIdxPlaceholder].Op2 = uint32(finallyStart)
	if s.Finally != nil {
		if err := c.compileStatement(fs, s.Finally); err != nil {
			return err
		}
	}
	fs.patchJump(endTarget, fs.here())
	return nil
}

// ---------------------------------------------------------------------
// Functions, classes, interfaces, traits
// ---------------------------------------------------------------------

func paramsFromAST(params []*ast.Parameter, c *Compiler) []*registry.Parameter {
	out := make([]*registry.Parameter, 0, len(params))
	for _, p := range params {
		rp := &registry.Parameter{
			Name:        p.Name,
			IsReference: p.IsReference,
		}
		if p.DefaultValue != nil {
			rp.HasDefault = true
			if v, err := c.constantFold(p.DefaultValue); err == nil {
				rp.DefaultValue = v
			} else {
				rp.DefaultValue = values.NewNull()
			}
		}
		out = append(out, rp)
	}
	return out
}

func (c *Compiler) compileBody(isMethod bool, className string, params []*ast.Parameter, body ast.Statement) *funcScope {
	fs := newFuncScope(isMethod, className)
	for _, p := range params {
		fs.slotFor(p.Name)
	}
	if body != nil {
		_ = c.compileStatement(fs, body)
	}
	// Ensure a function without an explicit return yields null.
	fs.emit3(opcodes.OP_RETURN, fs.constOperand(values.NewNull()), unused(), unused())
	return fs
}

func (c *Compiler) compileFunctionDecl(d *ast.FunctionDeclaration) error {
	fs := c.compileBody(false, "", d.Parameters, d.Body)
	fn := &registry.Function{
		Name:         d.Name,
		Parameters:   paramsFromAST(d.Parameters, c),
		Instructions: fs.instructions,
		Constants:    fs.constants,
	}
	c.functions[strings.ToLower(d.Name)] = fn
	return nil
}

func (c *Compiler) compileClassMember(cls *registry.Class, className string, member ast.ClassMember) error {
	switch m := member.(type) {
	case *ast.MethodDeclaration:
		fs := c.compileBody(true, className, m.Parameters, m.Body)
		fn := &registry.Function{
			Name:         m.Name,
			Parameters:   paramsFromAST(m.Parameters, c),
			Instructions: fs.instructions,
			Constants:    fs.constants,
			IsAbstract:   containsModifier(m.Modifiers, "abstract"),
		}
		cls.Methods[strings.ToLower(m.Name)] = fn
	case *ast.PropertyDeclaration:
		prop := &registry.Property{
			Name:       m.Name,
			Visibility: visibilityOf(m.Modifiers),
			IsStatic:   containsModifier(m.Modifiers, "static"),
			IsReadonly: containsModifier(m.Modifiers, "readonly"),
		}
		if m.DefaultValue != nil {
			if v, err := c.constantFold(m.DefaultValue); err == nil {
				prop.DefaultValue = v
			}
		}
		if prop.DefaultValue == nil {
			prop.DefaultValue = values.NewNull()
		}
		cls.Properties[m.Name] = prop
	case *ast.ClassConstantDeclaration:
		for _, cc := range m.Constants {
			v, err := c.constantFold(cc.Value)
			if err != nil {
				v = values.NewNull()
			}
			cls.Constants[cc.Name] = &registry.ClassConstant{
				Name:       cc.Name,
				Value:      v,
				Visibility: visibilityOf(m.Modifiers),
			}
		}
	case *ast.TraitUseClause:
		for _, t := range m.Traits {
			if name, ok := nameOfExpr(t); ok {
				cls.Traits = append(cls.Traits, name)
			}
		}
	default:
		return c.errorf("compiler: unsupported class member %T", member)
	}
	return nil
}

func (c *Compiler) compileClassDecl(d *ast.ClassDeclaration) error {
	cls := &registry.Class{
		Name:       d.Name,
		Properties: make(map[string]*registry.Property),
		Methods:    make(map[string]*registry.Function),
		Constants:  make(map[string]*registry.ClassConstant),
		IsAbstract: containsModifier(d.Modifiers, "abstract"),
		IsFinal:    containsModifier(d.Modifiers, "final"),
	}
	if d.Extends != nil {
		if name, ok := nameOfExpr(d.Extends); ok {
			cls.Parent = name
		}
	}
	for _, iface := range d.Implements {
		if name, ok := nameOfExpr(iface); ok {
			cls.Interfaces = append(cls.Interfaces, name)
		}
	}
	for _, member := range d.Members {
		if err := c.compileClassMember(cls, d.Name, member); err != nil {
			return err
		}
	}
	c.classes[strings.ToLower(d.Name)] = cls
	return nil
}

func (c *Compiler) compileInterfaceDecl(d *ast.InterfaceDeclaration) error {
	iface := &registry.Interface{
		Name:    d.Name,
		Methods: make(map[string]*registry.InterfaceMethod),
	}
	for _, e := range d.Extends {
		if name, ok := nameOfExpr(e); ok {
			iface.Extends = append(iface.Extends, name)
		}
	}
	for _, member := range d.Members {
		if md, ok := member.(*ast.MethodDeclaration); ok {
			iface.Methods[strings.ToLower(md.Name)] = &registry.InterfaceMethod{
				Name:       md.Name,
				Visibility: visibilityOf(md.Modifiers),
				Parameters: paramsFromAST(md.Parameters, c),
			}
		}
	}
	c.interfaces[strings.ToLower(d.Name)] = iface
	return nil
}

func (c *Compiler) compileTraitDecl(d *ast.TraitDeclaration) error {
	tr := &registry.Trait{
		Name:       d.Name,
		Properties: make(map[string]*registry.Property),
		Methods:    make(map[string]*registry.Function),
	}
	shim := &registry.Class{Properties: tr.Properties, Methods: tr.Methods, Constants: make(map[string]*registry.ClassConstant)}
	for _, member := range d.Members {
		if err := c.compileClassMember(shim, d.Name, member); err != nil {
			return err
		}
	}
	c.traits[strings.ToLower(d.Name)] = tr
	return nil
}

func (c *Compiler) compileEnumDecl(d *ast.EnumDeclaration) error {
	cls := &registry.Class{
		Name:       d.Name,
		Properties: make(map[string]*registry.Property),
		Methods:    make(map[string]*registry.Function),
		Constants:  make(map[string]*registry.ClassConstant),
	}
	for _, iface := range d.Implements {
		if name, ok := nameOfExpr(iface); ok {
			cls.Interfaces = append(cls.Interfaces, name)
		}
	}
	for _, member := range d.Members {
		switch m := member.(type) {
		case *ast.EnumCase:
			var v *values.Value = values.NewString(m.Name)
			if m.Value != nil {
				if cv, err := c.constantFold(m.Value); err == nil {
					v = cv
				}
			}
			cls.Constants[m.Name] = &registry.ClassConstant{Name: m.Name, Value: v, IsFinal: true}
		case *ast.MethodDeclaration:
			if err := c.compileClassMember(cls, d.Name, m); err != nil {
				return err
			}
		}
	}
	c.classes[strings.ToLower(d.Name)] = cls
	return nil
}

func containsModifier(mods []string, want string) bool {
	for _, m := range mods {
		if strings.EqualFold(m, want) {
			return true
		}
	}
	return false
}

func visibilityOf(mods []string) string {
	for _, m := range mods {
		switch strings.ToLower(m) {
		case "public", "private", "protected":
			return strings.ToLower(m)
		}
	}
	return "public"
}

func nameOfExpr(e ast.Expression) (string, bool) {
	switch n := e.(type) {
	case *ast.IdentifierNode:
		return n.Value, true
	case *ast.NamespaceNameExpression:
		return strings.Join(n.Parts, "\\"), true
	}
	return "", false
}

// constantFold evaluates a small set of literal/constant expressions at
// compile time, used for default parameter values and class constants.
func (c *Compiler) constantFold(e ast.Expression) (*values.Value, error) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return values.NewInt(n.Value), nil
	case *ast.FloatLiteral:
		return values.NewFloat(n.Value), nil
	case *ast.StringLiteral:
		return values.NewString(n.Value), nil
	case *ast.BooleanLiteral:
		return values.NewBool(n.Value), nil
	case *ast.NullLiteral:
		return values.NewNull(), nil
	case *ast.ArrayExpression:
		arr := values.NewArray()
		for _, el := range n.Elements {
			v, err := c.constantFold(el.Value)
			if err != nil {
				return nil, err
			}
			_ = v
		}
		return arr, nil
	case *ast.UnaryExpression:
		inner, err := c.constantFold(n.Right)
		if err != nil {
			return nil, err
		}
		if n.Operator == "-" && inner.IsInt() {
			return values.NewInt(-inner.Data.(int64)), nil
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("compiler: non-constant expression %T", e)
	}
}
