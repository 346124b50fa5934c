package compiler

import (
	"strings"

	"github.com/wudi/hey/compiler/ast"
	"github.com/wudi/hey/opcodes"
	"github.com/wudi/hey/registry"
	"github.com/wudi/hey/values"
)

var binaryOpcodes = map[string]opcodes.Opcode{
	"+":   opcodes.OP_ADD,
	"-":   opcodes.OP_SUB,
	"*":   opcodes.OP_MUL,
	"/":   opcodes.OP_DIV,
	"%":   opcodes.OP_MOD,
	"**":  opcodes.OP_POW,
	".":   opcodes.OP_CONCAT,
	"&":   opcodes.OP_BW_AND,
	"|":   opcodes.OP_BW_OR,
	"^":   opcodes.OP_BW_XOR,
	"<<":  opcodes.OP_SL,
	">>":  opcodes.OP_SR,
	"==":  opcodes.OP_IS_EQUAL,
	"!=":  opcodes.OP_IS_NOT_EQUAL,
	"<>":  opcodes.OP_IS_NOT_EQUAL,
	"===": opcodes.OP_IS_IDENTICAL,
	"!==": opcodes.OP_IS_NOT_IDENTICAL,
	"<":   opcodes.OP_IS_SMALLER,
	"<=":  opcodes.OP_IS_SMALLER_OR_EQUAL,
	">":   opcodes.OP_IS_GREATER,
	">=":  opcodes.OP_IS_GREATER_OR_EQUAL,
	"<=>": opcodes.OP_SPACESHIP,
	"&&":  opcodes.OP_BOOLEAN_AND,
	"and": opcodes.OP_BOOLEAN_AND,
	"||":  opcodes.OP_BOOLEAN_OR,
	"or":  opcodes.OP_BOOLEAN_OR,
}

// compoundOpCodes maps a compound-assignment operator to the Reserved
// sub-opcode understood by OP_ASSIGN_OP.
var compoundOpCodes = map[string]byte{
	"+=":  1,
	"-=":  2,
	"*=":  3,
	"/=":  4,
	"%=":  5,
	"**=": 6,
	".=":  8,
	"&=":  9,
	"|=":  10,
	"^=":  11,
	"<<=": 12,
	">>=": 13,
}

func (c *Compiler) compileExpression(fs *funcScope, expr ast.Expression) (operand, error) {
	switch e := expr.(type) {
	case nil:
		return unused(), nil
	case *ast.IntegerLiteral:
		return fs.constOperand(values.NewInt(e.Value)), nil
	case *ast.FloatLiteral:
		return fs.constOperand(values.NewFloat(e.Value)), nil
	case *ast.StringLiteral:
		return fs.constString(e.Value), nil
	case *ast.BooleanLiteral:
		return fs.constOperand(values.NewBool(e.Value)), nil
	case *ast.NullLiteral:
		return fs.constOperand(values.NewNull()), nil
	case *ast.Variable:
		return fs.varOperand(e.Name), nil
	case *ast.IdentifierNode:
		// Bare identifier in expression position: a constant reference.
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_FETCH_CONSTANT, fs.constString(e.Value), unused(), result)
		return result, nil
	case *ast.InterpolatedStringExpression:
		return c.compileInterpolatedString(fs, e.Parts)
	case *ast.HeredocExpression:
		return c.compileInterpolatedString(fs, e.Parts)
	case *ast.NowdocExpression:
		return fs.constString(e.Content), nil
	case *ast.BinaryExpression:
		return c.compileBinary(fs, e)
	case *ast.UnaryExpression:
		return c.compileUnary(fs, e)
	case *ast.PostfixExpression:
		return c.compilePostfix(fs, e)
	case *ast.AssignmentExpression:
		return c.compileAssignment(fs, e)
	case *ast.TernaryExpression:
		return c.compileTernary(fs, e)
	case *ast.ArrayExpression:
		return c.compileArrayLiteral(fs, e)
	case *ast.ArrayAccessExpression:
		return c.compileArrayAccess(fs, e)
	case *ast.MemberAccessExpression:
		return c.compilePropertyFetch(fs, e.Object, e.Property)
	case *ast.NullsafeMemberAccessExpression:
		return c.compilePropertyFetch(fs, e.Object, e.Property)
	case *ast.StaticMemberAccessExpression:
		return c.compileStaticPropertyFetch(fs, e)
	case *ast.FunctionCallExpression:
		return c.compileCall(fs, e)
	case *ast.NewExpression:
		return c.compileNew(fs, e)
	case *ast.CloneExpression:
		src, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_CLONE, src, unused(), result)
		return result, nil
	case *ast.ErrorSuppressionExpression:
		fs.emit3(opcodes.OP_BEGIN_SILENCE, unused(), unused(), unused())
		v, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_END_SILENCE, unused(), unused(), unused())
		return v, nil
	case *ast.IssetExpression:
		result := fs.tempOperand()
		var last operand
		for _, v := range e.Variables {
			if vn, ok := v.(*ast.Variable); ok {
				last = fs.tempOperand()
				fs.emit3(opcodes.OP_ISSET_ISEMPTY_VAR, fs.varOperand(vn.Name), unused(), last)
			}
		}
		if last.kind == 0 && last.slot == 0 {
			return fs.constOperand(values.NewBool(false)), nil
		}
		return last, nil
	case *ast.EmptyExpression:
		v, err := c.compileExpression(fs, e.Variable)
		if err != nil {
			return unused(), err
		}
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_NOT, v, unused(), result)
		return result, nil
	case *ast.PrintExpression:
		v, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_ECHO, v, unused(), unused())
		return fs.constOperand(values.NewInt(1)), nil
	case *ast.ExitExpression:
		var v operand = unused()
		if e.Expression != nil {
			var err error
			v, err = c.compileExpression(fs, e.Expression)
			if err != nil {
				return unused(), err
			}
		}
		fs.emit3(opcodes.OP_EXIT, v, unused(), unused())
		return unused(), nil
	case *ast.IncludeExpression:
		v, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		var op opcodes.Opcode
		switch e.Type {
		case "include":
			op = opcodes.OP_INCLUDE
		case "include_once":
			op = opcodes.OP_INCLUDE_ONCE
		case "require_once":
			op = opcodes.OP_REQUIRE_ONCE
		default:
			op = opcodes.OP_REQUIRE
		}
		result := fs.tempOperand()
		fs.emit3(op, v, unused(), result)
		return result, nil
	case *ast.AnonymousFunctionExpression:
		return c.compileClosure(fs, e.Parameters, e.UseVariables, e.Body, false)
	case *ast.ArrowFunctionExpression:
		body := &ast.ReturnStatement{Value: e.Expression}
		return c.compileClosure(fs, e.Parameters, nil, body, true)
	case *ast.CastExpression:
		v, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_CAST, v, fs.constString(e.Type), result)
		return result, nil
	case *ast.InstanceofExpression:
		v, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		className, _ := nameOfExpr(e.Class)
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_INSTANCEOF, fs.constString(className), v, result)
		return result, nil
	case *ast.CoalescingExpression:
		left, err := c.compileExpression(fs, e.Left)
		if err != nil {
			return unused(), err
		}
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_COALESCE, left, unused(), result)
		skip := fs.constJumpPlaceholder()
		fs.emit3(opcodes.OP_JMPNZ, result, operand{kind: opcodes.IS_CONST, slot: skip}, unused())
		right, err := c.compileExpression(fs, e.Right)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_ASSIGN, right, unused(), result)
		fs.patchJump(skip, fs.here())
		return result, nil
	case *ast.MatchExpression:
		return c.compileMatch(fs, e)
	case *ast.ReferenceExpression:
		return c.compileExpression(fs, e.Expression)
	case *ast.ListExpression:
		return unused(), nil
	case *ast.MagicConstantExpression:
		return fs.constString(e.Name), nil
	case *ast.ThrowExpression:
		v, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_THROW, v, unused(), unused())
		return unused(), nil
	case *ast.YieldExpression:
		var key, val operand = unused(), unused()
		var err error
		if e.Key != nil {
			key, err = c.compileExpression(fs, e.Key)
			if err != nil {
				return unused(), err
			}
		}
		if e.Value != nil {
			val, err = c.compileExpression(fs, e.Value)
			if err != nil {
				return unused(), err
			}
		}
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_YIELD, val, key, result)
		return result, nil
	case *ast.YieldFromExpression:
		v, err := c.compileExpression(fs, e.Expression)
		if err != nil {
			return unused(), err
		}
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_YIELD_FROM, v, unused(), result)
		return result, nil
	default:
		return unused(), c.errorf("compiler: unsupported expression %T", expr)
	}
}

func (c *Compiler) compileInterpolatedString(fs *funcScope, parts []ast.Expression) (operand, error) {
	if len(parts) == 0 {
		return fs.constString(""), nil
	}
	acc, err := c.compileExpression(fs, parts[0])
	if err != nil {
		return unused(), err
	}
	for _, p := range parts[1:] {
		v, err := c.compileExpression(fs, p)
		if err != nil {
			return unused(), err
		}
		result := fs.tempOperand()
		fs.emit3(opcodes.OP_CONCAT, acc, v, result)
		acc = result
	}
	return acc, nil
}

func (c *Compiler) compileBinary(fs *funcScope, e *ast.BinaryExpression) (operand, error) {
	left, err := c.compileExpression(fs, e.Left)
	if err != nil {
		return unused(), err
	}
	right, err := c.compileExpression(fs, e.Right)
	if err != nil {
		return unused(), err
	}
	op, ok := binaryOpcodes[e.Operator]
	if !ok {
		return unused(), c.errorf("compiler: unknown binary operator %q", e.Operator)
	}
	result := fs.tempOperand()
	fs.emit3(op, left, right, result)
	return result, nil
}

func (c *Compiler) compileUnary(fs *funcScope, e *ast.UnaryExpression) (operand, error) {
	v, err := c.compileExpression(fs, e.Right)
	if err != nil {
		return unused(), err
	}
	var op opcodes.Opcode
	switch e.Operator {
	case "+":
		op = opcodes.OP_PLUS
	case "-":
		op = opcodes.OP_MINUS
	case "!":
		op = opcodes.OP_NOT
	case "~":
		op = opcodes.OP_BW_NOT
	case "++":
		op = opcodes.OP_PRE_INC
	case "--":
		op = opcodes.OP_PRE_DEC
	default:
		return unused(), c.errorf("compiler: unknown unary operator %q", e.Operator)
	}
	result := fs.tempOperand()
	if op == opcodes.OP_PRE_INC || op == opcodes.OP_PRE_DEC {
		fs.emit3(op, v, unused(), v)
		return v, nil
	}
	fs.emit3(op, v, unused(), result)
	return result, nil
}

func (c *Compiler) compilePostfix(fs *funcScope, e *ast.PostfixExpression) (operand, error) {
	v, err := c.compileExpression(fs, e.Left)
	if err != nil {
		return unused(), err
	}
	op := opcodes.OP_POST_INC
	if e.Operator == "--" {
		op = opcodes.OP_POST_DEC
	}
	result := fs.tempOperand()
	fs.emit3(op, v, unused(), result)
	return result, nil
}

func (c *Compiler) compileAssignment(fs *funcScope, e *ast.AssignmentExpression) (operand, error) {
	if e.Operator == "=" {
		if e.IsReference {
			src, err := c.compileExpression(fs, e.Right)
			if err != nil {
				return unused(), err
			}
			dest, err := c.compileLValue(fs, e.Left)
			if err != nil {
				return unused(), err
			}
			fs.emit3(opcodes.OP_ASSIGN_REF, src, unused(), dest)
			return dest, nil
		}
		src, err := c.compileExpression(fs, e.Right)
		if err != nil {
			return unused(), err
		}
		return c.compileAssignTo(fs, e.Left, src)
	}

	subOp, ok := compoundOpCodes[e.Operator]
	if !ok {
		return unused(), c.errorf("compiler: unknown assignment operator %q", e.Operator)
	}
	dest, err := c.compileLValue(fs, e.Left)
	if err != nil {
		return unused(), err
	}
	right, err := c.compileExpression(fs, e.Right)
	if err != nil {
		return unused(), err
	}
	idx := fs.emit3(opcodes.OP_ASSIGN_OP, dest, right, dest)
	fs.instructions[idx].Reserved = subOp
	return dest, nil
}

// compileLValue resolves a plain variable/property/array-element reference
// usable as the left operand of a compound assignment (read-then-write).
func (c *Compiler) compileLValue(fs *funcScope, e ast.Expression) (operand, error) {
	switch v := e.(type) {
	case *ast.Variable:
		return fs.varOperand(v.Name), nil
	default:
		return c.compileExpression(fs, e)
	}
}

// compileAssignTo compiles an assignment where the value is already
// computed, dispatching on the kind of left-hand-side target.
func (c *Compiler) compileAssignTo(fs *funcScope, lhs ast.Expression, src operand) (operand, error) {
	switch l := lhs.(type) {
	case *ast.Variable:
		dest := fs.varOperand(l.Name)
		fs.emit3(opcodes.OP_ASSIGN, src, unused(), dest)
		return dest, nil
	case *ast.ArrayAccessExpression:
		arr, err := c.compileExpression(fs, l.Array)
		if err != nil {
			return unused(), err
		}
		key := unused()
		if l.Index != nil {
			key, err = c.compileExpression(fs, l.Index)
			if err != nil {
				return unused(), err
			}
		}
		ot1, ot2 := packTypes(arr.kind, key.kind, src.kind)
		fs.instructions = append(fs.instructions, &opcodes.Instruction{
			Opcode: opcodes.OP_ASSIGN_DIM, OpType1: ot1, OpType2: ot2,
			Op1: arr.slot, Op2: key.slot, Result: src.slot,
		})
		return src, nil
	case *ast.MemberAccessExpression:
		obj, err := c.compileExpression(fs, l.Object)
		if err != nil {
			return unused(), err
		}
		propName, err := c.propertyNameOperand(fs, l.Property)
		if err != nil {
			return unused(), err
		}
		ot1, ot2 := packTypes(obj.kind, propName.kind, src.kind)
		fs.instructions = append(fs.instructions, &opcodes.Instruction{
			Opcode: opcodes.OP_ASSIGN_OBJ, OpType1: ot1, OpType2: ot2,
			Op1: obj.slot, Op2: propName.slot, Result: src.slot,
		})
		return src, nil
	case *ast.StaticMemberAccessExpression:
		className, _ := nameOfExpr(l.Class)
		propName, err := c.propertyNameOperand(fs, l.Member)
		if err != nil {
			return unused(), err
		}
		ot1, ot2 := packTypes(opcodes.IS_CONST, propName.kind, src.kind)
		fs.instructions = append(fs.instructions, &opcodes.Instruction{
			Opcode: opcodes.OP_ASSIGN_STATIC_PROP, OpType1: ot1, OpType2: ot2,
			Op1: fs.constString(className).slot, Op2: propName.slot, Result: src.slot,
		})
		return src, nil
	case *ast.ListExpression:
		for _, el := range l.Elements {
			if el == nil || el.Variable == nil {
				continue
			}
			_, err := c.compileAssignTo(fs, el.Variable, src)
			if err != nil {
				return unused(), err
			}
		}
		return src, nil
	default:
		return unused(), c.errorf("compiler: unsupported assignment target %T", lhs)
	}
}

func (c *Compiler) propertyNameOperand(fs *funcScope, e ast.Expression) (operand, error) {
	if id, ok := e.(*ast.IdentifierNode); ok {
		return fs.constString(id.Value), nil
	}
	return c.compileExpression(fs, e)
}

func (c *Compiler) compileTernary(fs *funcScope, e *ast.TernaryExpression) (operand, error) {
	cond, err := c.compileExpression(fs, e.Condition)
	if err != nil {
		return unused(), err
	}
	result := fs.tempOperand()
	if e.TrueExp == nil {
		// $a ?: $b
		fs.emit3(opcodes.OP_QM_ASSIGN, cond, unused(), result)
		skip := fs.constJumpPlaceholder()
		fs.emit3(opcodes.OP_JMPNZ, cond, operand{kind: opcodes.IS_CONST, slot: skip}, unused())
		falseVal, err := c.compileExpression(fs, e.FalseExp)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_QM_ASSIGN, falseVal, unused(), result)
		fs.patchJump(skip, fs.here())
		return result, nil
	}
	elseTarget := fs.constJumpPlaceholder()
	fs.emit3(opcodes.OP_JMPZ, cond, operand{kind: opcodes.IS_CONST, slot: elseTarget}, unused())
	trueVal, err := c.compileExpression(fs, e.TrueExp)
	if err != nil {
		return unused(), err
	}
	fs.emit3(opcodes.OP_QM_ASSIGN, trueVal, unused(), result)
	endTarget := fs.constJumpPlaceholder()
	fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: endTarget}, unused(), unused())
	fs.patchJump(elseTarget, fs.here())
	falseVal, err := c.compileExpression(fs, e.FalseExp)
	if err != nil {
		return unused(), err
	}
	fs.emit3(opcodes.OP_QM_ASSIGN, falseVal, unused(), result)
	fs.patchJump(endTarget, fs.here())
	return result, nil
}

func (c *Compiler) compileArrayLiteral(fs *funcScope, e *ast.ArrayExpression) (operand, error) {
	result := fs.tempOperand()
	fs.emit3(opcodes.OP_INIT_ARRAY, unused(), unused(), result)
	for _, el := range e.Elements {
		if el == nil {
			continue
		}
		val, err := c.compileExpression(fs, el.Value)
		if err != nil {
			return unused(), err
		}
		key := unused()
		if el.Key != nil {
			key, err = c.compileExpression(fs, el.Key)
			if err != nil {
				return unused(), err
			}
		}
		if el.IsUnpack {
			fs.emit3(opcodes.OP_ADD_ARRAY_UNPACK, val, unused(), result)
			continue
		}
		ot1, ot2 := packTypes(key.kind, val.kind, result.kind)
		fs.instructions = append(fs.instructions, &opcodes.Instruction{
			Opcode: opcodes.OP_ADD_ARRAY_ELEMENT, OpType1: ot1, OpType2: ot2,
			Op1: key.slot, Op2: val.slot, Result: result.slot,
		})
	}
	return result, nil
}

func (c *Compiler) compileArrayAccess(fs *funcScope, e *ast.ArrayAccessExpression) (operand, error) {
	arr, err := c.compileExpression(fs, e.Array)
	if err != nil {
		return unused(), err
	}
	if e.Index == nil {
		return arr, nil
	}
	idx, err := c.compileExpression(fs, e.Index)
	if err != nil {
		return unused(), err
	}
	result := fs.tempOperand()
	fs.emit3(opcodes.OP_FETCH_DIM_R, arr, idx, result)
	return result, nil
}

func (c *Compiler) compilePropertyFetch(fs *funcScope, objExpr, propExpr ast.Expression) (operand, error) {
	obj, err := c.compileExpression(fs, objExpr)
	if err != nil {
		return unused(), err
	}
	propName, err := c.propertyNameOperand(fs, propExpr)
	if err != nil {
		return unused(), err
	}
	result := fs.tempOperand()
	fs.emit3(opcodes.OP_FETCH_OBJ_R, obj, propName, result)
	return result, nil
}

func (c *Compiler) compileStaticPropertyFetch(fs *funcScope, e *ast.StaticMemberAccessExpression) (operand, error) {
	className, _ := nameOfExpr(e.Class)
	propName, err := c.propertyNameOperand(fs, e.Member)
	if err != nil {
		return unused(), err
	}
	result := fs.tempOperand()
	fs.emit3(opcodes.OP_FETCH_STATIC_PROP_R, fs.constString(className), propName, result)
	return result, nil
}

// compileCall handles plain function calls, method calls and static calls,
// which the AST represents uniformly as FunctionCallExpression with the
// callee's shape distinguishing the three cases.
func (c *Compiler) compileCall(fs *funcScope, e *ast.FunctionCallExpression) (operand, error) {
	switch callee := e.Function.(type) {
	case *ast.MemberAccessExpression:
		obj, err := c.compileExpression(fs, callee.Object)
		if err != nil {
			return unused(), err
		}
		methodName, err := c.propertyNameOperand(fs, callee.Property)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_INIT_METHOD_CALL, obj, methodName, unused())
		return c.compileCallArgsAndDo(fs, e.Arguments)
	case *ast.NullsafeMemberAccessExpression:
		obj, err := c.compileExpression(fs, callee.Object)
		if err != nil {
			return unused(), err
		}
		methodName, err := c.propertyNameOperand(fs, callee.Property)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_INIT_METHOD_CALL, obj, methodName, unused())
		return c.compileCallArgsAndDo(fs, e.Arguments)
	case *ast.StaticMemberAccessExpression:
		className, _ := nameOfExpr(callee.Class)
		methodName, err := c.propertyNameOperand(fs, callee.Member)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_INIT_STATIC_METHOD_CALL, fs.constString(className), methodName, unused())
		return c.compileCallArgsAndDo(fs, e.Arguments)
	case *ast.IdentifierNode:
		fs.emit3(opcodes.OP_INIT_FCALL, fs.constString(callee.Value), unused(), unused())
		return c.compileCallArgsAndDo(fs, e.Arguments)
	case *ast.NamespaceNameExpression:
		name := strings.Join(callee.Parts, "\\")
		fs.emit3(opcodes.OP_INIT_FCALL, fs.constString(name), unused(), unused())
		return c.compileCallArgsAndDo(fs, e.Arguments)
	default:
		calleeVal, err := c.compileExpression(fs, callee)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_INIT_FCALL_BY_NAME, calleeVal, unused(), unused())
		return c.compileCallArgsAndDo(fs, e.Arguments)
	}
}

func (c *Compiler) compileCallArgsAndDo(fs *funcScope, args []ast.Expression) (operand, error) {
	for _, a := range args {
		if na, ok := a.(*ast.NamedArgument); ok {
			a = na.Value
		}
		v, err := c.compileExpression(fs, a)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_SEND_VAL, unused(), v, unused())
	}
	result := fs.tempOperand()
	fs.emit3(opcodes.OP_DO_FCALL, unused(), unused(), result)
	return result, nil
}

func (c *Compiler) compileNew(fs *funcScope, e *ast.NewExpression) (operand, error) {
	className, isName := nameOfExpr(e.Class)
	var classOperand operand
	if isName {
		classOperand = fs.constString(className)
	} else {
		var err error
		classOperand, err = c.compileExpression(fs, e.Class)
		if err != nil {
			return unused(), err
		}
	}
	result := fs.tempOperand()
	fs.emit3(opcodes.OP_NEW, classOperand, unused(), result)

	fs.emit3(opcodes.OP_INIT_METHOD_CALL, result, fs.constString("__construct"), unused())
	for _, a := range e.Arguments {
		v, err := c.compileExpression(fs, a)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_SEND_VAL, unused(), v, unused())
	}
	ctorResult := fs.tempOperand()
	fs.emit3(opcodes.OP_DO_FCALL, unused(), unused(), ctorResult)
	return result, nil
}

func (c *Compiler) compileMatch(fs *funcScope, e *ast.MatchExpression) (operand, error) {
	cond, err := c.compileExpression(fs, e.Condition)
	if err != nil {
		return unused(), err
	}
	result := fs.tempOperand()
	endTarget := fs.constJumpPlaceholder()
	var defaultArm *ast.MatchArm
	for _, arm := range e.Arms {
		if arm.Conditions == nil {
			defaultArm = arm
			continue
		}
		var matched operand
		for i, cc := range arm.Conditions {
			armVal, err := c.compileExpression(fs, cc)
			if err != nil {
				return unused(), err
			}
			cmp := fs.tempOperand()
			fs.emit3(opcodes.OP_IS_IDENTICAL, cond, armVal, cmp)
			if i == 0 {
				matched = cmp
			} else {
				combined := fs.tempOperand()
				fs.emit3(opcodes.OP_BOOLEAN_OR, matched, cmp, combined)
				matched = combined
			}
		}
		nextArm := fs.constJumpPlaceholder()
		fs.emit3(opcodes.OP_JMPZ, matched, operand{kind: opcodes.IS_CONST, slot: nextArm}, unused())
		val, err := c.compileExpression(fs, arm.Expression)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_ASSIGN, val, unused(), result)
		fs.emit3(opcodes.OP_JMP, operand{kind: opcodes.IS_CONST, slot: endTarget}, unused(), unused())
		fs.patchJump(nextArm, fs.here())
	}
	if defaultArm != nil {
		val, err := c.compileExpression(fs, defaultArm.Expression)
		if err != nil {
			return unused(), err
		}
		fs.emit3(opcodes.OP_ASSIGN, val, unused(), result)
	}
	fs.patchJump(endTarget, fs.here())
	return result, nil
}

// compileClosure compiles a closure/arrow-function body as its own named
// registry.Function entry and emits OP_CREATE_CLOSURE referencing it.
func (c *Compiler) compileClosure(fs *funcScope, params []*ast.Parameter, uses []*ast.UseVariable, body ast.Statement, isArrow bool) (operand, error) {
	c.closureCounter++
	name := "{closure:" + itoa(c.closureCounter) + "}"

	childScope := newFuncScope(false, fs.className)
	if isArrow {
		// Arrow functions auto-capture the enclosing scope's variables by
		// value; reuse the parent's slot assignments for any free variable.
		for n, slot := range fs.slots {
			childScope.slots[n] = slot
			if slot >= childScope.nextSlot {
				childScope.nextSlot = slot + 1
			}
		}
	}
	for _, p := range params {
		childScope.slotFor(p.Name)
	}
	for _, u := range uses {
		childScope.slotFor(u.Name)
	}
	_ = c.compileStatement(childScope, body)
	childScope.emit3(opcodes.OP_RETURN, childScope.constOperand(values.NewNull()), unused(), unused())

	fn := &registry.Function{
		Name:         name,
		Parameters:   paramsFromAST(params, c),
		Instructions: childScope.instructions,
		Constants:    childScope.constants,
		IsAnonymous:  true,
	}
	c.functions[strings.ToLower(name)] = fn

	result := fs.tempOperand()
	fs.emit3(opcodes.OP_CREATE_CLOSURE, fs.constString(name), unused(), result)
	for _, u := range uses {
		fs.emit3(opcodes.OP_BIND_USE_VAR, fs.constString(u.Name), unused(), result)
	}
	return result, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
