package parser

import (
	"strconv"
	"strings"

	"github.com/wudi/hey/compiler/ast"
	"github.com/wudi/hey/compiler/lexer"
)

// precedence levels, lowest to highest. PHP's true grammar has a handful of
// irregular cases (the `or`/`and`/`xor` keyword operators bind looser than
// `=`); those are handled directly in parseExpression rather than through
// the table below.
const (
	precLowest = iota
	precAssign
	precTernary
	precCoalesce
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precInstanceof
	precUnary
	precPow
	precPostfix
	precCall
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.T_BOOLEAN_OR:           precLogicalOr,
	lexer.T_BOOLEAN_AND:          precLogicalAnd,
	lexer.TOKEN_PIPE:             precBitwiseOr,
	lexer.TOKEN_CARET:            precBitwiseXor,
	lexer.TOKEN_AMPERSAND:        precBitwiseAnd,
	lexer.T_IS_EQUAL:             precEquality,
	lexer.T_IS_NOT_EQUAL:         precEquality,
	lexer.T_IS_IDENTICAL:         precEquality,
	lexer.T_IS_NOT_IDENTICAL:     precEquality,
	lexer.T_SPACESHIP:            precEquality,
	lexer.TOKEN_LT:               precRelational,
	lexer.TOKEN_GT:               precRelational,
	lexer.T_IS_SMALLER_OR_EQUAL:  precRelational,
	lexer.T_IS_GREATER_OR_EQUAL:  precRelational,
	lexer.T_SL:                   precShift,
	lexer.T_SR:                   precShift,
	lexer.TOKEN_PLUS:             precAdditive,
	lexer.TOKEN_MINUS:            precAdditive,
	lexer.TOKEN_DOT:              precAdditive,
	lexer.TOKEN_MULTIPLY:         precMultiplicative,
	lexer.TOKEN_DIVIDE:           precMultiplicative,
	lexer.TOKEN_MODULO:           precMultiplicative,
	lexer.T_INSTANCEOF:           precInstanceof,
	lexer.T_POW:                  precPow,
}

var assignOperators = map[lexer.TokenType]string{
	lexer.TOKEN_EQUAL:     "=",
	lexer.T_PLUS_EQUAL:    "+=",
	lexer.T_MINUS_EQUAL:   "-=",
	lexer.T_MUL_EQUAL:     "*=",
	lexer.T_DIV_EQUAL:     "/=",
	lexer.T_CONCAT_EQUAL:  ".=",
	lexer.T_MOD_EQUAL:     "%=",
	lexer.T_AND_EQUAL:     "&=",
	lexer.T_OR_EQUAL:      "|=",
	lexer.T_XOR_EQUAL:     "^=",
	lexer.T_SL_EQUAL:      "<<=",
	lexer.T_SR_EQUAL:      ">>=",
	lexer.T_POW_EQUAL:     "**=",
	lexer.T_COALESCE_EQUAL: "??=",
}

func (p *Parser) registerExpressionParsers() {
	// nothing to pre-register: dispatch happens through parsePrimary's
	// switch rather than per-token function tables, which keeps the large
	// PHP grammar in one place instead of scattered across map literals.
}

// parseExpression is the Pratt entry point.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	return p.parseInfix(left, minPrec)
}

func (p *Parser) parseInfix(left ast.Expression, minPrec int) ast.Expression {
	for {
		if op, ok := assignOperators[p.cur.Type]; ok && minPrec <= precAssign {
			pos := p.pos()
			p.advance()
			byRef := false
			if op == "=" && p.curIs(lexer.TOKEN_AMPERSAND) {
				byRef = true
				p.advance()
			}
			right := p.parseExpression(precAssign)
			left = &ast.AssignmentExpression{BaseNode: p.base(ast.ASTAssign, pos), Left: left, Operator: op, Right: right, IsReference: byRef}
			continue
		}
		if p.curIs(lexer.TOKEN_QUESTION) && minPrec <= precTernary {
			pos := p.pos()
			p.advance()
			var trueExp ast.Expression
			if !p.curIs(lexer.TOKEN_COLON) {
				trueExp = p.parseExpression(precLowest)
			}
			if !p.expect(lexer.TOKEN_COLON) {
				return left
			}
			falseExp := p.parseExpression(precTernary)
			left = &ast.TernaryExpression{BaseNode: p.base(ast.ASTConditional, pos), Condition: left, TrueExp: trueExp, FalseExp: falseExp}
			continue
		}
		if p.curIs(lexer.T_COALESCE) && minPrec <= precCoalesce {
			pos := p.pos()
			p.advance()
			right := p.parseExpression(precCoalesce)
			left = &ast.CoalescingExpression{BaseNode: p.base(ast.ASTCoalesce, pos), Left: left, Right: right}
			continue
		}
		if prec, ok := binaryPrecedence[p.cur.Type]; ok && prec >= minPrec {
			if p.curIs(lexer.T_INSTANCEOF) {
				pos := p.pos()
				p.advance()
				class := p.parseClassRef()
				left = &ast.InstanceofExpression{BaseNode: p.base(ast.ASTInstanceof, pos), Expression: left, Class: class}
				continue
			}
			op := p.cur.Value
			tokType := p.cur.Type
			pos := p.pos()
			p.advance()
			nextMin := prec + 1
			if tokType == lexer.T_POW {
				nextMin = prec // right-associative
			}
			right := p.parseExpression(nextMin)
			left = &ast.BinaryExpression{BaseNode: p.base(ast.ASTBinaryOp, pos), Left: left, Operator: operatorText(tokType, op), Right: right}
			continue
		}
		if p.curIs(lexer.T_LOGICAL_AND) && minPrec <= precLowest {
			pos := p.pos()
			p.advance()
			right := p.parseExpression(precLowest)
			left = &ast.BinaryExpression{BaseNode: p.base(ast.ASTBinaryOp, pos), Left: left, Operator: "and", Right: right}
			continue
		}
		if p.curIs(lexer.T_LOGICAL_OR) && minPrec <= precLowest {
			pos := p.pos()
			p.advance()
			right := p.parseExpression(precLowest)
			left = &ast.BinaryExpression{BaseNode: p.base(ast.ASTBinaryOp, pos), Left: left, Operator: "or", Right: right}
			continue
		}
		if p.curIs(lexer.T_LOGICAL_XOR) && minPrec <= precLowest {
			pos := p.pos()
			p.advance()
			right := p.parseExpression(precLowest)
			left = &ast.BinaryExpression{BaseNode: p.base(ast.ASTBinaryOp, pos), Left: left, Operator: "xor", Right: right}
			continue
		}
		if p.curIs(lexer.T_PIPE) && minPrec <= precBitwiseOr {
			pos := p.pos()
			p.advance()
			right := p.parseExpression(precBitwiseOr + 1)
			left = &ast.PipeExpression{BaseNode: p.base(ast.ASTPipe, pos), Left: left, Right: right}
			continue
		}
		return left
	}
}

func operatorText(t lexer.TokenType, raw string) string {
	switch t {
	case lexer.TOKEN_LT:
		return "<"
	case lexer.TOKEN_GT:
		return ">"
	default:
		return raw
	}
}

func (p *Parser) parseUnary() ast.Expression {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.TOKEN_EXCLAMATION, lexer.TOKEN_MINUS, lexer.TOKEN_PLUS, lexer.TOKEN_TILDE:
		op := p.cur.Value
		p.advance()
		right := p.parseExpression(precUnary)
		return &ast.UnaryExpression{BaseNode: p.base(ast.ASTUnaryOp, pos), Operator: op, Right: right}
	case lexer.T_INC:
		p.advance()
		right := p.parseExpression(precUnary)
		return &ast.UnaryExpression{BaseNode: p.base(ast.ASTPreInc, pos), Operator: "++", Right: right}
	case lexer.T_DEC:
		p.advance()
		right := p.parseExpression(precUnary)
		return &ast.UnaryExpression{BaseNode: p.base(ast.ASTPreDec, pos), Operator: "--", Right: right}
	case lexer.TOKEN_AT:
		p.advance()
		expr := p.parseExpression(precUnary)
		return &ast.ErrorSuppressionExpression{BaseNode: p.base(ast.ASTSilence, pos), Expression: expr}
	case lexer.TOKEN_AMPERSAND:
		p.advance()
		expr := p.parseExpression(precUnary)
		return &ast.ReferenceExpression{BaseNode: p.base(ast.ASTRef, pos), Expression: expr}
	case lexer.T_ELLIPSIS:
		p.advance()
		expr := p.parseExpression(precAssign)
		return &ast.UnpackExpression{BaseNode: p.base(ast.ASTUnpack, pos), Expression: expr}
	case lexer.T_PRINT:
		p.advance()
		expr := p.parseExpression(precAssign)
		return &ast.PrintExpression{BaseNode: p.base(ast.ASTPrint, pos), Expression: expr}
	case lexer.T_THROW:
		p.advance()
		expr := p.parseExpression(precAssign)
		return &ast.ThrowExpression{BaseNode: p.base(ast.ASTThrow, pos), Expression: expr}
	case lexer.T_YIELD:
		return p.parseYield()
	case lexer.T_CLONE:
		p.advance()
		expr := p.parseExpression(precUnary)
		return &ast.CloneExpression{BaseNode: p.base(ast.ASTClone, pos), Expression: expr}
	case lexer.T_NEW:
		return p.parseNew()
	case lexer.T_INT_CAST, lexer.T_DOUBLE_CAST, lexer.T_STRING_CAST, lexer.T_ARRAY_CAST,
		lexer.T_OBJECT_CAST, lexer.T_BOOL_CAST, lexer.T_UNSET_CAST, lexer.T_VOID_CAST:
		castType := castTypeName(p.cur.Type)
		p.advance()
		expr := p.parseExpression(precUnary)
		return &ast.CastExpression{BaseNode: p.base(ast.ASTCast, pos), Type: castType, Expression: expr}
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func castTypeName(t lexer.TokenType) string {
	switch t {
	case lexer.T_INT_CAST:
		return "int"
	case lexer.T_DOUBLE_CAST:
		return "float"
	case lexer.T_STRING_CAST:
		return "string"
	case lexer.T_ARRAY_CAST:
		return "array"
	case lexer.T_OBJECT_CAST:
		return "object"
	case lexer.T_BOOL_CAST:
		return "bool"
	case lexer.T_UNSET_CAST:
		return "unset"
	case lexer.T_VOID_CAST:
		return "void"
	}
	return "unknown"
}

func (p *Parser) parseYield() ast.Expression {
	pos := p.pos()
	p.advance()
	if p.curIs(lexer.T_YIELD_FROM) {
		p.advance()
		expr := p.parseExpression(precAssign)
		return &ast.YieldFromExpression{BaseNode: p.base(ast.ASTYieldFrom, pos), Expression: expr}
	}
	if p.curIs(lexer.TOKEN_SEMICOLON) || p.curIs(lexer.TOKEN_RPAREN) || p.curIs(lexer.TOKEN_RBRACE) || p.curIs(lexer.TOKEN_COMMA) {
		return &ast.YieldExpression{BaseNode: p.base(ast.ASTYield, pos)}
	}
	first := p.parseExpression(precAssign)
	if p.curIs(lexer.T_DOUBLE_ARROW) {
		p.advance()
		value := p.parseExpression(precAssign)
		return &ast.YieldExpression{BaseNode: p.base(ast.ASTYield, pos), Key: first, Value: value}
	}
	return &ast.YieldExpression{BaseNode: p.base(ast.ASTYield, pos), Value: first}
}

func (p *Parser) parseNew() ast.Expression {
	pos := p.pos()
	p.advance()
	if p.curIs(lexer.T_CLASS) {
		return p.parseAnonymousClass(pos)
	}
	class := p.parseClassRef()
	var args []ast.Expression
	if p.curIs(lexer.TOKEN_LPAREN) {
		args = p.parseArgumentList()
	}
	expr := ast.Expression(&ast.NewExpression{BaseNode: p.base(ast.ASTNew, pos), Class: class, Arguments: args})
	return p.parsePostfix(expr)
}

func (p *Parser) parseClassRef() ast.Expression {
	switch p.cur.Type {
	case lexer.T_STATIC:
		pos := p.pos()
		p.advance()
		return &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, pos), Value: "static"}
	case lexer.T_VARIABLE:
		return p.parsePostfix(p.parsePrimary())
	default:
		return p.parseNamePrimary()
	}
}

func (p *Parser) parseAnonymousClass(pos lexer.Position) ast.Expression {
	p.advance() // consume 'class'
	var args []ast.Expression
	if p.curIs(lexer.TOKEN_LPAREN) {
		args = p.parseArgumentList()
	}
	var extends ast.Expression
	var implements []ast.Expression
	if p.curIs(lexer.T_EXTENDS) {
		p.advance()
		extends = p.parseNamePrimary()
	}
	if p.curIs(lexer.T_IMPLEMENTS) {
		p.advance()
		implements = append(implements, p.parseNamePrimary())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			implements = append(implements, p.parseNamePrimary())
		}
	}
	members := p.parseClassBody()
	return &ast.AnonymousClassExpression{
		BaseNode:        p.base(ast.ASTClass, pos),
		ConstructorArgs: args,
		Extends:         extends,
		Implements:      implements,
		Members:         members,
	}
}

// parsePrimary parses literals, variables, identifiers and parenthesized
// expressions -- everything with no left-hand operand of its own.
func (p *Parser) parsePrimary() ast.Expression {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.T_LNUMBER:
		v, _ := strconv.ParseInt(p.cur.Value, 0, 64)
		p.advance()
		return &ast.IntegerLiteral{BaseNode: p.base(ast.ASTZval, pos), Value: v}
	case lexer.T_DNUMBER:
		v, _ := strconv.ParseFloat(p.cur.Value, 64)
		p.advance()
		return &ast.FloatLiteral{BaseNode: p.base(ast.ASTZval, pos), Value: v}
	case lexer.T_CONSTANT_ENCAPSED_STRING:
		v := p.cur.Value
		p.advance()
		return &ast.StringLiteral{BaseNode: p.base(ast.ASTZval, pos), Value: v}
	case lexer.T_VARIABLE:
		name := p.cur.Value
		p.advance()
		return &ast.Variable{BaseNode: p.base(ast.ASTVar, pos), Name: name}
	case lexer.TOKEN_DOLLAR:
		// variable variable: $$name or ${expr}; represented as a Variable
		// whose Name is the textual rendering of the inner expression.
		p.advance()
		inner := p.parseUnary()
		return &ast.Variable{BaseNode: p.base(ast.ASTVar, pos), Name: "$" + inner.String()}
	case lexer.TOKEN_LPAREN:
		p.advance()
		expr := p.parseExpression(precLowest)
		p.expect(lexer.TOKEN_RPAREN)
		return expr
	case lexer.TOKEN_LBRACKET:
		return p.parseArrayLiteral(true)
	case lexer.T_ARRAY:
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		arr := p.parseArrayElements(lexer.TOKEN_RPAREN)
		arr.IsShort = false
		arr.BaseNode = p.base(ast.ASTArray, pos)
		return arr
	case lexer.T_LIST:
		return p.parseListExpression()
	case lexer.T_ISSET:
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		var vars []ast.Expression
		vars = append(vars, p.parseExpression(precLowest))
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			vars = append(vars, p.parseExpression(precLowest))
		}
		p.expect(lexer.TOKEN_RPAREN)
		return &ast.IssetExpression{BaseNode: p.base(ast.ASTIsset, pos), Variables: vars}
	case lexer.T_EMPTY:
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		expr := p.parseExpression(precLowest)
		p.expect(lexer.TOKEN_RPAREN)
		return &ast.EmptyExpression{BaseNode: p.base(ast.ASTEmpty, pos), Variable: expr}
	case lexer.T_EVAL:
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		expr := p.parseExpression(precLowest)
		p.expect(lexer.TOKEN_RPAREN)
		return &ast.EvalExpression{BaseNode: p.base(ast.ASTEvalExpression, pos), Code: expr}
	case lexer.T_EXIT:
		p.advance()
		var expr ast.Expression
		if p.curIs(lexer.TOKEN_LPAREN) {
			p.advance()
			if !p.curIs(lexer.TOKEN_RPAREN) {
				expr = p.parseExpression(precLowest)
			}
			p.expect(lexer.TOKEN_RPAREN)
		}
		return &ast.ExitExpression{BaseNode: p.base(ast.ASTExit, pos), Expression: expr}
	case lexer.T_INCLUDE, lexer.T_INCLUDE_ONCE, lexer.T_REQUIRE, lexer.T_REQUIRE_ONCE:
		kind := includeKind(p.cur.Type)
		p.advance()
		expr := p.parseExpression(precAssign)
		return &ast.IncludeExpression{BaseNode: p.base(ast.ASTIncludeOrEval, pos), Type: kind, Expression: expr}
	case lexer.T_FUNCTION:
		return p.parseClosure(false)
	case lexer.T_STATIC:
		if p.peekIs(lexer.T_FUNCTION) || p.peekIs(lexer.T_FN) {
			p.advance()
			if p.curIs(lexer.T_FN) {
				return p.parseArrowFunction(true)
			}
			return p.parseClosure(true)
		}
		p.advance()
		return &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, pos), Value: "static"}
	case lexer.T_FN:
		return p.parseArrowFunction(false)
	case lexer.T_MATCH:
		return p.parseMatch()
	case lexer.T_LINE, lexer.T_FILE, lexer.T_DIR, lexer.T_CLASS_C, lexer.T_TRAIT_C,
		lexer.T_METHOD_C, lexer.T_FUNC_C, lexer.T_NS_C:
		name := p.cur.Value
		p.advance()
		return &ast.MagicConstantExpression{BaseNode: p.base(ast.ASTMagicConst, pos), Name: name}
	case lexer.T_STRING, lexer.T_NAME_FULLY_QUALIFIED, lexer.T_NAME_RELATIVE, lexer.T_NAME_QUALIFIED, lexer.T_NS_SEPARATOR:
		return p.parseNamePrimary()
	default:
		p.errorf("unexpected token %s (%q) in expression", lexer.TokenNames[p.cur.Type], p.cur.Value)
		p.advance()
		return &ast.NullLiteral{BaseNode: p.base(ast.ASTZval, pos)}
	}
}

func includeKind(t lexer.TokenType) string {
	switch t {
	case lexer.T_INCLUDE:
		return "include"
	case lexer.T_INCLUDE_ONCE:
		return "include_once"
	case lexer.T_REQUIRE:
		return "require"
	default:
		return "require_once"
	}
}

// parseNamePrimary parses a (possibly qualified) name used as an
// identifier, constant reference or class name.
func (p *Parser) parseNamePrimary() ast.Expression {
	pos := p.pos()
	var parts []string
	if p.curIs(lexer.T_NS_SEPARATOR) {
		parts = append(parts, "")
		p.advance()
	}
	parts = append(parts, p.cur.Value)
	p.advance()
	if len(parts) == 1 && !strings.Contains(parts[0], "\\") {
		return &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, pos), Value: parts[0]}
	}
	full := strings.Join(parts, "\\")
	if strings.Contains(full, "\\") {
		return &ast.NamespaceNameExpression{BaseNode: p.base(ast.ASTNamespaceName, pos), Parts: strings.Split(strings.TrimPrefix(full, "\\"), "\\")}
	}
	return &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, pos), Value: full}
}

func (p *Parser) parseArrayLiteral(short bool) ast.Expression {
	pos := p.pos()
	p.advance() // consume '['
	arr := p.parseArrayElements(lexer.TOKEN_RBRACKET)
	arr.IsShort = short
	arr.BaseNode = p.base(ast.ASTArray, pos)
	return arr
}

func (p *Parser) parseArrayElements(end lexer.TokenType) *ast.ArrayExpression {
	arr := &ast.ArrayExpression{}
	for !p.curIs(end) && !p.curIs(lexer.T_EOF) {
		elemPos := p.pos()
		elem := &ast.ArrayElement{BaseNode: p.base(ast.ASTArrayElem, elemPos)}
		if p.curIs(lexer.T_ELLIPSIS) {
			p.advance()
			elem.Value = p.parseExpression(precAssign)
			elem.IsUnpack = true
		} else {
			if p.curIs(lexer.TOKEN_AMPERSAND) {
				p.advance()
				elem.IsReference = true
				elem.Value = p.parseExpression(precAssign)
			} else {
				first := p.parseExpression(precAssign)
				if p.curIs(lexer.T_DOUBLE_ARROW) {
					p.advance()
					elem.Key = first
					if p.curIs(lexer.TOKEN_AMPERSAND) {
						p.advance()
						elem.IsReference = true
					}
					elem.Value = p.parseExpression(precAssign)
				} else {
					elem.Value = first
				}
			}
		}
		arr.Elements = append(arr.Elements, elem)
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(end)
	return arr
}

func (p *Parser) parseListExpression() ast.Expression {
	pos := p.pos()
	p.advance()
	p.expect(lexer.TOKEN_LPAREN)
	list := &ast.ListExpression{BaseNode: p.base(ast.ASTList, pos)}
	for !p.curIs(lexer.TOKEN_RPAREN) && !p.curIs(lexer.T_EOF) {
		if p.curIs(lexer.TOKEN_COMMA) {
			list.Elements = append(list.Elements, &ast.ListElement{BaseNode: p.base(ast.ASTZval, p.pos())})
			p.advance()
			continue
		}
		v := p.parseExpression(precAssign)
		list.Elements = append(list.Elements, &ast.ListElement{BaseNode: p.base(ast.ASTZval, p.pos()), Variable: v})
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.TOKEN_RPAREN)
	return list
}

func (p *Parser) parseArgumentList() []ast.Expression {
	p.advance() // consume '('
	var args []ast.Expression
	for !p.curIs(lexer.TOKEN_RPAREN) && !p.curIs(lexer.T_EOF) {
		pos := p.pos()
		if (p.curIs(lexer.T_STRING)) && p.peekIs(lexer.TOKEN_COLON) {
			name := p.cur.Value
			p.advance()
			p.advance()
			val := p.parseExpression(precAssign)
			args = append(args, &ast.NamedArgument{BaseNode: p.base(ast.ASTNamedArg, pos), Name: name, Value: val})
		} else if p.curIs(lexer.T_ELLIPSIS) {
			p.advance()
			val := p.parseExpression(precAssign)
			args = append(args, &ast.UnpackExpression{BaseNode: p.base(ast.ASTUnpack, pos), Expression: val})
		} else {
			args = append(args, p.parseExpression(precAssign))
		}
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.TOKEN_RPAREN)
	return args
}

// parsePostfix handles call/index/member-access/increment chains that
// attach to an already-parsed primary expression.
func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		pos := p.pos()
		switch p.cur.Type {
		case lexer.TOKEN_LPAREN:
			args := p.parseArgumentList()
			expr = &ast.FunctionCallExpression{BaseNode: p.base(ast.ASTCall, pos), Function: expr, Arguments: args}
		case lexer.TOKEN_LBRACKET:
			p.advance()
			var idx ast.Expression
			if !p.curIs(lexer.TOKEN_RBRACKET) {
				idx = p.parseExpression(precLowest)
			}
			p.expect(lexer.TOKEN_RBRACKET)
			expr = &ast.ArrayAccessExpression{BaseNode: p.base(ast.ASTDim, pos), Array: expr, Index: idx}
		case lexer.T_OBJECT_OPERATOR:
			p.advance()
			prop := p.parseMemberName()
			member := ast.Expression(&ast.MemberAccessExpression{BaseNode: p.base(ast.ASTProp, pos), Object: expr, Property: prop})
			if p.curIs(lexer.TOKEN_LPAREN) {
				args := p.parseArgumentList()
				member = &ast.FunctionCallExpression{BaseNode: p.base(ast.ASTMethodCall, pos), Function: member, Arguments: args}
			}
			expr = member
		case lexer.T_NULLSAFE_OBJECT_OPERATOR:
			p.advance()
			prop := p.parseMemberName()
			member := ast.Expression(&ast.NullsafeMemberAccessExpression{BaseNode: p.base(ast.ASTNullsafeProp, pos), Object: expr, Property: prop})
			if p.curIs(lexer.TOKEN_LPAREN) {
				args := p.parseArgumentList()
				member = &ast.FunctionCallExpression{BaseNode: p.base(ast.ASTNullsafeMethodCall, pos), Function: member, Arguments: args}
			}
			expr = member
		case lexer.T_PAAMAYIM_NEKUDOTAYIM:
			p.advance()
			member := p.parseStaticMemberName()
			access := ast.Expression(&ast.StaticMemberAccessExpression{BaseNode: p.base(ast.ASTStaticProp, pos), Class: expr, Member: member})
			if p.curIs(lexer.TOKEN_LPAREN) {
				args := p.parseArgumentList()
				access = &ast.FunctionCallExpression{BaseNode: p.base(ast.ASTStaticCall, pos), Function: access, Arguments: args}
			}
			expr = access
		case lexer.T_INC:
			p.advance()
			expr = &ast.PostfixExpression{BaseNode: p.base(ast.ASTPostInc, pos), Left: expr, Operator: "++"}
		case lexer.T_DEC:
			p.advance()
			expr = &ast.PostfixExpression{BaseNode: p.base(ast.ASTPostDec, pos), Left: expr, Operator: "--"}
		default:
			return expr
		}
	}
}

func (p *Parser) parseMemberName() ast.Expression {
	pos := p.pos()
	if p.curIs(lexer.T_VARIABLE) {
		name := p.cur.Value
		p.advance()
		return &ast.Variable{BaseNode: p.base(ast.ASTVar, pos), Name: name}
	}
	if p.curIs(lexer.TOKEN_LBRACE) {
		p.advance()
		expr := p.parseExpression(precLowest)
		p.expect(lexer.TOKEN_RBRACE)
		return expr
	}
	name := p.cur.Value
	p.advance()
	return &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, pos), Value: name}
}

func (p *Parser) parseStaticMemberName() ast.Expression {
	pos := p.pos()
	if p.curIs(lexer.T_VARIABLE) {
		name := p.cur.Value
		p.advance()
		return &ast.Variable{BaseNode: p.base(ast.ASTVar, pos), Name: name}
	}
	if p.curIs(lexer.TOKEN_LBRACE) {
		p.advance()
		expr := p.parseExpression(precLowest)
		p.expect(lexer.TOKEN_RBRACE)
		return expr
	}
	if p.curIs(lexer.T_CLASS) {
		p.advance()
		return &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, pos), Value: "class"}
	}
	name := p.cur.Value
	p.advance()
	return &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, pos), Value: name}
}

func (p *Parser) parseMatch() ast.Expression {
	pos := p.pos()
	p.advance()
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(lexer.TOKEN_RPAREN)
	p.expect(lexer.TOKEN_LBRACE)
	m := &ast.MatchExpression{BaseNode: p.base(ast.ASTMatch, pos), Condition: cond}
	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.T_EOF) {
		armPos := p.pos()
		arm := &ast.MatchArm{BaseNode: p.base(ast.ASTMatchArm, armPos)}
		if p.curIs(lexer.T_DEFAULT) {
			p.advance()
		} else {
			arm.Conditions = append(arm.Conditions, p.parseExpression(precAssign))
			for p.curIs(lexer.TOKEN_COMMA) {
				p.advance()
				if p.curIs(lexer.T_DOUBLE_ARROW) {
					break
				}
				arm.Conditions = append(arm.Conditions, p.parseExpression(precAssign))
			}
		}
		p.expect(lexer.T_DOUBLE_ARROW)
		arm.Expression = p.parseExpression(precAssign)
		m.Arms = append(m.Arms, arm)
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.TOKEN_RBRACE)
	return m
}

func (p *Parser) parseClosure(isStatic bool) ast.Expression {
	pos := p.pos()
	p.advance() // 'function'
	byRef := false
	if p.curIs(lexer.TOKEN_AMPERSAND) {
		byRef = true
		p.advance()
	}
	params := p.parseParameterList()
	var uses []*ast.UseVariable
	if p.curIs(lexer.T_USE) {
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		for !p.curIs(lexer.TOKEN_RPAREN) && !p.curIs(lexer.T_EOF) {
			ref := false
			if p.curIs(lexer.TOKEN_AMPERSAND) {
				ref = true
				p.advance()
			}
			name := p.cur.Value
			p.expect(lexer.T_VARIABLE)
			uses = append(uses, &ast.UseVariable{Name: name, IsReference: ref})
			if p.curIs(lexer.TOKEN_COMMA) {
				p.advance()
			}
		}
		p.expect(lexer.TOKEN_RPAREN)
	}
	var retType ast.Type
	if p.curIs(lexer.TOKEN_COLON) {
		p.advance()
		retType = p.parseType()
	}
	body := p.parseBlock()
	return &ast.AnonymousFunctionExpression{
		BaseNode:         p.base(ast.ASTClosure, pos),
		Parameters:       params,
		UseVariables:     uses,
		ReturnType:       retType,
		Body:             body,
		ReturnsReference: byRef,
		IsStatic:         isStatic,
	}
}

func (p *Parser) parseArrowFunction(isStatic bool) ast.Expression {
	pos := p.pos()
	p.advance() // 'fn'
	byRef := false
	if p.curIs(lexer.TOKEN_AMPERSAND) {
		byRef = true
		p.advance()
	}
	params := p.parseParameterList()
	var retType ast.Type
	if p.curIs(lexer.TOKEN_COLON) {
		p.advance()
		retType = p.parseType()
	}
	p.expect(lexer.T_DOUBLE_ARROW)
	expr := p.parseExpression(precAssign)
	return &ast.ArrowFunctionExpression{
		BaseNode:         p.base(ast.ASTArrowFunc, pos),
		Parameters:       params,
		ReturnType:       retType,
		Expression:       expr,
		ReturnsReference: byRef,
		IsStatic:         isStatic,
	}
}
