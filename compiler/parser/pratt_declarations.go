package parser

import (
	"github.com/wudi/hey/compiler/ast"
	"github.com/wudi/hey/compiler/lexer"
)

var classModifierTokens = map[lexer.TokenType]string{
	lexer.T_ABSTRACT: "abstract",
	lexer.T_FINAL:    "final",
	lexer.T_READONLY: "readonly",
}

var memberModifierTokens = map[lexer.TokenType]string{
	lexer.T_PUBLIC:         "public",
	lexer.T_PROTECTED:      "protected",
	lexer.T_PRIVATE:        "private",
	lexer.T_STATIC:         "static",
	lexer.T_ABSTRACT:       "abstract",
	lexer.T_FINAL:          "final",
	lexer.T_READONLY:       "readonly",
	lexer.T_VAR:            "var",
	lexer.T_PUBLIC_SET:     "public(set)",
	lexer.T_PROTECTED_SET:  "protected(set)",
	lexer.T_PRIVATE_SET:    "private(set)",
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	pos := p.pos()
	p.advance() // 'function'
	byRef := false
	if p.curIs(lexer.TOKEN_AMPERSAND) {
		byRef = true
		p.advance()
	}
	name := p.cur.Value
	p.advance()
	params := p.parseParameterList()
	var retType ast.Type
	if p.curIs(lexer.TOKEN_COLON) {
		p.advance()
		retType = p.parseType()
	}
	var body ast.Statement
	if p.curIs(lexer.TOKEN_SEMICOLON) {
		p.advance()
	} else {
		body = p.parseBlock()
	}
	return &ast.FunctionDeclaration{
		BaseNode:         p.base(ast.ASTFuncDecl, pos),
		Name:             name,
		Parameters:       params,
		ReturnType:       retType,
		Body:             body,
		ReturnsReference: byRef,
	}
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	p.expect(lexer.TOKEN_LPAREN)
	var params []*ast.Parameter
	for !p.curIs(lexer.TOKEN_RPAREN) && !p.curIs(lexer.T_EOF) {
		params = append(params, p.parseParameter())
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.TOKEN_RPAREN)
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	pos := p.pos()
	param := &ast.Parameter{BaseNode: p.base(ast.ASTParam, pos)}
	if p.curIs(lexer.T_ATTRIBUTE) {
		param.Attributes = p.parseAttributeList()
	}
	for {
		if mod, ok := memberModifierTokens[p.cur.Type]; ok {
			param.Modifiers = append(param.Modifiers, mod)
			p.advance()
			continue
		}
		break
	}
	if p.curIs(lexer.TOKEN_AMPERSAND) {
		param.IsReference = true
		p.advance()
	} else if !p.curIs(lexer.T_ELLIPSIS) && !p.curIs(lexer.T_VARIABLE) {
		param.Type = p.parseType()
	}
	if p.curIs(lexer.TOKEN_AMPERSAND) {
		param.IsReference = true
		p.advance()
	}
	if p.curIs(lexer.T_ELLIPSIS) {
		param.IsVariadic = true
		p.advance()
	}
	param.Name = p.cur.Value
	p.expect(lexer.T_VARIABLE)
	if p.curIs(lexer.TOKEN_EQUAL) {
		p.advance()
		param.DefaultValue = p.parseExpression(precAssign)
	}
	return param
}

// parseType parses a (possibly nullable/union/intersection) type hint.
func (p *Parser) parseType() ast.Type {
	if p.curIs(lexer.TOKEN_QUESTION) {
		pos := p.pos()
		p.advance()
		inner := p.parseSingleType()
		return &ast.NullableType{BaseNode: p.base(ast.ASTType, pos), Type: inner}
	}
	first := p.parseSingleType()
	if p.curIs(lexer.T_PIPE) || p.curIs(lexer.TOKEN_PIPE) {
		pos := p.pos()
		types := []ast.Type{first}
		for p.curIs(lexer.T_PIPE) || p.curIs(lexer.TOKEN_PIPE) {
			p.advance()
			types = append(types, p.parseSingleType())
		}
		return &ast.UnionType{BaseNode: p.base(ast.ASTTypeUnion, pos), Types: types}
	}
	if p.curIs(lexer.TOKEN_AMPERSAND) && !isParamStart(p.peek.Type) {
		pos := p.pos()
		types := []ast.Type{first}
		for p.curIs(lexer.TOKEN_AMPERSAND) {
			p.advance()
			types = append(types, p.parseSingleType())
		}
		return &ast.IntersectionType{BaseNode: p.base(ast.ASTTypeIntersection, pos), Types: types}
	}
	return first
}

func isParamStart(t lexer.TokenType) bool {
	return t == lexer.T_VARIABLE || t == lexer.T_ELLIPSIS
}

func (p *Parser) parseSingleType() ast.Type {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.T_ARRAY:
		p.advance()
		return &ast.ArrayType{BaseNode: p.base(ast.ASTType, pos)}
	case lexer.T_CALLABLE:
		p.advance()
		return &ast.CallableType{BaseNode: p.base(ast.ASTType, pos)}
	case lexer.T_STATIC:
		p.advance()
		return &ast.StaticType{BaseNode: p.base(ast.ASTType, pos)}
	case lexer.T_STRING:
		switch p.cur.Value {
		case "int", "float", "string", "bool", "void", "mixed", "object", "never", "iterable", "self", "parent", "null", "false", "true":
			name := p.cur.Value
			p.advance()
			return &ast.ScalarType{BaseNode: p.base(ast.ASTType, pos), Type: name}
		}
		return &ast.NamedType{BaseNode: p.base(ast.ASTType, pos), Name: p.parseNamePrimary()}
	default:
		return &ast.NamedType{BaseNode: p.base(ast.ASTType, pos), Name: p.parseNamePrimary()}
	}
}

// ============= CLASS-LIKE DECLARATIONS =============

func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	pos := p.pos()
	var mods []string
	for {
		if m, ok := classModifierTokens[p.cur.Type]; ok {
			mods = append(mods, m)
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.T_CLASS)
	name := p.cur.Value
	p.advance()
	decl := &ast.ClassDeclaration{BaseNode: p.base(ast.ASTClass, pos), Name: name, Modifiers: mods}
	if p.curIs(lexer.T_EXTENDS) {
		p.advance()
		decl.Extends = p.parseNamePrimary()
	}
	if p.curIs(lexer.T_IMPLEMENTS) {
		p.advance()
		decl.Implements = append(decl.Implements, p.parseNamePrimary())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			decl.Implements = append(decl.Implements, p.parseNamePrimary())
		}
	}
	decl.Members = p.parseClassBody()
	return decl
}

func (p *Parser) parseInterfaceDeclaration() *ast.InterfaceDeclaration {
	pos := p.pos()
	p.advance()
	name := p.cur.Value
	p.advance()
	decl := &ast.InterfaceDeclaration{BaseNode: p.base(ast.ASTInterface, pos), Name: name}
	if p.curIs(lexer.T_EXTENDS) {
		p.advance()
		decl.Extends = append(decl.Extends, p.parseNamePrimary())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			decl.Extends = append(decl.Extends, p.parseNamePrimary())
		}
	}
	decl.Members = p.parseClassBody()
	return decl
}

func (p *Parser) parseTraitDeclaration() *ast.TraitDeclaration {
	pos := p.pos()
	p.advance()
	name := p.cur.Value
	p.advance()
	decl := &ast.TraitDeclaration{BaseNode: p.base(ast.ASTTrait, pos), Name: name}
	decl.Members = p.parseClassBody()
	return decl
}

func (p *Parser) parseEnumDeclaration() *ast.EnumDeclaration {
	pos := p.pos()
	p.advance()
	name := p.cur.Value
	p.advance()
	decl := &ast.EnumDeclaration{BaseNode: p.base(ast.ASTEnum, pos), Name: name}
	if p.curIs(lexer.TOKEN_COLON) {
		p.advance()
		decl.BackingType = p.parseSingleType()
	}
	if p.curIs(lexer.T_IMPLEMENTS) {
		p.advance()
		decl.Implements = append(decl.Implements, p.parseNamePrimary())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			decl.Implements = append(decl.Implements, p.parseNamePrimary())
		}
	}
	decl.Members = p.parseClassBody()
	return decl
}

// parseClassBody parses the `{ ... }` member list shared by class/
// interface/trait/enum/anonymous-class declarations.
func (p *Parser) parseClassBody() []ast.ClassMember {
	p.expect(lexer.TOKEN_LBRACE)
	var members []ast.ClassMember
	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.T_EOF) {
		members = append(members, p.parseClassMember()...)
	}
	p.expect(lexer.TOKEN_RBRACE)
	return members
}

func (p *Parser) parseClassMember() []ast.ClassMember {
	pos := p.pos()
	var attrs ast.AttributeList
	if p.curIs(lexer.T_ATTRIBUTE) {
		attrs = p.parseAttributeList()
	}
	if p.curIs(lexer.T_USE) {
		return []ast.ClassMember{p.parseTraitUse()}
	}
	if p.curIs(lexer.T_CASE) {
		p.advance()
		name := p.cur.Value
		p.advance()
		var val ast.Expression
		if p.curIs(lexer.TOKEN_EQUAL) {
			p.advance()
			val = p.parseExpression(precAssign)
		}
		p.expectSemi()
		return []ast.ClassMember{&ast.EnumCase{BaseNode: p.base(ast.ASTEnumCase, pos), Name: name, Value: val, Attributes: attrs}}
	}

	var mods []string
	for {
		if m, ok := memberModifierTokens[p.cur.Type]; ok {
			mods = append(mods, m)
			p.advance()
			continue
		}
		break
	}

	if p.curIs(lexer.T_CONST) {
		p.advance()
		cdecl := &ast.ClassConstantDeclaration{BaseNode: p.base(ast.ASTClassConstDecl, pos), Modifiers: mods, Attributes: attrs}
		// optional type: `const int FOO = 1;` -- distinguished by lookahead
		// to a second identifier before '='.
		if p.curIs(lexer.T_STRING) && !p.peekIs(lexer.TOKEN_EQUAL) {
			cdecl.Type = p.parseSingleType()
		}
		for {
			cPos := p.pos()
			name := p.cur.Value
			p.advance()
			p.expect(lexer.TOKEN_EQUAL)
			val := p.parseExpression(precAssign)
			cdecl.Constants = append(cdecl.Constants, &ast.ConstantClause{BaseNode: p.base(ast.ASTConstElem, cPos), Name: name, Value: val})
			if p.curIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expectSemi()
		return []ast.ClassMember{cdecl}
	}

	if p.curIs(lexer.T_FUNCTION) {
		p.advance()
		byRef := false
		if p.curIs(lexer.TOKEN_AMPERSAND) {
			byRef = true
			p.advance()
		}
		name := p.cur.Value
		p.advance()
		params := p.parseParameterList()
		var retType ast.Type
		if p.curIs(lexer.TOKEN_COLON) {
			p.advance()
			retType = p.parseType()
		}
		var body ast.Statement
		if p.curIs(lexer.TOKEN_SEMICOLON) {
			p.advance()
		} else {
			body = p.parseBlock()
		}
		return []ast.ClassMember{&ast.MethodDeclaration{
			BaseNode:         p.base(ast.ASTMethod, pos),
			Name:             name,
			Modifiers:        mods,
			Parameters:       params,
			ReturnType:       retType,
			Body:             body,
			ReturnsReference: byRef,
			Attributes:       attrs,
		}}
	}

	// property declaration: [type] $name [= default] [{ hooks }] [, $name2 ...]
	var propType ast.Type
	if !p.curIs(lexer.T_VARIABLE) {
		propType = p.parseType()
	}
	members := []ast.ClassMember{p.parsePropertyDeclaration(pos, propType, mods, attrs)}
	for p.curIs(lexer.TOKEN_COMMA) {
		p.advance()
		pPos := p.pos()
		members = append(members, p.parsePropertyDeclaration(pPos, propType, mods, attrs))
	}
	return members
}

func (p *Parser) parsePropertyDeclaration(pos lexer.Position, typ ast.Type, mods []string, attrs ast.AttributeList) *ast.PropertyDeclaration {
	name := p.cur.Value
	p.expect(lexer.T_VARIABLE)
	decl := &ast.PropertyDeclaration{BaseNode: p.base(ast.ASTPropElem, pos), Name: name, Type: typ, Modifiers: mods, Attributes: attrs}
	if p.curIs(lexer.TOKEN_EQUAL) {
		p.advance()
		decl.DefaultValue = p.parseExpression(precAssign)
	}
	if p.curIs(lexer.TOKEN_LBRACE) {
		decl.Hooks = p.parsePropertyHooks()
		return decl
	}
	if !p.curIs(lexer.TOKEN_COMMA) {
		p.expectSemi()
	}
	return decl
}

// parsePropertyHooks parses the PHP 8.4 `{ get => ...; set(T $v) { ... } }`
// hook block attached to a property declaration.
func (p *Parser) parsePropertyHooks() []*ast.PropertyHook {
	p.expect(lexer.TOKEN_LBRACE)
	var hooks []*ast.PropertyHook
	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.T_EOF) {
		hooks = append(hooks, p.parsePropertyHook())
	}
	p.expect(lexer.TOKEN_RBRACE)
	return hooks
}

func (p *Parser) parsePropertyHook() *ast.PropertyHook {
	pos := p.pos()
	var mods []string
	for p.curIs(lexer.T_FINAL) {
		mods = append(mods, "final")
		p.advance()
	}
	byRef := false
	if p.curIs(lexer.TOKEN_AMPERSAND) {
		byRef = true
		p.advance()
	}
	name := p.cur.Value
	if p.curIs(lexer.T_GET) {
		name = "get"
	} else if p.curIs(lexer.T_SET) {
		name = "set"
	}
	p.advance()
	hook := &ast.PropertyHook{BaseNode: p.base(ast.ASTPropertyHook, pos), Name: name, Modifiers: mods, ReturnsReference: byRef}
	if p.curIs(lexer.TOKEN_LPAREN) {
		hook.Parameters = p.parseParameterList()
	}
	if p.curIs(lexer.T_DOUBLE_ARROW) {
		p.advance()
		hook.Expression = p.parseExpression(precAssign)
		p.expectSemi()
	} else {
		hook.Body = p.parseBlock()
	}
	return hook
}

func (p *Parser) parseTraitUse() *ast.TraitUseClause {
	pos := p.pos()
	p.advance()
	use := &ast.TraitUseClause{BaseNode: p.base(ast.ASTUseTrait, pos)}
	use.Traits = append(use.Traits, p.parseNamePrimary())
	for p.curIs(lexer.TOKEN_COMMA) {
		p.advance()
		use.Traits = append(use.Traits, p.parseNamePrimary())
	}
	if p.curIs(lexer.TOKEN_LBRACE) {
		p.advance()
		for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.T_EOF) {
			use.Adaptations = append(use.Adaptations, p.parseTraitAdaptation())
		}
		p.expect(lexer.TOKEN_RBRACE)
	} else {
		p.expectSemi()
	}
	return use
}

func (p *Parser) parseTraitAdaptation() ast.TraitAdaptation {
	pos := p.pos()
	method := p.parseNamePrimary()
	if p.curIs(lexer.T_PAAMAYIM_NEKUDOTAYIM) {
		p.advance()
		m := p.cur.Value
		p.advance()
		method = &ast.StaticMemberAccessExpression{Class: method, Member: &ast.IdentifierNode{Value: m}}
	}
	if p.curIs(lexer.T_INSTEADOF) {
		p.advance()
		var instead []ast.Expression
		instead = append(instead, p.parseNamePrimary())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			instead = append(instead, p.parseNamePrimary())
		}
		p.expectSemi()
		return &ast.TraitPrecedence{BaseNode: p.base(ast.ASTTraitPrecedence, pos), Method: method, InsteadOf: instead}
	}
	p.expect(lexer.T_AS)
	alias := &ast.TraitAlias{BaseNode: p.base(ast.ASTTraitAlias, pos), Method: method}
	for {
		if m, ok := memberModifierTokens[p.cur.Type]; ok {
			alias.Modifiers = append(alias.Modifiers, m)
			p.advance()
			continue
		}
		break
	}
	if p.curIs(lexer.T_STRING) {
		alias.Alias = p.cur.Value
		p.advance()
	}
	p.expectSemi()
	return alias
}

// ============= ATTRIBUTES =============

func (p *Parser) parseAttributeList() ast.AttributeList {
	pos := p.pos()
	list := &ast.AttributeListExpression{BaseNode: p.base(ast.ASTAttributeList, pos)}
	for p.curIs(lexer.T_ATTRIBUTE) {
		p.advance()
		group := &ast.AttributeGroup{BaseNode: p.base(ast.ASTAttributeGroup, p.pos())}
		for !p.curIs(lexer.TOKEN_RBRACKET) && !p.curIs(lexer.T_EOF) {
			aPos := p.pos()
			name := p.parseNamePrimary()
			var args []ast.Expression
			if p.curIs(lexer.TOKEN_LPAREN) {
				args = p.parseArgumentList()
			}
			group.Attributes = append(group.Attributes, &ast.AttributeExpression{BaseNode: p.base(ast.ASTAttribute, aPos), Name: name, Arguments: args})
			if p.curIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(lexer.TOKEN_RBRACKET)
		list.Groups = append(list.Groups, group)
	}
	return list
}
