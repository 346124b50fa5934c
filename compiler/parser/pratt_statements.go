package parser

import (
	"github.com/wudi/hey/compiler/ast"
	"github.com/wudi/hey/compiler/lexer"
)

// wrapDecl lifts a Declaration-only node (class/interface/trait/enum/use/
// namespace/const) into something usable wherever a Statement is expected.
func wrapDecl(pos lexer.Position, decl interface{}) ast.Statement {
	return &ast.DeclarationStatement{BaseNode: ast.BaseNode{Kind: ast.ASTStmtList, Position: pos, LineNo: uint32(pos.Line)}, Declaration: decl}
}

func (p *Parser) parseStatement() ast.Statement {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.TOKEN_SEMICOLON:
		p.advance()
		return nil
	case lexer.TOKEN_LBRACE:
		return p.parseBlock()
	case lexer.T_IF:
		return p.parseIf()
	case lexer.T_WHILE:
		return p.parseWhile()
	case lexer.T_DO:
		return p.parseDoWhile()
	case lexer.T_FOR:
		return p.parseFor()
	case lexer.T_FOREACH:
		return p.parseForeach()
	case lexer.T_SWITCH:
		return p.parseSwitch()
	case lexer.T_BREAK:
		p.advance()
		var level ast.Expression
		if !p.curIs(lexer.TOKEN_SEMICOLON) {
			level = p.parseExpression(precLowest)
		}
		p.expectSemi()
		return &ast.BreakStatement{BaseNode: p.base(ast.ASTBreak, pos), Level: level}
	case lexer.T_CONTINUE:
		p.advance()
		var level ast.Expression
		if !p.curIs(lexer.TOKEN_SEMICOLON) {
			level = p.parseExpression(precLowest)
		}
		p.expectSemi()
		return &ast.ContinueStatement{BaseNode: p.base(ast.ASTContinue, pos), Level: level}
	case lexer.T_RETURN:
		p.advance()
		var val ast.Expression
		if !p.curIs(lexer.TOKEN_SEMICOLON) {
			val = p.parseExpression(precLowest)
		}
		p.expectSemi()
		return &ast.ReturnStatement{BaseNode: p.base(ast.ASTReturn, pos), Value: val}
	case lexer.T_ECHO:
		p.advance()
		args := []ast.Expression{p.parseExpression(precLowest)}
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			args = append(args, p.parseExpression(precLowest))
		}
		p.expectSemi()
		return &ast.EchoStatement{BaseNode: p.base(ast.ASTEcho, pos), Arguments: args}
	case lexer.T_GLOBAL:
		p.advance()
		var vars []*ast.Variable
		for {
			name := p.cur.Value
			p.expect(lexer.T_VARIABLE)
			vars = append(vars, &ast.Variable{Name: name})
			if p.curIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expectSemi()
		return &ast.GlobalStatement{BaseNode: p.base(ast.ASTGlobal, pos), Variables: vars}
	case lexer.T_STATIC:
		if p.peekIs(lexer.T_VARIABLE) {
			return p.parseStaticVarStatement()
		}
		return p.parseExpressionStatement()
	case lexer.T_UNSET:
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		var vars []ast.Expression
		for !p.curIs(lexer.TOKEN_RPAREN) && !p.curIs(lexer.T_EOF) {
			vars = append(vars, p.parseExpression(precLowest))
			if p.curIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(lexer.TOKEN_RPAREN)
		p.expectSemi()
		return &ast.UnsetStatement{BaseNode: p.base(ast.ASTUnset, pos), Variables: vars}
	case lexer.T_THROW:
		p.advance()
		expr := p.parseExpression(precLowest)
		p.expectSemi()
		return &ast.ThrowStatement{BaseNode: p.base(ast.ASTThrow, pos), Argument: expr}
	case lexer.T_TRY:
		return p.parseTry()
	case lexer.T_GOTO:
		p.advance()
		label := p.cur.Value
		p.expect(lexer.T_STRING)
		p.expectSemi()
		return &ast.GotoStatement{BaseNode: p.base(ast.ASTGoto, pos), Label: label}
	case lexer.T_FUNCTION:
		if p.peekIs(lexer.T_VARIABLE) || p.peekIs(lexer.TOKEN_LPAREN) {
			return p.parseExpressionStatement()
		}
		return p.parseFunctionDeclaration()
	case lexer.T_ABSTRACT, lexer.T_FINAL, lexer.T_READONLY, lexer.T_CLASS:
		return wrapDecl(pos, p.parseClassDeclaration())
	case lexer.T_INTERFACE:
		return wrapDecl(pos, p.parseInterfaceDeclaration())
	case lexer.T_TRAIT:
		return wrapDecl(pos, p.parseTraitDeclaration())
	case lexer.T_ENUM:
		return wrapDecl(pos, p.parseEnumDeclaration())
	case lexer.T_NAMESPACE:
		return p.parseNamespace()
	case lexer.T_USE:
		return wrapDecl(pos, p.parseUseDeclaration())
	case lexer.T_CONST:
		return wrapDecl(pos, p.parseConstDeclaration())
	case lexer.T_INLINE_HTML:
		return p.inlineHTMLStatement()
	case lexer.T_STRING:
		if p.peekIs(lexer.TOKEN_COLON) {
			name := p.cur.Value
			p.advance()
			p.advance()
			return &ast.LabelStatement{BaseNode: p.base(ast.ASTLabel, pos), Name: name}
		}
		return p.parseExpressionStatement()
	case lexer.T_ATTRIBUTE:
		attrs := p.parseAttributeList()
		return p.attachAttributesToDeclStatement(pos, attrs)
	default:
		return p.parseExpressionStatement()
	}
}

// expectSemi consumes a trailing ';', tolerating the script's closing '?>'
// which implicitly terminates the last statement.
func (p *Parser) expectSemi() {
	if p.curIs(lexer.TOKEN_SEMICOLON) {
		p.advance()
		return
	}
	if p.curIs(lexer.T_CLOSE_TAG) || p.curIs(lexer.T_EOF) {
		return
	}
	p.expect(lexer.TOKEN_SEMICOLON)
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.pos()
	expr := p.parseExpression(precLowest)
	p.expectSemi()
	return &ast.ExpressionStatement{BaseNode: p.base(ast.ASTStmtList, pos), Expression: expr}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	pos := p.pos()
	block := &ast.BlockStatement{BaseNode: p.base(ast.ASTStmtList, pos)}
	if !p.expect(lexer.TOKEN_LBRACE) {
		return block
	}
	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.T_EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(lexer.TOKEN_RBRACE)
	return block
}

// parseBodyOrAltEndBlock parses either a brace block or, when isAlt is true,
// a run of statements terminated by one of the alternate-syntax end
// keywords (endif/endwhile/...). The matched terminator is NOT consumed.
func (p *Parser) parseBodyOrAltBlock(isAlt bool, enders ...lexer.TokenType) ast.Statement {
	if isAlt {
		pos := p.pos()
		block := &ast.BlockStatement{BaseNode: p.base(ast.ASTStmtList, pos)}
		for !p.curIs(lexer.T_EOF) {
			stop := false
			for _, e := range enders {
				if p.curIs(e) {
					stop = true
					break
				}
			}
			if stop {
				break
			}
			stmt := p.parseStatement()
			if stmt != nil {
				block.Statements = append(block.Statements, stmt)
			}
		}
		return block
	}
	return p.parseStatement()
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.pos()
	p.advance()
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(lexer.TOKEN_RPAREN)

	ifStmt := &ast.IfStatement{BaseNode: p.base(ast.ASTIf, pos), Condition: cond}

	if p.curIs(lexer.TOKEN_COLON) {
		ifStmt.IsAlternative = true
		p.advance()
		ifStmt.ThenStatement = p.parseBodyOrAltBlock(true, lexer.T_ELSEIF, lexer.T_ELSE, lexer.T_ENDIF)
		for p.curIs(lexer.T_ELSEIF) {
			eiPos := p.pos()
			p.advance()
			p.expect(lexer.TOKEN_LPAREN)
			eiCond := p.parseExpression(precLowest)
			p.expect(lexer.TOKEN_RPAREN)
			p.expect(lexer.TOKEN_COLON)
			body := p.parseBodyOrAltBlock(true, lexer.T_ELSEIF, lexer.T_ELSE, lexer.T_ENDIF)
			ifStmt.ElseIfStatements = append(ifStmt.ElseIfStatements, &ast.ElseIfStatement{BaseNode: p.base(ast.ASTElseIf, eiPos), Condition: eiCond, Body: body})
		}
		if p.curIs(lexer.T_ELSE) {
			p.advance()
			p.expect(lexer.TOKEN_COLON)
			ifStmt.ElseStatement = p.parseBodyOrAltBlock(true, lexer.T_ENDIF)
		}
		p.expect(lexer.T_ENDIF)
		p.expectSemi()
		return ifStmt
	}

	ifStmt.ThenStatement = p.parseStatement()
	for p.curIs(lexer.T_ELSEIF) {
		eiPos := p.pos()
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		eiCond := p.parseExpression(precLowest)
		p.expect(lexer.TOKEN_RPAREN)
		body := p.parseStatement()
		ifStmt.ElseIfStatements = append(ifStmt.ElseIfStatements, &ast.ElseIfStatement{BaseNode: p.base(ast.ASTElseIf, eiPos), Condition: eiCond, Body: body})
	}
	if p.curIs(lexer.T_ELSE) {
		p.advance()
		ifStmt.ElseStatement = p.parseStatement()
	}
	return ifStmt
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.pos()
	p.advance()
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(lexer.TOKEN_RPAREN)
	w := &ast.WhileStatement{BaseNode: p.base(ast.ASTWhile, pos), Condition: cond}
	if p.curIs(lexer.TOKEN_COLON) {
		w.IsAlternative = true
		p.advance()
		w.Body = p.parseBodyOrAltBlock(true, lexer.T_ENDWHILE)
		p.expect(lexer.T_ENDWHILE)
		p.expectSemi()
		return w
	}
	w.Body = p.parseStatement()
	return w
}

func (p *Parser) parseDoWhile() ast.Statement {
	pos := p.pos()
	p.advance()
	body := p.parseStatement()
	p.expect(lexer.T_WHILE)
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(lexer.TOKEN_RPAREN)
	p.expectSemi()
	return &ast.DoWhileStatement{BaseNode: p.base(ast.ASTDoWhile, pos), Body: body, Condition: cond}
}

func (p *Parser) parseFor() ast.Statement {
	pos := p.pos()
	p.advance()
	p.expect(lexer.TOKEN_LPAREN)
	f := &ast.ForStatement{BaseNode: p.base(ast.ASTFor, pos)}
	f.Init = p.parseExprListUntil(lexer.TOKEN_SEMICOLON)
	p.expect(lexer.TOKEN_SEMICOLON)
	f.Condition = p.parseExprListUntil(lexer.TOKEN_SEMICOLON)
	p.expect(lexer.TOKEN_SEMICOLON)
	f.Update = p.parseExprListUntil(lexer.TOKEN_RPAREN)
	p.expect(lexer.TOKEN_RPAREN)
	if p.curIs(lexer.TOKEN_COLON) {
		f.IsAlternative = true
		p.advance()
		f.Body = p.parseBodyOrAltBlock(true, lexer.T_ENDFOR)
		p.expect(lexer.T_ENDFOR)
		p.expectSemi()
		return f
	}
	f.Body = p.parseStatement()
	return f
}

func (p *Parser) parseExprListUntil(end lexer.TokenType) []ast.Expression {
	var exprs []ast.Expression
	for !p.curIs(end) && !p.curIs(lexer.T_EOF) {
		exprs = append(exprs, p.parseExpression(precLowest))
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	return exprs
}

func (p *Parser) parseForeach() ast.Statement {
	pos := p.pos()
	p.advance()
	p.expect(lexer.TOKEN_LPAREN)
	iterable := p.parseExpression(precLowest)
	p.expect(lexer.T_AS)
	f := &ast.ForeachStatement{BaseNode: p.base(ast.ASTForeach, pos), Iterable: iterable}
	ref := false
	if p.curIs(lexer.TOKEN_AMPERSAND) {
		ref = true
		p.advance()
	}
	first := p.parseExpression(precLowest)
	if p.curIs(lexer.T_DOUBLE_ARROW) {
		p.advance()
		f.Key = first
		if p.curIs(lexer.TOKEN_AMPERSAND) {
			ref = true
			p.advance()
		}
		f.Value = p.parseExpression(precLowest)
	} else {
		f.Value = first
	}
	f.IsReference = ref
	p.expect(lexer.TOKEN_RPAREN)
	if p.curIs(lexer.TOKEN_COLON) {
		f.IsAlternative = true
		p.advance()
		f.Body = p.parseBodyOrAltBlock(true, lexer.T_ENDFOREACH)
		p.expect(lexer.T_ENDFOREACH)
		p.expectSemi()
		return f
	}
	f.Body = p.parseStatement()
	return f
}

func (p *Parser) parseSwitch() ast.Statement {
	pos := p.pos()
	p.advance()
	p.expect(lexer.TOKEN_LPAREN)
	disc := p.parseExpression(precLowest)
	p.expect(lexer.TOKEN_RPAREN)
	alt := false
	if p.curIs(lexer.TOKEN_COLON) {
		alt = true
		p.advance()
	} else {
		p.expect(lexer.TOKEN_LBRACE)
	}
	sw := &ast.SwitchStatement{BaseNode: p.base(ast.ASTSwitch, pos), Discriminant: disc, IsAlternative: alt}
	for p.curIs(lexer.TOKEN_SEMICOLON) {
		p.advance()
	}
	for p.curIs(lexer.T_CASE) || p.curIs(lexer.T_DEFAULT) {
		casePos := p.pos()
		isDefault := p.curIs(lexer.T_DEFAULT)
		var val ast.Expression
		if isDefault {
			p.advance()
		} else {
			p.advance()
			val = p.parseExpression(precLowest)
		}
		if p.curIs(lexer.TOKEN_COLON) {
			p.advance()
		} else {
			p.expect(lexer.TOKEN_SEMICOLON)
		}
		cs := &ast.CaseStatement{BaseNode: p.base(ast.ASTCase, casePos), Value: val, IsDefault: isDefault}
		for !p.curIs(lexer.T_CASE) && !p.curIs(lexer.T_DEFAULT) && !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.T_ENDSWITCH) && !p.curIs(lexer.T_EOF) {
			stmt := p.parseStatement()
			if stmt != nil {
				cs.Statements = append(cs.Statements, stmt)
			}
		}
		sw.Cases = append(sw.Cases, cs)
	}
	if alt {
		p.expect(lexer.T_ENDSWITCH)
		p.expectSemi()
	} else {
		p.expect(lexer.TOKEN_RBRACE)
	}
	return sw
}

func (p *Parser) parseTry() ast.Statement {
	pos := p.pos()
	p.advance()
	body := p.parseBlock()
	t := &ast.TryStatement{BaseNode: p.base(ast.ASTTry, pos), Body: body}
	for p.curIs(lexer.T_CATCH) {
		catchPos := p.pos()
		p.advance()
		p.expect(lexer.TOKEN_LPAREN)
		var types []string
		types = append(types, p.parseNamePrimary().String())
		for p.curIs(lexer.T_PIPE) || p.curIs(lexer.TOKEN_PIPE) {
			p.advance()
			types = append(types, p.parseNamePrimary().String())
		}
		var param *ast.Variable
		if p.curIs(lexer.T_VARIABLE) {
			name := p.cur.Value
			p.advance()
			param = &ast.Variable{Name: name}
		}
		p.expect(lexer.TOKEN_RPAREN)
		cbody := p.parseBlock()
		t.CatchClauses = append(t.CatchClauses, &ast.CatchClause{BaseNode: p.base(ast.ASTCatch, catchPos), Types: types, Parameter: param, Body: cbody})
	}
	if p.curIs(lexer.T_FINALLY) {
		p.advance()
		t.Finally = p.parseBlock()
	}
	return t
}

func (p *Parser) parseStaticVarStatement() ast.Statement {
	pos := p.pos()
	p.advance()
	st := &ast.StaticStatement{BaseNode: p.base(ast.ASTStatic, pos)}
	for {
		name := p.cur.Value
		p.expect(lexer.T_VARIABLE)
		sv := &ast.StaticVariable{Variable: &ast.Variable{Name: name}}
		if p.curIs(lexer.TOKEN_EQUAL) {
			p.advance()
			sv.Default = p.parseExpression(precAssign)
		}
		st.Variables = append(st.Variables, sv)
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expectSemi()
	return st
}

func (p *Parser) parseNamespace() ast.Statement {
	pos := p.pos()
	p.advance()
	ns := &ast.NamespaceDeclaration{BaseNode: p.base(ast.ASTNamespace, pos)}
	if !p.curIs(lexer.TOKEN_LBRACE) {
		ns.Name = p.parseNamePrimary()
	}
	if p.curIs(lexer.TOKEN_LBRACE) {
		ns.IsBlock = true
		block := p.parseBlock()
		ns.Statements = block.Statements
	} else {
		p.expectSemi()
	}
	return wrapDecl(pos, ns)
}

func (p *Parser) parseUseDeclaration() *ast.UseDeclaration {
	pos := p.pos()
	p.advance()
	decl := &ast.UseDeclaration{BaseNode: p.base(ast.ASTUse, pos)}
	if p.curIs(lexer.T_FUNCTION) {
		decl.Type = "function"
		p.advance()
	} else if p.curIs(lexer.T_CONST) {
		decl.Type = "const"
		p.advance()
	}
	prefix := p.parseNamePrimary()
	if p.curIs(lexer.T_NS_SEPARATOR) && p.peekIs(lexer.TOKEN_LBRACE) {
		p.advance()
		p.advance()
		decl.Prefix = prefix
		decl.IsGroupUse = true
		for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.T_EOF) {
			decl.Uses = append(decl.Uses, p.parseUseClause())
			if p.curIs(lexer.TOKEN_COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(lexer.TOKEN_RBRACE)
	} else {
		uc := &ast.UseClause{Name: prefix}
		if p.curIs(lexer.T_AS) {
			p.advance()
			aliasPos := p.pos()
			alias := p.cur.Value
			p.advance()
			uc.Alias = &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, aliasPos), Value: alias}
		}
		decl.Uses = append(decl.Uses, uc)
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			decl.Uses = append(decl.Uses, p.parseUseClause())
		}
	}
	p.expectSemi()
	return decl
}

func (p *Parser) parseUseClause() *ast.UseClause {
	uc := &ast.UseClause{Name: p.parseNamePrimary()}
	if p.curIs(lexer.T_AS) {
		p.advance()
		aliasPos := p.pos()
		alias := p.cur.Value
		p.advance()
		uc.Alias = &ast.IdentifierNode{BaseNode: p.base(ast.ASTType, aliasPos), Value: alias}
	}
	return uc
}

func (p *Parser) parseConstDeclaration() *ast.ConstantDeclaration {
	pos := p.pos()
	p.advance()
	decl := &ast.ConstantDeclaration{BaseNode: p.base(ast.ASTConstDecl, pos)}
	for {
		cPos := p.pos()
		name := p.cur.Value
		p.advance()
		p.expect(lexer.TOKEN_EQUAL)
		val := p.parseExpression(precAssign)
		decl.Constants = append(decl.Constants, &ast.ConstantClause{BaseNode: p.base(ast.ASTConstElem, cPos), Name: name, Value: val})
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expectSemi()
	return decl
}

func (p *Parser) attachAttributesToDeclStatement(pos lexer.Position, attrs ast.AttributeList) ast.Statement {
	stmt := p.parseStatement()
	if holder, ok := stmt.(interface{ SetAttributes(ast.AttributeList) }); ok {
		holder.SetAttributes(attrs)
		return stmt
	}
	if declStmt, ok := stmt.(*ast.DeclarationStatement); ok {
		if holder, ok := declStmt.Declaration.(interface{ SetAttributes(ast.AttributeList) }); ok {
			holder.SetAttributes(attrs)
		}
		return declStmt
	}
	return stmt
}
