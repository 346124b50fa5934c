// Package parser turns a token stream from compiler/lexer into a
// compiler/ast tree using a Pratt (precedence-climbing) strategy.
package parser

import (
	"fmt"

	"github.com/wudi/hey/compiler/ast"
	"github.com/wudi/hey/compiler/lexer"
)

// PHPVersion selects which syntax extensions the parser accepts.
type PHPVersion int

const (
	PHP74 PHPVersion = iota
	PHP80
	PHP81
	PHP82
	PHP83
	PHP84
)

// ParsingContext carries the nesting state that changes how a handful of
// context-sensitive constructs parse (e.g. `&` before a variable, `static`
// return type, `match` unwrapping a trailing comma).
type ParsingContext struct {
	InClass         bool
	InFunction      bool
	InInterface     bool
	InTrait         bool
	InEnum          bool
	InPropertyHook  bool
	ClassName       string
	PHPVersion      PHPVersion
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser is a recursive-descent, Pratt-style PHP parser.
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	file   string
	errors []string

	ctx *ParsingContext

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a parser over src, defaulting to the newest supported dialect.
func New(src string) *Parser {
	p := &Parser{
		lex: lexer.New(src),
		ctx: &ParsingContext{PHPVersion: PHP84},
	}
	p.prefixFns = make(map[lexer.TokenType]prefixParseFn)
	p.infixFns = make(map[lexer.TokenType]infixParseFn)
	p.registerExpressionParsers()

	p.advance()
	p.advance()
	return p
}

// SetFile records the source file path used for error messages.
func (p *Parser) SetFile(path string) { p.file = path }

// Errors returns accumulated parse errors, if any.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.file != "" {
		msg = fmt.Sprintf("%s:%d: %s", p.file, p.cur.Position.Line, msg)
	} else {
		msg = fmt.Sprintf("line %d: %s", p.cur.Position.Line, msg)
	}
	p.errors = append(p.errors, msg)
}

// advance pulls the next significant token, silently skipping whitespace
// and comment tokens that carry no grammatical meaning.
func (p *Parser) advance() {
	p.cur = p.peek
	for {
		tok := p.lex.NextToken()
		switch tok.Type {
		case lexer.T_WHITESPACE, lexer.T_COMMENT, lexer.T_DOC_COMMENT,
			lexer.T_OPEN_TAG, lexer.T_OPEN_TAG_WITH_ECHO:
			continue
		}
		p.peek = tok
		break
	}
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %s (%q)", lexer.TokenNames[t], lexer.TokenNames[p.cur.Type], p.cur.Value)
	return false
}

func (p *Parser) pos() lexer.Position { return p.cur.Position }

func (p *Parser) base(kind ast.ASTKind, pos lexer.Position) ast.BaseNode {
	return ast.BaseNode{Kind: kind, Position: pos, LineNo: uint32(pos.Line)}
}

// ParseProgram consumes the whole token stream and returns the root node.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{BaseNode: p.base(ast.ASTStmtList, p.pos())}
	for !p.curIs(lexer.T_EOF) {
		if p.curIs(lexer.T_CLOSE_TAG) {
			p.advance()
			continue
		}
		if p.curIs(lexer.T_INLINE_HTML) {
			prog.Statements = append(prog.Statements, p.inlineHTMLStatement())
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	if len(p.errors) > 0 {
		return prog, fmt.Errorf("parser: %d error(s), first: %s", len(p.errors), p.errors[0])
	}
	return prog, nil
}

func (p *Parser) inlineHTMLStatement() ast.Statement {
	pos := p.pos()
	lit := &ast.StringLiteral{BaseNode: p.base(ast.ASTZval, pos), Value: p.cur.Value}
	p.advance()
	return &ast.EchoStatement{BaseNode: p.base(ast.ASTEcho, pos), Arguments: []ast.Expression{lit}}
}

// Parse is the convenience entry point used by callers that only have a
// source string and want a program node back, bundling parser construction.
func Parse(src, file string) (*ast.Program, error) {
	p := New(src)
	p.SetFile(file)
	return p.ParseProgram()
}
