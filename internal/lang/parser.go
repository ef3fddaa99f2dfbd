package lang

import (
	"strconv"

	"github.com/pkg/errors"
)

// binaryPrecedence orders the operator ladder, loosest first. All operators
// associate to the left.
var binaryPrecedence = map[string]int{
	"!!": 1,
	"&&": 2,
	"<":  3, "<=": 3, ">": 3, ">=": 3, "==": 3, "!=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "%": 5,
}

// parser is a recursive-descent parser over the lexer's token stream, with
// one token of lookahead.
type parser struct {
	lex *lexer
	tok token
}

// Parse parses a whole program: statements separated by ";".
func Parse(src []byte) (Stmt, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	stmt, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, p.errorf("expected end of input, found %q", p.tok.text)
	}
	return stmt, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("%d:%d: "+format, append([]interface{}{p.tok.line, p.tok.col}, args...)...)
}

func (p *parser) expectOp(text string) error {
	if p.tok.kind != tokenOp || p.tok.text != text {
		return p.errorf("expected %q, found %q", text, p.tok.text)
	}
	return p.advance()
}

func (p *parser) parseSeq() (Stmt, error) {
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokenOp && p.tok.text == ";" {
		if err = p.advance(); err != nil {
			return nil, err
		}
		rest, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		return &Seq{First: stmt, Rest: rest}, nil
	}
	return stmt, nil
}

func (p *parser) parseStmt() (Stmt, error) {
	if p.tok.kind != tokenIdent {
		return nil, p.errorf("expected statement, found %q", p.tok.text)
	}
	name := p.tok.text
	switch name {
	case "skip":
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Skip{}, nil
	case "read":
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		if p.tok.kind != tokenIdent {
			return nil, p.errorf("expected variable name, found %q", p.tok.text)
		}
		target := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &Read{Name: target}, nil
	case "write":
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		x, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err = p.expectOp(")"); err != nil {
			return nil, err
		}
		return &Write{X: x}, nil
	default:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectOp(":="); err != nil {
			return nil, err
		}
		x, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		return &Assign{Name: name, X: x}, nil
	}
}

// parseExpr implements precedence climbing: it consumes operators binding
// tighter than minPrec and folds them left-associatively.
func (p *parser) parseExpr(minPrec int) (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenOp {
		prec, ok := binaryPrecedence[p.tok.text]
		if !ok || prec <= minPrec {
			break
		}
		op := p.tok.text
		if err = p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		x = &BinOp{Op: op, X: x, Y: y}
	}
	return x, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch {
	case p.tok.kind == tokenNumber:
		v, err := strconv.ParseInt(p.tok.text, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "%d:%d: invalid integer literal", p.tok.line, p.tok.col)
		}
		if err = p.advance(); err != nil {
			return nil, err
		}
		return &Const{Value: int32(v)}, nil
	case p.tok.kind == tokenIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Var{Name: name}, nil
	case p.tok.kind == tokenOp && p.tok.text == "(":
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err = p.expectOp(")"); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, p.errorf("expected expression, found %q", p.tok.text)
	}
}
