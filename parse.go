package toml

import (
	"fmt"

	"github.com/kezhuw/tomlpos/internal/types"
)

type keyPart struct {
	name string
	pos  Position
}

type parser struct {
	lex  *lexer
	root *types.Table

	// table of current section and its path
	env  *types.Table
	path string
}

func newParser(t *types.Table, s string) *parser {
	return &parser{
		lex:  newLexer(s),
		root: t,
		env:  t,
	}
}

func unexpected(t token, expected string) error {
	return UnexpectedToken(t.pos, t.String(), expected)
}

func (p *parser) parse() error {
	if err := p.lex.checkUTF8(); err != nil {
		return err
	}
	for {
		t, err := p.lex.nextKey()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokenEOF:
			return nil
		case tokenNewline:
			continue
		case tokenLeftBracket:
			err = p.parseTableHeader(false)
		case tokenDoubleLeftBracket:
			err = p.parseTableHeader(true)
		case tokenBareKey, tokenString:
			err = p.parseKeyValue(p.env, p.path, t)
		default:
			return unexpected(t, "key or table header")
		}
		if err != nil {
			return err
		}
		if err := p.expectLineEnd(); err != nil {
			return err
		}
	}
}

func (p *parser) expectLineEnd() error {
	t, err := p.lex.nextKey()
	if err != nil {
		return err
	}
	if t.kind != tokenNewline && t.kind != tokenEOF {
		return unexpected(t, "new line or EOF")
	}
	return nil
}

// parseKey reads a possibly dotted key starting from token t. It returns
// the token following the key.
func (p *parser) parseKey(t token) ([]keyPart, token, error) {
	var key []keyPart
	for {
		if t.kind != tokenBareKey && (t.kind != tokenString || t.multiline) {
			return nil, t, unexpected(t, "key")
		}
		key = append(key, keyPart{t.text, t.pos})
		next, err := p.lex.nextKey()
		if err != nil {
			return nil, next, err
		}
		if next.kind != tokenDot {
			return key, next, nil
		}
		if t, err = p.lex.nextKey(); err != nil {
			return nil, t, err
		}
	}
}

func (p *parser) parseTableHeader(array bool) error {
	t, err := p.lex.nextKey()
	if err != nil {
		return err
	}
	key, t, err := p.parseKey(t)
	if err != nil {
		return err
	}
	closing := tokenRightBracket
	if array {
		closing = tokenDoubleRightBracket
	}
	if t.kind != closing {
		return unexpected(t, closing.String())
	}

	i := len(key) - 1
	env, path, err := p.locateTable(key[:i])
	if err != nil {
		return err
	}
	if array {
		env, path, err = p.createTableArray(env, path, key[i])
	} else {
		env, path, err = p.createTable(env, path, key[i])
	}
	if err != nil {
		return err
	}
	p.env, p.path = env, path
	return nil
}

func (p *parser) parseKeyValue(env *types.Table, path string, first token) error {
	key, t, err := p.parseKey(first)
	if err != nil {
		return err
	}
	if t.kind != tokenEquals {
		return unexpected(t, "'.' or '='")
	}
	t, err = p.lex.nextValue()
	if err != nil {
		return err
	}
	valuePath := path
	for _, part := range key {
		valuePath = combineKeyPath(valuePath, part.name)
	}
	value, err := p.parseValue(t, valuePath)
	if err != nil {
		return err
	}
	return p.assign(env, path, key, value)
}

// assign stores value under dotted key in env, creating tables for all
// but the last key part.
func (p *parser) assign(env *types.Table, path string, key []keyPart, value types.Value) error {
	for _, part := range key[:len(key)-1] {
		path = combineKeyPath(path, part.name)
		switch v := env.Elems[part.name].(type) {
		case nil:
			t := types.NewTable()
			t.Dotted = true
			env.Elems[part.name] = t
			env = t
		case *types.Table:
			if !v.Dotted || v.Inline {
				return Generic(part.pos, fmt.Sprintf("table %s can't be extended by dotted keys", path))
			}
			env = v
		default:
			return Generic(part.pos, fmt.Sprintf("%s was defined as %s", path, v.Type()))
		}
	}
	last := key[len(key)-1]
	if v, ok := env.Elems[last.name]; ok {
		return Generic(last.pos, fmt.Sprintf("table %s has key %s defined as %s", displayPath(path), normalizeKey(last.name), v.Type()))
	}
	env.Elems[last.name] = value
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

func (p *parser) parseValue(t token, path string) (types.Value, error) {
	switch t.kind {
	case tokenString:
		return types.String(t.text), nil
	case tokenBoolean:
		return types.Boolean(t.raw == "true"), nil
	case tokenNumber:
		return parseNumber(t)
	case tokenDatetime:
		return parseDatetime(t)
	case tokenLeftBracket:
		return p.parseArray(path)
	case tokenLeftBrace:
		return p.parseInlineTable(path)
	default:
		return nil, unexpected(t, "value")
	}
}

// nextArrayToken scans a value token, skipping new lines which are
// allowed everywhere in arrays.
func (p *parser) nextArrayToken() (token, error) {
	for {
		t, err := p.lex.nextValue()
		if err != nil || t.kind != tokenNewline {
			return t, err
		}
	}
}

func (p *parser) parseArray(path string) (types.Value, error) {
	a := &types.Array{Static: true, Elems: make([]types.Value, 0)}
	for {
		t, err := p.nextArrayToken()
		if err != nil {
			return nil, err
		}
		if t.kind == tokenRightBracket {
			return a, nil
		}
		v, err := p.parseValue(t, combineIndexPath(path, len(a.Elems)))
		if err != nil {
			return nil, err
		}
		a.Elems = append(a.Elems, v)

		t, err = p.nextArrayToken()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokenComma:
		case tokenRightBracket:
			return a, nil
		default:
			return nil, unexpected(t, "',' or ']'")
		}
	}
}

func (p *parser) parseInlineTable(path string) (types.Value, error) {
	table := types.NewTable()
	t, err := p.lex.nextKey()
	if err != nil {
		return nil, err
	}
	if t.kind == tokenRightBrace {
		table.Inline = true
		return table, nil
	}
	for {
		if err := p.parseKeyValue(table, path, t); err != nil {
			return nil, err
		}
		if t, err = p.lex.nextKey(); err != nil {
			return nil, err
		}
		switch t.kind {
		case tokenComma:
			if t, err = p.lex.nextKey(); err != nil {
				return nil, err
			}
		case tokenRightBrace:
			closeInline(table)
			return table, nil
		default:
			return nil, unexpected(t, "inline table separator ',' or terminator '}'")
		}
	}
}

// closeInline seals t and tables defined by dotted keys inside it.
func closeInline(t *types.Table) {
	t.Inline = true
	for _, v := range t.Elems {
		if sub, ok := v.(*types.Table); ok && sub.Dotted {
			closeInline(sub)
		}
	}
}

func (p *parser) locateTable(names []keyPart) (t *types.Table, path string, err error) {
	t = p.root
	for _, name := range names {
		path = combineKeyPath(path, name.name)
		switch v := t.Elems[name.name].(type) {
		case nil:
			ti := types.NewTable()
			ti.Implicit = true
			t.Elems[name.name] = ti
			t = ti
		case *types.Table:
			if v.Inline {
				return nil, "", Generic(name.pos, fmt.Sprintf("%s was defined as inline table", path))
			}
			t = v
		case *types.Array:
			if v.Static {
				return nil, "", Generic(name.pos, fmt.Sprintf("%s was defined as array", path))
			}
			i := len(v.Elems) - 1
			t = v.Elems[i].(*types.Table)
			path = combineIndexPath(path, i)
		default:
			return nil, "", Generic(name.pos, fmt.Sprintf("%s was defined as %s", path, v.Type()))
		}
	}
	return t, path, nil
}

func (p *parser) createTable(env *types.Table, path string, name keyPart) (*types.Table, string, error) {
	path = combineKeyPath(path, name.name)
	switch v := env.Elems[name.name].(type) {
	case nil:
		t := types.NewTable()
		env.Elems[name.name] = t
		return t, path, nil
	case *types.Table:
		switch {
		case v.Inline:
			return nil, "", Generic(name.pos, fmt.Sprintf("%s was defined as inline table", path))
		case v.Dotted:
			return nil, "", Generic(name.pos, fmt.Sprintf("table %s was defined by dotted keys", path))
		case !v.Implicit:
			return nil, "", Generic(name.pos, fmt.Sprintf("table %s was defined twice", path))
		}
		v.Implicit = false
		return v, path, nil
	default:
		return nil, "", Generic(name.pos, fmt.Sprintf("%s was defined as %s", path, v.Type()))
	}
}

func (p *parser) createTableArray(env *types.Table, path string, name keyPart) (*types.Table, string, error) {
	path = combineKeyPath(path, name.name)
	t := types.NewTable()
	switch v := env.Elems[name.name].(type) {
	case nil:
		env.Elems[name.name] = &types.Array{Elems: []types.Value{t}}
		return t, combineIndexPath(path, 0), nil
	case *types.Array:
		if v.Static {
			return nil, "", Generic(name.pos, fmt.Sprintf("%s was defined as array", path))
		}
		v.Elems = append(v.Elems, t)
		return t, combineIndexPath(path, len(v.Elems)-1), nil
	default:
		return nil, "", Generic(name.pos, fmt.Sprintf("%s was defined as %s", path, v.Type()))
	}
}

// parse parses TOML document from data, and represents it in types.Table.
func parse(data []byte) (*types.Table, error) {
	root := types.NewTable()
	p := newParser(root, string(data))
	if err := p.parse(); err != nil {
		return nil, err
	}
	return root, nil
}
