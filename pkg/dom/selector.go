package dom

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// selectorCacheSize bounds the number of compiled selectors kept per tree.
const selectorCacheSize = 256

// Selector is a compiled selector: a comma-separated list of compound
// selectors built from tag, #id, .class, [attr] and [attr="value"] parts.
// Combinators are not supported.
type Selector struct {
	groups []compound
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

// CompileSelector parses a selector string.
func CompileSelector(source string) (*Selector, error) {
	s := &Selector{}
	for _, part := range strings.Split(source, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("dom: empty selector group in %q", source)
		}
		c, err := parseCompound(part)
		if err != nil {
			return nil, err
		}
		s.groups = append(s.groups, c)
	}
	return s, nil
}

func parseCompound(src string) (compound, error) {
	var c compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(src) && isIdentByte(src[i]) {
			i++
		}
		return src[start:i]
	}
	for i < len(src) {
		switch ch := src[i]; {
		case ch == '#':
			i++
			if c.id = readIdent(); c.id == "" {
				return c, fmt.Errorf("dom: missing id in selector %q", src)
			}
		case ch == '.':
			i++
			name := readIdent()
			if name == "" {
				return c, fmt.Errorf("dom: missing class in selector %q", src)
			}
			c.classes = append(c.classes, name)
		case ch == '[':
			end := strings.IndexByte(src[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("dom: unterminated attribute in selector %q", src)
			}
			m, err := parseAttr(src[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, m)
			i += end + 1
		case isIdentByte(ch) && i == 0:
			c.tag = strings.ToUpper(readIdent())
		default:
			return c, fmt.Errorf("dom: unsupported character %q in selector %q", ch, src)
		}
	}
	return c, nil
}

func parseAttr(body string) (attrMatch, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrMatch{}, fmt.Errorf("dom: empty attribute name in [%s]", body)
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return attrMatch{name: name, value: value, hasValue: hasValue}, nil
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Match reports whether el satisfies any group of the selector.
func (s *Selector) Match(el Element) bool {
	if s == nil || el == nil {
		return false
	}
	for _, g := range s.groups {
		if g.match(el) {
			return true
		}
	}
	return false
}

func (c compound) match(el Element) bool {
	if c.tag != "" && c.tag != el.TagName() {
		return false
	}
	if c.id != "" {
		if id, _ := el.Attr("id"); id != c.id {
			return false
		}
	}
	for _, cls := range c.classes {
		if !el.HasClass(cls) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := el.Attr(a.name)
		if !ok || a.hasValue && v != a.value {
			return false
		}
	}
	return true
}

// selectorCache memoizes compiled selectors. Invalid selectors are cached as
// nil so repeated lookups stay cheap.
type selectorCache struct {
	cache *lru.Cache[string, *Selector]
}

func newSelectorCache() *selectorCache {
	cache, err := lru.New[string, *Selector](selectorCacheSize)
	if err != nil {
		panic(err)
	}
	return &selectorCache{cache: cache}
}

func (c *selectorCache) get(source string) *Selector {
	if s, ok := c.cache.Get(source); ok {
		return s
	}
	s, err := CompileSelector(source)
	if err != nil {
		s = nil
	}
	c.cache.Add(source, s)
	return s
}
