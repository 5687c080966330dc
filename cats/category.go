package cats

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/orthogram/sce/graph"
)

// Category is an ordered, named-or-nonce collection of graphemes. Order
// matters: category-to-category substitution maps index i of a target
// category to index i of a replacement category, so Category is backed
// by an arraylist rather than a set.
type Category struct {
	values   *arraylist.List
	features map[string][]graph.Token
}

// NewCategory builds a Category from literal values, resolving any
// "[name]" references against store (which may be nil if none are
// expected — a nil store used with a bracket reference reports
// ErrUnknownCategory).
func NewCategory(values []string, store *Store) (*Category, error) {
	c := &Category{values: arraylist.New()}
	for _, v := range values {
		if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
			name := strings.Trim(v, "[]")
			ref, err := lookupForReference(store, name)
			if err != nil {
				return nil, err
			}
			for i := 0; i < ref.Len(); i++ {
				c.values.Add(ref.At(i))
			}
			continue
		}
		c.values.Add(graph.Token(v))
	}
	return c, nil
}

func lookupForReference(store *Store, name string) (*Category, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	cat, ok := store.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return cat, nil
}

// fromTokens wraps an already-resolved token slice as a Category,
// without re-running reference resolution. Used internally by the set
// operators, which always start from already-resolved categories.
func fromTokens(toks []graph.Token) *Category {
	c := &Category{values: arraylist.New()}
	for _, t := range toks {
		c.values.Add(t)
	}
	return c
}

// Len returns the number of graphemes in the category.
func (c *Category) Len() int {
	if c == nil {
		return 0
	}
	return c.values.Size()
}

// At returns the grapheme at position i.
func (c *Category) At(i int) graph.Token {
	v, _ := c.values.Get(i)
	return v.(graph.Token)
}

// IndexOf returns the position of tok within the category, or -1.
func (c *Category) IndexOf(tok graph.Token) int {
	for i := 0; i < c.Len(); i++ {
		if c.At(i) == tok {
			return i
		}
	}
	return -1
}

// Contains reports whether tok is a member of the category.
func (c *Category) Contains(tok graph.Token) bool {
	return c.IndexOf(tok) != -1
}

// Tokens returns the category's members, in order.
func (c *Category) Tokens() []graph.Token {
	out := make([]graph.Token, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// Union appends the members of other not already present in c,
// preserving c's order followed by other's order (the "+=" operator).
func (c *Category) Union(other *Category) *Category {
	out := append([]graph.Token{}, c.Tokens()...)
	for _, t := range other.Tokens() {
		if !c.Contains(t) {
			out = append(out, t)
		}
	}
	return fromTokens(out)
}

// Intersect keeps members of c that also occur in other, in c's order
// (the "&" operator).
func (c *Category) Intersect(other *Category) *Category {
	var out []graph.Token
	for _, t := range c.Tokens() {
		if other.Contains(t) {
			out = append(out, t)
		}
	}
	return fromTokens(out)
}

// Difference keeps members of c that do not occur in other, in c's
// order (the "-=" / "-" operator).
func (c *Category) Difference(other *Category) *Category {
	var out []graph.Token
	for _, t := range c.Tokens() {
		if !other.Contains(t) {
			out = append(out, t)
		}
	}
	return fromTokens(out)
}

// WithFeature returns the subset of c whose members are listed under
// name in the category's feature map. An unknown feature name yields an
// empty category, not an error: feature filters are an optional
// annotation, not a structural requirement.
func (c *Category) WithFeature(name string) *Category {
	if c.features == nil {
		return fromTokens(nil)
	}
	vals, ok := c.features[name]
	if !ok {
		return fromTokens(nil)
	}
	var out []graph.Token
	for _, t := range c.Tokens() {
		for _, v := range vals {
			if t == v {
				out = append(out, t)
				break
			}
		}
	}
	return fromTokens(out)
}

// SetFeature attaches a named feature subset to the category.
func (c *Category) SetFeature(name string, values []graph.Token) {
	if c.features == nil {
		c.features = make(map[string][]graph.Token)
	}
	c.features[name] = values
}

func (c *Category) String() string {
	strs := make([]string, c.Len())
	for i, t := range c.Tokens() {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
