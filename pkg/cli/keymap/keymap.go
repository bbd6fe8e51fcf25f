// Package keymap implements the table that maps key sequences to named
// actions.
//
// A Table holds two things: a registry of named functions, split into
// built-ins and at most MaxFunctions user functions, and a trie of bound key
// sequences. The trie is keyed by bytes, so that bytes read from a terminal
// can be resolved as they arrive, including sequences that are still
// incomplete.
package keymap

import (
	"errors"
	"fmt"
	"sort"

	"src.elcc.sh/pkg/ui"
)

// MaxFunctions is the number of user functions a Table accepts.
const MaxFunctions = 32

// Errors returned by Table methods.
var (
	ErrTooManyFunctions  = errors.New("too many user functions")
	ErrDuplicateFunction = errors.New("function already defined")
	ErrUnknownFunction   = errors.New("unknown function")
	ErrEmptySequence     = errors.New("empty key sequence")
	ErrNotBound          = errors.New("key sequence not bound")
)

// Function is a named action registered in a Table.
type Function[A any] struct {
	Name    string
	Descr   string
	Builtin bool
	Action  A
}

// Binding is a key sequence bound to a function name. Seq holds the raw bytes
// of the sequence.
type Binding struct {
	Seq  string
	Name string
}

// Match is the result of Table.Lookup.
type Match struct {
	// Length of the longest bound sequence that is a prefix of the input, 0
	// if there is none.
	Len int
	// Name of the function bound to that sequence.
	Name string
	// Whether the whole input is a strict prefix of some longer bound
	// sequence, in which case more input may change the result.
	Ambiguous bool
}

// Table maps key sequences to functions. The zero value is not usable; use
// New.
type Table[A any] struct {
	funcs map[string]*Function[A]
	nUser int
	root  *node
}

type node struct {
	children map[byte]*node
	name     string
	bound    bool
}

func newNode() *node { return &node{children: make(map[byte]*node)} }

// New creates an empty Table.
func New[A any]() *Table[A] {
	return &Table[A]{funcs: make(map[string]*Function[A]), root: newNode()}
}

// AddBuiltin registers a built-in function. Built-ins do not count against
// MaxFunctions; adding a built-in with an existing built-in name replaces it.
func (t *Table[A]) AddBuiltin(name, descr string, a A) {
	if f, ok := t.funcs[name]; ok && !f.Builtin {
		t.nUser--
	}
	t.funcs[name] = &Function[A]{Name: name, Descr: descr, Builtin: true, Action: a}
}

// AddFunction registers a user function. It fails if MaxFunctions user
// functions have already been registered, or if name is already taken by a
// built-in or user function.
func (t *Table[A]) AddFunction(name, descr string, a A) error {
	if _, ok := t.funcs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, name)
	}
	if t.nUser >= MaxFunctions {
		return fmt.Errorf("%w: limit is %d", ErrTooManyFunctions, MaxFunctions)
	}
	t.funcs[name] = &Function[A]{Name: name, Descr: descr, Action: a}
	t.nUser++
	return nil
}

// Function returns the function with the given name.
func (t *Table[A]) Function(name string) (Function[A], bool) {
	f, ok := t.funcs[name]
	if !ok {
		return Function[A]{}, false
	}
	return *f, true
}

// Functions returns all registered functions, sorted by name.
func (t *Table[A]) Functions() []Function[A] {
	fs := make([]Function[A], 0, len(t.funcs))
	for _, f := range t.funcs {
		fs = append(fs, *f)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Name < fs[j].Name })
	return fs
}

// Bind binds the key sequence named by key (see ui.ParseSeq for the syntax)
// to the named function, replacing any existing binding of the sequence. On
// error the table is left unchanged.
func (t *Table[A]) Bind(key, name string) error {
	seq, err := parseSeq(key)
	if err != nil {
		return err
	}
	if _, ok := t.funcs[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	n := t.root
	for i := 0; i < len(seq); i++ {
		child, ok := n.children[seq[i]]
		if !ok {
			child = newNode()
			n.children[seq[i]] = child
		}
		n = child
	}
	n.name, n.bound = name, true
	return nil
}

// Unbind removes the binding of the key sequence named by key.
func (t *Table[A]) Unbind(key string) error {
	seq, err := parseSeq(key)
	if err != nil {
		return err
	}
	path := make([]*node, 0, len(seq)+1)
	path = append(path, t.root)
	n := t.root
	for i := 0; i < len(seq); i++ {
		child, ok := n.children[seq[i]]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotBound, ui.DescribeSeq(seq))
		}
		path = append(path, child)
		n = child
	}
	if !n.bound {
		return fmt.Errorf("%w: %s", ErrNotBound, ui.DescribeSeq(seq))
	}
	n.name, n.bound = "", false
	// Prune nodes that no longer lead to any binding.
	for i := len(path) - 1; i > 0; i-- {
		if path[i].bound || len(path[i].children) > 0 {
			break
		}
		delete(path[i-1].children, seq[i-1])
	}
	return nil
}

// Bindings returns all bindings, sorted by sequence.
func (t *Table[A]) Bindings() []Binding {
	var bs []Binding
	var walk func(n *node, prefix []byte)
	walk = func(n *node, prefix []byte) {
		if n.bound {
			bs = append(bs, Binding{Seq: string(prefix), Name: n.name})
		}
		for b, child := range n.children {
			walk(child, append(prefix[:len(prefix):len(prefix)], b))
		}
	}
	walk(t.root, nil)
	sort.Slice(bs, func(i, j int) bool { return bs[i].Seq < bs[j].Seq })
	return bs
}

// Lookup resolves pending input against the bound sequences.
func (t *Table[A]) Lookup(pending []byte) Match {
	var m Match
	n := t.root
	for i := 0; i < len(pending); i++ {
		child, ok := n.children[pending[i]]
		if !ok {
			return m
		}
		n = child
		if n.bound {
			m.Len, m.Name = i+1, n.name
		}
	}
	m.Ambiguous = len(pending) > 0 && len(n.children) > 0
	return m
}

func parseSeq(key string) (string, error) {
	seq, err := ui.ParseSeq(key)
	if err != nil {
		if errors.Is(err, ui.ErrEmptySeq) {
			return "", ErrEmptySequence
		}
		return "", fmt.Errorf("bad key sequence %q: %w", key, err)
	}
	return seq, nil
}
