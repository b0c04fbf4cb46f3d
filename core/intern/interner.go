package intern

// Symbol is a compact handle for an interned string.
// The zero Symbol is never handed out, so it can mark "unset" in callers.
type Symbol uint32

// Interner maps strings to dense Symbols and back.
// Symbols are never invalidated. An Interner is not safe for concurrent use.
type Interner struct {
	ids     map[string]Symbol
	strings []string
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{
		ids:     make(map[string]Symbol),
		strings: []string{""},
	}
}

// GetOrIntern returns the symbol for s, allocating one on first sight.
func (i *Interner) GetOrIntern(s string) Symbol {
	if sym, ok := i.ids[s]; ok {
		return sym
	}
	sym := Symbol(len(i.strings))
	i.strings = append(i.strings, s)
	i.ids[s] = sym
	return sym
}

// Resolve returns the string a symbol was created from.
// The second result is false for symbols this interner did not produce.
func (i *Interner) Resolve(sym Symbol) (string, bool) {
	if sym == 0 || int(sym) >= len(i.strings) {
		return "", false
	}
	return i.strings[sym], true
}

// Len returns the number of distinct strings interned.
func (i *Interner) Len() int {
	return len(i.strings) - 1
}
