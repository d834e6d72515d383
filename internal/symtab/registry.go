package symtab

// VarRegistry is the ordered, first-discovery-order sequence of variable
// Symbols from §3. A variable's index in this slice is its ID, which is
// exactly its position in the model vector x[] (§5 "Ordering").
type VarRegistry struct {
	vars []*IrSymbol
}

// Add assigns sym the next free ID and appends it. Callers must not call
// Add twice for the same variable within one translation. irgen.Generator
// does not use this type; it keeps its own ordered variable slice.
func (r *VarRegistry) Add(sym *IrSymbol) int {
	id := len(r.vars)
	sym.ID = id
	r.vars = append(r.vars, sym)
	return id
}

func (r *VarRegistry) Len() int { return len(r.vars) }

func (r *VarRegistry) At(i int) *IrSymbol { return r.vars[i] }

func (r *VarRegistry) All() []*IrSymbol { return r.vars }

// WrapEntry records one FPA_TO_FP node whose first non-rounding-mode
// argument is an FP variable (§3 "FPA-wrap registry").
type WrapEntry struct {
	Wrapper *IrSymbol
	Inner   *IrSymbol
}

// WrapRegistry is the ordered sequence of WrapEntry pairs. The model
// validator (§4.8) does not read this type: it undoes to_fp casts from
// irgen.Generator.WrappedVars instead.
type WrapRegistry struct {
	entries []WrapEntry
}

func (r *WrapRegistry) Add(wrapper, inner *IrSymbol) {
	r.entries = append(r.entries, WrapEntry{Wrapper: wrapper, Inner: inner})
}

func (r *WrapRegistry) All() []WrapEntry { return r.entries }
