package printer

import "github.com/dcurrie/picrin/value"

// shareable reports whether v is a kind the printer tracks for cycle and
// sharing purposes. Symbols are excluded: they are permanently interned
// (spec.md invariant #1), so two printed occurrences of the same symbol
// are not "sharing" in any sense a reader needs a datum label for.
func shareable(v value.Value) bool {
	if v.IsImmediate() || v.IsSymbol() {
		return false
	}
	return true
}

func children(v value.Value) []value.Value {
	switch {
	case v.IsPair():
		car, _ := v.Car()
		cdr, _ := v.Cdr()
		return []value.Value{car, cdr}
	case v.IsVector():
		n, _ := v.VecLen()
		out := make([]value.Value, n)
		for i := 0; i < n; i++ {
			out[i], _ = v.VecRef(i)
		}
		return out
	case v.IsDict():
		var out []value.Value
		_ = v.DictEach(func(_, val value.Value) error {
			out = append(out, val)
			return nil
		})
		return out
	case v.IsRecord():
		r, err := v.RecordObj()
		if err != nil {
			return nil
		}
		return []value.Value{r.Datum}
	default:
		return nil
	}
}

// traverseAll implements write-shared's analysis (original_source's
// traverse() called with op == OP_WRITE_SHARED): every compound object
// reached two or more times from the root, cyclic or not, ends up marked
// 1 in seen. A node's children are walked only on its first visit.
func traverseAll(seen *value.AttrMap, v value.Value) {
	if !shareable(v) {
		return
	}
	if !seen.Has(v) {
		seen.Set(v, 0)
		for _, c := range children(v) {
			traverseAll(seen, c)
		}
		return
	}
	seen.Set(v, 1)
}

// isShared reports whether v was marked shared by a prior traverse pass.
func isShared(seen *value.AttrMap, v value.Value) bool {
	if !shareable(v) {
		return false
	}
	raw, ok := seen.Get(v)
	return ok && raw.(int) == 1
}
