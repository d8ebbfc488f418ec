package value

// dictFind returns the index of key in d's keys slice, or -1.
func dictFind(d *Dict, key Value) int {
	for i, k := range d.keys {
		if Identical(k, key) {
			return i
		}
	}
	return -1
}

// DictGet looks up key (a symbol) in the dict by identity. Returns
// (value, true, nil) or (Invalid(), false, nil).
func (v Value) DictGet(key Value) (Value, bool, error) {
	d, err := v.asDict()
	if err != nil {
		return Invalid(), false, err
	}
	i := dictFind(d, key)
	if i < 0 {
		return Invalid(), false, nil
	}
	return d.vals[i], true, nil
}

// DictSet inserts or updates key -> val, preserving the insertion-ordered
// iteration spec.md §3 requires for reproducible printing.
func (v Value) DictSet(key, val Value) error {
	d, err := v.asDict()
	if err != nil {
		return err
	}
	if i := dictFind(d, key); i >= 0 {
		d.vals[i] = val
		return nil
	}
	d.keys = append(d.keys, key)
	d.vals = append(d.vals, val)
	return nil
}

// DictLen returns the number of entries.
func (v Value) DictLen() (int, error) {
	d, err := v.asDict()
	if err != nil {
		return 0, err
	}
	return len(d.keys), nil
}

// DictEach calls fn for every key/value pair in insertion order. Stops and
// returns fn's error if fn returns non-nil.
func (v Value) DictEach(fn func(key, val Value) error) error {
	d, err := v.asDict()
	if err != nil {
		return err
	}
	for i := range d.keys {
		if err := fn(d.keys[i], d.vals[i]); err != nil {
			return err
		}
	}
	return nil
}
