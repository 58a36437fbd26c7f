package host

import (
	lua "github.com/yuin/gopher-lua"
)

// VariantKind identifies the payload type of a Variant.
type VariantKind int

const (
	VariantNil VariantKind = iota
	VariantBool
	VariantNumber
	VariantString
	VariantTable
)

// Variant is a typed restart payload carried from one process lifetime
// segment to the next across a full teardown/re-init cycle. It has value
// semantics: once captured it shares no state with the interpreter that
// produced it.
type Variant struct {
	kind    VariantKind
	boolean bool
	number  float64
	str     string
	table   []VariantPair
}

// VariantPair is one key/value entry of a table variant.
type VariantPair struct {
	Key   Variant
	Value Variant
}

// NilVariant returns the "no restart requested" sentinel.
func NilVariant() Variant {
	return Variant{}
}

// BoolVariant wraps a boolean payload.
func BoolVariant(b bool) Variant {
	return Variant{kind: VariantBool, boolean: b}
}

// NumberVariant wraps a numeric payload.
func NumberVariant(n float64) Variant {
	return Variant{kind: VariantNumber, number: n}
}

// StringVariant wraps a string payload.
func StringVariant(s string) Variant {
	return Variant{kind: VariantString, str: s}
}

// TableVariant wraps a structured payload.
func TableVariant(pairs ...VariantPair) Variant {
	return Variant{kind: VariantTable, table: pairs}
}

// Pair builds one table entry.
func Pair(key, value Variant) VariantPair {
	return VariantPair{Key: key, Value: value}
}

// Kind returns the payload type.
func (v Variant) Kind() VariantKind {
	return v.kind
}

// IsNil reports whether the variant is the "no restart" sentinel.
func (v Variant) IsNil() bool {
	return v.kind == VariantNil
}

// VariantFromLua captures a Lua value as a Variant. Tables are copied
// entry by entry; unrepresentable values (functions, userdata, threads)
// become nil entries. Returns ErrRestartCycle for self-referencing
// tables.
func VariantFromLua(lv lua.LValue) (Variant, error) {
	return variantFromLua(lv, map[*lua.LTable]bool{})
}

func variantFromLua(lv lua.LValue, seen map[*lua.LTable]bool) (Variant, error) {
	switch v := lv.(type) {
	case lua.LBool:
		return BoolVariant(bool(v)), nil
	case lua.LNumber:
		return NumberVariant(float64(v)), nil
	case lua.LString:
		return StringVariant(string(v)), nil
	case *lua.LTable:
		if seen[v] {
			return NilVariant(), ErrRestartCycle
		}
		seen[v] = true
		var pairs []VariantPair
		var ferr error
		v.ForEach(func(k, val lua.LValue) {
			if ferr != nil {
				return
			}
			kv, err := variantFromLua(k, seen)
			if err != nil {
				ferr = err
				return
			}
			vv, err := variantFromLua(val, seen)
			if err != nil {
				ferr = err
				return
			}
			pairs = append(pairs, VariantPair{Key: kv, Value: vv})
		})
		delete(seen, v)
		if ferr != nil {
			return NilVariant(), ferr
		}
		return TableVariant(pairs...), nil
	default:
		return NilVariant(), nil
	}
}

// ToLua rebuilds the variant as a value owned by L.
func (v Variant) ToLua(L *lua.LState) lua.LValue {
	switch v.kind {
	case VariantBool:
		return lua.LBool(v.boolean)
	case VariantNumber:
		return lua.LNumber(v.number)
	case VariantString:
		return lua.LString(v.str)
	case VariantTable:
		tbl := L.NewTable()
		for _, p := range v.table {
			k := p.Key.ToLua(L)
			if k == lua.LNil {
				continue
			}
			tbl.RawSet(k, p.Value.ToLua(L))
		}
		return tbl
	default:
		return lua.LNil
	}
}
