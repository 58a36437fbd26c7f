package host

import (
	"errors"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestVariant_ScalarRoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tests := []struct {
		name string
		in   lua.LValue
		want VariantKind
	}{
		{"nil", lua.LNil, VariantNil},
		{"bool", lua.LTrue, VariantBool},
		{"number", lua.LNumber(3.5), VariantNumber},
		{"string", lua.LString("hello"), VariantString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := VariantFromLua(tt.in)
			if err != nil {
				t.Fatalf("VariantFromLua: %v", err)
			}
			if v.Kind() != tt.want {
				t.Fatalf("Kind = %v, want %v", v.Kind(), tt.want)
			}
			if got := v.ToLua(L); got != tt.in {
				t.Errorf("round trip = %v, want %v", got, tt.in)
			}
		})
	}
}

func TestVariant_TableRoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("reason", lua.LString("filechange"))
	tbl.RawSetString("count", lua.LNumber(2))
	tbl.RawSetInt(1, lua.LString("first"))

	v, err := VariantFromLua(tbl)
	if err != nil {
		t.Fatalf("VariantFromLua: %v", err)
	}
	if v.Kind() != VariantTable {
		t.Fatalf("Kind = %v, want VariantTable", v.Kind())
	}

	// Rebuild in a second interpreter: the variant must not share
	// state with the origin.
	L2 := lua.NewState()
	defer L2.Close()

	out, ok := v.ToLua(L2).(*lua.LTable)
	if !ok {
		t.Fatal("ToLua did not produce a table")
	}
	if got := out.RawGetString("reason"); got != lua.LString("filechange") {
		t.Errorf("reason = %v, want \"filechange\"", got)
	}
	if got := out.RawGetString("count"); got != lua.LNumber(2) {
		t.Errorf("count = %v, want 2", got)
	}
	if got := out.RawGetInt(1); got != lua.LString("first") {
		t.Errorf("[1] = %v, want \"first\"", got)
	}
}

func TestVariant_UnrepresentableBecomesNil(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	fn := L.NewFunction(func(L *lua.LState) int { return 0 })

	v, err := VariantFromLua(fn)
	if err != nil {
		t.Fatalf("VariantFromLua: %v", err)
	}
	if !v.IsNil() {
		t.Errorf("function captured as %v, want nil variant", v.Kind())
	}
}

func TestVariant_CycleDetected(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("self", tbl)

	_, err := VariantFromLua(tbl)
	if !errors.Is(err, ErrRestartCycle) {
		t.Errorf("error = %v, want ErrRestartCycle", err)
	}
}

func TestVariant_SharedTableIsNotACycle(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	inner := L.NewTable()
	inner.RawSetString("x", lua.LNumber(1))
	tbl := L.NewTable()
	tbl.RawSetString("a", inner)
	tbl.RawSetString("b", inner)

	if _, err := VariantFromLua(tbl); err != nil {
		t.Errorf("VariantFromLua = %v, want nil (diamond sharing is legal)", err)
	}
}

func TestVariant_Constructors(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if !NilVariant().IsNil() {
		t.Error("NilVariant().IsNil() = false")
	}
	if got := BoolVariant(true).ToLua(L); got != lua.LTrue {
		t.Errorf("BoolVariant(true) = %v", got)
	}
	if got := NumberVariant(7).ToLua(L); got != lua.LNumber(7) {
		t.Errorf("NumberVariant(7) = %v", got)
	}
	if got := StringVariant("s").ToLua(L); got != lua.LString("s") {
		t.Errorf("StringVariant(\"s\") = %v", got)
	}

	v := TableVariant(
		Pair(StringVariant("reason"), StringVariant("test")),
	)
	out := v.ToLua(L).(*lua.LTable)
	if got := out.RawGetString("reason"); got != lua.LString("test") {
		t.Errorf("table variant reason = %v, want \"test\"", got)
	}
}
