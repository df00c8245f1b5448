package models

import "testing"

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Text("Chicago"), "Chicago"},
		{Number(1200), "1200"},
		{Number(12.5), "12.5"},
		{Number(-0.25), "-0.25"},
		{NumberText(1500, "1500.00"), "1500.00"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Null(), ""},
		{Date("2024-01-02"), "2024-01-02"},
		{JSON(`[1]`), `[1]`},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%s value String() = %q, want %q", tt.v.Kind, got, tt.want)
		}
	}
}

func TestZero(t *testing.T) {
	tests := []struct {
		kind Kind
		want Value
	}{
		{KindNumber, Number(0)},
		{KindBool, Bool(false)},
		{KindText, Text("")},
		{KindNote, Note("")},
		{KindDate, Date("")},
		{KindNull, Null()},
	}
	for _, tt := range tests {
		if got := Zero(tt.kind); got != tt.want {
			t.Errorf("Zero(%s) = %+v, want %+v", tt.kind, got, tt.want)
		}
	}
}

func TestKind_Textual(t *testing.T) {
	for _, k := range []Kind{KindText, KindDate, KindNote, KindJSON} {
		if !k.Textual() {
			t.Errorf("expected %s to be textual", k)
		}
	}
	for _, k := range []Kind{KindNull, KindNumber, KindBool} {
		if k.Textual() {
			t.Errorf("expected %s not to be textual", k)
		}
	}
	if Kind(42).String() != "unknown" {
		t.Error("expected unknown kind name")
	}
}
