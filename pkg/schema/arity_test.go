package schema

import "testing"

func TestArity_ZeroValueIsSingle(t *testing.T) {
	var a Arity
	if !a.IsSingle() {
		t.Error("expected zero value to be single")
	}
	if a.IsMany() {
		t.Error("expected zero value not to be many")
	}
	if a.Count() != 1 {
		t.Errorf("expected count=1, got %d", a.Count())
	}
}

func TestArity_Many(t *testing.T) {
	if !Many.IsMany() {
		t.Error("expected Many to be many")
	}
	if Many.IsSingle() {
		t.Error("expected Many not to be single")
	}
	if Many.Count() != 0 {
		t.Errorf("expected count=0, got %d", Many.Count())
	}
}

func TestArity_Exactly(t *testing.T) {
	a := Exactly(3)
	if a.IsMany() || a.IsSingle() {
		t.Error("expected Exactly(3) to be neither many nor single")
	}
	if a.Count() != 3 {
		t.Errorf("expected count=3, got %d", a.Count())
	}

	if !Exactly(1).IsSingle() {
		t.Error("expected Exactly(1) to normalize to single")
	}
}

func TestArity_String(t *testing.T) {
	tests := []struct {
		a    Arity
		want string
	}{
		{a: 0, want: "one"},
		{a: Exactly(1), want: "one"},
		{a: Many, want: "many"},
		{a: Exactly(4), want: "4"},
	}

	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Arity(%d).String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}
