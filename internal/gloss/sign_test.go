package gloss

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		token   string
		markers Marker
		parts   []string
	}{
		{"HELLO(2h)^", TwoHanded | Raised, []string{"HELLO"}},
		{"CAT~DOG", Connected, []string{"CAT", "DOG"}},
		{"(Rh)RUN>", RightHand | DirectionalRight, []string{"RUN"}},
		{"(Lh)GIVE<", LeftHand | DirectionalLeft, []string{"GIVE"}},
		{"(rs)MOTHER", RoleShift, []string{"MOTHER"}},
		{"PLAIN", 0, []string{"PLAIN"}},
		{"  PADDED  ", 0, []string{"PADDED"}},
		{"", 0, []string{""}},
		{"(2h)", TwoHanded, []string{""}},
		{"BIG ~ HOUSE", Connected, []string{"BIG", "HOUSE"}},
		{"~START~", Connected, []string{"START"}},
		{"~", Connected, []string{}},
		{"(2h)WASH~DISH^>", TwoHanded | Connected | Raised | DirectionalRight, []string{"WASH", "DISH"}},
		{"<>^^", DirectionalLeft | DirectionalRight | Raised, []string{""}},
		{"(rh)LOWER", 0, []string{"(rh)LOWER"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := Decode(tt.token)
			if got.Markers != tt.markers {
				t.Errorf("markers = %v, want %v", got.Markers, tt.markers)
			}
			if !reflect.DeepEqual(got.Parts, tt.parts) {
				t.Errorf("parts = %#v, want %#v", got.Parts, tt.parts)
			}
			if got.Raw != tt.token {
				t.Errorf("raw = %q, want %q", got.Raw, tt.token)
			}
		})
	}
}

func TestDecodeAccessors(t *testing.T) {
	s := Decode("HELLO(2h)^")
	if !s.IsTwoHanded() || !s.IsRaised() {
		t.Error("expected two-handed raised sign")
	}
	if s.IsRightHand() || s.IsLeftHand() || s.IsDirectionalLeft() ||
		s.IsDirectionalRight() || s.IsConnected() || s.IsRoleShift() {
		t.Errorf("unexpected markers: %v", s.Markers)
	}

	c := Decode("CAT~DOG")
	if !c.IsConnected() {
		t.Error("CAT~DOG should be connected")
	}
	if c.Text() != "CAT~DOG" {
		t.Errorf("Text = %q", c.Text())
	}
}

func TestDecodeMarkerNames(t *testing.T) {
	s := Decode("(rs)(Rh)GO>~AWAY")
	want := []string{"right-hand", "directional-right", "connected", "role-shift"}
	if got := s.MarkerNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("MarkerNames = %v, want %v", got, want)
	}
	if got := Decode("X").MarkerNames(); len(got) != 0 {
		t.Errorf("MarkerNames for plain sign = %v, want empty", got)
	}
	if got := (TwoHanded | Raised).String(); got != "two-handed+raised" {
		t.Errorf("String = %q", got)
	}
	if got := Marker(0).String(); got != "none" {
		t.Errorf("String = %q", got)
	}
}

func TestDecodeCleaningIsIdempotent(t *testing.T) {
	tokens := []string{
		"HELLO(2h)^",
		"(Rh)RUN>",
		"CAT~DOG",
		"(2(rs)h)TRICK",
		"(R(Lh)h)NESTED",
		"((2h)2h)",
		"^<>(rs)",
		"(2h)WASH ~ DISH^",
		"  ~  ",
	}
	for _, tok := range tokens {
		decoded := Decode(tok)
		for _, part := range decoded.Parts {
			again := Decode(part)
			if again.Markers != 0 {
				t.Errorf("Decode(%q) part %q still carries markers %v", tok, part, again.Markers)
			}
		}
		joined := strings.Join(decoded.Parts, "")
		if again := Decode(joined); again.Markers != 0 {
			t.Errorf("Decode(%q) joined parts %q carry markers %v", tok, joined, again.Markers)
		}
	}
}
