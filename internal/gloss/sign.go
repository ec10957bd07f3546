package gloss

import "strings"

// Marker is a notation flag that can be attached to a sign token.
type Marker uint8

const (
	TwoHanded Marker = 1 << iota
	RightHand
	LeftHand
	Raised
	DirectionalLeft
	DirectionalRight
	Connected
	RoleShift
)

// markerTable lists every marker literal in display order. Detection is a
// plain containment check per entry, so a token may match any subset.
var markerTable = []struct {
	literal string
	marker  Marker
	name    string
}{
	{"(2h)", TwoHanded, "two-handed"},
	{"(Rh)", RightHand, "right-hand"},
	{"(Lh)", LeftHand, "left-hand"},
	{"^", Raised, "raised"},
	{"<", DirectionalLeft, "directional-left"},
	{">", DirectionalRight, "directional-right"},
	{"~", Connected, "connected"},
	{"(rs)", RoleShift, "role-shift"},
}

// connector splits the parts of a compound sign. It is detected but never
// stripped by cleaning.
const connector = "~"

var cleaner = strings.NewReplacer(
	"(2h)", "",
	"(Rh)", "",
	"(Lh)", "",
	"(rs)", "",
	"^", "",
	"<", "",
	">", "",
)

// Sign is the decoded form of a raw sign token.
type Sign struct {
	Raw     string
	Markers Marker
	// Parts holds the display text. It has more than one element only for
	// connected signs.
	Parts []string
}

// Decode extracts the notation markers from token and computes its display
// parts. Decode never fails; a token without markers decodes to its trimmed
// text.
func Decode(token string) Sign {
	var markers Marker
	for _, entry := range markerTable {
		if strings.Contains(token, entry.literal) {
			markers |= entry.marker
		}
	}

	clean := strings.TrimSpace(strip(token))

	sign := Sign{Raw: token, Markers: markers}
	if markers&Connected == 0 {
		sign.Parts = []string{clean}
		return sign
	}

	sign.Parts = []string{}
	for _, part := range strings.Split(clean, connector) {
		if part = strings.TrimSpace(part); part != "" {
			sign.Parts = append(sign.Parts, part)
		}
	}
	return sign
}

// strip removes marker literals until none remain. Removing "(rs)" from
// "(2(rs)h)" exposes a new "(2h)", so a single replacement pass is not enough
// to keep display text marker free.
func strip(token string) string {
	for {
		next := cleaner.Replace(token)
		if next == token {
			return next
		}
		token = next
	}
}

// Has reports whether every marker in m is set.
func (s Sign) Has(m Marker) bool {
	return s.Markers&m == m
}

func (s Sign) IsTwoHanded() bool        { return s.Has(TwoHanded) }
func (s Sign) IsRightHand() bool        { return s.Has(RightHand) }
func (s Sign) IsLeftHand() bool         { return s.Has(LeftHand) }
func (s Sign) IsRaised() bool           { return s.Has(Raised) }
func (s Sign) IsDirectionalLeft() bool  { return s.Has(DirectionalLeft) }
func (s Sign) IsDirectionalRight() bool { return s.Has(DirectionalRight) }
func (s Sign) IsConnected() bool        { return s.Has(Connected) }
func (s Sign) IsRoleShift() bool        { return s.Has(RoleShift) }

// Text returns the display parts joined by the compound connector.
func (s Sign) Text() string {
	return strings.Join(s.Parts, connector)
}

// MarkerNames lists the names of the markers set on s, in table order.
func (s Sign) MarkerNames() []string {
	names := []string{}
	for _, entry := range markerTable {
		if s.Markers&entry.marker != 0 {
			names = append(names, entry.name)
		}
	}
	return names
}

// String returns the marker name, or a "+"-joined list for combined markers.
func (m Marker) String() string {
	var names []string
	for _, entry := range markerTable {
		if m&entry.marker != 0 {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}
