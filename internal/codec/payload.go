// Package codec converts a session into the compact exchange payload
// sent to a turn resolver and reads the resolver's answer back.
package codec

import (
	"encoding/json"
	"regexp"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// Payload is the full exchange document. A nil Entities leaves the
// section out; an empty one is sent as [] and clears every entity.
type Payload struct {
	Map      MapSection     `json:"map"`
	Chars    []CharRecord   `json:"chars"`
	Turn     TurnSection    `json:"turn"`
	Entities []EntityRecord `json:"entities,omitempty"`
}

// MarshalJSON keeps an empty, non-nil entity list on the wire
func (p Payload) MarshalJSON() ([]byte, error) {
	type wire struct {
		Map      MapSection      `json:"map"`
		Chars    []CharRecord    `json:"chars"`
		Turn     TurnSection     `json:"turn"`
		Entities *[]EntityRecord `json:"entities,omitempty"`
	}
	w := wire{Map: p.Map, Chars: p.Chars, Turn: p.Turn}
	if p.Entities != nil {
		w.Entities = &p.Entities
	}
	return json.Marshal(w)
}

// MapSection holds the grid size and its non-default tiles grouped by label
type MapSection struct {
	W     int                `json:"w"`
	H     int                `json:"h"`
	Desc  MapDesc            `json:"desc"`
	Tiles map[string][]Coord `json:"tiles"`
}

// MapDesc is the human readable map header
type MapDesc struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Coord is an [x,y] pair
type Coord [2]int

// CharRecord is the reduced character the resolver sees
type CharRecord struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Pos    Coord         `json:"pos"`
	Icon   string        `json:"icon"`
	Stats  CharStats     `json:"stats"`
	Weapon WeaponRecord  `json:"weapon"`
	Spells []SpellRecord `json:"spells"`
}

// CharStats is the abbreviated stat block
type CharStats struct {
	HP  int `json:"hp"`
	Max int `json:"max"`
	AC  int `json:"ac"`
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// WeaponRecord is a weapon name and its damage code
type WeaponRecord struct {
	Name string `json:"name"`
	Dmg  string `json:"dmg"`
}

// SpellRecord collapses damage, healing or buff into one effect string
type SpellRecord struct {
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

// TurnSection lists participant names in order and the active one
type TurnSection struct {
	Order   []string `json:"order"`
	Current *string  `json:"current"`
}

// EntityRecord is a monster or object. Stats is null for objects.
type EntityRecord struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Type  string             `json:"type"`
	Pos   Coord              `json:"pos"`
	Icon  string             `json:"icon"`
	Stats *EntityStatsRecord `json:"stats"`
}

// EntityStatsRecord is the stat block of an acting entity
type EntityStatsRecord struct {
	HP   int `json:"hp"`
	Max  int `json:"max"`
	AC   int `json:"ac"`
	Init int `json:"init"`
}

// Response is what a resolver returns: narrative text plus the updated state
type Response struct {
	Message string  `json:"message"`
	Data    Payload `json:"data"`
}

var (
	jsonString   = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	spacedPair   = regexp.MustCompile(`\[\s+(-?\d+)\s*,\s*(-?\d+)\s*\]`)
	spacedJoiner = regexp.MustCompile(`\],\s+\[`)
)

// Marshal pretty-prints the payload with coordinate pairs kept on one
// line as [x,y], the layout existing resolvers expect
func Marshal(p Payload) ([]byte, error) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to marshal exchange payload")
	}
	return compactPairs(b), nil
}

// MarshalResponse encodes a resolver response the same way
func MarshalResponse(r Response) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to marshal resolver response")
	}
	return compactPairs(b), nil
}

// Unmarshal parses an exchange payload
func Unmarshal(b []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Payload{}, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to parse exchange payload")
	}
	return p, nil
}

// UnmarshalResponse parses a resolver response envelope
func UnmarshalResponse(b []byte) (Response, error) {
	var r Response
	if err := json.Unmarshal(b, &r); err != nil {
		return Response{}, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to parse resolver response")
	}
	return r, nil
}

// compactPairs rewrites whitespace only outside of string literals
func compactPairs(b []byte) []byte {
	out := make([]byte, 0, len(b))
	last := 0
	for _, loc := range jsonString.FindAllIndex(b, -1) {
		out = append(out, compactSegment(b[last:loc[0]])...)
		out = append(out, b[loc[0]:loc[1]]...)
		last = loc[1]
	}
	return append(out, compactSegment(b[last:])...)
}

func compactSegment(seg []byte) []byte {
	seg = spacedPair.ReplaceAll(seg, []byte("[$1,$2]"))
	return spacedJoiner.ReplaceAll(seg, []byte("],["))
}
