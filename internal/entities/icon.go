package entities

import (
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// CharacterIcons is the closed set of glyphs a player can pick from
var CharacterIcons = []string{
	"🧙‍♂️", "🦹‍♂️", "🧝‍♂️", "🧝‍♀️", "🧚‍♂️",
	"🧚‍♀️", "🦸‍♂️", "🦸‍♀️", "🧟‍♂️", "🧟‍♀️",
}

// ResolveIcon validates an icon, empty meaning the first one
func ResolveIcon(icon string) (string, error) {
	if icon == "" {
		return CharacterIcons[0], nil
	}
	for _, candidate := range CharacterIcons {
		if candidate == icon {
			return icon, nil
		}
	}
	return "", dnderr.Validationf("unknown character icon %q", icon)
}
