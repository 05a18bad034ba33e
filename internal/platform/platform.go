package platform

import (
	"sort"
	"strings"
	"unicode"
)

var modifierOrder = map[string]int{
	"ctrl":  0,
	"alt":   2,
	"shift": 3,
}

var namedKeys = map[string]string{
	"up":         "up",
	"arrowup":    "up",
	"down":       "down",
	"arrowdown":  "down",
	"left":       "left",
	"arrowleft":  "left",
	"right":      "right",
	"arrowright": "right",
	"home":       "home",
	"end":        "end",
	"pgup":       "pgup",
	"pageup":     "pgup",
	"page_up":    "pgup",
	"prior":      "pgup",
	"pgdown":     "pgdown",
	"pgdn":       "pgdown",
	"pagedown":   "pgdown",
	"page_down":  "pgdown",
	"next":       "pgdown",
	"delete":     "delete",
	"del":        "delete",
	"esc":        "esc",
	"escape":     "esc",
	"enter":      "enter",
	"return":     "enter",
	"tab":        "tab",
	"backspace":  "backspace",
	"bs":         "backspace",
	"space":      "space",
}

// CanonicalKeyForLookup normalizes key descriptions so different aliases resolve consistently.
// Modifiers are sorted in a stable order, named keys are mapped to a single spelling and a
// letter is lower-cased only when a modifier is present ("K" and "k" are different keys).
func CanonicalKeyForLookup(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	mods, main := splitKey(key)
	if len(mods) == 0 && len(main) == 0 {
		return ""
	}

	for i, mod := range mods {
		switch mod {
		case "control", "c":
			mods[i] = "ctrl"
		case "option", "opt", "meta", "m":
			mods[i] = "alt"
		default:
			mods[i] = mod
		}
	}

	mods = uniqueStrings(mods)
	sort.SliceStable(mods, func(i, j int) bool {
		ai := modifierOrderValue(mods[i])
		aj := modifierOrderValue(mods[j])
		if ai == aj {
			return mods[i] < mods[j]
		}
		return ai < aj
	})

	if main == "" {
		return strings.Join(mods, "+")
	}
	if len(mods) > 0 {
		main = strings.ToLower(main)
	}
	return strings.Join(append(mods, main), "+")
}

// DisplayKey formats a key binding for the message bar hint, e.g. "ctrl+q" -> "Ctrl-Q".
func DisplayKey(key string) string {
	key = CanonicalKeyForLookup(key)
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "+")
	display := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "ctrl":
			display = append(display, "Ctrl")
		case "alt":
			display = append(display, "Alt")
		case "shift":
			display = append(display, "Shift")
		case "pgup":
			display = append(display, "PageUp")
		case "pgdown":
			display = append(display, "PageDown")
		default:
			runes := []rune(p)
			if len(runes) == 1 {
				display = append(display, strings.ToUpper(p))
			} else {
				display = append(display, strings.ToUpper(string(runes[0]))+string(runes[1:]))
			}
		}
	}
	return strings.Join(display, "-")
}

// splitKey separates modifiers from the main key. Both "ctrl+q" and "C-q" are accepted.
func splitKey(key string) (mods []string, main string) {
	sep := "+"
	if !strings.Contains(key, "+") && strings.Contains(key, "-") && len(key) > 2 {
		sep = "-"
	}
	raw := strings.Split(key, sep)
	for i, part := range raw {
		if part == "" {
			continue
		}
		if part == " " {
			main = "space"
			continue
		}
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		last := i == len(raw)-1
		switch lower {
		case "ctrl", "control", "alt", "option", "opt", "meta", "shift":
			mods = append(mods, lower)
			continue
		case "c", "m":
			if !last {
				mods = append(mods, lower)
				continue
			}
		}
		if name, ok := namedKeys[lower]; ok {
			main = name
			continue
		}
		if len([]rune(trimmed)) == 1 && unicode.IsLetter([]rune(trimmed)[0]) {
			main = trimmed
			continue
		}
		main = lower
	}
	return mods, main
}

func uniqueStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func modifierOrderValue(mod string) int {
	if v, ok := modifierOrder[mod]; ok {
		return v
	}
	return 10
}
