package model

import "fmt"

// Element is the elemental affinity of a combatant.
type Element uint8

const (
	ElementNone Element = iota
	ElementFire
	ElementWater
	ElementLight
	ElementDark

	elementCount
)

var elementNames = [elementCount]string{"none", "fire", "water", "light", "dark"}

func (e Element) String() string {
	if e >= elementCount {
		return fmt.Sprintf("element(%d)", uint8(e))
	}
	return elementNames[e]
}

// ParseElement converts a data-file element name into an Element.
// An empty string maps to ElementNone.
func ParseElement(s string) (Element, error) {
	if s == "" {
		return ElementNone, nil
	}
	for i, name := range elementNames {
		if name == s {
			return Element(i), nil
		}
	}
	return ElementNone, fmt.Errorf("unknown element %q", s)
}
