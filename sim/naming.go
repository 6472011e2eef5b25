package sim

import "strings"

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// NameMustBeValid panics if the name does not follow the naming convention.
// Names are hierarchical, with elements separated by dots. Each element must
// be non-empty, start with a capital letter, and must not contain
// underscores, quotes, or dashes.
func NameMustBeValid(name string) {
	for _, elem := range strings.Split(name, ".") {
		if elem == "" {
			panic("name " + name + " has an empty element")
		}

		if strings.ContainsAny(elem, "_\"'-") {
			panic("name " + name + " contains an invalid character")
		}

		if elem[0] < 'A' || elem[0] > 'Z' {
			panic("name " + name + " has an uncapitalized element")
		}
	}
}

// BuildName builds a hierarchical name from a parent name and an element
// name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}
