package sentsplit

// Class is the boundary class of a single character.
type Class uint8

const (
	// ClassOther is any character that is not a boundary. A cut chosen
	// with this class is a hard cut.
	ClassOther Class = iota
	// ClassTerminal marks sentence-ending punctuation: . ! ? ;
	ClassTerminal
	// ClassInternal marks clause punctuation: - : ,
	ClassInternal
	// ClassSpace marks whitespace: \n \r \t \f and ASCII space.
	ClassSpace
)

// String returns the lower-case name of the class.
func (c Class) String() string {
	switch c {
	case ClassTerminal:
		return "terminal"
	case ClassInternal:
		return "internal"
	case ClassSpace:
		return "space"
	default:
		return "other"
	}
}

// Classify maps r to its boundary class. Terminal is checked before
// Internal, Internal before Space.
func Classify(r rune) Class {
	switch r {
	case '.', '!', '?', ';':
		return ClassTerminal
	case '-', ':', ',':
		return ClassInternal
	case '\n', '\r', '\t', '\f', ' ':
		return ClassSpace
	default:
		return ClassOther
	}
}
