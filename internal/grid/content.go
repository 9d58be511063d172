package grid

// Kind tags the variant held by a Content value.
type Kind int

const (
	KindEmpty Kind = iota
	KindStarred
	KindOccupied
)

// String returns the persisted name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStarred:
		return "starred"
	case KindOccupied:
		return "occupied"
	default:
		return "empty"
	}
}

// ParseKind maps a persisted kind name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "empty":
		return KindEmpty, true
	case "starred":
		return KindStarred, true
	case "occupied":
		return KindOccupied, true
	default:
		return KindEmpty, false
	}
}

// ClassFields are the visible fields of a subject card.
type ClassFields struct {
	Subject string
	Time    string
	Room    string
}

// Content is what a cell holds. The zero value is Empty.
// Two Contents are equal (==) iff they have the same kind and fields.
type Content struct {
	Kind  Kind
	Class ClassFields // only meaningful for KindOccupied
}

// Empty returns the empty content.
func Empty() Content { return Content{} }

// Starred returns the "free slot" marker.
func Starred() Content { return Content{Kind: KindStarred} }

// Occupied returns a subject card.
func Occupied(subject, time, room string) Content {
	return Content{
		Kind:  KindOccupied,
		Class: ClassFields{Subject: subject, Time: time, Room: room},
	}
}

// IsOccupied reports whether the content is a subject card.
func (c Content) IsOccupied() bool { return c.Kind == KindOccupied }

// IsStarred reports whether the content is the free-slot marker.
func (c Content) IsStarred() bool { return c.Kind == KindStarred }

// IsEmpty reports whether the content is empty.
func (c Content) IsEmpty() bool { return c.Kind == KindEmpty }

// Fields returns the class fields of an occupied cell.
func (c Content) Fields() (ClassFields, bool) {
	if c.Kind != KindOccupied {
		return ClassFields{}, false
	}
	return c.Class, true
}

// DeriveVacant returns c unchanged if occupied, Starred otherwise.
func DeriveVacant(c Content) Content {
	if c.Kind == KindOccupied {
		return c
	}
	return Starred()
}
