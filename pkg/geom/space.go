package geom

// ClientToPage converts a viewport position to document space.
func ClientToPage(p Position, scroll Position) Position {
	return p.Add(scroll)
}

// PageToClient converts a document position to viewport space.
func PageToClient(p Position, scroll Position) Position {
	return p.Sub(scroll)
}

// ClientToRelative converts a viewport position into the space of a
// reference element whose client box is ref.
func ClientToRelative(p Position, ref Rect) Position {
	return p.Sub(ref.Position())
}

// RelativeToClient is the inverse of ClientToRelative.
func RelativeToClient(p Position, ref Rect) Position {
	return p.Add(ref.Position())
}

// PageToRelative converts a document position into the space of a reference
// element whose client box is ref.
func PageToRelative(p Position, scroll Position, ref Rect) Position {
	return ClientToRelative(PageToClient(p, scroll), ref)
}

// ClientRectToPage converts a viewport rectangle to document space.
func ClientRectToPage(r Rect, scroll Position) Rect {
	return NewRect(ClientToPage(r.Position(), scroll), r.Size())
}

// PageRectToClient converts a document rectangle to viewport space.
func PageRectToClient(r Rect, scroll Position) Rect {
	return NewRect(PageToClient(r.Position(), scroll), r.Size())
}

// ClientRectToRelative converts a viewport rectangle into the space of ref.
func ClientRectToRelative(r Rect, ref Rect) Rect {
	return NewRect(ClientToRelative(r.Position(), ref), r.Size())
}

// RelativeRectToClient converts a ref-relative rectangle back to viewport space.
func RelativeRectToClient(r Rect, ref Rect) Rect {
	return NewRect(RelativeToClient(r.Position(), ref), r.Size())
}

// PageRectToRelative converts a document rectangle into the space of ref.
func PageRectToRelative(r Rect, scroll Position, ref Rect) Rect {
	return NewRect(PageToRelative(r.Position(), scroll, ref), r.Size())
}
