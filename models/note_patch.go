package models

// NotePatch is a partial update of a note. Nil fields are left unchanged.
type NotePatch struct {
	Content  *string
	Position *Position
	Size     *Size
	Visible  *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p NotePatch) IsEmpty() bool {
	return p.Content == nil && p.Position == nil && p.Size == nil && p.Visible == nil
}

// ContentPatch replaces the content.
func ContentPatch(content string) NotePatch {
	return NotePatch{Content: &content}
}

// VisibilityPatch opens or closes the note window.
func VisibilityPatch(visible bool) NotePatch {
	return NotePatch{Visible: &visible}
}

// GeometryPatch moves and resizes the note window.
func GeometryPatch(pos Position, size Size) NotePatch {
	return NotePatch{Position: &pos, Size: &size}
}
