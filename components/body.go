package components

// Body holds the fixed bounding box size of an animal.
// It comes from the species and never changes, including when the sprite is mirrored.
type Body struct {
	Width  int
	Height int
}

// BodyOf returns the bounding box for a species.
func BodyOf(s Species) Body {
	info := s.info()
	return Body{Width: info.width, Height: info.height}
}
