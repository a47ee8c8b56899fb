package ui

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlaySpeciesColors OverlayID = "species_colors"
	OverlayWaterline     OverlayID = "waterline"
	OverlayInspector     OverlayID = "inspector"
	OverlayPerf          OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         rune // Toggle key (0 = none)
	Enabled     bool // Initial state
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	reg.Register(OverlayDescriptor{
		ID:          OverlaySpeciesColors,
		Name:        "Colors",
		Description: "Color fish and crabs differently",
		Key:         'c',
		Enabled:     true,
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayWaterline,
		Name:        "Waterline",
		Description: "Mark the highest row fish may reach",
		Key:         'w',
		Enabled:     true,
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayInspector,
		Name:        "Inspector",
		Description: "Show the selected animal",
		Key:         'i',
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Perf",
		Description: "Show tick phase timings",
		Key:         'p',
	})
	return reg
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = desc.Enabled
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.enabled[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key rune) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the active overlays in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}
