package models

// Capabilities is the startup snapshot of which detection tiers and
// devices are usable. Probed once, immutable afterwards.
type Capabilities struct {
	FaceLocator      bool `json:"face_locator"`
	SpecializedModel bool `json:"specialized_model"`
	GeneralModel     bool `json:"general_model"`
	Camera           bool `json:"camera"`
}

// Degraded reports whether the pipeline is running below its full
// camera-plus-model configuration.
func (c Capabilities) Degraded() bool {
	return !c.Camera || !c.FaceLocator || (!c.SpecializedModel && !c.GeneralModel)
}

// Mode names the effective operating mode for health reporting.
func (c Capabilities) Mode() string {
	switch {
	case !c.Camera || !c.FaceLocator:
		return "demo"
	case c.SpecializedModel:
		return "full"
	case c.GeneralModel:
		return "general"
	default:
		return "heuristic"
	}
}
