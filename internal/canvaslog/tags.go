package canvaslog

// Debug tags for filtering log output, one per core component.
const (
	TagScene     = "SCENE"
	TagTransform = "TRANSFORM"
	TagLayout    = "LAYOUT"
	TagHitTest   = "HITTEST"
	TagCommand   = "COMMAND"
	TagHistory   = "HISTORY"
	TagGeometry  = "GEOMETRY"
)

// AllTags is every known category, as a group for EnableGroup/DisableGroup.
var AllTags = []string{TagScene, TagTransform, TagLayout, TagHitTest, TagCommand, TagHistory, TagGeometry}

// EnableGroup enables every tag in a group.
func EnableGroup(group []string) {
	for _, tag := range group {
		EnableCategory(tag)
	}
}

// DisableGroup disables every tag in a group.
func DisableGroup(group []string) {
	for _, tag := range group {
		DisableCategory(tag)
	}
}
