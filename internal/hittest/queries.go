package hittest

import (
	"github.com/canvasengine/canvascore/internal/geom"
	"github.com/canvasengine/canvascore/internal/scene"
)

// FindTopmostNode returns the frontmost node containing p, if any.
func (s *Service) FindTopmostNode(p geom.Point, opts Options) (string, bool) {
	results := s.HitTestPoint(p, opts)
	if len(results) == 0 {
		return "", false
	}
	return results[0].ID, true
}

// FindSelectableNode returns the frontmost non-GROUP node containing p —
// the node a click should actually select. Locked nodes are skipped unless
// opts.IncludeLocked is set.
func (s *Service) FindSelectableNode(p geom.Point, opts Options) (string, bool) {
	for _, r := range s.HitTestPoint(p, opts) {
		node, ok := s.sceneGraph.Get(r.ID)
		if !ok || node.Type == scene.TypeGroup {
			continue
		}
		return r.ID, true
	}
	return "", false
}

// FindContainerFrame returns the frontmost FRAME among the results for p.
func (s *Service) FindContainerFrame(p geom.Point, opts Options) (string, bool) {
	for _, r := range s.HitTestPoint(p, opts) {
		node, ok := s.sceneGraph.Get(r.ID)
		if ok && node.Type == scene.TypeFrame {
			return r.ID, true
		}
	}
	return "", false
}

// FindParentFrameForPoint is FindContainerFrame restricted to frames that
// are not themselves excluded — the frame a dragged node would be dropped
// into at point p.
func (s *Service) FindParentFrameForPoint(p geom.Point, excludeIds map[string]bool) (string, bool) {
	opts := Options{ExcludeIds: excludeIds}
	return s.FindContainerFrame(p, opts)
}

// IsDescendantOf reports whether id is a descendant of ancestorID.
func (s *Service) IsDescendantOf(id, ancestorID string) bool {
	if id == ancestorID {
		return false
	}
	return s.sceneGraph.IsAncestor(ancestorID, id)
}
