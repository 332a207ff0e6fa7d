package render

import (
	"fmt"
	"slices"

	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/models"
)

// Layer is one of the two fixed draw layers. Back paints before Front.
type Layer int

const (
	LayerBack Layer = iota
	LayerFront
	layerCount
)

func (l Layer) String() string {
	if l == LayerFront {
		return "front"
	}
	return "back"
}

// ItemID identifies an item on a stage. The zero value is never issued.
type ItemID uint32

// ItemKind distinguishes polylines from the flag.
type ItemKind int

const (
	KindPolyline ItemKind = iota
	KindFlag
)

// Polyline is a closed four-point outline.
type Polyline struct {
	Points [models.CornersPerFace]math3d.Vec2
	Stroke Color
	Width  float64
}

// FlagItem is the flag graphic placed on the stage.
type FlagItem struct {
	Flag   *Flag
	Bounds Rect
}

type item struct {
	kind     ItemKind
	layer    Layer
	polyline Polyline
	flag     FlagItem
}

// Stage is the retained 2D render target: two ordered layers of items.
// Within a layer, later items paint over earlier ones. A Stage is not safe
// for concurrent use.
type Stage struct {
	Background Color

	items  map[ItemID]*item
	layers [layerCount][]ItemID
	next   ItemID
	flag   ItemID
}

// NewStage creates an empty stage.
func NewStage(background Color) *Stage {
	return &Stage{
		Background: background,
		items:      make(map[ItemID]*item),
	}
}

func (s *Stage) add(it *item) ItemID {
	s.next++
	id := s.next
	s.items[id] = it
	s.layers[it.layer] = append(s.layers[it.layer], id)
	return id
}

// AddPolyline appends a polyline to the top of a layer.
func (s *Stage) AddPolyline(layer Layer, p Polyline) ItemID {
	return s.add(&item{kind: KindPolyline, layer: layer, polyline: p})
}

// SetPoints overwrites a polyline's points in place.
func (s *Stage) SetPoints(id ItemID, pts [models.CornersPerFace]math3d.Vec2) {
	if it, ok := s.items[id]; ok && it.kind == KindPolyline {
		it.polyline.Points = pts
	}
}

// Polyline returns a polyline by id.
func (s *Stage) Polyline(id ItemID) (Polyline, bool) {
	it, ok := s.items[id]
	if !ok || it.kind != KindPolyline {
		return Polyline{}, false
	}
	return it.polyline, true
}

// Remove detaches an item. Removing an unknown id is a no-op.
func (s *Stage) Remove(id ItemID) {
	it, ok := s.items[id]
	if !ok {
		return
	}
	s.detach(id, it.layer)
	delete(s.items, id)
	if id == s.flag {
		s.flag = 0
	}
}

func (s *Stage) detach(id ItemID, layer Layer) {
	ids := s.layers[layer]
	if i := slices.Index(ids, id); i >= 0 {
		s.layers[layer] = slices.Delete(ids, i, i+1)
	}
}

// PlaceFlag puts the flag on top of a layer. A stage holds at most one flag;
// placing again replaces the previous one.
func (s *Stage) PlaceFlag(layer Layer, f *Flag, bounds Rect) ItemID {
	if s.flag != 0 {
		s.Remove(s.flag)
	}
	s.flag = s.add(&item{kind: KindFlag, layer: layer, flag: FlagItem{Flag: f, Bounds: bounds}})
	return s.flag
}

// Flag returns the flag item and its id, if placed.
func (s *Stage) Flag() (FlagItem, ItemID, bool) {
	if s.flag == 0 {
		return FlagItem{}, 0, false
	}
	return s.items[s.flag].flag, s.flag, true
}

// InsertAbove moves id directly above anchor, switching to the anchor's
// layer if needed.
func (s *Stage) InsertAbove(id, anchor ItemID) error {
	return s.insert(id, anchor, 1)
}

// InsertBelow moves id directly below anchor, switching to the anchor's
// layer if needed.
func (s *Stage) InsertBelow(id, anchor ItemID) error {
	return s.insert(id, anchor, 0)
}

func (s *Stage) insert(id, anchor ItemID, offset int) error {
	if id == anchor {
		return fmt.Errorf("insert item %d relative to itself", id)
	}
	it, ok := s.items[id]
	if !ok {
		return fmt.Errorf("unknown item %d", id)
	}
	at, ok := s.items[anchor]
	if !ok {
		return fmt.Errorf("unknown anchor %d", anchor)
	}
	s.detach(id, it.layer)
	it.layer = at.layer
	ids := s.layers[at.layer]
	i := slices.Index(ids, anchor) + offset
	s.layers[at.layer] = slices.Insert(ids, i, id)
	return nil
}

// LayerOf returns the layer an item currently lives on.
func (s *Stage) LayerOf(id ItemID) (Layer, bool) {
	it, ok := s.items[id]
	if !ok {
		return 0, false
	}
	return it.layer, true
}

// Layer returns a copy of a layer's item order, bottom first.
func (s *Stage) Layer(l Layer) []ItemID {
	return slices.Clone(s.layers[l])
}

// PaintOrder returns every item bottom first: the back layer, then the front.
func (s *Stage) PaintOrder() []ItemID {
	out := make([]ItemID, 0, len(s.items))
	for l := range layerCount {
		out = append(out, s.layers[l]...)
	}
	return out
}

// Kind returns an item's kind.
func (s *Stage) Kind(id ItemID) (ItemKind, bool) {
	it, ok := s.items[id]
	if !ok {
		return 0, false
	}
	return it.kind, true
}

// Len returns the number of items on the stage.
func (s *Stage) Len() int {
	return len(s.items)
}

// Index returns an item's position within its layer, or -1.
func (s *Stage) Index(id ItemID) int {
	it, ok := s.items[id]
	if !ok {
		return -1
	}
	return slices.Index(s.layers[it.layer], id)
}
