package app

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/windturbine/internal/assets"
	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/engine/model"
	"github.com/Faultbox/windturbine/internal/scene"
	"github.com/Faultbox/windturbine/internal/turbine"
	"github.com/Faultbox/windturbine/pkg/math"
)

// Placement of the static parts relative to the hub, and the placeholder
// sizes used when a mesh file is missing.
var (
	towerPosition   = math.Vec3{Y: -0.3, Z: -0.06}
	nacellePosition = math.Vec3{Z: -0.06}

	towerBox   = math.Vec3{X: 0.04, Y: 0.6, Z: 0.04}
	nacelleBox = math.Vec3{X: 0.08, Y: 0.08, Z: 0.16}
	bladeBox   = math.Vec3{X: 0.2, Y: 0.03, Z: 0.01}
)

// UploadFunc turns a loaded CPU mesh into something the scene can draw.
type UploadFunc func(*model.Mesh) (scene.Drawable, error)

// target is a slot waiting to be placed on one or more nodes.
type target struct {
	slot   *assets.Slot
	nodes  []*scene.Node
	blades []int // blade index per node, -1 for static parts
}

// Assembly builds the turbine scene graph and wires loaded meshes into it.
type Assembly struct {
	Scene   *scene.Scene
	Turbine *scene.Node
	Tower   *scene.Node
	Nacelle *scene.Node
	Hub     *scene.Node
	Blades  [turbine.BladeCount]*scene.Node

	upload  UploadFunc
	log     *zap.Logger
	pending []*target
	drawn   map[*assets.Slot]scene.Drawable
}

// NewAssembly lays out the tower, nacelle, hub group and blade nodes. Blade
// nodes carry their static roll; the controller positions them.
func NewAssembly(blades []config.BladeConfig, upload UploadFunc, log *zap.Logger) *Assembly {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Assembly{
		Scene:   scene.New(),
		Turbine: scene.NewNode("turbine"),
		Tower:   scene.NewNode("tower"),
		Nacelle: scene.NewNode("nacelle"),
		Hub:     scene.NewNode("hub"),
		upload:  upload,
		log:     log,
		drawn:   make(map[*assets.Slot]scene.Drawable),
	}

	a.Tower.Position = towerPosition
	a.Nacelle.Position = nacellePosition

	a.Scene.Add(a.Turbine)
	a.Turbine.Add(a.Tower)
	a.Turbine.Add(a.Nacelle)
	a.Turbine.Add(a.Hub)

	for i := range a.Blades {
		n := scene.NewNode(fmt.Sprintf("blade%d", i))
		if i < len(blades) {
			n.Rotation.Z = blades[i].Angle * math32.Pi / 180
		}
		a.Blades[i] = n
		a.Hub.Add(n)
	}
	return a
}

// Request starts loading every mesh. The blade file is loaded once and shared.
func (a *Assembly) Request(loader *assets.Loader, cfg *config.Config) {
	a.track(loader.Load(assets.Ref{Name: "tower", Path: cfg.AssetPath(cfg.Assets.Tower), FallbackSize: towerBox}),
		[]*scene.Node{a.Tower}, []int{-1})
	a.track(loader.Load(assets.Ref{Name: "nacelle", Path: cfg.AssetPath(cfg.Assets.Nacelle), FallbackSize: nacelleBox}),
		[]*scene.Node{a.Nacelle}, []int{-1})

	blade := loader.Load(assets.Ref{Name: "blade", Path: cfg.AssetPath(cfg.Assets.Blade), FallbackSize: bladeBox})
	nodes := make([]*scene.Node, 0, len(a.Blades))
	indices := make([]int, 0, len(a.Blades))
	for i, n := range a.Blades {
		nodes = append(nodes, n)
		indices = append(indices, i)
	}
	a.track(blade, nodes, indices)
}

func (a *Assembly) track(slot *assets.Slot, nodes []*scene.Node, blades []int) {
	a.pending = append(a.pending, &target{slot: slot, nodes: nodes, blades: blades})
}

// Poll places every finished mesh without blocking and attaches loaded blades
// to ctrl. It returns the number of slots still pending.
func (a *Assembly) Poll(ctrl *turbine.Controller) int {
	remaining := a.pending[:0]
	for _, t := range a.pending {
		mesh, ready, err := t.slot.Poll()
		if !ready {
			remaining = append(remaining, t)
			continue
		}
		if err != nil {
			// Logged by the loader; the nodes stay empty.
			continue
		}

		drawable, err := a.drawable(t.slot, mesh)
		if err != nil {
			a.log.Error("mesh upload failed", zap.String("name", t.slot.Ref.Name), zap.Error(err))
			continue
		}

		for i, n := range t.nodes {
			n.Mesh = drawable
			if t.blades[i] < 0 {
				continue
			}
			if err := ctrl.AttachBlade(t.blades[i], n); err != nil {
				a.log.Error("attaching blade failed", zap.Int("blade", t.blades[i]), zap.Error(err))
			}
		}
	}
	a.pending = remaining
	return len(a.pending)
}

func (a *Assembly) drawable(slot *assets.Slot, mesh *model.Mesh) (scene.Drawable, error) {
	if d, ok := a.drawn[slot]; ok {
		return d, nil
	}
	d, err := a.upload(mesh)
	if err != nil {
		return nil, err
	}
	a.drawn[slot] = d
	return d, nil
}

// Drawables returns every uploaded mesh, for cleanup.
func (a *Assembly) Drawables() []scene.Drawable {
	out := make([]scene.Drawable, 0, len(a.drawn))
	for _, d := range a.drawn {
		out = append(out, d)
	}
	return out
}
