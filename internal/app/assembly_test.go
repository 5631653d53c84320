package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/windturbine/internal/assets"
	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/engine/model"
	"github.com/Faultbox/windturbine/internal/scene"
	"github.com/Faultbox/windturbine/internal/turbine"
)

type fakeMesh struct {
	name string
}

func (f *fakeMesh) Draw() {}

type fakeUploader struct {
	calls int
	fail  bool
}

func (u *fakeUploader) upload(m *model.Mesh) (scene.Drawable, error) {
	u.calls++
	if u.fail {
		return nil, errors.New("no GL context")
	}
	return &fakeMesh{name: m.Name}, nil
}

func newTestSetup(t *testing.T, fallback bool, up *fakeUploader) (*Assembly, *turbine.Controller, *assets.Loader, *config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.Assets.Dir = t.TempDir()
	cfg.Assets.FallbackMeshes = fallback

	a := NewAssembly(cfg.Turbine.Blades, up.upload, nil)
	ctrl, err := turbine.NewController(cfg.Turbine, a.Hub, nil)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	loader := assets.NewLoader(assets.Options{Fallback: fallback}, nil)
	t.Cleanup(loader.Close)
	return a, ctrl, loader, cfg
}

// pollUntilResolved polls the way the main loop does until no slot is pending.
func pollUntilResolved(t *testing.T, a *Assembly, ctrl *turbine.Controller) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for a.Poll(ctrl) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("assets never resolved")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewAssemblyLayout(t *testing.T) {
	blades := config.DefaultBlades()
	a := NewAssembly(blades, nil, nil)

	if a.Scene.Root.Find("hub") != a.Hub {
		t.Error("hub not reachable from the scene root")
	}
	for i, n := range a.Blades {
		if n.Parent() != a.Hub {
			t.Errorf("blade %d is not a child of the hub", i)
		}
		want := blades[i].Angle * math32.Pi / 180
		if math32.Abs(n.Rotation.Z-want) > 1e-6 {
			t.Errorf("blade %d roll = %f, want %f", i, n.Rotation.Z, want)
		}
	}
	if a.Scene.Drawables() != 0 {
		t.Error("no node should be drawable before meshes load")
	}
}

func TestAssemblyFallbackMakesTurbineReady(t *testing.T) {
	up := &fakeUploader{}
	a, ctrl, loader, cfg := newTestSetup(t, true, up)

	a.Request(loader, cfg)
	pollUntilResolved(t, a, ctrl)

	if !ctrl.Ready() {
		t.Fatal("controller should be ready once the blade mesh resolves")
	}
	// tower, nacelle and one shared blade mesh
	if up.calls != 3 {
		t.Errorf("expected 3 uploads, got %d", up.calls)
	}
	if a.Scene.Drawables() != 5 {
		t.Errorf("expected 5 drawable nodes, got %d", a.Scene.Drawables())
	}
	if a.Blades[0].Mesh != a.Blades[2].Mesh {
		t.Error("blades should share one uploaded mesh")
	}

	// Attachment places blades at their start pose
	state := ctrl.State()
	for i, n := range a.Blades {
		if n.Position != state.Blades[i].Current {
			t.Errorf("blade %d at %v, want %v", i, n.Position, state.Blades[i].Current)
		}
	}

	ctrl.Tick()
	if ctrl.Ticks() != 1 {
		t.Errorf("expected the first tick to animate, got %d ticks", ctrl.Ticks())
	}
}

func TestAssemblyLoadsMeshFile(t *testing.T) {
	up := &fakeUploader{}
	a, ctrl, loader, cfg := newTestSetup(t, false, up)

	blade := `solid blade
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 0.2 0 0
      vertex 0 0.03 0
    endloop
  endfacet
endsolid blade
`
	if err := os.WriteFile(filepath.Join(cfg.Assets.Dir, cfg.Assets.Blade), []byte(blade), 0644); err != nil {
		t.Fatalf("failed to write blade mesh: %v", err)
	}

	a.Request(loader, cfg)
	pollUntilResolved(t, a, ctrl)

	// Tower and nacelle are missing and have no fallback
	if a.Tower.Mesh != nil || a.Nacelle.Mesh != nil {
		t.Error("missing meshes should leave their nodes empty")
	}
	if !ctrl.Ready() {
		t.Error("blades loaded from file should make the controller ready")
	}
	if up.calls != 1 {
		t.Errorf("expected 1 upload, got %d", up.calls)
	}
}

func TestAssemblyMissingBladesKeepsControllerIdle(t *testing.T) {
	up := &fakeUploader{}
	a, ctrl, loader, cfg := newTestSetup(t, false, up)

	a.Request(loader, cfg)
	pollUntilResolved(t, a, ctrl)

	before := ctrl.State()
	for i := 0; i < 5; i++ {
		ctrl.Tick()
	}
	if ctrl.Ready() || ctrl.Ticks() != 0 {
		t.Error("controller must stay idle without blade meshes")
	}
	if ctrl.State() != before {
		t.Error("state changed while idle")
	}
}

func TestAssemblyUploadFailure(t *testing.T) {
	up := &fakeUploader{fail: true}
	a, ctrl, loader, cfg := newTestSetup(t, true, up)

	a.Request(loader, cfg)
	pollUntilResolved(t, a, ctrl)

	if ctrl.Ready() {
		t.Error("blades must not attach when their upload fails")
	}
	if len(a.Drawables()) != 0 {
		t.Errorf("expected no drawables, got %d", len(a.Drawables()))
	}
}
