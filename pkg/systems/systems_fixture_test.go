package systems

import (
	"math"
	"testing"
	"time"

	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/game"
	"github.com/caaaan/springbox/pkg/gate"
	"github.com/caaaan/springbox/pkg/spring"
	"github.com/caaaan/springbox/pkg/utils"
)

const frame = 1.0 / 60

// mockPointerInput 用于测试的 mock 指针输入
type mockPointerInput struct {
	state utils.PointerState
}

func (m *mockPointerInput) Pointer() utils.PointerState {
	return m.state
}

func (m *mockPointerInput) press(x, y int) {
	m.state = utils.PointerState{X: x, Y: y, Pressed: true, JustPressed: true}
}

func (m *mockPointerInput) move(x, y int) {
	m.state = utils.PointerState{X: x, Y: y, Pressed: true}
}

func (m *mockPointerInput) release(x, y int) {
	m.state = utils.PointerState{X: x, Y: y, JustReleased: true}
}

func (m *mockPointerInput) idle(x, y int) {
	m.state = utils.PointerState{X: x, Y: y}
}

// testWorld 测试用的实体世界
type testWorld struct {
	em      *ecs.EntityManager
	session *game.Session
	clock   *gate.ManualClock
	input   *mockPointerInput
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	clock := gate.NewManualClock(time.Unix(1_700_000_000, 0))
	session := game.OpenSession(clock, gate.DefaultOptions(), nil)
	t.Cleanup(session.Close)
	return &testWorld{
		em:      ecs.NewEntityManager(),
		session: session,
		clock:   clock,
		input:   &mockPointerInput{},
	}
}

// addBox 在格子 (x, y) 创建一个 150x150 的方块（格子 192x192）
// 方块范围为 [x+21, x+171]
func (w *testWorld) addBox(id string, x, y float64, opts drag.Options) (ecs.EntityID, *drag.Controller) {
	elementID := gate.ElementID(id)
	w.session.Gate().Configure(elementID, gate.Options{Policy: opts.Gate})
	ctrl := drag.NewController(elementID, w.session.Gate(), w.session.Override(), spring.NewAnimator(), opts)

	e := w.em.CreateEntity()
	w.em.AddComponent(e, &components.PositionComponent{X: x, Y: y})
	w.em.AddComponent(e, &components.BoxComponent{
		Width: 150, Height: 150, CellWidth: 192, CellHeight: 192,
		Label: "Click 5x to Enable", ForceLabel: "Drag Me", ActiveLabel: "Spring Back Enabled",
	})
	w.em.AddComponent(e, &components.DraggableComponent{Controller: ctrl})
	w.em.AddComponent(e, &components.ClickEffectComponent{})
	w.em.AddComponent(e, &components.HoverComponent{})
	return e, ctrl
}

func springBackOptions() drag.Options {
	return drag.Options{
		Gate:    gate.PolicyUnlockUntilDrag,
		Release: drag.ReleaseSpringBack,
		Spring:  drag.DefaultSpringParams(),
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
