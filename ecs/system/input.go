package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem copies device state into every Input component.
type InputSystem struct {
	pending inputEdges
}

// inputEdges are the one-shot inputs that only read true for a single
// frame.
type inputEdges struct {
	jumpPressed   bool
	throwReleased bool
	toggle        bool
	volume        float64
}

func (e inputEdges) merge(o inputEdges) inputEdges {
	return inputEdges{
		jumpPressed:   e.jumpPressed || o.jumpPressed,
		throwReleased: e.throwReleased || o.throwReleased,
		toggle:        e.toggle || o.toggle,
		volume:        e.volume + o.volume,
	}
}

// hold keeps edges seen while the world is not updating.
func (i *InputSystem) hold(e inputEdges) {
	i.pending = i.pending.merge(e)
}

// take returns this frame's edges plus any held ones and clears the hold.
func (i *InputSystem) take(e inputEdges) inputEdges {
	out := i.pending.merge(e)
	i.pending = inputEdges{}
	return out
}

// Latch records this frame's one-shot inputs without touching the world,
// so a release during a hit freeze still throws on the next update.
func (i *InputSystem) Latch() {
	i.hold(readEdges())
}

func readEdges() inputEdges {
	e := inputEdges{
		jumpPressed:   inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW),
		throwReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		toggle:        inpututil.IsKeyJustPressed(ebiten.KeyT),
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		e.volume += 0.1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		e.volume -= 0.1
	}
	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		e.jumpPressed = e.jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		// right trigger throws on release
		e.throwReleased = e.throwReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}
	return e
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW)
	aim := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	edges := i.take(readEdges())
	aimX := 0.0
	aimY := 0.0

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)

		// left trigger aims
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft) {
			aim = true
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			aimX = rx
			aimY = ry
		}
	}

	cx, cy := ebiten.CursorPosition()
	focused := ebiten.IsFocused()

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.Jump = jump
		input.JumpPressed = edges.jumpPressed
		input.Aim = aim
		input.AimX = aimX
		input.AimY = aimY
		input.CursorX = float64(cx)
		input.CursorY = float64(cy)
		input.ThrowReleased = edges.throwReleased
		input.Focused = focused
		input.ToggleTrajectory = edges.toggle
		input.VolumeDelta = edges.volume
	})
}
