package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

const groundGraceFrames = 4

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body      *cp.Body
	mainShape *cp.Shape
	shapes    []*cp.Shape
	static    bool
}

type playerContactState struct {
	grounded    bool
	groundGrace int
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:        newSpace(),
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Gravity is the acceleration applied to dynamic bodies, in px/s².
func (ps *PhysicsSystem) Gravity() cp.Vector {
	if ps == nil || ps.space == nil {
		return cp.Vector{Y: common.Gravity}
	}
	return ps.space.Gravity()
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.Sync(w)
	ps.resetPlayerContacts(w)
	ps.syncHeldGrenades(w)

	ps.space.Step(common.FixedDelta)
	ps.syncHeldGrenades(w)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

// Sync creates bodies for new physics entities, removes bodies of destroyed
// ones and adds the level boundary once. Update calls it every tick; it is
// exported so queries can run against a freshly built world before the
// first step.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			playerEntity, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// ground normals point down the screen from the player's feet
		if n.Y <= 0.5 {
			return true
		}
		st := sys.playerStates[playerEntity]
		if st == nil {
			st = &playerContactState{}
			sys.playerStates[playerEntity] = st
		}
		st.grounded = true
		st.groundGrace = groundGraceFrames
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil || bodyComp.Shape == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.mainShape
			}
			return
		}

		var layer *component.CollisionLayer
		if l, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			layer = l
		}
		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())

		info := ps.createBodyInfo(transform, bodyComp, layer, isPlayer)
		if info == nil || info.mainShape == nil {
			return
		}
		ps.entities[e] = info
		if isPlayer && len(info.shapes) > 1 {
			ps.groundShapes[info.shapes[1]] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func shapeFilter(bodyComp *component.PhysicsBody, layer *component.CollisionLayer) cp.ShapeFilter {
	if layer != nil {
		return layer.ShapeFilter(bodyComp.Group)
	}
	return cp.NewShapeFilter(bodyComp.Group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, layer *component.CollisionLayer, isPlayer bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius

	if radius <= 0 && (width <= 0 || height <= 0) {
		width = common.TileSize
		height = common.TileSize
	}

	sizeW, sizeH := width, height
	if radius > 0 {
		sizeW = radius * 2
		sizeH = radius * 2
	}

	topLeftX := transform.X
	topLeftY := transform.Y
	if !bodyComp.AlignTopLeft {
		topLeftX = transform.X - sizeW/2
		topLeftY = transform.Y - sizeH/2
	}
	centerX := topLeftX + sizeW/2
	centerY := topLeftY + sizeH/2

	filter := shapeFilter(bodyComp, layer)
	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: centerX, Y: centerY})
		} else {
			bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + sizeW, T: topLeftY + sizeH}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	if bodyComp.Kinematic {
		// mass lives on the shape so a later switch to dynamic picks it up
		body = cp.NewKinematicBody()
	} else {
		var moment float64
		switch {
		case bodyComp.FixedRotation:
			moment = math.Inf(1)
		case radius > 0:
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		default:
			moment = cp.MomentForBox(mass, width, height)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: centerX, Y: centerY})
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	if bodyComp.Kinematic {
		shape.SetMass(mass)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(filter)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		if groundShape := createGroundSensor(bodyComp, body, filter); groundShape != nil {
			ps.space.AddShape(groundShape)
			info.shapes = append(info.shapes, groundShape)
		}
	}

	return info
}

func createGroundSensor(bodyComp *component.PhysicsBody, body *cp.Body, filter cp.ShapeFilter) *cp.Shape {
	width := bodyComp.Width
	height := bodyComp.Height
	if body == nil || width <= 0 || height <= 0 {
		return nil
	}

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	groundShape.SetFilter(filter)
	return groundShape
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	filter := component.CollisionLayer{Category: component.LayerWorld}.ShapeFilter(0)
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	info.mainShape = info.shapes[0]

	ps.entities[boundsEntity] = info
}

// syncHeldGrenades pins every held grenade to its owner's hand.
func (ps *PhysicsSystem) syncHeldGrenades(w *ecs.World) {
	ecs.ForEach2(w, component.GrenadeComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, grenade *component.Grenade, bodyComp *component.PhysicsBody) {
		if !grenade.Held || bodyComp.Body == nil {
			return
		}
		x, y, ok := HoldPoint(w, ecs.Entity(grenade.Owner))
		if !ok {
			return
		}
		bodyComp.Body.SetPosition(cp.Vector{X: x, Y: y})
		bodyComp.Body.SetVelocity(0, 0)
		bodyComp.Body.SetAngle(grenade.InitialRotation)
		bodyComp.Body.SetAngularVelocity(0)
	})
}

// HoldPoint is the world position of the owner's throwing hand.
func HoldPoint(w *ecs.World, owner ecs.Entity) (float64, float64, bool) {
	thrower, ok := ecs.Get(w, owner, component.GrenadeThrowerComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	transform, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	facingLeft := false
	if sprite, ok := ecs.Get(w, owner, component.SpriteComponent.Kind()); ok {
		facingLeft = sprite.FacingLeft
	}
	x, y := thrower.ReleasePoint(transform.X, transform.Y, facingLeft)
	return x, y, true
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, _ *component.Player) {
		seen[e] = struct{}{}
		st := ps.playerStates[e]
		if st == nil {
			st = &playerContactState{}
			ps.playerStates[e] = st
		}
		if st.groundGrace > 0 {
			st.groundGrace--
		}
		st.grounded = false
	})

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		player.Grounded = st.grounded || st.groundGrace > 0
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		if bodyComp.AlignTopLeft {
			transform.X = pos.X - bodyComp.Width/2.0
			transform.Y = pos.Y - bodyComp.Height/2.0
		} else {
			transform.X = pos.X
			transform.Y = pos.Y
		}
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.groundShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
