package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type LevelTag struct{}

var LevelTagComponent = NewComponent[LevelTag]()

type ExplosionTag struct{}

var ExplosionTagComponent = NewComponent[ExplosionTag]()
