package component

type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64

	// Shake state driven by CameraShakeRequest.
	ShakeFrames    int
	ShakeTotal     int
	ShakeIntensity float64
	ShakeDirX      float64
	ShakeDirY      float64
	OffsetX        float64
	OffsetY        float64
}

var CameraComponent = NewComponent[Camera]()
