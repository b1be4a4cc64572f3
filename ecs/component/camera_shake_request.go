package component

// CameraShakeRequest asks the camera system to apply a short shake effect.
// Intensity is measured in world units (pixels at zoom=1). DirX/DirY bias
// the shake along an impulse direction; zero means omnidirectional.
type CameraShakeRequest struct {
	Frames    int
	Intensity float64
	DirX      float64
	DirY      float64
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
