package component

// Grenade is the pooled projectile owned by one GrenadeThrower. It is never
// destroyed: detonation returns it to the owner's hand.
type Grenade struct {
	Owner uint64
	// Held is true while the grenade rides in the owner's hand as a
	// kinematic body.
	Held bool
	// InitialRotation is captured at spawn and restored on every reset. The
	// hand position always comes from the owner's current release offset.
	InitialRotation float64
}

var GrenadeComponent = NewComponent[Grenade]()
