package system

import (
	"fmt"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/grenadier/prefabs"
)

// ExplosionEffect is what a detonation looks and feels like.
type ExplosionEffect struct {
	ShakeX         float64
	ShakeY         float64
	ShakeFrames    int
	ShakeIntensity float64
	ParticleCount  int
	ParticleSpeed  float64
	ParticleLife   float64
	FreezeFrames   int
}

// DefaultExplosionEffect rolls the impulse direction from rng: x in [-1, 1)
// and y in [0.5, 1), y pointing up.
func DefaultExplosionEffect(rng *rand.Rand) ExplosionEffect {
	return ExplosionEffect{
		ShakeX:         rng.Float64()*2 - 1,
		ShakeY:         0.5 + rng.Float64()*0.5,
		ShakeFrames:    20,
		ShakeIntensity: 5,
		ParticleCount:  24,
		ParticleSpeed:  150,
		ParticleLife:   0.6,
		FreezeFrames:   3,
	}
}

type explosionScript struct {
	path     string
	compiled *tengo.Compiled
}

func loadExplosionScript(path string) (*explosionScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return compileExplosionScript(path, src)
}

func compileExplosionScript(path string, src []byte) (*explosionScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("seed", 0)
	script.SetImports(stdlib.GetModuleMap("rand", "math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return &explosionScript{path: path, compiled: compiled}, nil
}

// run evaluates the script with the given seed. Values the script leaves
// undefined keep the fallback's.
func (s *explosionScript) run(seed int64, fallback ExplosionEffect) (ExplosionEffect, error) {
	c := s.compiled.Clone()
	if err := c.Set("seed", seed); err != nil {
		return fallback, err
	}
	if err := c.Run(); err != nil {
		return fallback, fmt.Errorf("run %s: %w", s.path, err)
	}

	fx := fallback
	readFloat := func(name string, dst *float64) {
		if c.IsDefined(name) {
			*dst = c.Get(name).Float()
		}
	}
	readInt := func(name string, dst *int) {
		if c.IsDefined(name) {
			*dst = c.Get(name).Int()
		}
	}
	readFloat("shake_x", &fx.ShakeX)
	readFloat("shake_y", &fx.ShakeY)
	readInt("shake_frames", &fx.ShakeFrames)
	readFloat("shake_intensity", &fx.ShakeIntensity)
	readInt("particle_count", &fx.ParticleCount)
	readFloat("particle_speed", &fx.ParticleSpeed)
	readFloat("particle_life", &fx.ParticleLife)
	readInt("freeze_frames", &fx.FreezeFrames)
	return fx, nil
}
