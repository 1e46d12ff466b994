package glint

import (
	"math"
	"math/rand/v2"
)

// Particle holds per-particle simulation state.
type Particle struct {
	Position Vec2
	Velocity Vec2
	// Life is the remaining life in [0, 1]. The particle is removed on the
	// tick it reaches zero.
	Life float64
	// Decay is subtracted from Life every reference frame.
	Decay float64
	// Size is the disk radius in pixels.
	Size  float64
	Color Color
}

// BurstConfig controls how burst particles are spawned and behave. Speeds,
// gravity, and decay are per reference frame (1/60 s).
type BurstConfig struct {
	// Speed is the range of initial speeds in pixels per reference frame.
	Speed Range
	// Size is the range of particle radii in pixels.
	Size Range
	// Jitter is the range of random angle offsets added to each particle's
	// evenly spaced heading, in radians.
	Jitter Range
	// MaxLife is the range of per-particle lifetimes. Only consulted when
	// DecayFromMaxLife is set.
	MaxLife Range
	// Decay is the constant life decrement per reference frame.
	Decay float64
	// DecayFromMaxLife derives each particle's decay as Decay/MaxLife so
	// longer-lived particles fade more slowly.
	DecayFromMaxLife bool
	// Gravity is the downward acceleration added to velocity.Y per reference frame.
	Gravity float64
}

// DefaultBurstConfig returns the splash settings: speed 2-5, radius 3-7,
// angle jitter up to 0.5 rad, decay 0.02 and gravity 0.15 per frame.
func DefaultBurstConfig() BurstConfig {
	return BurstConfig{
		Speed:   Range{2, 5},
		Size:    Range{3, 7},
		Jitter:  Range{0, 0.5},
		MaxLife: Range{0.5, 1},
		Decay:   0.02,
		Gravity: 0.15,
	}
}

func (c BurstConfig) normalize() BurstConfig {
	if !(c.Decay > 0) || math.IsInf(c.Decay, 0) {
		c.Decay = DefaultBurstConfig().Decay
	}
	c.Gravity = finiteOr(c.Gravity, 0)
	return c
}

// ParticlePool manages a dynamically sized set of burst particles with CPU
// simulation. Dead particles are swap-removed and their slots reused; there
// is no cap beyond natural decay.
type ParticlePool struct {
	config    BurstConfig
	particles []Particle
	alive     int
	rng       *rand.Rand
}

// NewParticlePool creates an empty pool. A nil rng uses the global source.
func NewParticlePool(cfg BurstConfig, rng *rand.Rand) *ParticlePool {
	return &ParticlePool{config: cfg.normalize(), rng: rng}
}

// Config returns a pointer to the pool's config for live tuning.
func (p *ParticlePool) Config() *BurstConfig {
	return &p.config
}

// Len returns the number of live particles.
func (p *ParticlePool) Len() int {
	return p.alive
}

// Live returns the live particles. The slice aliases pool memory and is only
// valid until the next SpawnBurst, Tick, or Reset.
func (p *ParticlePool) Live() []Particle {
	return p.particles[:p.alive]
}

// Reset kills all live particles.
func (p *ParticlePool) Reset() {
	p.alive = 0
}

// SpawnBurst creates count particles at origin. Particle i heads at
// 2π*i/count plus jitter with a random speed, and starts with Life 1.
// The live count grows by exactly count.
func (p *ParticlePool) SpawnBurst(origin Vec2, count int, c Color) {
	if count <= 0 {
		return
	}
	need := p.alive + count
	if need > len(p.particles) {
		grown := make([]Particle, need, max(need, 2*len(p.particles)))
		copy(grown, p.particles[:p.alive])
		p.particles = grown[:cap(grown)]
	}
	for i := 0; i < count; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) + p.config.Jitter.Random(p.rng)
		decay := p.config.Decay
		if p.config.DecayFromMaxLife {
			if ml := p.config.MaxLife.Random(p.rng); ml > 0 {
				decay /= ml
			}
		}
		p.particles[p.alive] = Particle{
			Position: origin,
			Velocity: FromAngle(angle, p.config.Speed.Random(p.rng)),
			Life:     1,
			Decay:    decay,
			Size:     p.config.Size.Random(p.rng),
			Color:    c,
		}
		p.alive++
	}
}

// Tick advances the simulation by dt seconds: position integrates velocity,
// gravity accelerates velocity downward, and life decays linearly. Particles
// whose life reaches zero are removed in the same tick and get no further
// processing.
func (p *ParticlePool) Tick(dt float64) []Particle {
	k := Frames(dt)
	if !(k > 0) {
		return p.Live()
	}
	g := p.config.Gravity * k

	i := 0
	for i < p.alive {
		pt := &p.particles[i]
		pt.Life -= pt.Decay * k
		if pt.Life <= 0 {
			// Swap with last alive particle.
			p.alive--
			p.particles[i] = p.particles[p.alive]
			continue
		}

		pt.Position = pt.Position.Add(pt.Velocity.Mul(k))
		pt.Velocity.Y += g

		i++
	}
	return p.Live()
}

// AppendCommands draws one filled disk per live particle with opacity equal
// to its remaining life.
func (p *ParticlePool) AppendCommands(dst *DrawList) {
	for i := 0; i < p.alive; i++ {
		pt := &p.particles[i]
		dst.FillCircle(pt.Position, pt.Size, pt.Color.WithAlpha(pt.Life))
	}
}
