package particle

import (
	"math"
	"math/rand"
)

// Seed creates the initial pool for a preset.
//
// Rising glyphs are scattered over the whole surface so the first frame is
// already populated; falling glyphs start above the top edge (within
// SeedDepth) so they rain in. The returned slice has capacity MaxCount and
// Step never grows it beyond that.
func Seed(p *Preset, b Bounds, rng *rand.Rand) []Particle {
	if !b.Valid() || p.MaxCount <= 0 {
		return nil
	}
	ps := make([]Particle, 0, p.MaxCount)
	for i := 0; i < p.SeedCount && i < p.MaxCount; i++ {
		q := Spawn(p, b, rng)
		if p.Direction == DirectionUp {
			q.Y = randFloat(rng) * b.H
		} else {
			q.Y = -randFloat(rng) * p.SeedDepth
		}
		q.StartY = q.Y
		ps = append(ps, q)
	}
	return ps
}

// Spawn creates one particle with freshly randomized parameters at the entry
// edge of the preset's travel axis.
func Spawn(p *Preset, b Bounds, rng *rand.Rand) Particle {
	q := Particle{
		X:         b.W * p.SpawnBand.Sample(rng),
		VX:        p.Drift.Sample(rng),
		VY:        p.Direction.Sign() * p.Speed.Sample(rng),
		Size:      p.Size.Sample(rng),
		Rotation:  randFloat(rng) * 2 * math.Pi,
		Spin:      p.Spin.Sample(rng),
		SwayPhase: randFloat(rng) * 2 * math.Pi,
		Glyph:     p.Glyph,
	}
	if p.Direction == DirectionUp {
		q.Y = b.H + p.Margin
	} else {
		q.Y = -p.Margin
	}
	q.StartY = q.Y
	q.BaseOpacity = p.Opacity.Sample(rng)
	q.Opacity = q.BaseOpacity
	if len(p.Colors) > 0 {
		q.Color = randIntn(rng, len(p.Colors))
	}
	return q
}

// Step advances every particle by dt seconds and returns the updated pool.
//
// Kinematics: gravity is applied along the travel direction, then position
// integrates velocity (plus an optional sinusoidal sway), rotation integrates
// spin and opacity optionally fades with travelled distance. Particles that
// leave the bounds along the travel axis are overwritten in place by a fresh
// Spawn, or dropped for transient presets. Afterwards one extra particle may
// be injected with probability SpawnChance while the pool is below MaxCount.
// len(result) <= MaxCount always holds.
func Step(ps []Particle, p *Preset, b Bounds, dt float64, rng *rand.Rand) []Particle {
	if !b.Valid() || dt <= 0 {
		return ps
	}

	sign := p.Direction.Sign()
	n := 0
	for i := range ps {
		q := ps[i]

		q.VY += sign * p.Gravity * dt
		q.X += q.VX * dt
		if p.Sway != 0 {
			q.X += math.Sin(q.Y*0.01+q.SwayPhase) * p.Sway * dt
		}
		q.Y += q.VY * dt
		q.Rotation += q.Spin * dt

		if p.FadeByDistance > 0 {
			travelled := math.Abs(q.Y - q.StartY)
			q.Opacity = q.BaseOpacity * math.Max(0, 1-travelled/(b.H*p.FadeByDistance))
		}

		if exited(&q, p, b) {
			if p.Transient {
				continue
			}
			q = Spawn(p, b, rng)
		}
		ps[n] = q
		n++
	}
	ps = ps[:n]

	if len(ps) < p.MaxCount && p.SpawnChance > 0 && randFloat(rng) < p.SpawnChance {
		ps = append(ps, Spawn(p, b, rng))
	}
	if len(ps) > p.MaxCount {
		ps = ps[:p.MaxCount]
	}
	return ps
}

// exited reports whether q left the visible region along the travel axis.
func exited(q *Particle, p *Preset, b Bounds) bool {
	if p.Direction == DirectionUp {
		return q.Y < -p.Margin
	}
	return q.Y > b.H+p.Margin
}

func randFloat(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

func randIntn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}
