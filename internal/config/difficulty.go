package config

// DifficultyManager computes the fall speed progression.
type DifficultyManager struct {
	growth   float64
	maxSpeed float64
}

// NewDifficultyManager creates a manager that multiplies speed by growth on
// every catch, capped at cfg.MaxSpeed when that is positive.
func NewDifficultyManager(growth float64, cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		growth:   growth,
		maxSpeed: cfg.MaxSpeed,
	}
}

// NextSpeed returns the speed after one more catch.
func (d *DifficultyManager) NextSpeed(current float64) float64 {
	next := current * d.growth
	if d.maxSpeed > 0 && next > d.maxSpeed {
		// Never slow down because of the cap.
		if current > d.maxSpeed {
			return current
		}
		return d.maxSpeed
	}
	return next
}

// SpeedAfter returns the speed reached from base after the given number of
// consecutive catches.
func (d *DifficultyManager) SpeedAfter(base float64, catches int) float64 {
	speed := base
	for i := 0; i < catches; i++ {
		speed = d.NextSpeed(speed)
	}
	return speed
}

// Capped reports whether progression has a ceiling.
func (d *DifficultyManager) Capped() bool {
	return d.maxSpeed > 0
}
