package layout

import (
	"math"

	"github.com/matzehuels/addrscope/pkg/errors"
)

// Config holds the physical constants of a simulation.
type Config struct {
	// LinkDistance is the rest length of every link.
	LinkDistance float64
	// ChargeStrength is the many-body strength; negative values repel.
	ChargeStrength float64
	// DistanceMin bounds the many-body force for very close nodes.
	DistanceMin float64
	// AnchorX and AnchorY locate the constant centering point.
	AnchorX, AnchorY float64
	// CenterStrength scales the centering shift, 1 moves the mean onto the anchor.
	CenterStrength float64
	// AlphaMin is the energy below which the simulation is settled.
	AlphaMin float64
	// AlphaDecay is the fraction of the gap to the alpha target closed per tick.
	AlphaDecay float64
	// VelocityDecay is the friction applied to velocities per tick.
	VelocityDecay float64
	// DragAlphaTarget is the alpha floor held while a drag is active.
	DragAlphaTarget float64
}

// DefaultConfig returns constants that reproduce the reference view: link
// distance 250, charge -300 and an anchor at (1600, 300), offset from the
// center of an 800x600 canvas.
func DefaultConfig() Config {
	return Config{
		LinkDistance:    250,
		ChargeStrength:  -300,
		DistanceMin:     1,
		AnchorX:         1600,
		AnchorY:         300,
		CenterStrength:  1,
		AlphaMin:        0.001,
		AlphaDecay:      1 - math.Pow(0.001, 1.0/300),
		VelocityDecay:   0.4,
		DragAlphaTarget: 0.3,
	}
}

// Validate checks that the constants describe a converging simulation.
func (c Config) Validate() error {
	switch {
	case c.LinkDistance <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "link distance must be positive")
	case c.DistanceMin <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "minimum distance must be positive")
	case c.AlphaMin <= 0 || c.AlphaMin >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "alpha min must be in (0, 1)")
	case c.AlphaDecay <= 0 || c.AlphaDecay >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "alpha decay must be in (0, 1)")
	case c.VelocityDecay < 0 || c.VelocityDecay >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "velocity decay must be in [0, 1)")
	case c.DragAlphaTarget < 0 || c.DragAlphaTarget > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "drag alpha target must be in [0, 1]")
	case c.CenterStrength < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "center strength must not be negative")
	}
	return nil
}
