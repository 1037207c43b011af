package beamer

import "math"

// Beam diameters of the reference ellipsometer at normal incidence.
const (
	BeamDiameterFocusProbes   = 0.03
	BeamDiameterNoFocusProbes = 0.3
)

// Spot is the elliptical footprint of a circular beam striking a sample at
// an oblique incidence angle. The minor axis equals the beam diameter; the
// major axis is stretched by 1/cos(incidence).
//
// A Spot is immutable once constructed, so every method is infallible.
type Spot struct {
	diameter  float64
	incidence float64
}

// NewSpot validates and creates a spot.
//
// The diameter must be positive and finite. The incidence angle is in
// degrees measured from the sample normal and must lie strictly inside
// (-90, 90); anything else returns a *DomainError. With WithIncidenceWrap,
// angles of 90 or more are first reduced modulo 90 and a warning is logged.
func NewSpot(diameter, incidence float64, opts ...SpotOption) (Spot, error) {
	var o spotOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !isFinite(diameter) || diameter <= 0 {
		return Spot{}, domainError("beam diameter", diameter, "must be a finite positive number")
	}
	if o.wrapIncidence {
		incidence = WrapIncidence(incidence)
	}
	incidence, err := CheckIncidence(incidence)
	if err != nil {
		return Spot{}, err
	}
	return Spot{diameter: diameter, incidence: incidence}, nil
}

// CheckIncidence returns the angle unchanged when it lies strictly inside
// (-90, 90) degrees and a *DomainError otherwise.
func CheckIncidence(deg float64) (float64, error) {
	switch {
	case !isFinite(deg):
		return 0, domainError("incidence angle", deg, "must be finite")
	case deg >= 90:
		return 0, domainError("incidence angle", deg, "must be less than 90 degrees")
	case deg <= -90:
		return 0, domainError("incidence angle", deg, "must be greater than -90 degrees")
	}
	return deg, nil
}

// WrapIncidence reduces angles of 90 degrees or more modulo 90, so 105
// becomes 15. The substituted angle describes a physically different spot,
// so every wrap is logged as a warning. Smaller angles pass through.
func WrapIncidence(deg float64) float64 {
	if !(deg >= 90) || math.IsInf(deg, 0) {
		return deg
	}
	wrapped := math.Mod(deg, 90)
	Logger().Warn("incidence angle wrapped modulo 90",
		"requested", deg, "used", wrapped)
	return wrapped
}

// Diameter returns the beam diameter at normal incidence.
func (s Spot) Diameter() float64 { return s.diameter }

// Incidence returns the incidence angle in degrees.
func (s Spot) Incidence() float64 { return s.incidence }

// Minor returns the footprint minor axis, which equals the beam diameter.
func (s Spot) Minor() float64 { return s.diameter }

// Major returns the footprint major axis, d/cos(θ).
func (s Spot) Major() float64 {
	return s.diameter / math.Cos(Radians(s.incidence))
}

// Elongation returns the major axis length of the footprint. It equals the
// diameter at normal incidence and diverges as the angle approaches 90°.
func (s Spot) Elongation() float64 {
	return s.Major()
}

// Area returns the footprint area π·(d/2)²/cos(θ).
func (s Spot) Area() float64 {
	r := s.diameter / 2
	return math.Pi * r * r / math.Cos(Radians(s.incidence))
}

// Ellipse returns the footprint as an ellipse centered at the origin with
// the major axis along x.
func (s Spot) Ellipse() Ellipse {
	return Ellipse{Width: s.Major(), Height: s.Minor()}
}

// AreaEllipse returns the area of the ellipse cut from a cylindrical beam
// of the given radius by a plane tilted deg degrees from the beam axis.
func AreaEllipse(radius, deg float64) (float64, error) {
	if err := checkLength("radius", radius); err != nil {
		return 0, err
	}
	deg, err := CheckIncidence(deg)
	if err != nil {
		return 0, err
	}
	return math.Pi * radius * radius / math.Cos(Radians(deg)), nil
}
