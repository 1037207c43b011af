package beamer

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func mustSpot(t *testing.T, d, deg float64, opts ...SpotOption) Spot {
	t.Helper()
	s, err := NewSpot(d, deg, opts...)
	if err != nil {
		t.Fatalf("NewSpot(%v, %v) error = %v", d, deg, err)
	}
	return s
}

func TestSpotNormalIncidence(t *testing.T) {
	s := mustSpot(t, 0.3, 0)
	if got := s.Elongation(); got != 0.3 {
		t.Errorf("Elongation() = %v, want exactly 0.3", got)
	}
	disk := mustCircle(t, 0.15).Area()
	if got := s.Area(); !approx(got, disk) {
		t.Errorf("Area() = %v, want disk area %v", got, disk)
	}
}

func TestSpotOblique(t *testing.T) {
	s := mustSpot(t, 0.3, 65)
	if got := s.Elongation(); math.Abs(got-0.7101) > 1e-3 {
		t.Errorf("Elongation() = %v, want ≈0.7101", got)
	}
	if got, want := s.Elongation(), 0.3/math.Cos(Radians(65)); !approx(got, want) {
		t.Errorf("Elongation() = %v, want %v", got, want)
	}
	if got := s.Area(); math.Abs(got-0.1674) > 1e-3 {
		t.Errorf("Area() = %v, want ≈0.1674", got)
	}
	// Both closed forms agree: π(d/2)²/cos θ == π·major·minor/4.
	if got, want := s.Area(), s.Ellipse().Area(); !approx(got, want) {
		t.Errorf("Area() = %v, ellipse area %v", got, want)
	}
	if s.Minor() != 0.3 || s.Diameter() != 0.3 || s.Incidence() != 65 {
		t.Errorf("accessors = %v %v %v", s.Minor(), s.Diameter(), s.Incidence())
	}
}

func TestSpotElongationIncreasing(t *testing.T) {
	prev := 0.0
	for deg := 0.0; deg < 90; deg += 0.5 {
		got := mustSpot(t, 1, deg).Elongation()
		if got <= prev {
			t.Fatalf("Elongation(%v) = %v, not greater than %v", deg, got, prev)
		}
		prev = got
	}
}

func TestSpotEllipse(t *testing.T) {
	s := mustSpot(t, 0.03, 45)
	e := s.Ellipse()
	if e.Width != s.Elongation() || e.Height != 0.03 {
		t.Errorf("Ellipse() = %+v", e)
	}
	if e.Center != (Point{}) || e.Angle != 0 {
		t.Errorf("Ellipse() should sit unrotated at the origin, got %+v", e)
	}
}

func TestNewSpotErrors(t *testing.T) {
	tests := []struct {
		name     string
		diameter float64
		deg      float64
		field    string
	}{
		{"zero diameter", 0, 10, "beam diameter"},
		{"negative diameter", -0.3, 10, "beam diameter"},
		{"nan diameter", math.NaN(), 10, "beam diameter"},
		{"right angle", 0.3, 90, "incidence angle"},
		{"grazing beyond", 0.3, 105, "incidence angle"},
		{"negative beyond", 0.3, -90, "incidence angle"},
		{"infinite angle", 0.3, math.Inf(1), "incidence angle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpot(tt.diameter, tt.deg)
			if !errors.Is(err, ErrDomain) {
				t.Fatalf("error = %v, want ErrDomain", err)
			}
			var de *DomainError
			if !errors.As(err, &de) || de.Field != tt.field {
				t.Fatalf("error = %#v, want field %q", err, tt.field)
			}
		})
	}
}

func TestSpotNegativeIncidence(t *testing.T) {
	neg := mustSpot(t, 1, -30)
	pos := mustSpot(t, 1, 30)
	if !approx(neg.Elongation(), pos.Elongation()) {
		t.Errorf("Elongation(-30) = %v, want %v", neg.Elongation(), pos.Elongation())
	}
}

// The same angle must be handled the same way everywhere: rejected by
// default, and only wrapped with a logged warning when wrapping is requested.
func TestIncidencePolicy(t *testing.T) {
	if _, err := CheckIncidence(105); !errors.Is(err, ErrDomain) {
		t.Errorf("CheckIncidence(105) error = %v, want ErrDomain", err)
	}
	if _, err := NewSpot(0.3, 105); !errors.Is(err, ErrDomain) {
		t.Errorf("NewSpot(0.3, 105) error = %v, want ErrDomain", err)
	}
	if _, err := AreaEllipse(0.15, 105); !errors.Is(err, ErrDomain) {
		t.Errorf("AreaEllipse(0.15, 105) error = %v, want ErrDomain", err)
	}

	logs := captureLogs(t)
	s := mustSpot(t, 0.3, 105, WithIncidenceWrap())
	if s.Incidence() != 15 {
		t.Errorf("wrapped Incidence() = %v, want 15", s.Incidence())
	}
	if !strings.Contains(logs.String(), "incidence angle wrapped") {
		t.Errorf("wrap did not log a warning, logs: %q", logs.String())
	}
}

func TestWrapIncidence(t *testing.T) {
	tests := []struct {
		in, want float64
		warn     bool
	}{
		{105, 15, true},
		{90, 0, true},
		{180, 0, true},
		{89.9, 89.9, false},
		{-45, -45, false},
	}
	for _, tt := range tests {
		logs := captureLogs(t)
		if got := WrapIncidence(tt.in); !approx(got, tt.want) {
			t.Errorf("WrapIncidence(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if warned := logs.Len() > 0; warned != tt.warn {
			t.Errorf("WrapIncidence(%v) warned = %v, want %v", tt.in, warned, tt.warn)
		}
	}
}

func TestAreaEllipse(t *testing.T) {
	got, err := AreaEllipse(1, 60)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got, 2*math.Pi) {
		t.Errorf("AreaEllipse(1, 60) = %v, want 2π", got)
	}
	if _, err := AreaEllipse(-1, 0); !errors.Is(err, ErrDomain) {
		t.Errorf("AreaEllipse(-1, 0) error = %v, want ErrDomain", err)
	}
}
