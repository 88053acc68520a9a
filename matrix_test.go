package orbitcore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestRotationZQuarterTurn(t *testing.T) {
	r := RotationZ(math.Pi / 2)
	got := r.MulVec(UnitX)
	if !got.Equal(UnitY, 1e-9) {
		t.Errorf("RotationZ(π/2)*X = %+v, want Y", got)
	}
}

func TestRotationXQuarterTurn(t *testing.T) {
	r := RotationX(math.Pi / 2)
	got := r.MulVec(UnitY)
	if !got.Equal(UnitZ, 1e-9) {
		t.Errorf("RotationX(π/2)*Y = %+v, want Z", got)
	}
}

func TestRotationAxisAngleMatchesElementary(t *testing.T) {
	a := RotationAxisAngle(0.7, UnitZ)
	b := RotationZ(0.7)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !floats.EqualWithinAbs(a.M[i][j], b.M[i][j], 1e-12) {
				t.Errorf("RotationAxisAngle(Z) != RotationZ at [%d][%d]: %v vs %v", i, j, a.M[i][j], b.M[i][j])
			}
		}
	}
}

func TestFromEulerZXZMatchesChainedProduct(t *testing.T) {
	Ω, i, ω := 0.4, 0.9, 1.3
	closed := FromEulerZXZ(Ω, i, ω)
	chained := RotationZ(Ω).Mul(RotationX(i)).Mul(RotationZ(ω))
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !floats.EqualWithinAbs(closed.M[r][c], chained.M[r][c], 1e-9) {
				t.Errorf("FromEulerZXZ != chained product at [%d][%d]: %v vs %v", r, c, closed.M[r][c], chained.M[r][c])
			}
		}
	}
}

func TestFromEulerZXZZeroInclination(t *testing.T) {
	// At i=0 the matrix must reduce exactly to a single Z rotation by Ω+ω,
	// regardless of rounding in the (unused) X(i) term.
	m := FromEulerZXZ(0.3, 0, 0.5)
	want := RotationZ(0.8)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !floats.EqualWithinAbs(m.M[r][c], want.M[r][c], 1e-12) {
				t.Errorf("FromEulerZXZ(i=0) at [%d][%d] = %v, want %v", r, c, m.M[r][c], want.M[r][c])
			}
		}
	}
}

func TestTranspose(t *testing.T) {
	m := RotationAxisAngle(1.1, NewVec3(1, 1, 1))
	identity := m.Mul(m.Transpose())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if !floats.EqualWithinAbs(identity.M[i][j], want, 1e-9) {
				t.Errorf("m*m^T at [%d][%d] = %v, want %v", i, j, identity.M[i][j], want)
			}
		}
	}
}
