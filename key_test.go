package meshtopo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name      string
		a, b      [3]float64
		precision int
		equal     bool
	}{
		{"identical", [3]float64{1, 2, 3}, [3]float64{1, 2, 3}, 3, true},
		{"below precision", [3]float64{1, 2, 3}, [3]float64{1.0001, 2.0004, 2.9996}, 3, true},
		{"at precision", [3]float64{1, 2, 3}, [3]float64{1.001, 2, 3}, 3, false},
		{"coarse precision", [3]float64{1.2, 0, 0}, [3]float64{0.8, 0, 0}, 0, true},
		{"signed zero", [3]float64{-0.0001, 0, 0}, [3]float64{0.0001, 0, 0}, 3, true},
		{"fine precision", [3]float64{1e-7, 0, 0}, [3]float64{2e-7, 0, 0}, 7, false},
		{"northing at max precision", [3]float64{500000, 9500000, 0}, [3]float64{500000, 9600000, 0}, MaxPrecision, false},
		{"southing at max precision", [3]float64{-500000, -9500000, 0}, [3]float64{-500000, -9600000, 0}, MaxPrecision, false},
		{"large at precision 3", [3]float64{1e16, 0, 0}, [3]float64{2e16, 0, 0}, 3, false},
		{"large negative at precision 3", [3]float64{-1e16, 0, 0}, [3]float64{-2e16, 0, 0}, 3, false},
		{"large identical", [3]float64{1e16, -1e16, 9500000}, [3]float64{1e16, -1e16, 9500000}, MaxPrecision, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := Key(Pt(tt.a[0], tt.a[1], tt.a[2]), tt.precision)
			kb := Key(Pt(tt.b[0], tt.b[1], tt.b[2]), tt.precision)
			assert.Equal(t, tt.equal, ka == kb, "Key(%v)=%v Key(%v)=%v", tt.a, ka, tt.b, kb)
		})
	}
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "1000,-2000,0", Key(Pt(1, -2, -0.0001), 3).String())
	assert.Equal(t, "9500000000000000000,0,0", Key(Pt(9500000, 0, 0), MaxPrecision).String())
}

func TestKeyable(t *testing.T) {
	tests := []struct {
		name      string
		p         r3.Vec
		precision int
		want      bool
	}{
		{"ordinary", Pt(1, 2, 3), 3, true},
		{"large", Pt(1e16, -1e16, 0), MaxPrecision, true},
		{"nan", Pt(math.NaN(), 0, 0), 3, false},
		{"inf", Pt(0, math.Inf(-1), 0), 0, false},
		{"overflows when scaled", Pt(0, 0, 1e300), MaxPrecision, false},
		{"fits unscaled", Pt(0, 0, 1e300), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keyable(tt.p, tt.precision))
		})
	}
}

func TestKeyIndex_Intern(t *testing.T) {
	idx, err := NewKeyIndex(3)
	require.NoError(t, err)

	id, added := idx.Intern(Pt(0, 0, 0))
	assert.Equal(t, 0, id)
	assert.True(t, added)

	id, added = idx.Intern(Pt(1, 0, 0))
	assert.Equal(t, 1, id)
	assert.True(t, added)

	id, added = idx.Intern(Pt(0.0002, 0, 0))
	assert.Equal(t, 0, id)
	assert.False(t, added)

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, Pt(0, 0, 0), idx.Points()[0], "first coordinate is the representative")

	got, ok := idx.Lookup(Pt(1.0004, 0, 0))
	assert.True(t, ok)
	assert.Equal(t, 1, got)
	_, ok = idx.Lookup(Pt(5, 5, 5))
	assert.False(t, ok)
	assert.Equal(t, 2, idx.Len(), "Lookup must not allocate")
}

func TestKeyIndex_LargeCoordinates(t *testing.T) {
	idx, err := NewKeyIndex(3)
	require.NoError(t, err)

	a, _ := idx.Intern(Pt(1e16, 0, 0))
	b, added := idx.Intern(Pt(2e16, 0, 0))
	assert.True(t, added)
	assert.NotEqual(t, a, b)

	idx, err = NewKeyIndex(MaxPrecision)
	require.NoError(t, err)
	a, _ = idx.Intern(Pt(500000, 9500000, 0))
	b, added = idx.Intern(Pt(500000, 9600000, 0))
	assert.True(t, added)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, idx.Len())
}

func TestNewKeyIndex_Precision(t *testing.T) {
	for _, p := range []int{-1, MaxPrecision + 1} {
		_, err := NewKeyIndex(p)
		assert.True(t, errors.Is(err, ErrInvalidInput), "precision %d: %v", p, err)
	}
	idx, err := NewKeyIndex(MaxPrecision)
	require.NoError(t, err)
	assert.Equal(t, MaxPrecision, idx.Precision())
}

func TestKeyIndex_FreshPerInstance(t *testing.T) {
	a, err := NewKeyIndex(3)
	require.NoError(t, err)
	b, err := NewKeyIndex(3)
	require.NoError(t, err)

	a.Intern(Pt(1, 1, 1))
	a.Intern(Pt(2, 2, 2))
	id, added := b.Intern(Pt(2, 2, 2))
	assert.Equal(t, 0, id)
	assert.True(t, added)
}
