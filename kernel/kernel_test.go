package kernel

import (
	"math/rand"
	"testing"

	"github.com/dnfneat/dnfneat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsVariantByProbability(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PGauss, opts.PMexicanHat, opts.POscillatory = 1, 0, 0
	rng := rand.New(rand.NewSource(1))
	k := New(opts, rng)
	assert.Equal(t, Gauss, k.Type)

	opts.PGauss, opts.PMexicanHat, opts.POscillatory = 0, 1, 0
	k = New(opts, rng)
	assert.Equal(t, MexicanHat, k.Type)

	opts.PGauss, opts.PMexicanHat, opts.POscillatory = 0, 0, 1
	k = New(opts, rng)
	assert.Equal(t, Oscillatory, k.Type)
}

func TestNew_ParamsWithinBounds(t *testing.T) {
	opts := config.NewDefaultOptions()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		k := New(opts, rng)
		switch k.Type {
		case Gauss:
			assert.GreaterOrEqual(t, k.Width, opts.Ranges.GaussWidth.Min)
			assert.LessOrEqual(t, k.Width, opts.Ranges.GaussWidth.Max)
		case MexicanHat:
			assert.GreaterOrEqual(t, k.WidthInh, opts.Ranges.MHWidthInh.Min)
		case Oscillatory:
			assert.GreaterOrEqual(t, k.Decay, opts.Ranges.OscDecay.Min)
		}
	}
}

func TestMutate_RequiresProbabilitiesSumToOne(t *testing.T) {
	opts := config.NewDefaultOptions()
	rng := rand.New(rand.NewSource(1))
	k := New(opts, rng)
	err := k.Mutate(opts, rng, 0.5, 0.5, 0.5)
	require.Error(t, err)
}

func TestMutate_FlipSignNegatesAmplitude(t *testing.T) {
	opts := config.NewDefaultOptions()
	rng := rand.New(rand.NewSource(1))
	k := Kernel{Type: Gauss, Amplitude: 3.0}
	require.NoError(t, k.Mutate(opts, rng, 0, 1, 0))
	assert.Equal(t, -3.0, k.Amplitude)
}

func TestMutate_SwitchTypeReinitializes(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PGauss, opts.PMexicanHat, opts.POscillatory = 0, 0, 1
	rng := rand.New(rand.NewSource(1))
	k := Kernel{Type: Gauss, Amplitude: 3.0}
	require.NoError(t, k.Mutate(opts, rng, 0, 0, 1))
	assert.Equal(t, Oscillatory, k.Type)
}

func TestClone_IsIndependentValue(t *testing.T) {
	k := Kernel{Type: Gauss, Amplitude: 1.0}
	c := k.Clone()
	c.Amplitude = 99
	assert.Equal(t, 1.0, k.Amplitude)
}
