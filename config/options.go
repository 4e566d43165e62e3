package config

import "github.com/pkg/errors"

const probabilitySumTolerance = 1e-6

// ParamRange bounds a mutable numeric gene parameter and the step used when
// perturbing it during mutation.
type ParamRange struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Clamp restricts v to the range.
func (r ParamRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Ranges groups the bounded parameters for every kernel variant and the
// field-level neural field parameters.
type Ranges struct {
	Tau             ParamRange `yaml:"tau"`
	RestingLevel    ParamRange `yaml:"resting_level"`
	GaussWidth      ParamRange `yaml:"gauss_width"`
	GaussAmplitude  ParamRange `yaml:"gauss_amplitude"`
	MHWidthExc      ParamRange `yaml:"mh_width_exc"`
	MHAmplitudeExc  ParamRange `yaml:"mh_amplitude_exc"`
	MHWidthInh      ParamRange `yaml:"mh_width_inh"`
	MHAmplitudeInh  ParamRange `yaml:"mh_amplitude_inh"`
	AmplitudeGlobal ParamRange `yaml:"amplitude_global"`
	OscAmplitude    ParamRange `yaml:"osc_amplitude"`
	OscDecay        ParamRange `yaml:"osc_decay"`
	OscZeroCross    ParamRange `yaml:"osc_zero_crossings"`
	NoiseAmplitude  ParamRange `yaml:"noise_amplitude"`
}

// Options is the full set of tunable constants for one evolutionary run,
// carried through the program via context.Context (see NewContext/FromContext).
type Options struct {
	// Population
	PopulationSize int     `yaml:"pop_size"`
	NumGenerations int     `yaml:"num_generations"`
	TargetFitness  float64 `yaml:"target_fitness"`
	KillRatio      float64 `yaml:"kill_ratio"`

	// Compatibility / speciation
	CompatC1          float64 `yaml:"compat_c1"`
	CompatC2          float64 `yaml:"compat_c2"`
	CompatC3          float64 `yaml:"compat_c3"`
	CompatThreshold   float64 `yaml:"compat_threshold"`
	SmallGenomeCutoff int     `yaml:"small_genome_cutoff"`

	// Genome-level mutation probabilities, must sum to 1
	PAddField      float64 `yaml:"p_add_field"`
	PMutateField   float64 `yaml:"p_mutate_field"`
	PAddConn       float64 `yaml:"p_add_conn"`
	PMutateConn    float64 `yaml:"p_mutate_conn"`
	PToggleConn    float64 `yaml:"p_toggle_conn"`

	// ConnectionGene mutation probabilities, must sum to 1
	ConnPMutateKernel     float64 `yaml:"conn_p_mutate_kernel"`
	ConnPMutateSignal     float64 `yaml:"conn_p_mutate_signal"`
	ConnPMutateKernelType float64 `yaml:"conn_p_mutate_kernel_type"`

	// FieldGene mutation probabilities, must sum to 1
	FieldPMutateKernel      float64 `yaml:"field_p_mutate_kernel"`
	FieldPMutateNeuralField float64 `yaml:"field_p_mutate_neural_field"`
	FieldPMutateKernelType  float64 `yaml:"field_p_mutate_kernel_type"`

	// Kernel-variant selection probabilities, must sum to 1
	PGauss       float64 `yaml:"p_gauss"`
	PMexicanHat  float64 `yaml:"p_mexican_hat"`
	POscillatory float64 `yaml:"p_oscillatory"`

	// Bounded parameter ranges
	Ranges Ranges `yaml:"ranges"`

	// Genetic-distance coefficients for matching connection genes
	DistanceAmpCoeff   float64 `yaml:"c_amp"`
	DistanceWidthCoeff float64 `yaml:"c_width"`

	// Field dimensions passed to the phenotype builder
	FieldXSize int     `yaml:"x_size"`
	FieldDx    float64 `yaml:"dx"`

	// Initial topology
	NumInput           int     `yaml:"num_input"`
	NumOutput          int     `yaml:"num_output"`
	PInitialConnection float64 `yaml:"p_initial_connection"`

	// Runtime / ambient
	LogLevel         string `yaml:"log_level"`
	ParallelEvaluate bool   `yaml:"parallel_evaluate"`
	EvaluateWorkers  int    `yaml:"evaluate_workers"`
	RandomSeed       int64  `yaml:"random_seed"`
}

// NewDefaultOptions returns Options populated with the values this
// implementation treats as defaults, matching original_source's
// constants.h where that source specifies one.
func NewDefaultOptions() *Options {
	return &Options{
		PopulationSize: 100,
		NumGenerations: 1000,
		TargetFitness:  0.95,
		KillRatio:      0.9,

		CompatC1:          0.5,
		CompatC2:          0.4,
		CompatC3:          0.1,
		CompatThreshold:   3.0,
		SmallGenomeCutoff: 20,

		PAddField:   0.1,
		PMutateField: 0.3,
		PAddConn:    0.2,
		PMutateConn: 0.3,
		PToggleConn: 0.1,

		ConnPMutateKernel:     0.6,
		ConnPMutateSignal:     0.2,
		ConnPMutateKernelType: 0.2,

		FieldPMutateKernel:      0.5,
		FieldPMutateNeuralField: 0.3,
		FieldPMutateKernelType:  0.2,

		PGauss:       0.6,
		PMexicanHat:  0.3,
		POscillatory: 0.1,

		Ranges: Ranges{
			Tau:             ParamRange{Min: 1, Max: 100, Step: 0.5},
			RestingLevel:    ParamRange{Min: -20, Max: 0, Step: 0.5},
			GaussWidth:      ParamRange{Min: 0, Max: 10, Step: 0.5},
			GaussAmplitude:  ParamRange{Min: -10, Max: 10, Step: 0.5},
			MHWidthExc:      ParamRange{Min: 0, Max: 10, Step: 0.5},
			MHAmplitudeExc:  ParamRange{Min: -10, Max: 10, Step: 0.5},
			MHWidthInh:      ParamRange{Min: 0, Max: 10, Step: 0.5},
			MHAmplitudeInh:  ParamRange{Min: -10, Max: 10, Step: 0.5},
			AmplitudeGlobal: ParamRange{Min: -10, Max: 10, Step: 0.5},
			OscAmplitude:    ParamRange{Min: -10, Max: 10, Step: 0.5},
			OscDecay:        ParamRange{Min: 0, Max: 10, Step: 0.5},
			OscZeroCross:    ParamRange{Min: 0, Max: 10, Step: 0.5},
			NoiseAmplitude:  ParamRange{Min: 0, Max: 1, Step: 0.05},
		},

		DistanceAmpCoeff:   1.0,
		DistanceWidthCoeff: 1.0,

		FieldXSize: 100,
		FieldDx:    1.0,

		NumInput:           2,
		NumOutput:          1,
		PInitialConnection: 0.5,

		LogLevel:         "info",
		ParallelEvaluate: false,
		EvaluateWorkers:  4,
		RandomSeed:       0,
	}
}

// Validate checks every probability group sums to 1 within tolerance and
// that population/field settings are sane. It returns a *Error so callers
// can distinguish configuration failures from other errors.
func (o *Options) Validate() error {
	groups := map[string][]float64{
		"genome mutation":          {o.PAddField, o.PMutateField, o.PAddConn, o.PMutateConn, o.PToggleConn},
		"connection gene mutation": {o.ConnPMutateKernel, o.ConnPMutateSignal, o.ConnPMutateKernelType},
		"field gene mutation":      {o.FieldPMutateKernel, o.FieldPMutateNeuralField, o.FieldPMutateKernelType},
		"kernel selection":         {o.PGauss, o.PMexicanHat, o.POscillatory},
	}
	for name, probs := range groups {
		sum := 0.0
		for _, p := range probs {
			sum += p
		}
		if absFloat(sum-1.0) > probabilitySumTolerance {
			return NewError(errors.Errorf("%s probabilities must sum to 1, got %f", name, sum))
		}
	}
	if o.PopulationSize <= 0 {
		return NewError(errors.New("pop_size must be positive"))
	}
	if o.NumGenerations <= 0 {
		return NewError(errors.New("num_generations must be positive"))
	}
	if o.KillRatio < 0 || o.KillRatio > 1 {
		return NewError(errors.New("kill_ratio must be in [0, 1]"))
	}
	if o.SmallGenomeCutoff <= 0 {
		return NewError(errors.New("small_genome_cutoff must be positive"))
	}
	if o.NumInput <= 0 || o.NumOutput <= 0 {
		return NewError(errors.New("num_input and num_output must be positive"))
	}
	return nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Error distinguishes configuration failures (probability sums off, range
// misspecification) from other error kinds, per the error handling design.
type Error struct {
	cause error
}

// NewError wraps cause as a configuration Error.
func NewError(cause error) *Error {
	return &Error{cause: cause}
}

func (e *Error) Error() string { return "config: " + e.cause.Error() }
func (e *Error) Cause() error  { return e.cause }
func (e *Error) Unwrap() error { return e.cause }
