package config

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strings"
)

// LoadYAMLOptions loads Options encoded as a YAML document.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	opts := NewDefaultOptions()
	if err = yaml.Unmarshal(content, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode options from YAML")
	}
	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadPlainOptions loads Options from the plain line-oriented "key value"
// format: one setting per line, unknown keys are a hard error.
func LoadPlainOptions(r io.Reader) (*Options, error) {
	o := NewDefaultOptions()
	var name string
	var param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch name {
		case "pop_size":
			o.PopulationSize = cast.ToInt(param)
		case "num_generations":
			o.NumGenerations = cast.ToInt(param)
		case "target_fitness":
			o.TargetFitness = cast.ToFloat64(param)
		case "kill_ratio":
			o.KillRatio = cast.ToFloat64(param)
		case "compat_c1":
			o.CompatC1 = cast.ToFloat64(param)
		case "compat_c2":
			o.CompatC2 = cast.ToFloat64(param)
		case "compat_c3":
			o.CompatC3 = cast.ToFloat64(param)
		case "compat_threshold":
			o.CompatThreshold = cast.ToFloat64(param)
		case "small_genome_cutoff":
			o.SmallGenomeCutoff = cast.ToInt(param)
		case "p_add_field":
			o.PAddField = cast.ToFloat64(param)
		case "p_mutate_field":
			o.PMutateField = cast.ToFloat64(param)
		case "p_add_conn":
			o.PAddConn = cast.ToFloat64(param)
		case "p_mutate_conn":
			o.PMutateConn = cast.ToFloat64(param)
		case "p_toggle_conn":
			o.PToggleConn = cast.ToFloat64(param)
		case "conn_p_mutate_kernel":
			o.ConnPMutateKernel = cast.ToFloat64(param)
		case "conn_p_mutate_signal":
			o.ConnPMutateSignal = cast.ToFloat64(param)
		case "conn_p_mutate_kernel_type":
			o.ConnPMutateKernelType = cast.ToFloat64(param)
		case "field_p_mutate_kernel":
			o.FieldPMutateKernel = cast.ToFloat64(param)
		case "field_p_mutate_neural_field":
			o.FieldPMutateNeuralField = cast.ToFloat64(param)
		case "field_p_mutate_kernel_type":
			o.FieldPMutateKernelType = cast.ToFloat64(param)
		case "p_gauss":
			o.PGauss = cast.ToFloat64(param)
		case "p_mexican_hat":
			o.PMexicanHat = cast.ToFloat64(param)
		case "p_oscillatory":
			o.POscillatory = cast.ToFloat64(param)
		case "c_amp":
			o.DistanceAmpCoeff = cast.ToFloat64(param)
		case "c_width":
			o.DistanceWidthCoeff = cast.ToFloat64(param)
		case "x_size":
			o.FieldXSize = cast.ToInt(param)
		case "dx":
			o.FieldDx = cast.ToFloat64(param)
		case "num_input":
			o.NumInput = cast.ToInt(param)
		case "num_output":
			o.NumOutput = cast.ToInt(param)
		case "p_initial_connection":
			o.PInitialConnection = cast.ToFloat64(param)
		case "log_level":
			o.LogLevel = param
		case "parallel_evaluate":
			o.ParallelEvaluate = cast.ToBool(param)
		case "evaluate_workers":
			o.EvaluateWorkers = cast.ToInt(param)
		case "random_seed":
			o.RandomSeed = cast.ToInt64(param)
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}
	if err := InitLogger(o.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// ReadOptionsFromFile reads Options from configFilePath, dispatching on
// its extension: .yml/.yaml is parsed as YAML, anything else as the plain
// "key value" format.
func ReadOptionsFromFile(configFilePath string) (*Options, error) {
	file, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer file.Close()
	if strings.HasSuffix(configFilePath, "yml") || strings.HasSuffix(configFilePath, "yaml") {
		return LoadYAMLOptions(file)
	}
	return LoadPlainOptions(file)
}
