/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/boiling/FEM2D"
	"github.com/notargets/boiling/InputParameters"
	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/model_problems/Boiling2D"
	"github.com/notargets/boiling/solvers"
	"github.com/notargets/boiling/types"
	"github.com/notargets/boiling/utils"
)

type ModelBoiling struct {
	ICFile    string
	OutputDir string
	Profile   bool
}

// BoilingCmd represents the run command
var BoilingCmd = &cobra.Command{
	Use:          "run",
	Short:        "Heated vessel solver, writes temperature layers at the export times",
	Long:         `Heated vessel solver, writes temperature layers at the export times`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			mb = &ModelBoiling{}
			ip *InputParameters.InputParametersBoiling
		)
		if mb.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if mb.OutputDir, err = cmd.Flags().GetString("outputDir"); err != nil {
			return
		}
		mb.Profile, _ = cmd.Flags().GetBool("profile")
		if ip, err = processBoilingInput(mb); err != nil {
			return
		}
		if mb.Profile {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		}
		return RunBoiling(mb, ip, log.New(os.Stdout, "", log.LstdFlags))
	},
}

func init() {
	rootCmd.AddCommand(BoilingCmd)
	flags := BoilingCmd.Flags()
	flags.StringP("inputConditionsFile", "I", "", "YAML file for input parameters, defaults describe the 7 x 8 cm water vessel")
	flags.StringP("outputDir", "o", ".", "directory for the data<time>.txt layer files")
	flags.String("solver", "", "linear solver: los, profile or lu")
	flags.Float64("tolerance", 0, "relative residual tolerance of the iterative solver")
	flags.Int("maxIterations", 0, "iteration limit of the iterative solver")
	flags.Bool("parallel", false, "assemble element matrices in parallel")
	flags.Bool("profile", false, "write a CPU profile of the run to the current directory")
	for _, name := range []string{"solver", "tolerance", "maxIterations", "parallel"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func processBoilingInput(mb *ModelBoiling) (ip *InputParameters.InputParametersBoiling, err error) {
	ip = InputParameters.NewInputParametersBoiling()
	if len(mb.ICFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(mb.ICFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return
		}
	}
	// Flags, environment and config file override the input file
	if viper.IsSet("solver") && viper.GetString("solver") != "" {
		ip.Solver.Type = viper.GetString("solver")
	}
	if tol := viper.GetFloat64("tolerance"); tol > 0 {
		ip.Solver.Tolerance = tol
	}
	if mi := viper.GetInt("maxIterations"); mi > 0 {
		ip.Solver.MaxIterations = mi
	}
	if viper.GetBool("parallel") {
		ip.Parallel = true
	}
	err = ip.Validate()
	return
}

// BuildGrid lays out RadialElements x AxialElements elements over [0, Radius] x [0, Height],
// refined NestingDegree times, with materials from the input areas.
func BuildGrid(ip *InputParameters.InputParametersBoiling) (*geometry2D.Grid, error) {
	var (
		areas = make([]geometry2D.RectArea, len(ip.Areas))
	)
	for i, a := range ip.Areas {
		areas[i] = geometry2D.NewRectArea(geometry2D.NewRectangle(a.XMin, a.YMin, a.XMax, a.YMax), a.Material)
	}
	return geometry2D.NewGridBuilder().
		SetXAxis(geometry2D.NewAxisSplitParameter([]float64{0, ip.Radius},
			geometry2D.NewUniformSplitter(ip.RadialElements)).Nest(ip.NestingDegree)).
		SetYAxis(geometry2D.NewAxisSplitParameter([]float64{0, ip.Height},
			geometry2D.NewUniformSplitter(ip.AxialElements)).Nest(ip.NestingDegree)).
		SetMaterialSetter(geometry2D.NewAreasMaterialSetter(areas, 0)).
		Build()
}

func solverConfig(sp InputParameters.SolverParameters) (cfg solvers.Config, err error) {
	cfg = solvers.Config{
		MaxIterations:       sp.MaxIterations,
		Tolerance:           sp.Tolerance,
		ReusePreconditioner: sp.ReusePreconditioner,
	}
	if cfg.Type, err = solvers.NewSolverType(sp.Type); err != nil {
		return
	}
	cfg.Preconditioner, err = solvers.NewPreconditionerType(sp.Preconditioner)
	return
}

func boundaries(ip *InputParameters.InputParametersBoiling) (bcs map[geometry2D.Bound]types.BCFLAG, dirichlet []geometry2D.Bound, err error) {
	bcs = make(map[geometry2D.Bound]types.BCFLAG)
	for name, kind := range ip.BCs {
		side, ok := geometry2D.BoundNameMap[strings.ToLower(name)]
		if !ok {
			err = fmt.Errorf("unknown side %q", name)
			return
		}
		if bcs[side], err = types.NewBCFLAG(kind); err != nil {
			return
		}
		if bcs[side] == types.BC_Dirichlet {
			dirichlet = append(dirichlet, side)
		}
	}
	return
}

// RunBoiling solves the input and writes the export layers into mb.OutputDir.
func RunBoiling(mb *ModelBoiling, ip *InputParameters.InputParametersBoiling, logger *log.Logger) (err error) {
	var (
		grid      *geometry2D.Grid
		cfg       solvers.Config
		slae      solvers.Solver
		policy    Boiling2D.FailurePolicy
		bcs       map[geometry2D.Bound]types.BCFLAG
		dirichlet []geometry2D.Bound
		materials = make(FEM2D.MaterialTable, len(ip.Materials))
		layers    = utils.Linspace(0, ip.FinalTime, ip.TimeSteps)
		exports   = Boiling2D.LayersAt(layers, ip.ExportTimes)
		isExport  = make(map[int]bool)
	)
	ip.Print()
	if grid, err = BuildGrid(ip); err != nil {
		return
	}
	for i, m := range ip.Materials {
		materials[i] = FEM2D.Material{Lambda: m.Lambda, Density: m.Density, HeatCapacity: m.HeatCapacity}
	}
	if cfg, err = solverConfig(ip.Solver); err != nil {
		return
	}
	if slae, err = solvers.NewSolver(cfg); err != nil {
		return
	}
	if policy, err = Boiling2D.NewFailurePolicy(ip.Solver.OnFailure); err != nil {
		return
	}
	if bcs, dirichlet, err = boundaries(ip); err != nil {
		return
	}
	if err = os.MkdirAll(mb.OutputDir, 0755); err != nil {
		return
	}
	for _, l := range exports {
		isExport[l] = true
	}
	opts := []Boiling2D.Option{
		Boiling2D.WithLogger(logger),
		Boiling2D.WithLogFrequency(ip.LogFrequency),
		Boiling2D.WithFailurePolicy(policy),
		Boiling2D.WithExportLayers(exports...),
		Boiling2D.WithParallelAssembly(ip.Parallel),
		Boiling2D.WithBoundaries(bcs),
		Boiling2D.WithParameters(Boiling2D.Parameters{
			HeaterPower:        ip.HeaterPower,
			AmbientTemperature: ip.AmbientTemperature,
			HeatTransfer:       ip.HeatTransfer,
			VelocityScale:      ip.VelocityScale,
		}),
		Boiling2D.WithLayerObserver(func(layer int, t float64, x []float64, res solvers.Result) {
			if !isExport[layer] {
				return
			}
			if werr := WriteLayerFile(mb.OutputDir, t, grid, x); werr != nil {
				logger.Printf("layer %d: %v", layer, werr)
			}
		}),
	}
	if ip.VelocityScale == 0 {
		opts = append(opts, Boiling2D.WithVelocity(nil))
	}
	if len(dirichlet) != 0 {
		Tw := ip.DirichletTemperature
		opts = append(opts, Boiling2D.WithFirstConditions(func(geometry2D.Point, float64) float64 { return Tw }, dirichlet...))
	}
	b, err := Boiling2D.NewBoiling(grid, materials, layers, slae, opts...)
	if err != nil {
		return
	}
	initial := utils.ConstArray(grid.TotalPoints(), ip.InitialTemperature)
	if isExport[0] {
		if err = WriteLayerFile(mb.OutputDir, layers[0], grid, initial); err != nil {
			return
		}
	}
	_, err = b.Solve(initial)
	return
}
