package InputParameters

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/model_problems/Boiling2D"
	"github.com/notargets/boiling/solvers"
	"github.com/notargets/boiling/types"
)

var ErrInvalidInput = errors.New("InputParameters: invalid input")

type MaterialParameters struct {
	Lambda       float64 `json:"Lambda"`
	Density      float64 `json:"Density"`
	HeatCapacity float64 `json:"HeatCapacity"`
}

// AreaParameters assigns Material to the elements whose centroid lies in the rectangle.
type AreaParameters struct {
	XMin     float64 `json:"XMin"`
	YMin     float64 `json:"YMin"`
	XMax     float64 `json:"XMax"`
	YMax     float64 `json:"YMax"`
	Material int     `json:"Material"`
}

type SolverParameters struct {
	Type                string  `json:"Type"` // los, profile or lu
	MaxIterations       int     `json:"MaxIterations"`
	Tolerance           float64 `json:"Tolerance"`
	Preconditioner      string  `json:"Preconditioner"` // identity or ilu
	ReusePreconditioner bool    `json:"ReusePreconditioner"`
	OnFailure           string  `json:"OnFailure"` // abort, fallback or continue
}

// Parameters obtained from the YAML input file
type InputParametersBoiling struct {
	Title                string               `json:"Title"`
	Radius               float64              `json:"Radius"`
	Height               float64              `json:"Height"`
	RadialElements       int                  `json:"RadialElements"`
	AxialElements        int                  `json:"AxialElements"`
	NestingDegree        int                  `json:"NestingDegree"`
	Materials            []MaterialParameters `json:"Materials"`
	Areas                []AreaParameters     `json:"Areas"`
	InitialTemperature   float64              `json:"InitialTemperature"`
	FinalTime            float64              `json:"FinalTime"`
	TimeSteps            int                  `json:"TimeSteps"`
	HeaterPower          float64              `json:"HeaterPower"`
	AmbientTemperature   float64              `json:"AmbientTemperature"`
	HeatTransfer         float64              `json:"HeatTransfer"`
	VelocityScale        float64              `json:"VelocityScale"`
	DirichletTemperature float64              `json:"DirichletTemperature"`
	BCs                  map[string]string    `json:"BCs"` // side name (Bottom, Right, Top, Left) to condition kind
	Solver               SolverParameters     `json:"Solver"`
	ExportTimes          []float64            `json:"ExportTimes"`
	Parallel             bool                 `json:"Parallel"`
	LogFrequency         int                  `json:"LogFrequency"`
}

// Parse overlays the keys present in data on the receiver, so values not in the file keep what
// SetDefaults put there and explicit zeros are kept. Materials and BCs given in the file replace
// the defaults as a whole.
func (ip *InputParametersBoiling) Parse(data []byte) (err error) {
	var (
		materials = ip.Materials
		bcs       = ip.BCs
	)
	ip.Materials, ip.BCs = nil, nil
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.Materials == nil {
		ip.Materials = materials
	}
	if ip.BCs == nil {
		ip.BCs = bcs
	}
	return
}

// NewInputParametersBoiling returns the defaults, ready for Parse.
func NewInputParametersBoiling() (ip *InputParametersBoiling) {
	ip = &InputParametersBoiling{}
	ip.SetDefaults()
	return
}

// SetDefaults describes the water vessel of 7 cm radius and 8 cm height heated by 1 kW for 1000 s.
// It overwrites every defaulted field and is meant to run before Parse.
func (ip *InputParametersBoiling) SetDefaults() {
	var (
		params = Boiling2D.DefaultParameters()
	)
	ip.Radius, ip.Height = 0.07, 0.08
	ip.RadialElements, ip.AxialElements = 70, 80
	ip.NestingDegree = 1
	ip.Materials = []MaterialParameters{{Lambda: 0.6, Density: 999.97, HeatCapacity: 4200}}
	ip.InitialTemperature = 25
	ip.FinalTime = 1000
	ip.TimeSteps = 1000
	ip.HeaterPower = params.HeaterPower
	ip.AmbientTemperature = params.AmbientTemperature
	ip.HeatTransfer = params.HeatTransfer
	ip.VelocityScale = params.VelocityScale
	ip.BCs = map[string]string{"Bottom": "Neuman", "Right": "Robin", "Top": "Robin", "Left": "Axis"}
	ip.Solver = SolverParameters{
		Type:           solvers.LOS.String(),
		MaxIterations:  solvers.DefaultMaxIterations,
		Tolerance:      solvers.DefaultTolerance,
		Preconditioner: solvers.ILU.String(),
		OnFailure:      Boiling2D.Abort.String(),
	}
	ip.ExportTimes = []float64{1, 10, 50, 100, 250, 500, 1000}
	ip.LogFrequency = 50
}

// Validate reports every problem found, not only the first one.
func (ip *InputParametersBoiling) Validate() error {
	var errs []error
	bad := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...))
	}
	if !(ip.Radius > 0) || !(ip.Height > 0) {
		bad("Radius and Height must be positive, have %g, %g", ip.Radius, ip.Height)
	}
	if ip.RadialElements < 1 || ip.AxialElements < 1 || ip.NestingDegree < 1 {
		bad("element counts and NestingDegree must be positive, have %d, %d, %d",
			ip.RadialElements, ip.AxialElements, ip.NestingDegree)
	}
	if len(ip.Materials) == 0 {
		bad("at least one material is required")
	}
	for i, m := range ip.Materials {
		if !(m.Lambda > 0) || !(m.Density > 0) || !(m.HeatCapacity > 0) {
			bad("material %d has non positive coefficients %+v", i, m)
		}
	}
	for i, a := range ip.Areas {
		if a.Material < 0 || a.Material >= len(ip.Materials) {
			bad("area %d uses unknown material %d", i, a.Material)
		}
		if !(a.XMax > a.XMin) || !(a.YMax > a.YMin) {
			bad("area %d is empty", i)
		}
	}
	if !(ip.FinalTime > 0) || ip.TimeSteps < 1 {
		bad("FinalTime and TimeSteps must be positive, have %g, %d", ip.FinalTime, ip.TimeSteps)
	}
	for side, kind := range ip.BCs {
		if _, ok := geometry2D.BoundNameMap[strings.ToLower(side)]; !ok {
			bad("unknown side %q in BCs", side)
		}
		if _, err := types.NewBCFLAG(kind); err != nil {
			bad("%v", err)
		}
	}
	if _, err := solvers.NewSolverType(ip.Solver.Type); err != nil {
		bad("%v", err)
	}
	if _, err := solvers.NewPreconditionerType(ip.Solver.Preconditioner); err != nil {
		bad("%v", err)
	}
	if _, err := Boiling2D.NewFailurePolicy(ip.Solver.OnFailure); err != nil {
		bad("%v", err)
	}
	if !(ip.Solver.Tolerance > 0) || ip.Solver.MaxIterations < 1 {
		bad("solver Tolerance and MaxIterations must be positive")
	}
	for _, t := range ip.ExportTimes {
		if t < 0 || t > ip.FinalTime {
			bad("export time %g outside [0, %g]", t, ip.FinalTime)
		}
	}
	return errors.Join(errs...)
}

func (ip *InputParametersBoiling) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f x %8.5f\t= Radius x Height\n", ip.Radius, ip.Height)
	fmt.Printf("[%d x %d] x %d\t\t= Elements (radial x axial) x Nesting\n",
		ip.RadialElements, ip.AxialElements, ip.NestingDegree)
	for i, m := range ip.Materials {
		fmt.Printf("Material[%d] = %+v\n", i, m)
	}
	fmt.Printf("%8.5f\t\t= Initial Temperature\n", ip.InitialTemperature)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t= Time Steps\n", ip.TimeSteps)
	fmt.Printf("%8.5f\t\t= Heater Power\n", ip.HeaterPower)
	fmt.Printf("%8.5f\t\t= Ambient Temperature, Heat Transfer = %8.5f\n", ip.AmbientTemperature, ip.HeatTransfer)
	fmt.Printf("%8.5f\t\t= Velocity Scale\n", ip.VelocityScale)
	fmt.Printf("[%s/%s]\t\t= Solver, MaxIterations = %d, Tolerance = %8.3e, OnFailure = %s\n",
		ip.Solver.Type, ip.Solver.Preconditioner, ip.Solver.MaxIterations, ip.Solver.Tolerance, ip.Solver.OnFailure)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
