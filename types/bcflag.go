package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None      BCFLAG = iota // symmetry axis or insulated side, nothing is applied
	BC_Dirichlet               // first condition, prescribed temperature
	BC_Neuman                  // second condition, prescribed heat flux
	BC_Robin                   // third condition, convective exchange with the ambient
)

var BCNameMap = map[string]BCFLAG{
	"none":       BC_None,
	"axis":       BC_None,
	"dirichlet":  BC_Dirichlet,
	"first":      BC_Dirichlet,
	"neuman":     BC_Neuman,
	"neumann":    BC_Neuman,
	"second":     BC_Neuman,
	"heater":     BC_Neuman,
	"robin":      BC_Robin,
	"third":      BC_Robin,
	"convective": BC_Robin,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_None:
		return "None"
	case BC_Dirichlet:
		return "Dirichlet"
	case BC_Neuman:
		return "Neuman"
	case BC_Robin:
		return "Robin"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition type: %q", label)
	}
	return
}
