package diag

import "fmt"

// Code is a compact, stable identifier for one diagnostic condition.
// Ranges are reserved per producing component.
type Code uint16

const (
	UnknownCode Code = 0

	// Shape / provider input (manifest loading included)
	ShapeInfo             Code = 1000
	ShapeBadClassExpr     Code = 1001
	ShapeUnknownTrait     Code = 1002
	ShapeUnknownStorage   Code = 1003
	ShapeUnknownTag       Code = 1004
	ShapeUnknownCaseMode  Code = 1005
	ShapeUnknownSigShape  Code = 1006
	ShapeFragmentConflict Code = 1007
	ShapeNoMembers        Code = 1008

	// Detection (reserved)
	DetectInfo Code = 2000

	// Planning
	PlanInfo                Code = 3000
	PlanTypeAbstract        Code = 3001
	PlanTypeOpenGeneric     Code = 3002
	PlanTypeNotRetargetable Code = 3003
	PlanOrderingUnsupported Code = 3010
	PlanDeserializeNoCtor   Code = 3020
)

var codeDescription = map[Code]string{
	UnknownCode:           "unknown",
	ShapeInfo:             "shape input note",
	ShapeBadClassExpr:     "malformed classification expression",
	ShapeUnknownTrait:     "unknown trait name",
	ShapeUnknownStorage:   "unknown storage kind",
	ShapeUnknownTag:       "unknown type classification tag",
	ShapeUnknownCaseMode:  "unknown case mode",
	ShapeUnknownSigShape:  "unknown signature shape",
	ShapeFragmentConflict: "fragment re-declares type-level metadata",
	ShapeNoMembers:        "type has no members",

	DetectInfo: "detection note",

	PlanInfo:                "planning note",
	PlanTypeAbstract:        "abstract types cannot be planned",
	PlanTypeOpenGeneric:     "open generic types cannot be planned",
	PlanTypeNotRetargetable: "declaration context cannot be re-targeted",
	PlanOrderingUnsupported: "a member is not self-comparable, the ordering family is withheld",
	PlanDeserializeNoCtor:   "no construction path, deserialization is withheld",
}

// ID returns the stable textual form, e.g. "PLAN3010".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SHAPE%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DETECT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PLAN%04d", ic)
	}
	return "E0000"
}

// Title returns the short description of the condition.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
