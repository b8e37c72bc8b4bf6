package order

import (
	"fmt"

	"garmentflow/internal/pkg/errs"
)

// Department is a role-scoped stage of the order lifecycle with a claim slot.
// Exactly one actor may hold a department's slot at a time.
type Department string

const (
	DepartmentGraphic    Department = "GRAPHIC"
	DepartmentStock      Department = "STOCK"
	DepartmentProduction Department = "PRODUCTION"
	DepartmentQC         Department = "QC"
)

// AllDepartments returns the claim-slot departments in pipeline order.
func AllDepartments() []Department {
	return []Department{DepartmentGraphic, DepartmentStock, DepartmentProduction, DepartmentQC}
}

// Validate checks that the department is a member of the enumerated set.
func (d Department) Validate() error {
	switch d {
	case DepartmentGraphic, DepartmentStock, DepartmentProduction, DepartmentQC:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("department is invalid",
			fmt.Errorf("%q is not a valid department", string(d)))
	}
}

// String returns the wire label of the department.
func (d Department) String() string {
	return string(d)
}
