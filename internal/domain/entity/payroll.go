package entity

import "regexp"

// periodPattern formato MM-yyyy con mes 01..12.
var periodPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-\d{4}$`)

// ValidPeriod indica si period cumple el formato MM-yyyy.
func ValidPeriod(period string) bool {
	return periodPattern.MatchString(period)
}

// Payroll nómina de un empleado para un período. La pareja
// (EmployeeEmail, Period) es única. Salary en centavos.
type Payroll struct {
	ID            int64
	EmployeeEmail string
	Period        string
	Salary        int64
}
