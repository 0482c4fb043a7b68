package dto

import (
	"strconv"
	"time"
)

// PayrollRequest una nómina a cargar o actualizar. Salary en centavos.
type PayrollRequest struct {
	Employee string `json:"employee" validate:"required,email"`
	Period   string `json:"period" validate:"required"`
	Salary   int64  `json:"salary" validate:"min=0"`
}

// PayrollResponse confirmación de carga o actualización.
type PayrollResponse struct {
	Status string `json:"status"`
}

// PayrollView una nómina vista por su empleado: período con nombre de mes
// y salario en centavos.
type PayrollView struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Period   string `json:"period"`
	Salary   int64  `json:"salary"`
}

// PeriodDisplay convierte "01-2021" en "January-2021". Si el período no
// tiene el formato esperado se devuelve tal cual.
func PeriodDisplay(period string) string {
	if len(period) != 7 {
		return period
	}
	m, err := strconv.Atoi(period[:2])
	if err != nil || m < 1 || m > 12 {
		return period
	}
	return time.Month(m).String() + period[2:]
}
