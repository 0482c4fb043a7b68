package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/account-service/internal/application/dto"
	"github.com/jhoicas/account-service/internal/application/payroll"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/repository"
)

// PayrollHandler consulta de nóminas del principal y carga/actualización
// por contadores.
type PayrollHandler struct {
	payrolls  *payroll.UseCase
	employees repository.EmployeeRepository
}

// NewPayrollHandler construye el handler de nóminas.
func NewPayrollHandler(payrolls *payroll.UseCase, employees repository.EmployeeRepository) *PayrollHandler {
	return &PayrollHandler{payrolls: payrolls, employees: employees}
}

// GetPayments devuelve las nóminas del principal autenticado; con
// ?period=MM-yyyy devuelve solo la de ese período.
func (h *PayrollHandler) GetPayments(c *fiber.Ctx) error {
	email := GetEmail(c)
	employee, err := h.employees.FindByEmail(c.Context(), email)
	if err != nil {
		return internalError(c, err)
	}
	if employee == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cuenta no encontrada", Path: c.Path()})
	}

	if period := c.Query("period"); period != "" {
		if !entity.ValidPeriod(period) {
			return badRequest(c, "VALIDATION", "incorrect period")
		}
		p, err := h.payrolls.ForEmployeePeriod(c.Context(), email, period)
		if err != nil {
			return mapPayrollError(c, err)
		}
		return c.JSON(toPayrollView(employee, p))
	}

	list, err := h.payrolls.ForEmployee(c.Context(), email)
	if err != nil {
		return mapPayrollError(c, err)
	}
	out := make([]dto.PayrollView, 0, len(list))
	for _, p := range list {
		out = append(out, toPayrollView(employee, p))
	}
	return c.JSON(out)
}

// Upload carga un lote de nóminas: todo o nada.
func (h *PayrollHandler) Upload(c *fiber.Ctx) error {
	var in []dto.PayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	inputs := make([]payroll.Input, 0, len(in))
	for _, req := range in {
		if !entity.ValidPeriod(req.Period) {
			return badRequest(c, "VALIDATION", "incorrect period")
		}
		inputs = append(inputs, payroll.Input{
			EmployeeEmail: req.Employee,
			Period:        req.Period,
			Salary:        req.Salary,
		})
	}
	if err := h.payrolls.Upload(c.Context(), inputs); err != nil {
		return mapPayrollError(c, err)
	}
	return c.JSON(dto.PayrollResponse{Status: "Added successfully!"})
}

// Update cambia el salario de una nómina existente.
func (h *PayrollHandler) Update(c *fiber.Ctx) error {
	var in dto.PayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if !entity.ValidPeriod(in.Period) {
		return badRequest(c, "VALIDATION", "incorrect period")
	}
	err := h.payrolls.Update(c.Context(), payroll.Input{
		EmployeeEmail: in.Employee,
		Period:        in.Period,
		Salary:        in.Salary,
	})
	if err != nil {
		return mapPayrollError(c, err)
	}
	return c.JSON(dto.PayrollResponse{Status: "Updated successfully!"})
}

func toPayrollView(e *entity.Employee, p *entity.Payroll) dto.PayrollView {
	return dto.PayrollView{
		Name:     e.Name,
		Lastname: e.Lastname,
		Period:   dto.PeriodDisplay(p.Period),
		Salary:   p.Salary,
	}
}
