package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epi-estoque/internal/application/inventory"
)

// StockHandler expone saldos y alertas de EPIs.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetSnapshot godoc
// @Summary      Foto de stock por material
// @Description  Saldo, valor y alerta de mínimo de cada material en el período. Sin parámetros, toda la historia.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        periodStart  query  string  false  "Inicio (YYYY-MM o YYYY-MM-DD)"
// @Param        periodEnd    query  string  false  "Fin (YYYY-MM o YYYY-MM-DD)"
// @Param        year         query  string  false  "Año"
// @Param        month        query  string  false  "Mes 1-12 (con year)"
// @Success      200  {object}  dto.StockSnapshotDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) GetSnapshot(c *fiber.Ctx) error {
	companyID, ok := companyOrAbort(c)
	if !ok {
		return nil
	}
	q, err := parsePeriodQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetSnapshot(c.UserContext(), companyID, q.Period())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetAlerts godoc
// @Summary      Materiales en o bajo el mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        periodStart  query  string  false  "Inicio"
// @Param        periodEnd    query  string  false  "Fin"
// @Param        year         query  string  false  "Año"
// @Param        month        query  string  false  "Mes"
// @Success      200  {object}  dto.StockAlertsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/alerts [get]
func (h *StockHandler) GetAlerts(c *fiber.Ctx) error {
	companyID, ok := companyOrAbort(c)
	if !ok {
		return nil
	}
	q, err := parsePeriodQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetAlerts(c.UserContext(), companyID, q.Period())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de un material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        materialId   path   string  true   "ID del material"
// @Param        periodStart  query  string  false  "Inicio"
// @Param        periodEnd    query  string  false  "Fin"
// @Param        year         query  string  false  "Año"
// @Param        month        query  string  false  "Mes"
// @Success      200  {object}  dto.MaterialBalanceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{materialId}/balance [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	companyID, ok := companyOrAbort(c)
	if !ok {
		return nil
	}
	q, err := parsePeriodQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetBalance(c.UserContext(), companyID, c.Params("materialId"), q.Period())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
