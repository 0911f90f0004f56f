package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/epi-estoque/internal/application/analytics"
)

// DashboardHandler maneja el dashboard de movimientos.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard godoc
// @Summary      Dashboard de entradas y salidas
// @Description  Totales, detalle, historial mensual, ranking y foto de stock.
// @Description  mode=movement calcula la foto solo con los movimientos del período.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        periodStart  query  string  false  "Inicio"
// @Param        periodEnd    query  string  false  "Fin"
// @Param        year         query  string  false  "Año"
// @Param        month        query  string  false  "Mes"
// @Param        mode         query  string  false  "all | movement"
// @Success      200  {object}  ledger.Dashboard
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	companyID, ok := companyOrAbort(c)
	if !ok {
		return nil
	}
	q, err := parsePeriodQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetDashboard(c.UserContext(), companyID, q.Period(), q.SnapshotMode())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
