package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/application/reporting"
	"github.com/Fritz-nvm/management-system/internal/domain"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler descargas del inventario (PDF y hoja de cálculo) con los filtros del listado.
type ExportHandler struct {
	uc *reporting.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *reporting.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// PDF GET /assets/export/pdf
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	var q dto.AssetListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.ErrBadRequest
	}
	doc, err := h.uc.AssetsPDF(c.UserContext(), GetPrincipal(c), q)
	if err != nil {
		return exportError(c, err, "Error generating PDF")
	}
	return sendAttachment(c, contentTypePDF, reporting.PDFFilename, doc)
}

// XLSX GET /assets/export/xlsx
func (h *ExportHandler) XLSX(c *fiber.Ctx) error {
	var q dto.AssetListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.ErrBadRequest
	}
	doc, err := h.uc.AssetsXLSX(c.UserContext(), GetPrincipal(c), q)
	if err != nil {
		return exportError(c, err, "Error generating spreadsheet")
	}
	return sendAttachment(c, contentTypeXLSX, reporting.XLSXFilename, doc)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(body)
}

func exportError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, domain.ErrForbidden) {
		return redirectWithFlash(c, assetsPath, FlashError, "You do not have permission to export assets.")
	}
	return render(c, fiber.StatusInternalServerError, "errors/500", fiber.Map{
		"Title":   "Error",
		"Code":    fiber.StatusInternalServerError,
		"Message": message,
	})
}
