package http

import (
	"errors"
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/access"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

const (
	assetsPath = "/assets"

	manualField = "user_manual"

	msgAssetAddForbidden = "You do not have permission to add assets."
	msgAssetNeedsBranch  = "You must be assigned to a branch."
	msgAssetAdded        = "Asset added successfully."
	msgAssetUpdated      = "Asset updated successfully."
	msgAssetDeleted      = "Asset deleted successfully."
)

// AssetHandler páginas de activos y descarga de manuales.
type AssetHandler struct {
	uc *usecase.AssetUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// List GET /assets?search=&branch=&status=
func (h *AssetHandler) List(c *fiber.Ctx) error {
	var q dto.AssetListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.ErrBadRequest
	}
	res, err := h.uc.List(c.UserContext(), GetPrincipal(c), q)
	if err != nil {
		return err
	}
	return render(c, fiber.StatusOK, "assets/list", fiber.Map{
		"Title":       "Assets",
		"Result":      res,
		"Statuses":    entity.AssetStatuses,
		"ExportQuery": exportQuery(q),
	})
}

// Detail GET /assets/:id
func (h *AssetHandler) Detail(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return render(c, fiber.StatusOK, "assets/detail", fiber.Map{
		"Title": a.Name,
		"Asset": a,
	})
}

// AddPage GET /assets/add
func (h *AssetHandler) AddPage(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if !access.CanAddAsset(p) {
		return redirectWithFlash(c, assetsPath, FlashError, msgAssetAddForbidden)
	}
	if _, err := access.RequireBranch(p); err != nil {
		return redirectWithFlash(c, assetsPath, FlashError, msgAssetNeedsBranch)
	}
	return h.renderForm(c, fiber.StatusOK, nil, dto.AssetFormFrom(nil), nil)
}

// Add POST /assets/add (multipart, manual opcional en user_manual).
func (h *AssetHandler) Add(c *fiber.Ctx) error {
	var form dto.AssetForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	_, err := h.uc.Create(c.UserContext(), GetPrincipal(c), form, manualUpload(c))
	switch {
	case err == nil:
		return redirectWithFlash(c, assetsPath, FlashSuccess, msgAssetAdded)
	case errors.Is(err, domain.ErrForbidden):
		return redirectWithFlash(c, assetsPath, FlashError, msgAssetAddForbidden)
	case errors.Is(err, domain.ErrBranchRequired):
		return redirectWithFlash(c, assetsPath, FlashError, msgAssetNeedsBranch)
	case isFormError(err):
		return h.renderForm(c, fiber.StatusUnprocessableEntity, nil, form, domain.FieldErrors(err))
	}
	return err
}

// EditPage GET /assets/:id/edit
func (h *AssetHandler) EditPage(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return h.renderForm(c, fiber.StatusOK, a, dto.AssetFormFrom(a), nil)
}

// Edit POST /assets/:id/edit
func (h *AssetHandler) Edit(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	current, err := h.uc.Get(c.UserContext(), p, c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}

	var form dto.AssetForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	updated, err := h.uc.Update(c.UserContext(), p, current.ID, form, manualUpload(c))
	switch {
	case err == nil:
		return redirectWithFlash(c, assetsPath+"/"+updated.ID, FlashSuccess, msgAssetUpdated)
	case isFormError(err):
		return h.renderForm(c, fiber.StatusUnprocessableEntity, current, form, domain.FieldErrors(err))
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	}
	return err
}

// DeletePage GET /assets/:id/delete
func (h *AssetHandler) DeletePage(c *fiber.Ctx) error {
	a, err := h.uc.GetForDelete(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return render(c, fiber.StatusOK, "assets/confirm_delete", fiber.Map{
		"Title": "Delete Asset",
		"Asset": a,
	})
}

// Delete POST /assets/:id/delete
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	_, err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return redirectWithFlash(c, assetsPath, FlashSuccess, msgAssetDeleted)
}

// Manual GET /media/manuals/:file. Solo si el usuario puede ver el activo dueño.
func (h *AssetHandler) Manual(c *fiber.Ctx) error {
	file := c.Params("file")
	path, err := h.uc.ManualForDownload(c.UserContext(), GetPrincipal(c), file)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.Download(path, file)
}

func (h *AssetHandler) renderForm(c *fiber.Ctx, status int, a *entity.Asset, form dto.AssetForm, errs map[string]string) error {
	p := GetPrincipal(c)
	branches, err := h.uc.FormBranches(c.UserContext(), p)
	if err != nil {
		return err
	}
	title := "Add Asset"
	if a != nil {
		title = "Edit Asset"
	}
	return render(c, status, "assets/form", fiber.Map{
		"Title":           title,
		"Asset":           a,
		"Form":            form,
		"Errors":          errs,
		"Branches":        branches,
		"CanChooseBranch": access.AssetScope(p).All,
		"Categories":      entity.AssetCategories,
		"Departments":     entity.Departments,
		"Statuses":        entity.AssetStatuses,
		"Conditions":      entity.AssetConditions,
	})
}

// manualUpload archivo user_manual del multipart; nil si no se envió.
func manualUpload(c *fiber.Ctx) *usecase.ManualUpload {
	fh, err := c.FormFile(manualField)
	if err != nil || fh == nil || fh.Filename == "" || fh.Size == 0 {
		return nil
	}
	return &usecase.ManualUpload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

// exportQuery conserva los filtros del listado en los enlaces de exportación.
func exportQuery(q dto.AssetListQuery) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Branch != "" {
		v.Set("branch", q.Branch)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
