package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Fritz-nvm/management-system/internal/application/dto"
	"github.com/Fritz-nvm/management-system/internal/application/usecase"
	"github.com/Fritz-nvm/management-system/internal/domain"
	"github.com/Fritz-nvm/management-system/internal/domain/entity"
)

const (
	branchesPath = "/branches"

	msgBranchesForbidden = "You do not have permission to view branches."
	msgBranchAddOnly     = "Only Super Admins can add branches."
	msgBranchEditOnly    = "Only Super Admins can edit branches."
	msgBranchDeleteOnly  = "Only Super Admins can delete branches."
	msgBranchAdded       = "Branch added successfully."
	msgBranchUpdated     = "Branch updated successfully."
	msgBranchDeleted     = "Branch deleted successfully."
	msgBranchHasAssets   = "This branch still has assets and cannot be deleted."
)

// BranchHandler páginas de sucursales.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// List GET /branches.
func (h *BranchHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetPrincipal(c))
	if errors.Is(err, domain.ErrForbidden) {
		return redirectWithFlash(c, "/", FlashError, msgBranchesForbidden)
	}
	if err != nil {
		return err
	}
	return render(c, fiber.StatusOK, "branches/list", fiber.Map{
		"Title":    "Branches",
		"Branches": list,
	})
}

// AddPage GET /branches/add.
func (h *BranchHandler) AddPage(c *fiber.Ctx) error {
	if !canManageBranches(c) {
		return redirectWithFlash(c, branchesPath, FlashError, msgBranchAddOnly)
	}
	return h.renderForm(c, fiber.StatusOK, nil, dto.BranchFormFrom(nil), nil)
}

// Add POST /branches/add.
func (h *BranchHandler) Add(c *fiber.Ctx) error {
	var form dto.BranchForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	_, err := h.uc.Create(c.UserContext(), GetPrincipal(c), form)
	switch {
	case err == nil:
		return redirectWithFlash(c, branchesPath, FlashSuccess, msgBranchAdded)
	case errors.Is(err, domain.ErrForbidden):
		return redirectWithFlash(c, branchesPath, FlashError, msgBranchAddOnly)
	case isFormError(err):
		return h.renderForm(c, fiber.StatusUnprocessableEntity, nil, form, domain.FieldErrors(err))
	}
	return err
}

// EditPage GET /branches/:id/edit.
func (h *BranchHandler) EditPage(c *fiber.Ctx) error {
	b, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return redirectWithFlash(c, branchesPath, FlashError, msgBranchEditOnly)
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	case err != nil:
		return err
	}
	return h.renderForm(c, fiber.StatusOK, b, dto.BranchFormFrom(b), nil)
}

// Edit POST /branches/:id/edit.
func (h *BranchHandler) Edit(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	b, err := h.uc.Get(c.UserContext(), p, c.Params("id"))
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return redirectWithFlash(c, branchesPath, FlashError, msgBranchEditOnly)
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	case err != nil:
		return err
	}

	var form dto.BranchForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	_, err = h.uc.Update(c.UserContext(), p, b.ID, form)
	switch {
	case err == nil:
		return redirectWithFlash(c, branchesPath, FlashSuccess, msgBranchUpdated)
	case isFormError(err):
		return h.renderForm(c, fiber.StatusUnprocessableEntity, b, form, domain.FieldErrors(err))
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	}
	return err
}

// DeletePage GET /branches/:id/delete.
func (h *BranchHandler) DeletePage(c *fiber.Ctx) error {
	b, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return redirectWithFlash(c, branchesPath, FlashError, msgBranchDeleteOnly)
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	case err != nil:
		return err
	}
	return render(c, fiber.StatusOK, "branches/confirm_delete", fiber.Map{
		"Title":  "Delete Branch",
		"Branch": b,
	})
}

// Delete POST /branches/:id/delete. Con activos asociados el borrado se bloquea.
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	_, err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id"))
	switch {
	case err == nil:
		return redirectWithFlash(c, branchesPath, FlashSuccess, msgBranchDeleted)
	case errors.Is(err, domain.ErrForbidden):
		return redirectWithFlash(c, branchesPath, FlashError, msgBranchDeleteOnly)
	case errors.Is(err, domain.ErrBranchHasAssets):
		return redirectWithFlash(c, branchesPath, FlashError, msgBranchHasAssets)
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	}
	return err
}

func (h *BranchHandler) renderForm(c *fiber.Ctx, status int, b *entity.Branch, form dto.BranchForm, errs map[string]string) error {
	title := "Add Branch"
	if b != nil {
		title = "Edit Branch"
	}
	return render(c, status, "branches/form", fiber.Map{
		"Title":    title,
		"Branch":   b,
		"Form":     form,
		"Errors":   errs,
		"Statuses": entity.BranchStatuses,
	})
}
