package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/pages/dto"
	"estatehub_backend/internals/features/content/pages/model"
	"estatehub_backend/internals/features/content/pages/service"
	helper "estatehub_backend/internals/helpers"
)

type PageController struct {
	DB *gorm.DB
}

func NewPageController(db *gorm.DB) *PageController {
	return &PageController{DB: db}
}

func (ctl *PageController) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, service.ErrPageNotFound) || errors.Is(err, service.ErrVersionNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.InternalError(c, msg, err)
}

func versionParam(c *fiber.Ctx) (int, error) {
	n, err := strconv.Atoi(c.Params("version"))
	if err != nil || n < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid version")
	}
	return n, nil
}

// =====================================================
// LIST: GET /api/pages
// =====================================================

// Unpublished pages are listed for admins only.
func (ctl *PageController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.PageContentModel{})
	if !helper.IsAdmin(c) {
		q = q.Where("is_published = ?", true)
	}
	rows := []model.PageContentModel{}
	if err := q.Order("page_key ASC").Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch pages", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

// =====================================================
// GET: GET /api/pages/:pageKey
// =====================================================

func (ctl *PageController) Get(c *fiber.Ctx) error {
	var page model.PageContentModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("page_key = ?", dto.NormalizeKey(c.Params("pageKey"))).
		First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !page.IsPublished && !helper.IsAdmin(c)) {
		return helper.JsonError(c, fiber.StatusNotFound, "Page not found")
	}
	if err != nil {
		return helper.InternalError(c, "Failed to fetch page", err)
	}
	resp, err := service.Response(c.UserContext(), ctl.DB, page)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch page", err)
	}
	return helper.JsonOK(c, resp)
}

// =====================================================
// CREATE: POST /api/pages (admin)
// =====================================================

func (ctl *PageController) Create(c *fiber.Ctx) error {
	var req dto.CreatePageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	m.UpdatedBy = helper.OptionalUserID(c)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Page key already exists")
		}
		return helper.InternalError(c, "Failed to create page", err)
	}
	return helper.JsonCreated(c, dto.PageResponse{PageContentModel: m})
}

// =====================================================
// UPSERT: PUT /api/pages/:pageKey (admin)
// =====================================================

func (ctl *PageController) Upsert(c *fiber.Ctx) error {
	var req dto.UpdatePageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	page, created, err := service.Upsert(c.UserContext(), ctl.DB, c.Params("pageKey"), req, helper.OptionalUserID(c))
	if err != nil {
		return ctl.fail(c, "Failed to save page", err)
	}
	resp, err := service.Response(c.UserContext(), ctl.DB, page)
	if err != nil {
		return helper.InternalError(c, "Failed to save page", err)
	}
	if created {
		return helper.JsonCreated(c, resp)
	}
	return helper.JsonUpdated(c, resp)
}

// =====================================================
// VERSIONS: GET /api/pages/:pageKey/versions[/:version]
// =====================================================

func (ctl *PageController) Versions(c *fiber.Ctx) error {
	rows, err := service.Versions(c.UserContext(), ctl.DB, c.Params("pageKey"))
	if err != nil {
		return ctl.fail(c, "Failed to fetch versions", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

func (ctl *PageController) Version(c *fiber.Ctx) error {
	n, err := versionParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	v, err := service.Version(c.UserContext(), ctl.DB, c.Params("pageKey"), n)
	if err != nil {
		return ctl.fail(c, "Failed to fetch version", err)
	}
	return helper.JsonOK(c, v)
}

// =====================================================
// ROLLBACK: POST /api/pages/:pageKey/rollback/:version (admin)
// =====================================================

func (ctl *PageController) Rollback(c *fiber.Ctx) error {
	n, err := versionParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	page, snap, err := service.Rollback(c.UserContext(), ctl.DB, c.Params("pageKey"), n, helper.OptionalUserID(c))
	if err != nil {
		return ctl.fail(c, "Failed to roll back page", err)
	}
	return helper.JsonOK(c, dto.RollbackResponse{
		Page:            dto.PageResponse{PageContentModel: page, CurrentVersion: snap.VersionNumber},
		RestoredVersion: n,
		SnapshotVersion: snap.VersionNumber,
	})
}

// =====================================================
// DELETE: DELETE /api/pages/:pageKey (admin)
// =====================================================

func (ctl *PageController) Delete(c *fiber.Ctx) error {
	if err := service.Delete(c.UserContext(), ctl.DB, c.Params("pageKey")); err != nil {
		return ctl.fail(c, "Failed to delete page", err)
	}
	return helper.JsonDeleted(c)
}
