// file: internals/features/properties/categories/controller/category_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/categories/dto"
	"estatehub_backend/internals/features/properties/categories/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	helper "estatehub_backend/internals/helpers"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// =====================================================
// LIST: GET /api/categories?segment=&parentId=&mainOnly=
// isActive is not a list filter; clients decide what to show.
// =====================================================

func (ctl *CategoryController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.PropertyCategoryModel{})
	if seg := strings.TrimSpace(c.Query("segment")); seg != "" {
		q = q.Where("segment = ?", seg)
	}
	if pid := strings.TrimSpace(c.Query("parentId")); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid parentId")
		}
		q = q.Where("parent_id = ?", id)
	} else if c.QueryBool("mainOnly") {
		q = q.Where("parent_id IS NULL")
	}

	rows := []model.PropertyCategoryModel{}
	if err := q.Order("display_order ASC, name ASC").Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch categories", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

// =====================================================
// GET: GET /api/categories/:id (id or slug)
// =====================================================

func (ctl *CategoryController) Get(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("id"))
	q := ctl.DB.WithContext(c.UserContext())
	if id, err := uuid.Parse(key); err == nil {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("slug = ?", strings.ToLower(key))
	}
	var m model.PropertyCategoryModel
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
		}
		return helper.InternalError(c, "Failed to fetch category", err)
	}
	return helper.JsonOK(c, m)
}

// =====================================================
// CREATE: POST /api/categories (admin)
// =====================================================

func (ctl *CategoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()

	if m.ParentID != nil {
		var parent model.PropertyCategoryModel
		if err := ctl.DB.WithContext(c.UserContext()).First(&parent, "id = ?", *m.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusBadRequest, "Parent category not found")
			}
			return helper.InternalError(c, "Failed to create category", err)
		}
		if parent.ParentID != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Subcategories cannot have children")
		}
		// children inherit the parent's segment and its flag defaults
		if req.Segment == "" {
			req.Segment = parent.Segment
			m = req.ToModel()
		}
	}
	if m.Segment == "" {
		return helper.JsonValidationError(c, map[string][]string{"segment": {"is required"}})
	}

	m.Slug = helper.CategorySlug(m.Name, m.Segment, m.ParentID != nil)
	taken, err := helper.SlugTakenCI(c.UserContext(), ctl.DB, "property_categories", "slug", m.Slug, nil)
	if err != nil {
		return helper.InternalError(c, "Failed to create category", err)
	}
	if taken {
		return helper.JsonError(c, fiber.StatusBadRequest, "Category slug already exists")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Category slug already exists")
		}
		return helper.InternalError(c, "Failed to create category", err)
	}
	return helper.JsonCreated(c, m)
}

// =====================================================
// UPDATE: PATCH /api/categories/:id (admin)
// =====================================================

func (ctl *CategoryController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.PropertyCategoryModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
		}
		return helper.InternalError(c, "Failed to update category", err)
	}

	if req.Apply(&m) {
		m.Slug = helper.CategorySlug(m.Name, m.Segment, m.ParentID != nil)
		taken, err := helper.SlugTakenCI(c.UserContext(), ctl.DB, "property_categories", "slug", m.Slug,
			func(q *gorm.DB) *gorm.DB { return q.Where("id <> ?", m.ID) })
		if err != nil {
			return helper.InternalError(c, "Failed to update category", err)
		}
		if taken {
			return helper.JsonError(c, fiber.StatusBadRequest, "Category slug already exists")
		}
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Category slug already exists")
		}
		return helper.InternalError(c, "Failed to update category", err)
	}
	return helper.JsonUpdated(c, m)
}

// =====================================================
// DELETE: DELETE /api/categories/:id (admin)
// =====================================================

func (ctl *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var children int64
		if err := tx.Model(&model.PropertyCategoryModel{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return err
		}
		if children > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Delete the subcategories first")
		}
		res := tx.Delete(&model.PropertyCategoryModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return tx.Model(&propertyModel.PropertyModel{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c)
}
