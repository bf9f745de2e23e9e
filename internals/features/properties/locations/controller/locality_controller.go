package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/locations/dto"
	"estatehub_backend/internals/features/properties/locations/model"
	helper "estatehub_backend/internals/helpers"
)

type LocalityController struct {
	DB *gorm.DB
}

func NewLocalityController(db *gorm.DB) *LocalityController {
	return &LocalityController{DB: db}
}

func (ctl *LocalityController) find(c *fiber.Ctx) (*model.LocalityModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.LocalityModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Locality not found")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/localities?cityId=&q=&includeInactive=
func (ctl *LocalityController) List(c *fiber.Ctx) error {
	q := activeScope(c, ctl.DB.WithContext(c.UserContext()).Model(&model.LocalityModel{}))
	if s := strings.TrimSpace(c.Query("cityId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cityId")
		}
		q = q.Where("city_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	p := helper.ResolvePaging(c, 200, 1000)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch localities", err)
	}
	rows := []model.LocalityModel{}
	if err := q.Order("name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch localities", err)
	}
	return helper.JsonList(c, rows, total, &p)
}

// GET /api/localities/:id
func (ctl *LocalityController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, m)
}

// POST /api/localities (admin)
func (ctl *LocalityController) Create(c *fiber.Ctx) error {
	var req dto.CreateLocalityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.CityModel{}).Where("id = ?", req.CityID).Count(&n).Error; err != nil {
		return helper.InternalError(c, "Failed to create locality", err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "City not found")
	}
	m := req.ToModel()
	m.Slug = helper.Slugify(m.Name, 140)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Locality already exists in this city")
		}
		return helper.InternalError(c, "Failed to create locality", err)
	}
	return helper.JsonCreated(c, m)
}

// PATCH /api/localities/:id (admin)
func (ctl *LocalityController) Update(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateLocalityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Apply(m) {
		m.Slug = helper.Slugify(m.Name, 140)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Locality already exists in this city")
		}
		return helper.InternalError(c, "Failed to update locality", err)
	}
	return helper.JsonUpdated(c, m)
}

// DELETE /api/localities/:id (admin)
func (ctl *LocalityController) Delete(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(&model.LocalityModel{}, "id = ?", m.ID).Error; err != nil {
		return helper.InternalError(c, "Failed to delete locality", err)
	}
	return helper.JsonDeleted(c)
}
