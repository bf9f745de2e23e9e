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

type CityController struct {
	DB *gorm.DB
}

func NewCityController(db *gorm.DB) *CityController {
	return &CityController{DB: db}
}

// activeScope hides deactivated rows unless ?includeInactive=true.
func activeScope(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
	if c.QueryBool("includeInactive") {
		return q
	}
	return q.Where("is_active = ?", true)
}

func (ctl *CityController) find(c *fiber.Ctx) (*model.CityModel, error) {
	key := strings.TrimSpace(c.Params("id"))
	q := ctl.DB.WithContext(c.UserContext())
	if id, err := uuid.Parse(key); err == nil {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("slug = ?", strings.ToLower(key))
	}
	var m model.CityModel
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "City not found")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/cities?state=&popular=&q=&includeInactive=
func (ctl *CityController) List(c *fiber.Ctx) error {
	q := activeScope(c, ctl.DB.WithContext(c.UserContext()).Model(&model.CityModel{}))
	if st := strings.TrimSpace(c.Query("state")); st != "" {
		q = q.Where("LOWER(state) = ?", strings.ToLower(st))
	}
	if c.QueryBool("popular") {
		q = q.Where("is_popular = ?", true)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	rows := []model.CityModel{}
	if err := q.Order("is_popular DESC, name ASC").Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch cities", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

// GET /api/cities/:id (id or slug), with its localities
func (ctl *CityController) Get(c *fiber.Ctx) error {
	city, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	locs := []model.LocalityModel{}
	if err := activeScope(c, ctl.DB.WithContext(c.UserContext()).Where("city_id = ?", city.ID)).
		Order("name ASC").Find(&locs).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch city", err)
	}
	return helper.JsonOK(c, dto.CityWithLocalities{CityModel: *city, Localities: locs})
}

// GET /api/cities/:id/localities
func (ctl *CityController) Localities(c *fiber.Ctx) error {
	city, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	locs := []model.LocalityModel{}
	if err := activeScope(c, ctl.DB.WithContext(c.UserContext()).Where("city_id = ?", city.ID)).
		Order("name ASC").Find(&locs).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch localities", err)
	}
	return helper.JsonList(c, locs, int64(len(locs)), nil)
}

// POST /api/cities (admin)
func (ctl *CityController) Create(c *fiber.Ctx) error {
	var req dto.CreateCityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	m.Slug = helper.Slugify(m.Name, 140)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "City already exists")
		}
		return helper.InternalError(c, "Failed to create city", err)
	}
	return helper.JsonCreated(c, m)
}

// PATCH /api/cities/:id (admin)
func (ctl *CityController) Update(c *fiber.Ctx) error {
	city, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateCityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Apply(city) {
		city.Slug = helper.Slugify(city.Name, 140)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(city).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "City already exists")
		}
		return helper.InternalError(c, "Failed to update city", err)
	}
	return helper.JsonUpdated(c, city)
}

// DELETE /api/cities/:id (admin); removes its localities too.
func (ctl *CityController) Delete(c *fiber.Ctx) error {
	city, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("city_id = ?", city.ID).Delete(&model.LocalityModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CityModel{}, "id = ?", city.ID).Error
	})
	if err != nil {
		return helper.InternalError(c, "Failed to delete city", err)
	}
	return helper.JsonDeleted(c)
}
