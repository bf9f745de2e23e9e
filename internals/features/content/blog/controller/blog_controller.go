// file: internals/features/content/blog/controller/blog_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/blog/dto"
	"estatehub_backend/internals/features/content/blog/model"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
)

type BlogController struct {
	DB *gorm.DB
}

func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{DB: db}
}

func (ctl *BlogController) list(c *fiber.Ctx, q *gorm.DB) error {
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(cat))
	}
	if tag := strings.ToLower(strings.TrimSpace(c.Query("tag"))); tag != "" {
		q = q.Where("tags LIKE ?", `%"`+tag+`"%`)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?)", like, like)
	}
	if c.QueryBool("featured") {
		q = q.Where("is_featured = ?", true)
	}
	p := helper.ResolvePaging(c, 10, 100)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch blog posts", err)
	}
	rows := []model.BlogPostModel{}
	if err := q.Order("published_at DESC, created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch blog posts", err)
	}
	return helper.JsonList(c, rows, total, &p)
}

// =====================================================
// PUBLIC: GET /api/blog (also /api/public/blog)
// =====================================================

func (ctl *BlogController) ListPublished(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.BlogPostModel{}).Where("status = ?", model.BlogPublished)
	return ctl.list(c, q)
}

// GET /api/blog/:slug (also /api/public/blog/:slug)
func (ctl *BlogController) GetPublished(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	var m model.BlogPostModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("slug = ? AND status = ?", slug, model.BlogPublished).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Blog post not found")
		}
		return helper.InternalError(c, "Failed to fetch blog post", err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(&m).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		logger.FromCtx(c).Warn("blog view count update failed", zap.Error(err))
	} else {
		m.ViewCount++
	}
	return helper.JsonOK(c, m)
}

// =====================================================
// ADMIN: /api/admin/blog
// =====================================================

func (ctl *BlogController) AdminList(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.BlogPostModel{})
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("status = ?", st)
	}
	return ctl.list(c, q)
}

func (ctl *BlogController) find(c *fiber.Ctx) (*model.BlogPostModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.BlogPostModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Blog post not found")
		}
		return nil, err
	}
	return &m, nil
}

func (ctl *BlogController) AdminGet(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, m)
}

func (ctl *BlogController) Create(c *fiber.Ctx) error {
	var req dto.CreateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()

	// An explicit slug must be free; one derived from the title is suffixed until it is.
	if strings.TrimSpace(req.Slug) != "" {
		slug := helper.Slugify(req.Slug, 280)
		taken, err := helper.SlugTakenCI(c.UserContext(), ctl.DB, "blog_posts", "slug", slug, nil)
		if err != nil {
			return helper.InternalError(c, "Failed to create blog post", err)
		}
		if taken {
			return helper.JsonError(c, fiber.StatusBadRequest, "Slug already exists")
		}
		m.Slug = slug
	} else {
		slug, err := helper.EnsureUniqueSlugCI(c.UserContext(), ctl.DB, "blog_posts", "slug", helper.Slugify(m.Title, 280), nil, 280)
		if err != nil {
			return helper.InternalError(c, "Failed to create blog post", err)
		}
		m.Slug = slug
	}

	if uid := helper.OptionalUserID(c); uid != nil {
		m.AuthorID = uid
		if m.AuthorName == "" {
			var u userModel.UserModel
			if err := ctl.DB.WithContext(c.UserContext()).First(&u, "id = ?", *uid).Error; err == nil {
				m.AuthorName = u.Name
			}
		}
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Slug already exists")
		}
		return helper.InternalError(c, "Failed to create blog post", err)
	}
	return helper.JsonCreated(c, m)
}

func (ctl *BlogController) Update(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.Apply(m)
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		slug := helper.Slugify(*req.Slug, 280)
		taken, err := helper.SlugTakenCI(c.UserContext(), ctl.DB, "blog_posts", "slug", slug,
			func(q *gorm.DB) *gorm.DB { return q.Where("id <> ?", m.ID) })
		if err != nil {
			return helper.InternalError(c, "Failed to update blog post", err)
		}
		if taken {
			return helper.JsonError(c, fiber.StatusBadRequest, "Slug already exists")
		}
		m.Slug = slug
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Slug already exists")
		}
		return helper.InternalError(c, "Failed to update blog post", err)
	}
	return helper.JsonUpdated(c, m)
}

func (ctl *BlogController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.BlogPostModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.InternalError(c, "Failed to delete blog post", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Blog post not found")
	}
	return helper.JsonDeleted(c)
}
