package controller

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/imports/dto"
	"estatehub_backend/internals/features/properties/imports/service"
	propertyService "estatehub_backend/internals/features/properties/properties/service"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
)

const maxCSVSize = 5 * 1024 * 1024

type ImportController struct {
	DB *gorm.DB
}

func NewImportController(db *gorm.DB) *ImportController {
	return &ImportController{DB: db}
}

// GET /api/admin/properties/sample-csv
func (ctl *ImportController) SampleCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := service.WriteSample(&buf); err != nil {
		return helper.InternalError(c, "Failed to build sample CSV", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="properties-sample.csv"`)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// csvBody reads the multipart "file" field, or the raw body for text/csv uploads.
func csvBody(c *fiber.Ctx) (io.Reader, error) {
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxCSVSize {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "CSV file is larger than 5MB")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxCSVSize))
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "CSV file is required")
	}
	if len(body) > maxCSVSize {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "CSV file is larger than 5MB")
	}
	return bytes.NewReader(body), nil
}

// POST /api/admin/properties/import-csv
// Valid rows are created; invalid rows are reported by line and skipped.
func (ctl *ImportController) ImportCSV(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	r, err := csvBody(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := service.Parse(r)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	owners := map[string]uuid.UUID{}
	result := dto.ImportResult{Total: len(rows), IDs: []uuid.UUID{}, Errors: []dto.RowError{}}

	for _, row := range rows {
		if len(row.Errors) == 0 {
			if err := helper.Validate.Struct(row.Request); err != nil {
				var ve validator.ValidationErrors
				if errors.As(err, &ve) {
					row.Errors = helper.FieldErrors(ve)
				} else {
					row.Errors = map[string][]string{"row": {"is invalid"}}
				}
			} else if fe := row.Request.PriceErrors(); fe != nil {
				row.Errors = fe
			}
		}

		ownerID := adminID
		if len(row.Errors) == 0 && row.OwnerEmail != "" {
			id, ok := owners[row.OwnerEmail]
			if !ok {
				var u userModel.UserModel
				if err := ctl.DB.WithContext(c.UserContext()).First(&u, "email = ?", row.OwnerEmail).Error; err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return helper.InternalError(c, "Failed to import CSV", err)
					}
					row.Errors = map[string][]string{"ownerEmail": {"no user with this email"}}
				} else {
					id = u.ID
					owners[row.OwnerEmail] = id
				}
			}
			ownerID = id
		}

		if len(row.Errors) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, dto.RowError{Line: row.Line, Errors: row.Errors})
			continue
		}

		m := row.Request.ToModel(ownerID)
		if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
			logger.FromCtx(c).Warn("csv row insert failed", zap.Int("line", row.Line), zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, dto.RowError{Line: row.Line, Errors: map[string][]string{"row": {"could not be saved"}}})
			continue
		}
		propertyService.SyncIndex(c.UserContext(), m)
		result.Imported++
		result.IDs = append(result.IDs, m.ID)
	}

	status := fiber.StatusOK
	if result.Imported > 0 {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(result)
}
