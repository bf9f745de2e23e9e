package controller

import (
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/uploads/dto"
	"estatehub_backend/internals/features/uploads/storage"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
	"estatehub_backend/internals/metrics"
)

type UploadController struct {
	Store *storage.Storage
}

func NewUploadController(store *storage.Storage) *UploadController {
	return &UploadController{Store: store}
}

func (ctl *UploadController) fail(c *fiber.Ctx, visibility string, err error) error {
	metrics.Uploads.WithLabelValues(visibility, "rejected").Inc()
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrExists):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrInvalidName),
		errors.Is(err, storage.ErrOutsideRoot),
		errors.Is(err, storage.ErrBadExtension),
		errors.Is(err, storage.ErrBadContent),
		errors.Is(err, storage.ErrBadVisibility),
		errors.Is(err, storage.ErrEmptyFile):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	metrics.Uploads.WithLabelValues(visibility, "error").Inc()
	return helper.InternalError(c, "Failed to store file", err)
}

// =====================================================
// UPLOAD: POST /api/upload?private=&optimize=
// =====================================================

func (ctl *UploadController) Upload(c *fiber.Ctx) error {
	visibility := storage.Visibility(c.QueryBool("private"))
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded (field \"file\")")
	}
	if fh.Size > constants.MaxUploadSize {
		return ctl.fail(c, visibility, storage.ErrTooLarge)
	}
	// Reject bad names before the body is read.
	if _, err := storage.GenerateName(fh.Filename); err != nil {
		return ctl.fail(c, visibility, err)
	}
	f, err := fh.Open()
	if err != nil {
		return helper.InternalError(c, "Failed to read upload", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, constants.MaxUploadSize+1))
	if err != nil {
		return helper.InternalError(c, "Failed to read upload", err)
	}

	out, err := ctl.Store.Save(visibility, fh.Filename, data, c.QueryBool("optimize"))
	if err != nil {
		return ctl.fail(c, visibility, err)
	}
	metrics.Uploads.WithLabelValues(visibility, "ok").Inc()
	logger.FromCtx(c).Info("file uploaded",
		zap.String("filename", out.Filename),
		zap.String("visibility", visibility),
		zap.Int64("size", out.Size))
	return helper.JsonCreated(c, out)
}

// =====================================================
// SERVE: GET /api/upload/:visibility/:filename
// =====================================================

func (ctl *UploadController) servePath(c *fiber.Ctx, visibility string) error {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, storage.ErrInvalidName.Error())
	}
	path, err := ctl.Store.Path(visibility, name)
	if err != nil {
		return ctl.fail(c, visibility, err)
	}
	if visibility == storage.Private {
		c.Set(fiber.HeaderCacheControl, "private, no-store")
	} else {
		c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	}
	return c.SendFile(path)
}

func (ctl *UploadController) ServePublic(c *fiber.Ctx) error  { return ctl.servePath(c, storage.Public) }
func (ctl *UploadController) ServePrivate(c *fiber.Ctx) error { return ctl.servePath(c, storage.Private) }

// =====================================================
// DELETE: DELETE /api/upload/:visibility/:filename
// =====================================================

func (ctl *UploadController) Delete(c *fiber.Ctx) error {
	visibility := c.Params("visibility")
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, storage.ErrInvalidName.Error())
	}
	if err := ctl.Store.Delete(visibility, name); err != nil {
		return ctl.fail(c, visibility, err)
	}
	return helper.JsonDeleted(c)
}

// =====================================================
// REQUEST URL: POST /api/uploads/request-url (alias /api/object-storage/presigned-url)
// =====================================================

// RequestURL reserves a generated name and returns the direct-upload URL on this server.
func (ctl *UploadController) RequestURL(c *fiber.Ctx) error {
	var req dto.UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Filename) == "" {
		req.Filename = req.Name
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	visibility := storage.Visibility(req.Private || c.QueryBool("private"))
	name, err := storage.GenerateName(req.Filename)
	if err != nil {
		return ctl.fail(c, visibility, err)
	}

	q := url.Values{}
	q.Set("filename", name)
	q.Set("private", "false")
	if visibility == storage.Private {
		q.Set("private", "true")
	}
	return helper.JsonOK(c, dto.UploadURLResponse{
		UploadURL:  ctl.Store.BaseURL + "/direct?" + q.Encode(),
		Method:     fiber.MethodPut,
		Filename:   name,
		ObjectPath: "/" + visibility + "/" + name,
		URL:        ctl.Store.URL(visibility, name),
		Visibility: visibility,
		ExpiresIn:  900,
	})
}

// =====================================================
// DIRECT: PUT /api/upload/direct?filename=&private=
// =====================================================

// Direct stores the raw body under the requested name, applying sanitize and verify again.
func (ctl *UploadController) Direct(c *fiber.Ctx) error {
	visibility := storage.Visibility(c.QueryBool("private"))
	name := c.Query("filename")
	if _, err := storage.Sanitize(name); err != nil {
		return ctl.fail(c, visibility, err)
	}
	if !constants.IsAllowedExt(name) {
		return ctl.fail(c, visibility, storage.ErrBadExtension)
	}
	body := c.Body()
	if len(body) > constants.MaxUploadSize {
		return ctl.fail(c, visibility, storage.ErrTooLarge)
	}
	data := make([]byte, len(body))
	copy(data, body)

	out, err := ctl.Store.SaveAs(visibility, name, data)
	if err != nil {
		return ctl.fail(c, visibility, err)
	}
	metrics.Uploads.WithLabelValues(visibility, "ok").Inc()
	return helper.JsonCreated(c, out)
}
