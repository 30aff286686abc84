package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// allowedExtensions is the upload allow-list. Extension check only; no
// content sniffing.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// FileHandler handles product image upload and retrieval.
type FileHandler struct {
	storage ports.FileStorage
	baseURL string
}

func NewFileHandler(storage ports.FileStorage, baseURL string) *FileHandler {
	return &FileHandler{storage: storage, baseURL: strings.TrimRight(baseURL, "/")}
}

type uploadResponse struct {
	FileName  string `json:"file_name"`
	SecureURL string `json:"secure_url"`
}

// Upload handles POST /files/product with a multipart "file" part.
//
// @Summary      Upload a product image
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file (jpg, jpeg, png, gif)"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Router       /files/product [post]
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "make sure the request includes a file")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, ext)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	name, err := h.storage.Save(ext, src)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadResponse{
		FileName:  name,
		SecureURL: h.baseURL + "/files/product/" + name,
	})
}

// Serve handles GET /files/product/:imageName.
//
// @Summary      Serve a stored product image
// @Tags         files
// @Produce      octet-stream
// @Param        imageName  path  string  true  "Stored file name"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /files/product/{imageName} [get]
func (h *FileHandler) Serve(c echo.Context) error {
	path, err := h.storage.Path(c.Param("imageName"))
	if err != nil {
		return err
	}
	return c.File(path)
}
