package api

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"stargazer/exercise-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the index page and, when object storage is configured,
// redirects /public requests to presigned bucket URLs.
type StaticHandler struct {
	viewsDir string
	assets   storage.FileStorage
}

// NewStaticHandler creates a new StaticHandler. assets may be nil.
func NewStaticHandler(viewsDir string, assets storage.FileStorage) *StaticHandler {
	return &StaticHandler{viewsDir: viewsDir, assets: assets}
}

// Index serves views/index.html.
func (h *StaticHandler) Index(c *gin.Context) {
	c.File(filepath.Join(h.viewsDir, "index.html"))
}

// PublicAsset redirects to a short-lived download URL for the requested object.
func (h *StaticHandler) PublicAsset(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("filepath"), "/")
	if key == "" || strings.Contains(key, "..") {
		c.String(http.StatusNotFound, "not found")
		return
	}

	url, err := h.assets.GeneratePresignedDownloadURL(c.Request.Context(), key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		log.Printf("ERROR: [%s] presign %q: %v", c.GetString(ContextRequestIDKey), key, err)
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
