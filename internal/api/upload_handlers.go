package api

import (
	"net/http"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/storage"
)

// UploadFileHandler handles POST /api/v1/uploads (multipart form, field
// "file"). Returns the public URL the client stores on the entity it is
// editing.
func UploadFileHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := r.ParseMultipartForm(storage.MaxFileSize); err != nil {
			common.RespondError(w, initTime, err, "File too large or malformed form", http.StatusBadRequest)
			return
		}

		_, header, err := r.FormFile("file")
		if err != nil {
			common.RespondError(w, initTime, err, "Missing file field", http.StatusBadRequest)
			return
		}

		url, err := deps.Services.Files.Save(header)
		if err != nil {
			common.RespondError(w, initTime, err, "Upload rejected", http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "File uploaded", dtos.UploadResponse{
			URL:      url,
			FileName: header.Filename,
			Size:     header.Size,
		}, http.StatusCreated)
	}
}

func (h *Handlers) UploadFile() http.HandlerFunc { return UploadFileHandler(h.deps) }
