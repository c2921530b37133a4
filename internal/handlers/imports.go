package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cargotrack-platform/api/internal/audit"
	"github.com/cargotrack-platform/api/internal/httpx"
	"github.com/cargotrack-platform/api/internal/importer"
	"github.com/cargotrack-platform/api/internal/middleware"
)

type importResponse struct {
	Summary  importer.Summary     `json:"summary"`
	Results  []importer.RowResult `json:"results"`
	Warnings []string             `json:"warnings,omitempty"`
}

// PostImports accepts a multipart spreadsheet upload and runs the
// reconciliation engine over it. File-level problems return a single
// top-level error; row-level problems come back inside results.
func (s *Server) PostImports(w http.ResponseWriter, r *http.Request) {
	batch, file, appErr := parseImportRequest(r, s.Config.ImportMaxFileBytes)
	if appErr != nil {
		httpx.WriteError(w, r, appErr.Status, appErr.Code, appErr.Message, nil)
		return
	}
	defer file.Close()

	requestID := middleware.RequestIDFromContext(r.Context())
	_ = s.Audit.Log(r.Context(), audit.Entry{
		Action:     "import.started",
		EntityType: "import_batch",
		RequestID:  requestID,
		Metadata: map[string]any{
			"upload_type": batch.Type,
			"filename":    batch.FileName,
			"warehouse":   batch.WarehouseLocation,
		},
	})

	rows, err := importer.ExtractRows(file, batch.FileName, s.Config.ImportMaxFileBytes, s.Config.ImportMaxRows)
	if err != nil {
		var fileErr *importer.FileError
		if errors.As(err, &fileErr) {
			httpx.WriteError(w, r, http.StatusBadRequest, fileErr.Code, fileErr.Message, nil)
			return
		}
		httpx.WriteError(w, r, http.StatusInternalServerError, "internal_error", "Failed to read uploaded file", nil)
		return
	}

	report := s.Engine.Run(r.Context(), batch, rows)

	_ = s.Audit.Log(r.Context(), audit.Entry{
		Action:     "import.completed",
		EntityType: "import_batch",
		RequestID:  requestID,
		Metadata: map[string]any{
			"upload_type": batch.Type,
			"filename":    batch.FileName,
			"summary":     report.Summary,
			"warnings":    len(report.Warnings),
		},
	})

	httpx.WriteJSON(w, http.StatusOK, importResponse{
		Summary:  report.Summary,
		Results:  report.Results,
		Warnings: report.Warnings,
	})
}

type appError struct {
	Status  int
	Code    string
	Message string
}

func parseImportRequest(r *http.Request, maxFileBytes int64) (importer.Batch, multipart.File, *appError) {
	if !strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data") {
		return importer.Batch{}, nil, &appError{
			Status:  http.StatusBadRequest,
			Code:    "invalid_content_type",
			Message: "Content-Type must be multipart/form-data",
		}
	}

	if err := r.ParseMultipartForm(maxFileBytes); err != nil {
		return importer.Batch{}, nil, &appError{
			Status:  http.StatusBadRequest,
			Code:    "invalid_multipart",
			Message: "Failed to parse multipart form",
		}
	}

	uploadType, err := importer.ParseUploadType(r.FormValue("upload_type"))
	if err != nil {
		return importer.Batch{}, nil, &appError{
			Status:  http.StatusBadRequest,
			Code:    "validation_error",
			Message: err.Error(),
		}
	}

	warehouseLocation := strings.TrimSpace(r.FormValue("warehouse_location"))
	if uploadType == importer.UploadGoodsReceived && warehouseLocation == "" {
		return importer.Batch{}, nil, &appError{
			Status:  http.StatusBadRequest,
			Code:    "validation_error",
			Message: "warehouse_location is required for goods_received uploads",
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return importer.Batch{}, nil, &appError{
			Status:  http.StatusBadRequest,
			Code:    "missing_file",
			Message: "file is required",
		}
	}

	return importer.Batch{
		Type:              uploadType,
		WarehouseLocation: warehouseLocation,
		FileName:          header.Filename,
	}, file, nil
}
