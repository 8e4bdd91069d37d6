package watermark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/http-server/handler/watermark/dto"
	job_uc "photo-watermarker/internal/usecase/job"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const (
	maxMemory = 32 << 20
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type WatermarkHandler struct {
	service       watermarkService
	jobs          jobUsecase
	defaultLayout domain.Layout
	tempDir       string
	validate      *validator.Validate
	logger        *zlog.Zerolog
}

func NewWatermarkHandler(service watermarkService, jobs jobUsecase, defaultLayout domain.Layout, tempDir string, logger *zlog.Zerolog) *WatermarkHandler {
	v := validator.New()
	if err := v.RegisterValidation("layout", func(fl validator.FieldLevel) bool {
		return domain.Layout(fl.Field().String()).Known()
	}); err != nil {
		panic(err)
	}

	return &WatermarkHandler{
		service:       service,
		jobs:          jobs,
		defaultLayout: defaultLayout,
		tempDir:       tempDir,
		validate:      v,
		logger:        logger,
	}
}

// upload is a parsed multipart photo with its sniffed type.
type upload struct {
	file     multipart.File
	filename string
	mime     *mimetype.MIME
	size     int64
	layout   domain.Layout
}

// Watermark renders the uploaded photo synchronously and returns the result.
func (h *WatermarkHandler) Watermark(w http.ResponseWriter, r *http.Request) {
	up, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer up.file.Close()

	dir, err := os.MkdirTemp(h.tempDir, "upload-*")
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create temp directory")
		h.respondError(w, http.StatusInternalServerError, "Failed to store upload", err)
		return
	}
	defer os.RemoveAll(dir)

	ext := up.mime.Extension()
	src := filepath.Join(dir, "source"+ext)
	dst := filepath.Join(dir, "result"+ext)

	if err := saveTo(src, up.file); err != nil {
		h.logger.Error().Err(err).Str("filename", up.filename).Msg("Failed to save upload")
		h.respondError(w, http.StatusInternalServerError, "Failed to store upload", err)
		return
	}

	if err := h.service.ProcessFileWithLayout(r.Context(), src, dst, up.layout); err != nil {
		h.logger.Error().Err(err).Str("filename", up.filename).Msg("Watermarking failed")
		h.respondError(w, http.StatusUnprocessableEntity, "Failed to watermark photo", err)
		return
	}

	result, err := os.Open(dst)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", up.filename).Msg("Failed to open result")
		h.respondError(w, http.StatusInternalServerError, "Failed to read result", err)
		return
	}
	defer result.Close()

	name := strings.TrimSuffix(up.filename, filepath.Ext(up.filename)) + ext
	w.Header().Set("Content-Type", up.mime.String())
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, result); err != nil {
		h.logger.Error().Err(err).Str("filename", up.filename).Msg("Failed to stream result")
	}
}

// SubmitJob queues the uploaded photo for the worker.
func (h *WatermarkHandler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	up, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer up.file.Close()

	job, err := h.jobs.Submit(r.Context(), up.file, up.filename, up.mime.String(), up.size, up.layout)
	if err != nil {
		h.handleJobError(w, err, "")
		return
	}

	h.logger.Info().
		Str("job_id", job.ID).
		Str("filename", job.Filename).
		Msg("Job submitted")

	h.respondJSON(w, http.StatusAccepted, toJobResponse(job))
}

func (h *WatermarkHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	req := dto.JobRequest{ID: chi.URLParam(r, "id")}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Valid job ID is required", nil)
		return
	}

	job, err := h.jobs.Get(r.Context(), req.ID)
	if err != nil {
		h.handleJobError(w, err, req.ID)
		return
	}

	h.respondJSON(w, http.StatusOK, toJobResponse(job))
}

func (h *WatermarkHandler) GetJobResult(w http.ResponseWriter, r *http.Request) {
	req := dto.JobRequest{ID: chi.URLParam(r, "id")}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Valid job ID is required", nil)
		return
	}

	job, reader, err := h.jobs.Result(r.Context(), req.ID)
	if err != nil {
		h.handleJobError(w, err, req.ID)
		return
	}
	defer reader.Close()

	contentType := "image/jpeg"
	if strings.EqualFold(filepath.Ext(job.Filename), ".png") {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", job.Filename))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error().Err(err).Str("job_id", req.ID).Msg("Failed to stream result")
	}
}

func (h *WatermarkHandler) ListLayouts(w http.ResponseWriter, _ *http.Request) {
	layouts := make([]dto.LayoutResponse, 0, len(domain.Layouts))
	for _, l := range domain.Layouts {
		layouts = append(layouts, dto.LayoutResponse{
			ID:      string(l),
			Name:    l.DisplayName(),
			Default: l == h.defaultLayout,
		})
	}
	h.respondJSON(w, http.StatusOK, layouts)
}

func (h *WatermarkHandler) parseUpload(w http.ResponseWriter, r *http.Request) (*upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.DefaultMaxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error(), nil)
			return nil, false
		}
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return nil, false
	}

	req := dto.WatermarkRequest{Layout: r.FormValue("layout")}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown layout %q", req.Layout), nil)
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn().Err(err).Msg("File not found in request")
		h.respondError(w, http.StatusBadRequest, ErrFileRequired.Error(), nil)
		return nil, false
	}

	mtype, err := mimetype.DetectReader(file)
	if err == nil {
		_, err = file.Seek(0, io.SeekStart)
	}
	if err != nil {
		file.Close()
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read upload")
		h.respondError(w, http.StatusInternalServerError, "Failed to read file", err)
		return nil, false
	}

	if !allowedTypes[mtype.String()] {
		file.Close()
		h.logger.Warn().Str("filename", header.Filename).Str("mime", mtype.String()).Msg("Unsupported upload type")
		h.respondError(w, http.StatusUnsupportedMediaType, ErrInvalidFileFormat.Error()+": only JPEG and PNG are accepted", nil)
		return nil, false
	}

	return &upload{
		file:     file,
		filename: filepath.Base(header.Filename),
		mime:     mtype,
		size:     header.Size,
		layout:   domain.Layout(req.Layout),
	}, true
}

func (h *WatermarkHandler) handleJobError(w http.ResponseWriter, err error, jobID string) {
	switch {
	case errors.Is(err, job_uc.ErrJobNotFound):
		h.respondError(w, http.StatusNotFound, "Job not found", nil)
	case errors.Is(err, job_uc.ErrJobNotReady):
		h.respondError(w, http.StatusConflict, "Job is not completed yet", nil)
	case errors.Is(err, job_uc.ErrJobFailed):
		h.respondError(w, http.StatusConflict, "Job failed", err)
	case errors.Is(err, job_uc.ErrUnknownLayout):
		h.respondError(w, http.StatusBadRequest, "Unknown layout", nil)
	default:
		h.logger.Error().Err(err).Str("job_id", jobID).Msg("Job request failed")
		h.respondError(w, http.StatusInternalServerError, "Job request failed", err)
	}
}

func toJobResponse(j *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:        j.ID,
		Filename:  j.Filename,
		Layout:    string(j.Layout),
		Status:    string(j.Status),
		Error:     j.Error,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func saveTo(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (h *WatermarkHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Interface("data", data).Msg("Failed to encode response")
	}
}

func (h *WatermarkHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, status, response)
}
