package transport

import (
	"io"
	"net/http"
	"strings"

	"docverify/internal/models/response"
	"docverify/internal/service"
	"docverify/pkg/appError"

	"github.com/google/uuid"
)

type DocumentHandler struct {
	service service.DocumentService
}

func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		service: service,
	}
}

// max file size
const maxFileSize = 50 << 20 // 50 MB

// readUpload reads at most limit bytes. A longer input is rejected,
// never truncated: one extra byte is read to tell the two apart.
func readUpload(file io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, appError.Internal("internal server error")
	}
	if int64(len(data)) > limit {
		return nil, appError.BadRequest("file is too large (max 50 MB)")
	}
	return data, nil
}

func (d *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, appError.MethodNotAllowed())
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeError(w, appError.BadRequest("expected multipart/form-data"))
		return
	}

	// max form size is 10mb
	const maxFormSize = 10 << 20
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		writeError(w, appError.BadRequest("failed to parse form"))
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, appError.BadRequest("No file uploaded"))
		return
	}
	defer file.Close()

	studentID, err := uuid.Parse(r.FormValue("studentId"))
	if err != nil {
		writeError(w, appError.BadRequest("bad student id"))
		return
	}

	fileData, err := readUpload(file, maxFileSize)
	if err != nil {
		writeError(w, err)
		return
	}

	fileType := header.Header.Get("Content-Type")
	if fileType == "" {
		fileType = http.DetectContentType(fileData)
	}

	if _, err := d.service.Upload(r.Context(), studentID, fileData, fileType); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response.Message{Message: "Document uploaded and validated successfully"})
}

func (d *DocumentHandler) StudentDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, appError.MethodNotAllowed())
		return
	}

	studentID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := d.service.StudentDocuments(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, out)
}

func (d *DocumentHandler) AdminDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, appError.MethodNotAllowed())
		return
	}

	out, err := d.service.AllDocuments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, out)
}

func (d *DocumentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, appError.MethodNotAllowed())
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := d.service.Verify(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.Message{Message: "Document verified successfully"})
}

func (d *DocumentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, appError.MethodNotAllowed())
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := d.service.Reject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.Message{Message: "Document rejected and removed"})
}

// routes carrying an id all look like /segment/segment/<id>
func pathID(r *http.Request) (uuid.UUID, error) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) != 4 || parts[3] == "" {
		return uuid.Nil, appError.BadRequest("bad request")
	}
	id, err := uuid.Parse(parts[3])
	if err != nil {
		return uuid.Nil, appError.BadRequest("bad id")
	}
	return id, nil
}
