package transport

import (
	"net/http"

	"docverify/internal/service"
	"docverify/pkg/appError"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	authService service.AuthService
	docService  service.DocumentService
	logger      *logrus.Logger
}

func NewHandler(authService service.AuthService, docService service.DocumentService, logger *logrus.Logger) *Handler {
	return &Handler{
		authService: authService,
		docService:  docService,
		logger:      logger,
	}
}

func (h *Handler) InitRouter() http.Handler {
	mux := http.NewServeMux()

	authHandler := NewAuthHandler(h.authService)
	docHandler := NewDocumentHandler(h.docService)

	mux.HandleFunc("/", rootBanner)

	mux.HandleFunc("/student/register", authHandler.Register)
	mux.HandleFunc("/student/login", authHandler.Login)
	mux.HandleFunc("/student/upload", docHandler.Upload)
	mux.HandleFunc("/student/documents/", docHandler.StudentDocuments)

	mux.HandleFunc("/admin/documents", h.requireAdmin(docHandler.AdminDocuments))
	mux.HandleFunc("/admin/verify/", h.requireAdmin(docHandler.Verify))
	mux.HandleFunc("/admin/reject/", h.requireAdmin(docHandler.Reject))

	return h.logRequests(mux)
}

func rootBanner(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, appError.NotFound("not found"))
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, appError.MethodNotAllowed())
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Blockchain-based Backend is Running"))
}
