package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"docverify/internal/models/entity"
	"docverify/internal/models/response"
	"docverify/internal/service"
	"docverify/pkg/appError"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	SRN          string `json:"srn"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeRaw(w http.ResponseWriter, statusCode int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// service errors carry their status via appError; anything else is an
// unexpected failure reported with its own text, per the API contract
// (4xx -> {message}, 5xx -> {error})
func writeError(w http.ResponseWriter, err error) {
	var customError appError.AppError
	if errors.As(err, &customError) {
		if customError.HTTPStatus() >= http.StatusInternalServerError {
			writeJSON(w, customError.HTTPStatus(), response.Error{Error: customError.Error()})
		} else {
			writeJSON(w, customError.HTTPStatus(), response.Message{Message: customError.Error()})
		}
		return
	}

	writeJSON(w, http.StatusInternalServerError, response.Error{Error: err.Error()})
}

func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, appError.MethodNotAllowed())
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, appError.BadRequest("invalid json"))
		return
	}

	user := &entity.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		SRN:          req.SRN,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		Password:     req.Password,
	}

	if err := a.service.Register(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response.Message{Message: "Registration successful"})
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, appError.MethodNotAllowed())
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, appError.BadRequest("invalid json"))
		return
	}

	token, userID, err := a.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.Login{
		Token:  token,
		UserID: userID,
	})
}
