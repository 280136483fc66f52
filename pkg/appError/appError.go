package appError

import "net/http"

type AppError interface {
	error
	HTTPStatus() int
	Code() int
}

// our custom error
type appErr struct {
	message    string
	httpStatus int
	code       int
}

func (e appErr) Error() string {
	return e.message
}

func (e appErr) HTTPStatus() int {
	return e.httpStatus
}

func (e appErr) Code() int {
	return e.code
}

// below is default errors with default codes
// the error code is equal to the http status
func BadRequest(text string) AppError {
	return appErr{
		message:    text,
		httpStatus: http.StatusBadRequest,
		code:       400,
	}
}

func Internal(text string) AppError {
	return appErr{
		message:    text,
		httpStatus: http.StatusInternalServerError,
		code:       500,
	}
}

func NotFound(text string) AppError {
	return appErr{
		message:    text,
		httpStatus: http.StatusNotFound,
		code:       404,
	}
}

func Unauthorized(text string) AppError {
	return appErr{
		message:    text,
		httpStatus: http.StatusUnauthorized,
		code:       401,
	}
}

func Conflict(text string) AppError {
	return appErr{
		message:    text,
		httpStatus: http.StatusConflict,
		code:       409,
	}
}

func MethodNotAllowed() AppError {
	return appErr{
		message:    "method not allowed",
		httpStatus: http.StatusMethodNotAllowed,
		code:       405,
	}
}

func Forbidden() AppError {
	return appErr{
		message:    "Forbidden",
		httpStatus: http.StatusForbidden,
		code:       403,
	}
}
