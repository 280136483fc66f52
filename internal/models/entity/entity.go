package entity

import (
	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	SRN          string    `json:"srn"`
	MobileNumber string    `json:"mobileNumber"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"-"`
}

type DocumentStatus string

const (
	StatusPending  DocumentStatus = "Pending"
	StatusVerified DocumentStatus = "Verified"
)

type Document struct {
	ID        uuid.UUID      `json:"id"`
	StudentID uuid.UUID      `json:"studentId"`
	FileData  []byte         `json:"-"`
	FileType  string         `json:"fileType"`
	Status    DocumentStatus `json:"status"`

	// Student is filled only by the admin listing join.
	Student *User `json:"-"`
}
