package response

import "github.com/google/uuid"

type Message struct {
	Message string `json:"message"`
}

type Error struct {
	Error string `json:"error"`
}

type Login struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
}

type StudentDocument struct {
	ID       uuid.UUID `json:"_id"`
	FileData string    `json:"fileData"`
	FileType string    `json:"fileType"`
	Status   string    `json:"status"`
}

type DocumentOwner struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

type AdminDocument struct {
	ID       uuid.UUID     `json:"_id"`
	Student  DocumentOwner `json:"studentId"`
	FileData string        `json:"fileData"`
	FileType string        `json:"fileType"`
	Status   string        `json:"status"`
}
