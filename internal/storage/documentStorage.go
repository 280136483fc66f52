package storage

import (
	"context"
	"errors"

	"docverify/internal/models/entity"
	"docverify/internal/storage/postgres"
	"docverify/pkg/appError"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type documents struct {
	pool postgres.DBPool
}

type DocumentStorage interface {
	SaveDoc(ctx context.Context, doc *entity.Document) error
	GetDoc(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	UpdateDoc(ctx context.Context, doc *entity.Document) error
	DeleteDoc(ctx context.Context, id uuid.UUID) error
	GetDocsByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Document, error)
	GetAllDocs(ctx context.Context) ([]*entity.Document, error)
}

func NewDocumentStorage(pool postgres.DBPool) DocumentStorage {
	return &documents{
		pool: pool,
	}
}

func (d *documents) SaveDoc(ctx context.Context, doc *entity.Document) error {
	query := `insert into documents(id, student_id, file_data, file_type, status)
				values($1, $2, $3, $4, $5)`

	_, err := d.pool.Exec(ctx, query,
		doc.ID,
		doc.StudentID,
		doc.FileData,
		doc.FileType,
		doc.Status,
	)
	if err != nil {
		return appError.Internal("internal server error")
	}
	return nil
}

func (d *documents) GetDoc(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	query := `select id, student_id, file_data, file_type, status
				from documents
				where id = $1`
	var doc entity.Document
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.StudentID,
		&doc.FileData,
		&doc.FileType,
		&doc.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, appError.NotFound("Document not found")
		}
		return nil, appError.Internal("internal server error")
	}
	return &doc, nil
}

// UpdateDoc replaces the payload and status in a single statement, so
// a failed verification never commits partial state.
func (d *documents) UpdateDoc(ctx context.Context, doc *entity.Document) error {
	query := `update documents
				set file_data = $2, status = $3
				where id = $1`

	tag, err := d.pool.Exec(ctx, query, doc.ID, doc.FileData, doc.Status)
	if err != nil {
		return appError.Internal("internal server error")
	}
	if tag.RowsAffected() == 0 {
		return appError.NotFound("Document not found")
	}
	return nil
}

func (d *documents) DeleteDoc(ctx context.Context, id uuid.UUID) error {
	query := `delete from documents
				where id = $1`

	tag, err := d.pool.Exec(ctx, query, id)
	if err != nil {
		return appError.Internal("internal server error")
	}
	if tag.RowsAffected() == 0 {
		return appError.NotFound("Document not found")
	}
	return nil
}

func (d *documents) GetDocsByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Document, error) {
	query := `select id, student_id, file_data, file_type, status
				from documents
				where student_id = $1`

	rows, err := d.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, appError.Internal("internal server error")
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		var doc entity.Document
		err := rows.Scan(
			&doc.ID,
			&doc.StudentID,
			&doc.FileData,
			&doc.FileType,
			&doc.Status,
		)
		if err != nil {
			return nil, appError.Internal("internal server error")
		}
		docs = append(docs, &doc)
	}

	return docs, nil
}

func (d *documents) GetAllDocs(ctx context.Context) ([]*entity.Document, error) {
	query := `select d.id, d.student_id, d.file_data, d.file_type, d.status,
					u.first_name, u.last_name, u.email
				from documents d
				join users u on u.id = d.student_id`

	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, appError.Internal("internal server error")
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		var doc entity.Document
		var owner entity.User
		err := rows.Scan(
			&doc.ID,
			&doc.StudentID,
			&doc.FileData,
			&doc.FileType,
			&doc.Status,
			&owner.FirstName,
			&owner.LastName,
			&owner.Email,
		)
		if err != nil {
			return nil, appError.Internal("internal server error")
		}
		owner.ID = doc.StudentID
		doc.Student = &owner
		docs = append(docs, &doc)
	}

	return docs, nil
}
