package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"docverify/internal/models/entity"
	"docverify/internal/models/response"
	"docverify/internal/storage"
	"docverify/internal/storage/cache"
	"docverify/pkg/appError"

	"github.com/google/uuid"
)

// Watermarker composites a logo onto a payload of the given media
// type and returns the new payload.
type Watermarker interface {
	Apply(payload []byte, fileType string) ([]byte, error)
}

type docs struct {
	docStorage  storage.DocumentStorage
	ledger      LedgerGateway
	watermarker Watermarker
	cache       cache.Cache
}

type DocumentService interface {
	Upload(ctx context.Context, studentID uuid.UUID, payload []byte, fileType string) (uuid.UUID, error)
	StudentDocuments(ctx context.Context, studentID uuid.UUID) (json.RawMessage, error)
	AllDocuments(ctx context.Context) (json.RawMessage, error)
	Verify(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID) error
}

func NewDocumentService(docStorage storage.DocumentStorage, ledger LedgerGateway, watermarker Watermarker, cache cache.Cache) DocumentService {
	return &docs{
		docStorage:  docStorage,
		ledger:      ledger,
		watermarker: watermarker,
		cache:       cache,
	}
}

// payloadDigest is the first 32 raw bytes of the payload, zero-padded
// when shorter. Not a hash: the ledger contract only needs a fixed
// 32-byte value per document.
func payloadDigest(payload []byte) [32]byte {
	var digest [32]byte
	copy(digest[:], payload)
	return digest
}

func (d *docs) Upload(ctx context.Context, studentID uuid.UUID, payload []byte, fileType string) (uuid.UUID, error) {
	accepted, err := d.ledger.SubmitDocument(ctx, payloadDigest(payload))
	if err != nil {
		return uuid.Nil, err
	}
	if !accepted {
		return uuid.Nil, appError.Conflict("Document already exists in the system")
	}

	doc := &entity.Document{
		ID:        uuid.New(),
		StudentID: studentID,
		FileData:  payload,
		FileType:  fileType,
		Status:    entity.StatusPending,
	}
	if err := d.docStorage.SaveDoc(ctx, doc); err != nil {
		return uuid.Nil, err
	}

	d.cache.InvalidateStudent(studentID.String())

	return doc.ID, nil
}

func (d *docs) StudentDocuments(ctx context.Context, studentID uuid.UUID) (json.RawMessage, error) {
	if cached, ok := d.cache.GetStudentList(studentID.String()); ok {
		return cached, nil
	}

	documents, err := d.docStorage.GetDocsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	views := make([]response.StudentDocument, 0, len(documents))
	for _, doc := range documents {
		views = append(views, response.StudentDocument{
			ID:       doc.ID,
			FileData: base64.StdEncoding.EncodeToString(doc.FileData),
			FileType: doc.FileType,
			Status:   string(doc.Status),
		})
	}

	body, err := json.Marshal(views)
	if err != nil {
		return nil, appError.Internal("internal server error")
	}

	d.cache.SetStudentList(studentID.String(), body)

	return body, nil
}

func (d *docs) AllDocuments(ctx context.Context) (json.RawMessage, error) {
	if cached, ok := d.cache.GetAdminList(); ok {
		return cached, nil
	}

	documents, err := d.docStorage.GetAllDocs(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]response.AdminDocument, 0, len(documents))
	for _, doc := range documents {
		view := response.AdminDocument{
			ID:       doc.ID,
			FileData: base64.StdEncoding.EncodeToString(doc.FileData),
			FileType: doc.FileType,
			Status:   string(doc.Status),
		}
		if doc.Student != nil {
			view.Student = response.DocumentOwner{
				ID:        doc.Student.ID,
				FirstName: doc.Student.FirstName,
				LastName:  doc.Student.LastName,
				Email:     doc.Student.Email,
			}
		}
		views = append(views, view)
	}

	body, err := json.Marshal(views)
	if err != nil {
		return nil, appError.Internal("internal server error")
	}

	d.cache.SetAdminList(body)

	return body, nil
}

func (d *docs) Verify(ctx context.Context, id uuid.UUID) error {
	doc, err := d.docStorage.GetDoc(ctx, id)
	if err != nil {
		return verificationError(err)
	}

	watermarked, err := d.watermarker.Apply(doc.FileData, doc.FileType)
	if err != nil {
		return appError.Internal("Document verification failed")
	}

	doc.FileData = watermarked
	doc.Status = entity.StatusVerified
	if err := d.docStorage.UpdateDoc(ctx, doc); err != nil {
		return verificationError(err)
	}

	d.cache.InvalidateStudent(doc.StudentID.String())

	return nil
}

// a missing document keeps its 404; every other failure collapses to
// the generic verification message
func verificationError(err error) error {
	var appErr appError.AppError
	if errors.As(err, &appErr) && appErr.Code() == http.StatusNotFound {
		return err
	}
	return appError.Internal("Document verification failed")
}

func (d *docs) Reject(ctx context.Context, id uuid.UUID) error {
	doc, err := d.docStorage.GetDoc(ctx, id)
	if err != nil {
		return err
	}

	if err := d.docStorage.DeleteDoc(ctx, id); err != nil {
		return err
	}

	d.cache.InvalidateStudent(doc.StudentID.String())

	return nil
}
