package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"docverify/internal/models/entity"
	"docverify/internal/models/response"
	"docverify/internal/storage/cache"
	"docverify/pkg/appError"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDocumentStorage struct{ mock.Mock }

func (m *mockDocumentStorage) SaveDoc(ctx context.Context, doc *entity.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *mockDocumentStorage) GetDoc(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	args := m.Called(ctx, id)
	if doc, ok := args.Get(0).(*entity.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDocumentStorage) UpdateDoc(ctx context.Context, doc *entity.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *mockDocumentStorage) DeleteDoc(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *mockDocumentStorage) GetDocsByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Document, error) {
	args := m.Called(ctx, studentID)
	if docs, ok := args.Get(0).([]*entity.Document); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDocumentStorage) GetAllDocs(ctx context.Context) ([]*entity.Document, error) {
	args := m.Called(ctx)
	if docs, ok := args.Get(0).([]*entity.Document); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWatermarker struct{ mock.Mock }

func (m *mockWatermarker) Apply(payload []byte, fileType string) ([]byte, error) {
	args := m.Called(payload, fileType)
	if out, ok := args.Get(0).([]byte); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPayloadDigest(t *testing.T) {
	short := []byte("0123456789") // 10 bytes
	digest := payloadDigest(short)
	assert.Equal(t, short, digest[:10])
	assert.Equal(t, make([]byte, 22), digest[10:])

	long := bytes.Repeat([]byte{0xAB}, 64)
	digest = payloadDigest(long)
	assert.Equal(t, long[:32], digest[:])
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	payload := []byte("0123456789")

	testCases := []struct {
		name       string
		accepted   bool
		submitErr  error
		saveErr    error
		expectSave bool
		expectErr  bool
		errCode    int
	}{
		{
			name:       "successful upload",
			accepted:   true,
			expectSave: true,
		},
		{
			name:      "duplicate digest",
			accepted:  false,
			expectErr: true,
			errCode:   409,
		},
		{
			name:      "ledger failure",
			submitErr: errors.New("connection refused"),
			expectErr: true,
		},
		{
			name:       "persistence failure",
			accepted:   true,
			saveErr:    appError.Internal("internal server error"),
			expectSave: true,
			expectErr:  true,
			errCode:    500,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			docsMock := new(mockDocumentStorage)
			ledgerMock := new(mockLedger)
			wmMock := new(mockWatermarker)
			listCache := cache.NewStructuredCache()

			ledgerMock.On("SubmitDocument", ctx, payloadDigest(payload)).
				Return(tc.accepted, tc.submitErr).Once()

			var saved *entity.Document
			if tc.expectSave {
				docsMock.On("SaveDoc", ctx, mock.AnythingOfType("*entity.Document")).
					Run(func(args mock.Arguments) {
						saved = args.Get(1).(*entity.Document)
					}).Return(tc.saveErr).Once()
			}

			svc := NewDocumentService(docsMock, ledgerMock, wmMock, listCache)

			id, err := svc.Upload(ctx, studentID, payload, "image/png")
			if tc.expectErr {
				require.Error(t, err)
				if tc.errCode != 0 {
					appErr, ok := err.(appError.AppError)
					assert.True(t, ok)
					assert.Equal(t, tc.errCode, appErr.Code())
				}
				assert.Equal(t, uuid.Nil, id)
			} else {
				require.NoError(t, err)
				require.NotNil(t, saved)
				assert.Equal(t, id, saved.ID)
				assert.Equal(t, studentID, saved.StudentID)
				assert.Equal(t, payload, saved.FileData)
				assert.Equal(t, "image/png", saved.FileType)
				assert.Equal(t, entity.StatusPending, saved.Status)
			}

			docsMock.AssertExpectations(t)
			ledgerMock.AssertExpectations(t)
		})
	}
}

func TestDocumentService_StudentDocuments(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	payload := []byte("0123456789")

	docsMock := new(mockDocumentStorage)
	listCache := cache.NewStructuredCache()
	svc := NewDocumentService(docsMock, new(mockLedger), new(mockWatermarker), listCache)

	stored := []*entity.Document{{
		ID:        uuid.New(),
		StudentID: studentID,
		FileData:  payload,
		FileType:  "image/png",
		Status:    entity.StatusPending,
	}}
	docsMock.On("GetDocsByStudent", ctx, studentID).Return(stored, nil).Once()

	out, err := svc.StudentDocuments(ctx, studentID)
	require.NoError(t, err)

	var views []response.StudentDocument
	require.NoError(t, json.Unmarshal(out, &views))
	require.Len(t, views, 1)
	assert.Equal(t, stored[0].ID, views[0].ID)
	assert.Equal(t, "Pending", views[0].Status)
	assert.Equal(t, "image/png", views[0].FileType)

	decoded, err := base64.StdEncoding.DecodeString(views[0].FileData)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)

	// second call is served from the cache, storage not touched again
	cachedOut, err := svc.StudentDocuments(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(out), cachedOut)

	docsMock.AssertExpectations(t)
}

func TestDocumentService_AllDocuments(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()

	docsMock := new(mockDocumentStorage)
	svc := NewDocumentService(docsMock, new(mockLedger), new(mockWatermarker), cache.NewStructuredCache())

	stored := []*entity.Document{{
		ID:        uuid.New(),
		StudentID: studentID,
		FileData:  []byte("payload"),
		FileType:  "application/pdf",
		Status:    entity.StatusVerified,
		Student: &entity.User{
			ID:        studentID,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
	}}
	docsMock.On("GetAllDocs", ctx).Return(stored, nil).Once()

	out, err := svc.AllDocuments(ctx)
	require.NoError(t, err)

	var views []response.AdminDocument
	require.NoError(t, json.Unmarshal(out, &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Ada", views[0].Student.FirstName)
	assert.Equal(t, "ada@example.com", views[0].Student.Email)
	assert.Equal(t, "Verified", views[0].Status)

	docsMock.AssertExpectations(t)
}

func TestDocumentService_Verify(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()
	studentID := uuid.New()
	original := []byte("original payload")
	watermarked := []byte("watermarked payload")

	t.Run("pending document becomes verified with mutated payload", func(t *testing.T) {
		docsMock := new(mockDocumentStorage)
		wmMock := new(mockWatermarker)
		svc := NewDocumentService(docsMock, new(mockLedger), wmMock, cache.NewStructuredCache())

		docsMock.On("GetDoc", ctx, docID).Return(&entity.Document{
			ID:        docID,
			StudentID: studentID,
			FileData:  original,
			FileType:  "image/png",
			Status:    entity.StatusPending,
		}, nil).Once()
		wmMock.On("Apply", original, "image/png").Return(watermarked, nil).Once()

		var updated *entity.Document
		docsMock.On("UpdateDoc", ctx, mock.AnythingOfType("*entity.Document")).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(*entity.Document)
			}).Return(nil).Once()

		require.NoError(t, svc.Verify(ctx, docID))
		require.NotNil(t, updated)
		assert.Equal(t, entity.StatusVerified, updated.Status)
		assert.Equal(t, watermarked, updated.FileData)

		docsMock.AssertExpectations(t)
		wmMock.AssertExpectations(t)
	})

	t.Run("missing document keeps its 404", func(t *testing.T) {
		docsMock := new(mockDocumentStorage)
		wmMock := new(mockWatermarker)
		svc := NewDocumentService(docsMock, new(mockLedger), wmMock, cache.NewStructuredCache())

		docsMock.On("GetDoc", ctx, docID).Return(nil, appError.NotFound("Document not found")).Once()

		err := svc.Verify(ctx, docID)
		require.Error(t, err)
		appErr, ok := err.(appError.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Code())
		wmMock.AssertNotCalled(t, "Apply")
	})

	t.Run("watermark failure reports the generic message, nothing saved", func(t *testing.T) {
		docsMock := new(mockDocumentStorage)
		wmMock := new(mockWatermarker)
		svc := NewDocumentService(docsMock, new(mockLedger), wmMock, cache.NewStructuredCache())

		docsMock.On("GetDoc", ctx, docID).Return(&entity.Document{
			ID:       docID,
			FileData: original,
			FileType: "text/plain",
			Status:   entity.StatusPending,
		}, nil).Once()
		wmMock.On("Apply", original, "text/plain").Return(nil, errors.New("unsupported file type")).Once()

		err := svc.Verify(ctx, docID)
		require.Error(t, err)
		appErr, ok := err.(appError.AppError)
		require.True(t, ok)
		assert.Equal(t, 500, appErr.Code())
		assert.Equal(t, "Document verification failed", appErr.Error())
		docsMock.AssertNotCalled(t, "UpdateDoc")
	})
}

func TestDocumentService_Reject(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()
	studentID := uuid.New()

	t.Run("document is removed", func(t *testing.T) {
		docsMock := new(mockDocumentStorage)
		svc := NewDocumentService(docsMock, new(mockLedger), new(mockWatermarker), cache.NewStructuredCache())

		docsMock.On("GetDoc", ctx, docID).Return(&entity.Document{
			ID:        docID,
			StudentID: studentID,
		}, nil).Once()
		docsMock.On("DeleteDoc", ctx, docID).Return(nil).Once()

		require.NoError(t, svc.Reject(ctx, docID))
		docsMock.AssertExpectations(t)
	})

	t.Run("missing document returns 404", func(t *testing.T) {
		docsMock := new(mockDocumentStorage)
		svc := NewDocumentService(docsMock, new(mockLedger), new(mockWatermarker), cache.NewStructuredCache())

		docsMock.On("GetDoc", ctx, docID).Return(nil, appError.NotFound("Document not found")).Once()

		err := svc.Reject(ctx, docID)
		require.Error(t, err)
		appErr, ok := err.(appError.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Code())
		docsMock.AssertNotCalled(t, "DeleteDoc")
	})
}

func TestDocumentService_UploadInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	payload := []byte("payload one")

	docsMock := new(mockDocumentStorage)
	ledgerMock := new(mockLedger)
	listCache := cache.NewStructuredCache()
	svc := NewDocumentService(docsMock, ledgerMock, new(mockWatermarker), listCache)

	docsMock.On("GetDocsByStudent", ctx, studentID).Return([]*entity.Document{}, nil).Twice()
	_, err := svc.StudentDocuments(ctx, studentID)
	require.NoError(t, err)
	_, cached := listCache.GetStudentList(studentID.String())
	require.True(t, cached)

	ledgerMock.On("SubmitDocument", ctx, payloadDigest(payload)).Return(true, nil).Once()
	docsMock.On("SaveDoc", ctx, mock.AnythingOfType("*entity.Document")).Return(nil).Once()
	_, err = svc.Upload(ctx, studentID, payload, "image/png")
	require.NoError(t, err)

	_, cached = listCache.GetStudentList(studentID.String())
	assert.False(t, cached)

	// list is rebuilt from storage after invalidation
	_, err = svc.StudentDocuments(ctx, studentID)
	require.NoError(t, err)
	docsMock.AssertExpectations(t)
}
