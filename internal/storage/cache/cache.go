package cache

import (
	"sync"
)

type StructuredCache struct {
	mu sync.RWMutex

	studentDocs map[string][]byte
	adminDocs   []byte
}

type Cache interface {
	SetStudentList(studentID string, body []byte)
	GetStudentList(studentID string) ([]byte, bool)
	SetAdminList(body []byte)
	GetAdminList() ([]byte, bool)
	InvalidateStudent(studentID string)
}

func NewStructuredCache() *StructuredCache {
	return &StructuredCache{
		studentDocs: make(map[string][]byte),
	}
}

func (c *StructuredCache) SetStudentList(studentID string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.studentDocs[studentID] = body
}

func (c *StructuredCache) GetStudentList(studentID string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.studentDocs[studentID]
	return body, ok
}

func (c *StructuredCache) SetAdminList(body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adminDocs = body
}

func (c *StructuredCache) GetAdminList() ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.adminDocs == nil {
		return nil, false
	}
	return c.adminDocs, true
}

// InvalidateStudent drops the student's cached list and the admin
// list, since the admin view contains every student's documents.
func (c *StructuredCache) InvalidateStudent(studentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.studentDocs, studentID)
	c.adminDocs = nil
}
