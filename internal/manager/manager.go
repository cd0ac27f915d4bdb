package manager

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"wordcomplete/internal/delta"
)

var (
	ErrDocumentNotFound = errors.New("document not open")
	ErrDocumentOpen     = errors.New("document already open")
)

// DocumentManager holds the text of each open URI.
type DocumentManager struct {
	mu   sync.Mutex
	docs map[string]*Document
}

// NewDocumentManager creates an initialized DocumentManager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		docs: make(map[string]*Document),
	}
}

// Open starts tracking a document.
func (dm *DocumentManager) Open(uri string, text string) (*Document, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if _, ok := dm.docs[uri]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentOpen, uri)
	}
	doc := NewDocument(uri, text)
	dm.docs[uri] = doc
	return doc, nil
}

// Get returns the document for a URI.
func (dm *DocumentManager) Get(uri string) (*Document, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}
	return doc, nil
}

// ApplyChanges applies LSP content change events in order and returns one
// delta per event, each against the text left by the one before it.
func (dm *DocumentManager) ApplyChanges(uri string, changes []any) ([]*delta.Delta, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}

	deltas := make([]*delta.Delta, 0, len(changes))
	for _, change := range changes {
		dl, err := doc.Change(change)
		if err != nil {
			return deltas, err
		}
		deltas = append(deltas, dl)
	}
	return deltas, nil
}

// URIs returns the open URIs in sorted order.
func (dm *DocumentManager) URIs() []string {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	return slices.Sorted(maps.Keys(dm.docs))
}

// Release forgets the document for a URI.
func (dm *DocumentManager) Release(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.docs, uri)
}

// CloseAll forgets every document.
func (dm *DocumentManager) CloseAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.docs = make(map[string]*Document)
}
