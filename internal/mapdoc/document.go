// Package mapdoc acquires level documents and exposes the element walks and
// attribute helpers the scene extractors are built on.
package mapdoc

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
)

// ErrDocument is returned when a level file is missing, unreadable, or malformed.
var ErrDocument = errors.New("level document error")

// Document is a parsed level file.
type Document struct {
	// Path is the resolved file path, or a caller-supplied name for in-memory documents.
	Path string
	doc  *etree.Document
}

// Load joins levelPath onto dataDir, reads the file, and parses it.
//
// Precondition: dataDir is the data root supplied by the environment.
// Postcondition: Returns a Document with a root element, or an error wrapping ErrDocument.
func Load(dataDir, levelPath string) (*Document, error) {
	path := filepath.Join(dataDir, levelPath)
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDocument, path, err)
	}
	return newDocument(path, doc)
}

// Parse parses level content already held in memory. name is used in error
// messages only.
//
// Postcondition: Returns a Document with a root element, or an error wrapping ErrDocument.
func Parse(name string, data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDocument, name, err)
	}
	return newDocument(name, doc)
}

func newDocument(path string, doc *etree.Document) (*Document, error) {
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s has no root element", ErrDocument, path)
	}
	return &Document{Path: path, doc: doc}, nil
}

// Root returns the first top-level element. Every extraction starts here.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}
