package main

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// documentStore keeps the text of open documents by URI.
type documentStore struct {
	mu   sync.Mutex
	docs map[string]string
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[string]string)}
}

func (s *documentStore) open(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[uri] = text
}

func (s *documentStore) close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, uri)
}

func (s *documentStore) get(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.docs[uri]
	return text, ok
}

// change applies changes to an open document. It returns false if the
// document is unknown.
func (s *documentStore) change(uri string, changes []any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.docs[uri]
	if !ok {
		return false
	}

	for _, change := range changes {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = change.Text

		case protocol.TextDocumentContentChangeEvent:
			startIndex, endIndex := change.Range.IndexesIn(content)
			content = content[:startIndex] + change.Text + content[endIndex:]
		}
	}

	s.docs[uri] = content
	return true
}
