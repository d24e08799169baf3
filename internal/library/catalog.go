// Package library manages the book catalog for the reader. Parsing real
// EPUB content is handled by an external engine; the catalog carries metadata
// and placeholder chapter text only.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

var ErrBookNotFound = errors.New("book not found")

// Chapter is one table-of-contents entry with its placeholder body.
type Chapter struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs,omitempty"`
}

// Book is a catalog entry.
type Book struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Chapters []Chapter `json:"chapters"`
}

// ChapterText renders the body of chapter i, or a pending-content notice for
// chapters the ingest pipeline has not filled in yet.
func (b Book) ChapterText(i int) string {
	if i < 0 || i >= len(b.Chapters) {
		return ""
	}
	ch := b.Chapters[i]
	if len(ch.Paragraphs) == 0 {
		return fmt.Sprintf("%s\n\n[content pending ingest]", ch.Title)
	}
	return ch.Title + "\n\n" + strings.Join(ch.Paragraphs, "\n\n")
}

// Catalog reads books from a JSON metadata file. A missing file serves the
// built-in sample shelf so a fresh deployment has something to browse.
type Catalog struct {
	path string
	mu   sync.Mutex
}

func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Books returns the catalog sorted by title.
func (c *Catalog) Books() ([]Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	books, err := c.readLocked()
	if err != nil {
		return nil, err
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

// ByID returns the book with the given id, or ErrBookNotFound.
func (c *Catalog) ByID(id string) (Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	books, err := c.readLocked()
	if err != nil {
		return Book{}, err
	}
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, fmt.Errorf("%w: %s", ErrBookNotFound, id)
}

func (c *Catalog) readLocked() ([]Book, error) {
	if c.path == "" {
		return sampleShelf(), nil
	}
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return sampleShelf(), nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return sampleShelf(), nil
	}
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", c.path, err)
	}
	return books, nil
}

func sampleShelf() []Book {
	return []Book{
		{
			ID:     "walden",
			Title:  "Walden",
			Author: "Henry David Thoreau",
			Chapters: []Chapter{
				{Title: "Economy", Paragraphs: []string{
					"When I wrote the following pages, or rather the bulk of them, I lived alone, in the woods, a mile from any neighbor, in a house which I had built myself, on the shore of Walden Pond.",
				}},
				{Title: "Where I Lived, and What I Lived For"},
				{Title: "Reading"},
				{Title: "Sounds"},
			},
		},
		{
			ID:     "meditations",
			Title:  "Meditations",
			Author: "Marcus Aurelius",
			Chapters: []Chapter{
				{Title: "Book One", Paragraphs: []string{
					"From my grandfather Verus I learned good morals and the government of my temper.",
				}},
				{Title: "Book Two"},
				{Title: "Book Three"},
			},
		},
		{
			ID:     "time-machine",
			Title:  "The Time Machine",
			Author: "H. G. Wells",
			Chapters: []Chapter{
				{Title: "Introduction"},
				{Title: "The Machine"},
				{Title: "The Time Traveller Returns"},
			},
		},
	}
}
