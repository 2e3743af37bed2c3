package domain

import "strings"

// BookStatus represents the availability state of a catalog entry.
type BookStatus string

const (
	BookAvailable BookStatus = "available"
	BookBorrowed  BookStatus = "borrowed"
)

// MinPublicationYear is the earliest accepted publication year (movable type).
const MinPublicationYear = 1450

// Book is a single catalog entry. The status flag is a denormalized view of
// the loan ledger and is only ever written by the lending workflow.
type Book struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Title     string     `json:"title" bson:"title"`
	Author    string     `json:"author" bson:"author"`
	Year      int        `json:"year" bson:"year"`
	Publisher string     `json:"publisher" bson:"publisher"`
	Status    BookStatus `json:"status" bson:"status"`
}

// IsAvailable reports whether the book can currently be borrowed.
func (b *Book) IsAvailable() bool {
	return b.Status == BookAvailable
}

// SameEdition reports whether two catalog entries describe the same logical
// book. Equality is by descriptive fields only (case-insensitive), never by
// status, so a borrowed copy still counts as a duplicate of itself.
func (b *Book) SameEdition(other *Book) bool {
	return strings.EqualFold(b.Title, other.Title) &&
		strings.EqualFold(b.Author, other.Author) &&
		strings.EqualFold(b.Publisher, other.Publisher) &&
		b.Year == other.Year
}
