// Package model contains domain entities shared across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "github.com/google/uuid"

// Book is one corpus text. Author and publication year are optional because
// not every corpus header carries them.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Author    *string   `json:"author"`
	PubYear   *int      `json:"pub_year"`
	PageCount int       `json:"page_count"`
	File      string    `json:"file"`
}

// Page is a fixed-size slice of a book's paragraphs, numbered from 1.
type Page struct {
	ID         uuid.UUID `json:"id"`
	PageNumber int       `json:"page_number"`
	Body       string    `json:"body"`
	BookID     uuid.UUID `json:"book_id"`
}
