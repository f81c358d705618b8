// Package seed turns a directory of plain-text corpora into book and page records
// and loads them into the store.
package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/pagination"
)

// headerRe matches corpus headers such as "[Emma by Jane Austen 1816]".
var headerRe = regexp.MustCompile(`\[([',\-\w\s]+),? [bB]y ([.a-zA-Z\s]+) ?(\d+)?\]`)

var (
	slugSeparators = regexp.MustCompile(`[._ ]`)
	slugDropped    = strings.NewReplacer("'", "", ",", "")
	lineBreaks     = regexp.MustCompile(`[\r\n]+`)
)

// Metadata is what a corpus header line tells us about its book.
type Metadata struct {
	Title   string
	Slug    string
	Author  *string
	PubYear *int
}

// Slugify lowercases s, turns dots, underscores and spaces into dashes and drops quotes and commas.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugSeparators.ReplaceAllString(s, "-")
	return slugDropped.Replace(s)
}

// ParseMetadata reads title, author and year from a header line. Lines that don't follow
// the "[Title by Author Year]" convention become the title with brackets stripped.
func ParseMetadata(line string) Metadata {
	line = strings.ReplaceAll(line, "\r", "")
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		title := strings.TrimSpace(strings.NewReplacer("[", "", "]", "").Replace(line))
		return Metadata{Title: title, Slug: Slugify(title)}
	}

	title := strings.Replace(strings.TrimSpace(m[1]), ",", "", 1)
	md := Metadata{Title: title, Slug: Slugify(title)}
	if author := strings.TrimSpace(m[2]); author != "" {
		md.Author = &author
	}
	if m[3] != "" {
		if year, err := strconv.Atoi(m[3]); err == nil {
			md.PubYear = &year
		}
	}
	return md
}

// SplitPages cuts text into pages of paragraphsPerPage lines each. Line breaks left
// inside a line (CRLF files) collapse to a single space; lines are rejoined with "\n".
func SplitPages(text string, paragraphsPerPage int) []string {
	paragraphs := strings.Split(text, "\n")
	total := pagination.TotalPages(len(paragraphs), paragraphsPerPage)
	bodies := make([]string, 0, total)
	for j := 1; j <= total; j++ {
		chunk := lo.Map(pagination.Paginate(paragraphs, j, paragraphsPerPage), func(p string, _ int) string {
			return lineBreaks.ReplaceAllString(p, " ")
		})
		bodies = append(bodies, strings.Join(chunk, "\n"))
	}
	return bodies
}

// corpusFiles lists the regular, non-README files of dir in name order.
func corpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpora dir %s: %w", dir, err)
	}
	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), e.Type().IsRegular() && !strings.Contains(e.Name(), "README")
	})
	sort.Strings(files)
	return files, nil
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}

// BuildBooks reads the header of every corpus file into a Book with a fresh id.
// PageCount stays zero until BuildPages runs.
func BuildBooks(corporaDir string) ([]model.Book, error) {
	files, err := corpusFiles(corporaDir)
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(filepath.Join(corporaDir, f))
		if err != nil {
			return nil, fmt.Errorf("read book %s: %w", f, err)
		}
		md := ParseMetadata(firstLine(string(raw)))
		books = append(books, model.Book{
			ID:      uuid.New(),
			Title:   md.Title,
			Slug:    md.Slug,
			Author:  md.Author,
			PubYear: md.PubYear,
			File:    f,
		})
	}
	return books, nil
}

// BuildPages paginates the text of every book in books and sets each book's PageCount.
// Books whose file is missing from corporaDir are an error.
func BuildPages(corporaDir string, books []model.Book, paragraphsPerPage int) ([]model.Page, error) {
	if paragraphsPerPage <= 0 {
		return nil, pagination.ErrInvalidPageSize
	}
	var pages []model.Page
	for i := range books {
		b := &books[i]
		raw, err := os.ReadFile(filepath.Join(corporaDir, b.File))
		if err != nil {
			return nil, fmt.Errorf("read book %s: %w", b.File, err)
		}
		bodies := SplitPages(string(raw), paragraphsPerPage)
		b.PageCount = len(bodies)
		for n, body := range bodies {
			pages = append(pages, model.Page{
				ID:         uuid.New(),
				PageNumber: n + 1,
				Body:       body,
				BookID:     b.ID,
			})
		}
	}
	return pages, nil
}
