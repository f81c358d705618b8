package seed_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/library-service/internal/seed"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Emma":                   "emma",
		"The Tragedie of Hamlet": "the-tragedie-of-hamlet",
		"Alice's Adventures":     "alices-adventures",
		"moby_dick.txt":          "moby-dick-txt",
		"Poems, Volume I":        "poems-volume-i",
	}
	for in, want := range cases {
		assert.Equal(t, want, seed.Slugify(in), in)
	}
}

func TestParseMetadata_FullHeader(t *testing.T) {
	md := seed.ParseMetadata("[Emma by Jane Austen 1816]\r")
	assert.Equal(t, "Emma", md.Title)
	assert.Equal(t, "emma", md.Slug)
	require.NotNil(t, md.Author)
	assert.Equal(t, "Jane Austen", *md.Author)
	require.NotNil(t, md.PubYear)
	assert.Equal(t, 1816, *md.PubYear)
}

func TestParseMetadata_NoYear(t *testing.T) {
	md := seed.ParseMetadata("[The Man Who Was Thursday by G. K. Chesterton]")
	assert.Equal(t, "The Man Who Was Thursday", md.Title)
	require.NotNil(t, md.Author)
	assert.Equal(t, "G. K. Chesterton", *md.Author)
	assert.Nil(t, md.PubYear)
}

func TestParseMetadata_CommaBeforeBy(t *testing.T) {
	md := seed.ParseMetadata("[Paradise Lost, by John Milton 1667]")
	assert.Equal(t, "Paradise Lost", md.Title)
	require.NotNil(t, md.Author)
	assert.Equal(t, "John Milton", *md.Author)
}

func TestParseMetadata_Fallback(t *testing.T) {
	md := seed.ParseMetadata("[The King James Bible]")
	assert.Equal(t, "The King James Bible", md.Title)
	assert.Equal(t, "the-king-james-bible", md.Slug)
	assert.Nil(t, md.Author)
	assert.Nil(t, md.PubYear)
}

func TestSplitPages(t *testing.T) {
	text := strings.Join([]string{"a\r", "b", "c", "d", "e"}, "\n")
	pages := seed.SplitPages(text, 2)
	assert.Equal(t, []string{"a \nb", "c\nd", "e"}, pages)

	assert.Equal(t, []string{"only"}, seed.SplitPages("only", 50))
}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	return dir
}

func lines(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = "line"
	}
	return strings.Join(out, "\n")
}

func TestBuildBooksAndPages(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"austen-emma.txt":  "[Emma by Jane Austen 1816]\n" + lines(9),
		"bible-kjv.txt":    "[The King James Bible]\n" + lines(2),
		"README":           "corpus readme",
		"README.gutenberg": "more readme",
	})

	books, err := seed.BuildBooks(dir)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "austen-emma.txt", books[0].File)
	assert.Equal(t, "Emma", books[0].Title)
	assert.Equal(t, "bible-kjv.txt", books[1].File)
	assert.NotEqual(t, books[0].ID, books[1].ID)

	pages, err := seed.BuildPages(dir, books, 4)
	require.NoError(t, err)
	// emma: 10 lines -> 3 pages, bible: 3 lines -> 1 page
	assert.Equal(t, 3, books[0].PageCount)
	assert.Equal(t, 1, books[1].PageCount)
	require.Len(t, pages, 4)
	assert.Equal(t, books[0].ID, pages[0].BookID)
	assert.Equal(t, []int{1, 2, 3, 1}, []int{pages[0].PageNumber, pages[1].PageNumber, pages[2].PageNumber, pages[3].PageNumber})
	assert.Equal(t, "line\nline", pages[2].Body)
}

func TestBuildPages_Errors(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "[A by B 1]"})
	books, err := seed.BuildBooks(dir)
	require.NoError(t, err)

	_, err = seed.BuildPages(dir, books, 0)
	assert.Error(t, err)

	books[0].File = "missing.txt"
	_, err = seed.BuildPages(dir, books, 10)
	assert.Error(t, err)

	_, err = seed.BuildBooks(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
