package pagination_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/library-service/internal/pagination"
)

const root = "http://library.test"

func newBuilder(t *testing.T) *pagination.Builder {
	t.Helper()
	b, err := pagination.NewBuilder(10, root)
	require.NoError(t, err)
	return b
}

func ptr(s string) *string { return &s }

func TestNewBuilder_RejectsNonPositivePageSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := pagination.NewBuilder(n, root)
		assert.ErrorIs(t, err, pagination.ErrInvalidPageSize)
	}
}

func TestBuild_ZeroCount(t *testing.T) {
	b := newBuilder(t)
	for _, page := range []int{-1, 0, 1, 7} {
		env := pagination.Build(b, 0, "/books", page, ints(30))
		assert.Equal(t, pagination.Envelope[int]{Data: []int{}}, env)
	}
}

func TestBuild_FirstPage(t *testing.T) {
	env := pagination.Build(newBuilder(t), 30, "/books", 1, ints(30))
	assert.Equal(t, 30, env.Items)
	assert.Equal(t, 3, env.Pages)
	assert.Equal(t, 1, env.Current)
	assert.Nil(t, env.Previous)
	assert.Equal(t, ptr(root+"/books?page=2"), env.Next)
	assert.Equal(t, ints(10), env.Data)
}

func TestBuild_SecondPage_PreviousOmitsPageOne(t *testing.T) {
	env := pagination.Build(newBuilder(t), 30, "/books", 2, ints(30))
	assert.Equal(t, 2, env.Current)
	assert.Equal(t, ptr(root+"/books"), env.Previous)
	assert.Equal(t, ptr(root+"/books?page=3"), env.Next)
	assert.Equal(t, ints(30)[10:20], env.Data)
}

func TestBuild_LastPage(t *testing.T) {
	env := pagination.Build(newBuilder(t), 30, "/books", 3, ints(30))
	assert.Equal(t, 3, env.Current)
	assert.Equal(t, ptr(root+"/books?page=2"), env.Previous)
	assert.Nil(t, env.Next)
	assert.Equal(t, ints(30)[20:], env.Data)
}

func TestBuild_ClampsPastLastPage(t *testing.T) {
	env := pagination.Build(newBuilder(t), 30, "/books", 5, ints(30))
	assert.Equal(t, 3, env.Pages)
	assert.Equal(t, 3, env.Current)
	assert.Equal(t, ptr(root+"/books?page=2"), env.Previous)
	assert.Nil(t, env.Next)
	assert.Equal(t, ints(30)[20:], env.Data)
}

// The link asymmetry is relied upon by the reader client: next always carries ?page=,
// previous drops it only when pointing at page 1.
func TestBuild_LinkAsymmetry(t *testing.T) {
	b := newBuilder(t)

	twoPages := pagination.Build(b, 20, "/pages", 1, ints(20))
	assert.Equal(t, ptr(root+"/pages?page=2"), twoPages.Next, "next to the last page keeps the query param")

	back := pagination.Build(b, 20, "/pages", 2, ints(20))
	assert.Equal(t, ptr(root+"/pages"), back.Previous, "previous to page 1 drops the query param")

	deep := pagination.Build(b, 50, "/pages", 4, ints(50))
	assert.Equal(t, ptr(root+"/pages?page=3"), deep.Previous)
	assert.Equal(t, ptr(root+"/pages?page=5"), deep.Next)
}

func TestBuild_SinglePage(t *testing.T) {
	env := pagination.Build(newBuilder(t), 4, "/books/search", 1, ints(4))
	assert.Equal(t, 1, env.Pages)
	assert.Nil(t, env.Previous)
	assert.Nil(t, env.Next)
	assert.Equal(t, ints(4), env.Data)
}

func TestBuild_PageBelowOneReadsAsFirst(t *testing.T) {
	first := pagination.Build(newBuilder(t), 30, "/books", 1, ints(30))
	for _, page := range []int{0, -3} {
		env := pagination.Build(newBuilder(t), 30, "/books", page, ints(30))
		assert.Equal(t, first, env, "page %d", page)
		assert.Equal(t, 1, env.Current)
		assert.Nil(t, env.Previous)
		assert.Equal(t, ptr(root+"/books?page=2"), env.Next)
	}
}

func TestBuild_CountPreservedAsGiven(t *testing.T) {
	env := pagination.Build(newBuilder(t), 999, "/books", 1, ints(15))
	assert.Equal(t, 999, env.Items)
	assert.Equal(t, 2, env.Pages)
}

func TestBuild_NonZeroCountEmptyItems(t *testing.T) {
	env := pagination.Build(newBuilder(t), 3, "/books", 1, []int{})
	assert.Equal(t, 3, env.Items)
	assert.Equal(t, 0, env.Pages)
	assert.Equal(t, 0, env.Current)
	assert.Nil(t, env.Previous)
	assert.Nil(t, env.Next)
	assert.Equal(t, []int{}, env.Data)
}

func TestBuild_EmptyRootURL(t *testing.T) {
	b, err := pagination.NewBuilder(10, "")
	require.NoError(t, err)
	env := pagination.Build(b, 30, "/books", 2, ints(30))
	assert.Equal(t, ptr("/books"), env.Previous)
	assert.Equal(t, ptr("/books?page=3"), env.Next)
}

func TestEnvelope_JSONShape(t *testing.T) {
	b := newBuilder(t)

	raw, err := json.Marshal(pagination.Build(b, 0, "/books", 1, []int{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":0,"pages":0,"current":0,"previous":null,"next":null,"data":[]}`, string(raw))

	raw, err = json.Marshal(pagination.Build(b, 12, "/books", 2, ints(12)))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"items":12,"pages":2,"current":2,"previous":"http://library.test/books","next":null,"data":[10,11]}`,
		string(raw))
}
