package records

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	values := map[string]string{"{{Company}}": "Acme"}
	r, err := NewRecord("templates/letter.docx", "out/letter.docx", "placeholders/_ph_letter.json", values)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, values, r.Placeholders)

	// the record keeps its own copy
	values["{{Company}}"] = "Globex"
	assert.Equal(t, "Acme", r.Placeholders["{{Company}}"])
}

func TestStore_AppendAndList(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "docs", "records.jsonl"))

	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	first, err := NewRecord("letter.docx", "a.docx", "", map[string]string{"{{A}}": "1"})
	require.NoError(t, err)
	second, err := NewRecord("resume.docx", "b.docx", "", nil)
	require.NoError(t, err)
	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	list, err = store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "1", list[0].Placeholders["{{A}}"])
	assert.Equal(t, second.ID, list[1].ID)
	assert.True(t, first.CreatedAt.Equal(list[0].CreatedAt))
}

func TestStore_ListMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("\n{\"template\":\"a\"}\nnot json\n"), 0o644))

	_, err := NewStore(path).List()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestStore_ForTemplate(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "records.jsonl"))
	for _, tmpl := range []string{"/a/letter.docx", "/b/resume.docx", "letter.docx"} {
		r, err := NewRecord(tmpl, "out.docx", "", nil)
		require.NoError(t, err)
		require.NoError(t, store.Append(r))
	}

	got, err := store.ForTemplate("templates/letter.docx")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_Get(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "records.jsonl"))
	a := &Record{ID: uuid.MustParse("11111111-1111-4111-8111-111111111111"), Template: "a"}
	b := &Record{ID: uuid.MustParse("11112222-2222-4222-8222-222222222222"), Template: "b"}
	require.NoError(t, store.Append(a))
	require.NoError(t, store.Append(b))

	got, err := store.Get("111111")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Template)

	got, err = store.Get(b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "b", got.Template)

	_, err = store.Get("1111")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = store.Get("ffff")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ConcurrentAppend(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "records.jsonl"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := NewRecord("t.docx", "o.docx", "", map[string]string{"{{x}}": "y"})
			assert.NoError(t, err)
			assert.NoError(t, store.Append(r))
		}()
	}
	wg.Wait()

	list, err := store.List()
	require.NoError(t, err)
	assert.Len(t, list, 10)
}
