package model

import (
	"encoding/json"
	"testing"
	"time"

	"sharvari-site/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_CloneIsDeep(t *testing.T) {
	orig := Fields{
		"title": "Home",
		"sections": []interface{}{
			map[string]interface{}{"heading": "A"},
		},
		"columns": []string{"Client Name"},
	}
	cp := orig.Clone()
	cp["sections"].([]interface{})[0].(map[string]interface{})["heading"] = "B"
	cp["title"] = "Changed"

	assert.Equal(t, "Home", orig["title"])
	assert.Equal(t, "A", orig["sections"].([]interface{})[0].(map[string]interface{})["heading"])
	assert.Equal(t, []interface{}{"Client Name"}, cp["columns"])
	assert.Nil(t, Fields(nil).Clone())
}

func TestFields_Accessors(t *testing.T) {
	now := time.Now().UTC()
	f := Fields{"email": "a@b.co", "showHero": false, "createdAt": now, "stamp": now.Format(time.RFC3339Nano)}

	assert.Equal(t, "a@b.co", f.String("email"))
	assert.Equal(t, "", f.String("missing"))
	assert.False(t, f.Bool("showHero", true))
	assert.True(t, f.Bool("missing", true))

	got, ok := f.Time("createdAt")
	require.True(t, ok)
	assert.Equal(t, now, got)

	_, ok = f.Time("stamp")
	assert.True(t, ok)
	_, ok = f.Time("email")
	assert.False(t, ok)
}

func TestFields_MergeIsTopLevel(t *testing.T) {
	f := Fields{"email": "old@x.co", "phone": "1"}
	f.Merge(Fields{"email": "new@x.co", "address": "Pune"})
	assert.Equal(t, Fields{"email": "new@x.co", "phone": "1", "address": "Pune"}, f)
}

func TestServerTimestampSentinel(t *testing.T) {
	assert.True(t, IsServerTimestamp(ServerTimestamp))
	assert.False(t, IsServerTimestamp(time.Now()))
}

func TestValidateRef(t *testing.T) {
	assert.NoError(t, ValidateRef("pages", "home", true))
	assert.NoError(t, ValidateRef("messages", "", false))
	assert.ErrorIs(t, ValidateRef("", "home", true), errors.ErrInvalidCollectionID)
	assert.ErrorIs(t, ValidateRef("pages/x", "home", true), errors.ErrInvalidCollectionID)
	assert.ErrorIs(t, ValidateRef("pages", "", true), errors.ErrInvalidDocumentID)
	assert.ErrorIs(t, ValidateRef("pages", "a/b", true), errors.ErrInvalidDocumentID)
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc := &Document{ID: "m1", Collection: "messages", Fields: Fields{"name": "Asha"}}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m1","name":"Asha"}`, string(raw))
}
