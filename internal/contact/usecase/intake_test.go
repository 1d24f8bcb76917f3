package usecase_test

import (
	"context"
	"testing"
	"time"

	"sharvari-site/internal/contact/domain/model"
	"sharvari-site/internal/contact/usecase"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/validation"
	"sharvari-site/internal/store/adapter/persistence/memory"
	storemodel "sharvari-site/internal/store/domain/model"
	storeusecase "sharvari-site/internal/store/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() model.Submission {
	return model.Submission{
		Name:    "Asha Patil",
		Email:   "asha@example.com",
		Mobile:  "9876543210",
		Message: "Need a quote for a 33kV substation.",
	}
}

func newIntake() (*usecase.Intake, *memory.DocumentRepository) {
	docs := memory.NewDocumentRepository()
	return usecase.NewIntake(storeusecase.NewClient(docs, nil, nil, nil), nil), docs
}

func count(t *testing.T, docs *memory.DocumentRepository) int {
	t.Helper()
	list, err := docs.List(context.Background(), model.Collection)
	require.NoError(t, err)
	return len(list)
}

func TestSubmit_AppendsOneMessage(t *testing.T) {
	intake, docs := newIntake()

	id, err := intake.Submit(context.Background(), valid())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, count(t, docs))

	stored, err := docs.Get(context.Background(), model.Collection, id)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", stored.Fields.String(model.FieldMobile))
	_, ok := stored.Fields.Time(storemodel.FieldCreatedAt)
	assert.True(t, ok)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Submission)
		field  string
		msg    string
	}{
		{"short mobile", func(s *model.Submission) { s.Mobile = "12345" }, "mobile", usecase.MsgInvalidMobile},
		{"mobile with letters", func(s *model.Submission) { s.Mobile = "98765abcde" }, "mobile", usecase.MsgInvalidMobile},
		{"empty mobile", func(s *model.Submission) { s.Mobile = "" }, "mobile", usecase.MsgInvalidMobile},
		{"bad email", func(s *model.Submission) { s.Email = "asha@example" }, "email", usecase.MsgInvalidEmail},
		{"empty email", func(s *model.Submission) { s.Email = "" }, "email", usecase.MsgInvalidEmail},
		{"missing name", func(s *model.Submission) { s.Name = "" }, "name", usecase.MsgFieldsRequired},
		{"missing message", func(s *model.Submission) { s.Message = "" }, "message", usecase.MsgFieldsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intake, docs := newIntake()
			sub := valid()
			tt.mutate(&sub)

			_, err := intake.Submit(context.Background(), sub)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Equal(t, tt.msg, validation.FieldErrors(err)[tt.field])
			assert.Equal(t, 0, count(t, docs))
		})
	}
}

func TestSubmit_StoreFailure(t *testing.T) {
	intake, docs := newIntake()
	docs.FailWith = assert.AnError

	_, err := intake.Submit(context.Background(), valid())
	require.Error(t, err)
	assert.True(t, errors.IsStore(err))
}

func TestList_NewestFirstUndatedLast(t *testing.T) {
	intake, docs := newIntake()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, docs.Set(ctx, model.Collection, "old", storemodel.Fields{"name": "old", storemodel.FieldCreatedAt: base}, false))
	require.NoError(t, docs.Set(ctx, model.Collection, "undated", storemodel.Fields{"name": "undated"}, false))
	require.NoError(t, docs.Set(ctx, model.Collection, "new", storemodel.Fields{"name": "new", storemodel.FieldCreatedAt: base.Add(time.Hour)}, false))

	msgs := intake.List(ctx)
	require.Len(t, msgs, 3)
	assert.Equal(t, "new", msgs[0].ID)
	assert.Equal(t, "old", msgs[1].ID)
	assert.Equal(t, "undated", msgs[2].ID)
	assert.Nil(t, msgs[2].CreatedAt)
}

func TestList_StoreFailureIsEmpty(t *testing.T) {
	intake, docs := newIntake()
	docs.FailWith = assert.AnError

	assert.Empty(t, intake.List(context.Background()))
}

func TestGet(t *testing.T) {
	intake, _ := newIntake()
	ctx := context.Background()

	id, err := intake.Submit(ctx, valid())
	require.NoError(t, err)

	msg, err := intake.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, "Asha Patil", msg.Name)

	_, err = intake.Get(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}
