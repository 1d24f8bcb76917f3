package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/store/adapter/persistence/memory"
	"sharvari-site/internal/store/domain/model"
	"sharvari-site/internal/store/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDocumentRepository struct {
	mock.Mock
}

func (m *mockDocumentRepository) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *mockDocumentRepository) Set(ctx context.Context, collection, id string, fields model.Fields, merge bool) error {
	args := m.Called(ctx, collection, id, fields, merge)
	return args.Error(0)
}

func (m *mockDocumentRepository) Add(ctx context.Context, collection string, fields model.Fields) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *mockDocumentRepository) List(ctx context.Context, collection string) ([]*model.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Document), args.Error(1)
}

func (m *mockDocumentRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockDocumentRepository) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// recordingNotifier captures notifications in order.
type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (n *recordingNotifier) Success(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, message)
}

func (n *recordingNotifier) Error(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func TestGetDocument_NotFoundIsExpected(t *testing.T) {
	notifier := &recordingNotifier{}
	client := usecase.NewClient(memory.NewDocumentRepository(), notifier, nil, nil)

	_, err := client.GetDocument(context.Background(), "pages", "home")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, notifier.failures)
}

func TestGetDocument_StoreErrorNotifies(t *testing.T) {
	repo := &mockDocumentRepository{}
	repo.On("Get", mock.Anything, "pages", "home").Return(nil, errors.New("connection refused"))
	notifier := &recordingNotifier{}
	client := usecase.NewClient(repo, notifier, nil, nil)

	_, err := client.GetDocument(context.Background(), "pages", "home")
	require.Error(t, err)
	assert.True(t, apperrors.IsStore(err))
	assert.False(t, apperrors.IsNotFound(err))
	assert.Equal(t, []string{"Error fetching data: connection refused"}, notifier.failures)
	repo.AssertExpectations(t)
}

func TestGetDocument_InvalidRef(t *testing.T) {
	client := usecase.NewClient(memory.NewDocumentRepository(), nil, nil, nil)
	_, err := client.GetDocument(context.Background(), "pages", "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateDocument_MergesAndStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDocumentRepository()
	notifier := &recordingNotifier{}
	client := usecase.NewClient(repo, notifier, nil, nil)

	require.NoError(t, client.UpdateDocument(ctx, "settings", "general", model.Fields{"email": "a@b.co", "phone": "1"}))
	require.NoError(t, client.UpdateDocument(ctx, "settings", "general", model.Fields{"phone": "2"}))

	fields, err := client.GetDocument(ctx, "settings", "general")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", fields["email"])
	assert.Equal(t, "2", fields["phone"])
	_, ok := fields.Time(model.FieldUpdatedAt)
	assert.True(t, ok)
	assert.Equal(t, []string{usecase.MsgSaved, usecase.MsgSaved}, notifier.success)
}

func TestUpdateDocument_DoesNotMutateInput(t *testing.T) {
	repo := &mockDocumentRepository{}
	repo.On("Set", mock.Anything, "pages", "home", mock.MatchedBy(func(f model.Fields) bool {
		return model.IsServerTimestamp(f[model.FieldUpdatedAt]) && f["title"] == "Home"
	}), true).Return(nil)
	client := usecase.NewClient(repo, nil, nil, nil)

	in := model.Fields{"title": "Home"}
	require.NoError(t, client.UpdateDocument(context.Background(), "pages", "home", in))
	assert.NotContains(t, in, model.FieldUpdatedAt)
	repo.AssertExpectations(t)
}

func TestUpdateDocument_FailureNotifiesAndReturnsStoreError(t *testing.T) {
	repo := &mockDocumentRepository{}
	repo.On("Set", mock.Anything, "pages", "home", mock.Anything, true).Return(errors.New("permission denied"))
	notifier := &recordingNotifier{}
	client := usecase.NewClient(repo, notifier, nil, nil)

	err := client.UpdateDocument(context.Background(), "pages", "home", model.Fields{"title": "x"})
	assert.True(t, apperrors.IsStore(err))
	assert.Equal(t, []string{"Error updating data: permission denied"}, notifier.failures)
	assert.Empty(t, notifier.success)
}

func TestUpdateDocument_PublishesEvent(t *testing.T) {
	bus := eventbus.NewEventBus(nil)
	var got usecase.DocumentChange
	bus.Subscribe(eventbus.EventTypeDocumentUpdated, func(ctx context.Context, event eventbus.Event) error {
		got = event.Data().(usecase.DocumentChange)
		return nil
	})
	client := usecase.NewClient(memory.NewDocumentRepository(), nil, bus, nil)

	require.NoError(t, client.UpdateDocument(context.Background(), "settings", "general", model.Fields{"email": "x@y.co"}))
	assert.Equal(t, "settings", got.Collection)
	assert.Equal(t, "general", got.ID)
	assert.Equal(t, "x@y.co", got.Fields["email"])
}

func TestAddDocument_StampsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDocumentRepository()
	notifier := &recordingNotifier{}
	client := usecase.NewClient(repo, notifier, nil, nil)

	id, err := client.AddDocument(ctx, "messages", model.Fields{"name": "Asha"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fields, err := client.GetDocument(ctx, "messages", id)
	require.NoError(t, err)
	_, ok := fields.Time(model.FieldCreatedAt)
	assert.True(t, ok)
	assert.Equal(t, []string{usecase.MsgSubmitted}, notifier.success)
}

func TestAddDocument_Failure(t *testing.T) {
	repo := &mockDocumentRepository{}
	repo.On("Add", mock.Anything, "messages", mock.Anything).Return("", errors.New("quota"))
	notifier := &recordingNotifier{}
	client := usecase.NewClient(repo, notifier, nil, nil)

	_, err := client.AddDocument(context.Background(), "messages", model.Fields{})
	assert.True(t, apperrors.IsStore(err))
	assert.Equal(t, []string{"Error submitting data: quota"}, notifier.failures)
}

func TestGetCollection_FailsSoft(t *testing.T) {
	repo := &mockDocumentRepository{}
	repo.On("List", mock.Anything, "messages").Return(nil, errors.New("timeout"))
	notifier := &recordingNotifier{}
	client := usecase.NewClient(repo, notifier, nil, nil)

	docs := client.GetCollection(context.Background(), "messages")
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
	assert.Equal(t, []string{"Error fetching collection: timeout"}, notifier.failures)
}

func TestGetCollection_TagsIDs(t *testing.T) {
	ctx := context.Background()
	client := usecase.NewClient(memory.NewDocumentRepository(), nil, nil, nil)
	id, err := client.AddDocument(ctx, "messages", model.Fields{"name": "A"})
	require.NoError(t, err)

	docs := client.GetCollection(ctx, "messages")
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Equal(t, "A", docs[0].Fields["name"])
}
