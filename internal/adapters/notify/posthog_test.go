package notify_test

import (
	"context"
	"testing"

	"github.com/SscSPs/association_backoffice/internal/adapters/notify"
	"github.com/SscSPs/association_backoffice/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

func TestPosthogNotify_EnqueuesWithMemberID(t *testing.T) {
	queue := new(MockQueue)
	queue.On("Enqueue", "member-1", "payment_recorded", map[string]any{
		"amount":    "50.00",
		"member_id": "member-1",
	}).Once()

	props := map[string]any{"amount": "50.00"}
	notify.NewPosthog(queue).Notify(context.Background(), "member-1", "payment_recorded", props)

	queue.AssertExpectations(t)
	assert.NotContains(t, props, "member_id", "the caller's map is left alone")
}

func TestPosthogNotify_UninitializedClientIsSilent(t *testing.T) {
	wrapper := utils.InitializePosthogClient("", "", nil)
	assert.False(t, wrapper.IsInitialized())

	assert.NotPanics(t, func() {
		notify.NewPosthog(wrapper).Notify(context.Background(), "member-1", "payment_recorded", nil)
		var nilNotifier *notify.Posthog
		nilNotifier.Notify(context.Background(), "member-1", "payment_recorded", nil)
	})
}
