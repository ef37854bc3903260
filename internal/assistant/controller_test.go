package assistant

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivajik34/aifastcommerce/internal/agent"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

func messageEvent(msg domain.Message) agent.Event {
	return agent.Event{Message: &msg}
}

func interruptEvent(action string, args map[string]any, description string) agent.Event {
	return agent.Event{Update: agent.InterruptUpdate(action, args, description)}
}

type controllerDeps struct {
	runtime     *fakeRuntime
	sessions    *memSessions
	checkpoints *memCheckpoints
	interrupts  *memInterrupts
	notifier    *capturingNotifier
}

func newTestController(runtime *fakeRuntime) (*Controller, *controllerDeps) {
	deps := &controllerDeps{
		runtime:     runtime,
		sessions:    newMemSessions(),
		checkpoints: newMemCheckpoints(),
		interrupts:  newMemInterrupts(),
		notifier:    &capturingNotifier{},
	}
	c := NewController(deps.runtime, deps.sessions, deps.checkpoints, deps.interrupts, deps.notifier)
	return c, deps
}

func TestControllerChat(t *testing.T) {
	t.Parallel()

	t.Run("creates session and extracts answer", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{events: []agent.Event{
			messageEvent(human("price of WS12?")),
			messageEvent(assistantMsg("supervisor", "Transferring to catalog_supervisor")),
			messageEvent(assistantMsg("product_agent", "Radiant Tee costs $22.00.")),
		}}
		c, deps := newTestController(runtime)
		sessionID := uuid.New()

		result, err := c.Chat(t.Context(), sessionID, "price of WS12?")
		require.NoError(t, err)
		assert.Equal(t, "Radiant Tee costs $22.00.", result.Response)
		assert.Nil(t, result.Interrupt)

		session, err := deps.sessions.GetByID(t.Context(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionStatusRunning, session.Status)
		assert.Equal(t, "price of WS12?", session.Title)
	})

	t.Run("narration-only run still answers", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{events: []agent.Event{
			messageEvent(assistantMsg("supervisor", "Transferring to sales_supervisor")),
		}}
		c, _ := newTestController(runtime)

		result, err := c.Chat(t.Context(), uuid.New(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "Transferring to sales_supervisor", result.Response)
	})

	t.Run("empty run yields fallback literal", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestController(&fakeRuntime{})

		result, err := c.Chat(t.Context(), uuid.New(), "hi")
		require.NoError(t, err)
		assert.Equal(t, NoMeaningfulResponse, result.Response)
	})

	t.Run("interrupt pauses session and notifies", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{events: []agent.Event{
			messageEvent(assistantMsg("supervisor", "Transferring to catalog_supervisor")),
			interruptEvent("delete_product", map[string]any{"sku": "OLD-1"}, "Permanently delete a product from the catalog."),
		}}
		c, deps := newTestController(runtime)
		sessionID := uuid.New()

		result, err := c.Chat(t.Context(), sessionID, "delete OLD-1")
		require.NoError(t, err)
		require.NotNil(t, result.Interrupt)
		assert.Equal(t, "delete_product", result.Interrupt.Interruption.Type)
		assert.Equal(t, map[string]any{"sku": "OLD-1"}, result.Interrupt.Interruption.Args)
		assert.Empty(t, result.Response)

		session, err := deps.sessions.GetByID(t.Context(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionStatusPaused, session.Status)

		pending, err := deps.interrupts.GetPending(t.Context(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, "delete_product", pending.Action)

		require.Len(t, deps.notifier.cards, 1)
	})

	t.Run("chat while paused is rejected", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{events: []agent.Event{
			interruptEvent("cancel_order", map[string]any{"order_id": 7.0}, "Cancel an order by its numeric entity ID."),
		}}
		c, _ := newTestController(runtime)
		sessionID := uuid.New()

		_, err := c.Chat(t.Context(), sessionID, "cancel order 7")
		require.NoError(t, err)

		_, err = c.Chat(t.Context(), sessionID, "and also this")
		assert.ErrorIs(t, err, domain.ErrInterruptPending)
	})

	t.Run("runtime error surfaces", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{events: []agent.Event{
			{Err: errors.New("model unavailable")},
		}}
		c, _ := newTestController(runtime)

		_, err := c.Chat(t.Context(), uuid.New(), "hi")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model unavailable")
	})
}

func TestSessionTitle(t *testing.T) {
	t.Parallel()

	t.Run("short message passes through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "price of WS12?", sessionTitle("price of WS12?"))
	})

	t.Run("long ascii message truncates to the limit", func(t *testing.T) {
		t.Parallel()

		message := strings.Repeat("a", 200)
		title := sessionTitle(message)
		assert.Equal(t, strings.Repeat("a", 80), title)
	})

	t.Run("multi-byte message truncates on a rune boundary", func(t *testing.T) {
		t.Parallel()

		message := strings.Repeat("ปรับราคา", 30)
		title := sessionTitle(message)
		assert.True(t, utf8.ValidString(title))
		assert.Equal(t, 80, utf8.RuneCountInString(title))
		assert.True(t, strings.HasPrefix(message, title))
	})

	t.Run("created session keeps a valid utf-8 title", func(t *testing.T) {
		t.Parallel()

		c, deps := newTestController(&fakeRuntime{})
		sessionID := uuid.New()
		message := strings.Repeat("ราคาสินค้า 12? ", 20)

		_, err := c.Chat(t.Context(), sessionID, message)
		require.NoError(t, err)

		session, err := deps.sessions.GetByID(t.Context(), sessionID)
		require.NoError(t, err)
		assert.True(t, utf8.ValidString(session.Title))
		assert.LessOrEqual(t, utf8.RuneCountInString(session.Title), 80)
	})
}

func TestControllerResume(t *testing.T) {
	t.Parallel()

	pauseSession := func(t *testing.T, c *Controller, runtime *fakeRuntime) uuid.UUID {
		t.Helper()
		runtime.mu.Lock()
		runtime.events = []agent.Event{
			interruptEvent("delete_product", map[string]any{"sku": "OLD-1"}, "Confirm deletion"),
		}
		runtime.mu.Unlock()

		sessionID := uuid.New()
		result, err := c.Chat(t.Context(), sessionID, "delete OLD-1")
		require.NoError(t, err)
		require.NotNil(t, result.Interrupt)
		return sessionID
	}

	t.Run("accept resumes and resolves", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{}
		c, deps := newTestController(runtime)
		sessionID := pauseSession(t, c, runtime)

		runtime.mu.Lock()
		runtime.events = []agent.Event{
			messageEvent(assistantMsg("product_agent", "Product OLD-1 has been deleted.")),
		}
		runtime.mu.Unlock()

		result, err := c.Resume(t.Context(), sessionID, domain.AcceptDecision())
		require.NoError(t, err)
		assert.Equal(t, "Product OLD-1 has been deleted.", result.Response)

		// The decision reached the runtime and the bookkeeping settled.
		require.Len(t, runtime.inputs, 2)
		require.NotNil(t, runtime.inputs[1].Resume)
		assert.Equal(t, domain.DecisionAccept, runtime.inputs[1].Resume.Type)
		assert.Equal(t, []domain.DecisionType{domain.DecisionAccept}, deps.interrupts.resolved)

		session, err := deps.sessions.GetByID(t.Context(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionStatusRunning, session.Status)
	})

	t.Run("second decision is rejected", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{}
		c, _ := newTestController(runtime)
		sessionID := pauseSession(t, c, runtime)

		runtime.mu.Lock()
		runtime.events = []agent.Event{
			messageEvent(assistantMsg("product_agent", "Done.")),
		}
		runtime.mu.Unlock()

		_, err := c.Resume(t.Context(), sessionID, domain.AcceptDecision())
		require.NoError(t, err)

		_, err = c.Resume(t.Context(), sessionID, domain.ResponseDecision("never mind"))
		assert.ErrorIs(t, err, domain.ErrNoInterruptPending)
	})

	t.Run("resume without pending interrupt fails", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestController(&fakeRuntime{})

		_, err := c.Resume(t.Context(), uuid.New(), domain.AcceptDecision())
		assert.ErrorIs(t, err, domain.ErrNoInterruptPending)
	})

	t.Run("resume can pause again immediately", func(t *testing.T) {
		t.Parallel()

		runtime := &fakeRuntime{}
		c, deps := newTestController(runtime)
		sessionID := pauseSession(t, c, runtime)

		runtime.mu.Lock()
		runtime.events = []agent.Event{
			interruptEvent("cancel_order", map[string]any{"order_id": 9.0}, "Confirm cancellation"),
		}
		runtime.mu.Unlock()

		result, err := c.Resume(t.Context(), sessionID, domain.AcceptDecision())
		require.NoError(t, err)
		require.NotNil(t, result.Interrupt)
		assert.Equal(t, "cancel_order", result.Interrupt.Interruption.Type)

		session, err := deps.sessions.GetByID(t.Context(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionStatusPaused, session.Status)

		pending, err := deps.interrupts.GetPending(t.Context(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, "cancel_order", pending.Action)
	})
}

func TestControllerHistoryAndDelete(t *testing.T) {
	t.Parallel()

	c, deps := newTestController(&fakeRuntime{events: []agent.Event{
		messageEvent(assistantMsg("product_agent", "Hi.")),
	}})
	sessionID := uuid.New()

	_, err := c.Chat(t.Context(), sessionID, "hello")
	require.NoError(t, err)

	require.NoError(t, deps.checkpoints.Save(t.Context(), &domain.Checkpoint{
		SessionID: sessionID,
		Messages:  []domain.Message{human("hello"), assistantMsg("product_agent", "Hi.")},
	}))

	history, err := c.History(t.Context(), sessionID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Content)

	require.NoError(t, c.DeleteSession(t.Context(), sessionID))

	_, err = c.History(t.Context(), sessionID)
	require.Error(t, err)
	_, err = deps.sessions.GetByID(t.Context(), sessionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPendingInterrupt(t *testing.T) {
	t.Parallel()

	runtime := &fakeRuntime{events: []agent.Event{
		interruptEvent("delete_category", map[string]any{"category_id": 5.0}, "Confirm"),
	}}
	c, _ := newTestController(runtime)
	sessionID := uuid.New()

	_, err := c.PendingInterrupt(t.Context(), sessionID)
	assert.ErrorIs(t, err, domain.ErrNoInterruptPending)

	_, err = c.Chat(t.Context(), sessionID, "delete category 5")
	require.NoError(t, err)

	card, err := c.PendingInterrupt(t.Context(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "delete_category", card.Interruption.Type)
	assert.Equal(t, "Confirm", card.Interruption.Message)
}
