package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cutdesk/internal/config"
	"cutdesk/internal/domain"
	"cutdesk/internal/ports"
	portsmocks "cutdesk/internal/ports/mocks"
)

func newTestServer(store ports.KeymapStore, settings *config.Settings) *Server {
	return &Server{
		newStore: func() (ports.KeymapStore, error) { return store, nil },
		sessions: make(map[string]*deskSession),
		settings: settings,
	}
}

func TestOpenSession_LoadsUserKeymap(t *testing.T) {
	store := portsmocks.NewMockKeymapStore(t)
	store.EXPECT().Get(mock.Anything, "ana").Return(&domain.UserKeymap{User: "ana", ActivePreset: "avid"}, nil)
	store.EXPECT().Close().Return(nil)

	friction := 0.5
	s := newTestServer(store, &config.Settings{Jog: &config.JogSettings{Friction: &friction}})

	desk, err := s.openSession(context.Background(), "ana")
	require.NoError(t, err)

	assert.NotEmpty(t, desk.id)
	assert.Equal(t, "ana", desk.user)
	assert.NotNil(t, desk.model)
	assert.Equal(t, 0.5, desk.engine.Config().Friction)
	assert.Contains(t, desk.model.View(), "avid")
	assert.Equal(t, 1, s.SessionCount())

	s.closeSession(desk.id)
	assert.Equal(t, 0, s.SessionCount())

	desk.engine.StartDrag(1, 0, 0, 0)
	assert.False(t, desk.engine.GetState().IsDragging, "closed sessions dispose their dial")

	done := make(chan struct{})
	go func() {
		desk.model.Init()()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("closed sessions must not leave the step waiter running")
	}

	s.closeSession(desk.id)
}

func TestOpenSession_FallsBackToDefaultPreset(t *testing.T) {
	store := portsmocks.NewMockKeymapStore(t)
	store.EXPECT().Get(mock.Anything, "bo").Return(nil, domain.ErrKeymapNotFound)

	s := newTestServer(store, &config.Settings{DefaultPreset: "resolve"})

	desk, err := s.openSession(context.Background(), "bo")
	require.NoError(t, err)
	assert.Contains(t, desk.model.View(), "resolve")
}

func TestOpenSession_StoreError(t *testing.T) {
	s := newTestServer(nil, &config.Settings{})
	s.newStore = func() (ports.KeymapStore, error) { return nil, errors.New("disk full") }

	_, err := s.openSession(context.Background(), "ana")

	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 0, s.SessionCount())
}

func TestApplySettings_UpdatesLiveSessions(t *testing.T) {
	store := portsmocks.NewMockKeymapStore(t)
	store.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, domain.ErrKeymapNotFound)

	s := newTestServer(store, &config.Settings{})
	first, err := s.openSession(context.Background(), "ana")
	require.NoError(t, err)
	second, err := s.openSession(context.Background(), "bo")
	require.NoError(t, err)

	dps := 30.0
	s.ApplySettings(&config.Settings{Jog: &config.JogSettings{DegreesPerStep: &dps}})

	assert.Equal(t, 30.0, first.engine.Config().DegreesPerStep)
	assert.Equal(t, 30.0, second.engine.Config().DegreesPerStep)
	assert.Equal(t, &dps, s.currentSettings().Jog.DegreesPerStep)

	s.ApplySettings(nil)
	assert.NotNil(t, s.currentSettings())
}
