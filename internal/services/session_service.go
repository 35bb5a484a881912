package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"zoomdocs/internal/api"
	"zoomdocs/internal/events"
	"zoomdocs/internal/models"
)

// SessionState is the coarse lifecycle of the anonymous session.
type SessionState string

const (
	SessionUninitialized SessionState = "uninitialized"
	SessionBootstrapping SessionState = "bootstrapping"
	SessionReady         SessionState = "ready"
	SessionFailed        SessionState = "failed"
)

// LoadingStates mirrors the per-stage in-flight flags the UI renders spinners
// from.
type LoadingStates struct {
	Generating      bool `json:"generating"`
	Checking        bool `json:"checking"`
	Starting        bool `json:"starting"`
	FetchingCredits bool `json:"fetchingCredits"`
}

const creditsCacheKey = "credits"

// SessionService owns the bootstrap state machine: it establishes the
// anonymous identity pair, starts the server-side session and caches the
// credit balance. It never returns errors to its caller; the UI polls state.
type SessionService struct {
	api         api.API
	credentials CredentialStore
	log         *zap.Logger
	credits     *gocache.Cache

	mu          sync.RWMutex
	ctx         context.Context
	state       SessionState
	identity    models.Identity
	lastErr     string
	loading     LoadingStates
	initialized bool
}

func NewSessionService(apiClient api.API, credentials CredentialStore, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SessionService{
		api:         apiClient,
		credentials: credentials,
		log:         log,
		credits:     gocache.New(5*time.Minute, 10*time.Minute),
		state:       SessionUninitialized,
	}
	// Seed in-memory identity from durable storage so getters work before
	// Bootstrap has run.
	if id, err := credentials.Load(); err == nil {
		s.identity = id
	} else {
		log.Warn("failed to load stored identity", zap.Error(err))
	}
	return s
}

func (s *SessionService) Startup(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
}

// Bootstrap drives the startup chain: generate (if needed) -> check -> start
// -> fetch credits. It is idempotent: while a bootstrap is in flight, or once
// the session is initialized, further calls return the current state without
// issuing network traffic.
func (s *SessionService) Bootstrap() SessionState {
	s.mu.Lock()
	if s.state == SessionBootstrapping || s.initialized {
		st := s.state
		s.mu.Unlock()
		return st
	}
	s.state = SessionBootstrapping
	s.lastErr = ""
	id := s.identity
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	s.emit(ctx, events.NewInfo("session: bootstrap started"))

	if id.Complete() {
		s.verify(ctx, id, false)
	} else {
		s.regenerate(ctx)
	}
	return s.State()
}

// regenerate issues a fresh identity pair, persists it, then verifies it with
// regeneration disabled so a failing check cannot loop back here. This is the
// only place GenerateUser is called, and each bootstrap attempt reaches it at
// most twice: once directly, once via recover.
func (s *SessionService) regenerate(ctx context.Context) {
	s.setLoading(func(l *LoadingStates) { l.Generating = true })
	res, err := s.api.GenerateUser(ctx)
	s.setLoading(func(l *LoadingStates) { l.Generating = false })

	if err != nil {
		s.fail(ctx, fmt.Sprintf("generate identity: %v", err))
		return
	}
	if res.StatusCode != http.StatusOK || res.AuthID == "" || res.UserID == "" {
		s.fail(ctx, fmt.Sprintf("generate identity: unexpected response (status %d)", res.StatusCode))
		return
	}

	id := models.Identity{AuthID: res.AuthID, UserID: res.UserID}
	// Persist immediately, before validation, matching the server's
	// expectation that issued ids are kept even if a later stage fails.
	if err := s.credentials.Store(id); err != nil {
		s.log.Warn("failed to persist identity", zap.Error(err))
	}
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()

	s.verify(ctx, id, true)
}

// verify runs check -> start -> credits for an identity the service already
// holds. skipRegenerate carries the one-regeneration budget through the whole
// chain.
func (s *SessionService) verify(ctx context.Context, id models.Identity, skipRegenerate bool) {
	s.setLoading(func(l *LoadingStates) { l.Checking = true })
	check, err := s.api.CheckUser(ctx, id)
	s.setLoading(func(l *LoadingStates) { l.Checking = false })
	if err != nil {
		s.recover(ctx, skipRegenerate, fmt.Sprintf("check identity: %v", err))
		return
	}
	if check.StatusCode != http.StatusOK || !check.Status {
		s.recover(ctx, skipRegenerate, "check identity: server no longer recognizes the pair")
		return
	}

	s.setLoading(func(l *LoadingStates) { l.Starting = true })
	start, err := s.api.StartUser(ctx, id)
	s.setLoading(func(l *LoadingStates) { l.Starting = false })
	if err != nil {
		s.recover(ctx, skipRegenerate, fmt.Sprintf("start session: %v", err))
		return
	}
	if start.StatusCode != http.StatusOK || !start.Status {
		s.recover(ctx, skipRegenerate, "start session: server refused the pair")
		return
	}

	// A credits fetch failure is non-fatal: the session is usable, the UI
	// shows a placeholder balance.
	if err := s.RefreshCredits(ctx); err != nil {
		s.mu.Lock()
		s.lastErr = fmt.Sprintf("fetch credits: %v", err)
		s.mu.Unlock()
		s.log.Warn("credits fetch failed during bootstrap", zap.Error(err))
	}

	s.mu.Lock()
	s.state = SessionReady
	s.initialized = true
	s.mu.Unlock()
	s.emit(ctx, events.NewSuccess("session: ready"))
}

// recover handles an untrusted identity: the pair is cleared everywhere, then
// either one fresh regeneration is attempted or the session ends Failed.
func (s *SessionService) recover(ctx context.Context, skipRegenerate bool, cause string) {
	if err := s.credentials.Clear(); err != nil {
		s.log.Warn("failed to clear stored identity", zap.Error(err))
	}
	s.mu.Lock()
	s.identity = models.Identity{}
	s.mu.Unlock()
	s.credits.Delete(creditsCacheKey)

	if skipRegenerate {
		s.fail(ctx, cause)
		return
	}
	s.log.Info("stored identity rejected, regenerating", zap.String("cause", cause))
	s.regenerate(ctx)
}

func (s *SessionService) fail(ctx context.Context, cause string) {
	s.mu.Lock()
	s.state = SessionFailed
	s.lastErr = cause
	s.initialized = true
	s.mu.Unlock()
	s.log.Error("session bootstrap failed", zap.String("cause", cause))
	s.emit(ctx, events.NewError("session: bootstrap failed: "+cause))
}

// RefreshCredits fetches the balance for the current identity and caches it.
// Used both at the tail of bootstrap and by the generation pipeline's
// account-refresh stage.
func (s *SessionService) RefreshCredits(ctx context.Context) error {
	id := s.Identity()
	if !id.Complete() {
		return fmt.Errorf("no identity available")
	}

	s.setLoading(func(l *LoadingStates) { l.FetchingCredits = true })
	res, err := s.api.GetCredits(ctx, id)
	s.setLoading(func(l *LoadingStates) { l.FetchingCredits = false })
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("credits fetch returned status %d", res.StatusCode)
	}

	balance := &models.Credits{
		Credits:   res.Credits,
		Plan:      res.Plan,
		ExpiresAt: res.ExpiresAt,
		FetchedAt: time.Now(),
	}
	s.credits.Set(creditsCacheKey, balance, gocache.DefaultExpiration)
	events.Emit(ctx, events.CreditsUpdated, events.NewInfo(fmt.Sprintf("credits: balance %.0f", res.Credits)))
	return nil
}

// Reset drops the session back to an anonymous, uninitialized state and
// clears the stored identity. The next Bootstrap starts from scratch.
func (s *SessionService) Reset() error {
	if err := s.credentials.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	s.identity = models.Identity{}
	s.state = SessionUninitialized
	s.lastErr = ""
	s.loading = LoadingStates{}
	s.initialized = false
	s.mu.Unlock()
	s.credits.Delete(creditsCacheKey)
	return nil
}

func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) IsReady() bool {
	return s.State() == SessionReady
}

func (s *SessionService) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

func (s *SessionService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l := s.loading
	return l.Generating || l.Checking || l.Starting || l.FetchingCredits
}

func (s *SessionService) Loading() LoadingStates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *SessionService) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *SessionService) Identity() models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Credits returns the cached balance, or nil before the first successful
// fetch.
func (s *SessionService) Credits() *models.Credits {
	if v, ok := s.credits.Get(creditsCacheKey); ok {
		if c, ok := v.(*models.Credits); ok {
			return c
		}
	}
	return nil
}

func (s *SessionService) setLoading(mutate func(*LoadingStates)) {
	s.mu.Lock()
	mutate(&s.loading)
	s.mu.Unlock()
}

func (s *SessionService) emit(ctx context.Context, evt events.Event) {
	events.Emit(ctx, events.SessionStatus, evt)
}
