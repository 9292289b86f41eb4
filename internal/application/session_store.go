package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
	"github.com/rs/zerolog/log"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

const (
	loginSucceededMessage  = "Welcome back!"
	logoutSucceededMessage = "Successfully logged out"
	signupSucceededMessage = "Account created successfully. Please log in."
	sessionExpiredMessage  = "Your session has expired. Please log in again."
)

type subscriber struct {
	id int
	fn func(domain.Session)
}

// SessionStore owns the client session for the lifetime of the process.
// Every transition is applied under mu; observers run after mu is released.
// Cache writes that depend on the session generation are serialized by
// persistMu so a logout always deletes after any write it raced with.
type SessionStore struct {
	cache    ports.KeyValueStore
	client   ports.ProfileClient
	notifier ports.Notifier

	mu          sync.Mutex
	session     domain.Session
	subscribers []subscriber
	nextSubID   int
	disposed    bool

	persistMu sync.Mutex

	lifetime context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

func NewSessionStore(cache ports.KeyValueStore, client ports.ProfileClient, notifier ports.Notifier) *SessionStore {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	lifetime, cancel := context.WithCancel(context.Background())

	return &SessionStore{
		cache:    cache,
		client:   client,
		notifier: notifier,
		session:  domain.AnonymousSession(0),
		lifetime: lifetime,
		cancel:   cancel,
	}
}

// Initialize seeds the session from the cache. With a cached token it
// publishes a pending session and hydrates the profile in the background.
func (s *SessionStore) Initialize(ctx context.Context) error {
	token, err := s.cache.Get(ctx, TokenKey)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		s.transition(func(session *domain.Session) {
			*session = domain.AnonymousSession(session.Generation + 1)
		})
		return fmt.Errorf("read session token: %w", err)
	}
	if token == "" {
		s.transition(func(session *domain.Session) {
			*session = domain.AnonymousSession(session.Generation + 1)
		})
		return nil
	}

	warm := s.cachedUser(ctx)

	var generation uint64
	s.transition(func(session *domain.Session) {
		generation = session.Generation + 1
		*session = domain.Session{
			State:           domain.SessionAuthenticatedPending,
			IsAuthenticated: true,
			Token:           token,
			User:            warm,
			Loading:         true,
			Generation:      generation,
		}
	})

	s.hydrate(generation, token)
	return nil
}

func (s *SessionStore) Login(ctx context.Context, credentials domain.Credentials) (domain.LoginResult, error) {
	var generation uint64
	s.transition(func(session *domain.Session) {
		generation = session.Generation + 1
		*session = domain.Session{
			State:      domain.SessionAuthenticating,
			Loading:    true,
			Generation: generation,
		}
	})

	s.clearCachedSession(ctx, generation)

	result, err := s.client.Login(ctx, credentials)
	if err != nil {
		s.resetIfCurrent(generation)
		s.notifier.Error(userMessage(err))
		return domain.LoginResult{}, fmt.Errorf("log in: %w", err)
	}

	written, err := s.persist(generation, func() error {
		if err := s.cache.Put(ctx, TokenKey, result.Token); err != nil {
			return err
		}
		s.storeLoginUser(ctx, result.User)
		return nil
	})
	if err != nil {
		s.resetIfCurrent(generation)
		s.notifier.Error(userMessage(err))
		return domain.LoginResult{}, fmt.Errorf("persist session token: %w", err)
	}
	if !written {
		return domain.LoginResult{}, fmt.Errorf("log in: %w", domain.ErrSessionChanged)
	}

	applied := s.transitionIf(generation, func(session *domain.Session) bool {
		session.State = domain.SessionAuthenticatedPending
		session.IsAuthenticated = true
		session.Token = result.Token
		session.User = result.User.Clone()
		session.Loading = true
		session.ProfileErr = nil
		return true
	})
	if !applied {
		return domain.LoginResult{}, fmt.Errorf("log in: %w", domain.ErrSessionChanged)
	}

	s.notifier.Success(loginSucceededMessage)
	s.hydrate(generation, result.Token)

	return result, nil
}

// Signup registers an account without logging in. An authenticated session
// is left untouched.
func (s *SessionStore) Signup(ctx context.Context, request domain.SignupRequest) (domain.SignupResult, error) {
	generation := s.Snapshot().Generation
	tracked := s.transitionIf(generation, func(session *domain.Session) bool {
		if session.IsAuthenticated {
			return false
		}
		session.State = domain.SessionAuthenticating
		session.Loading = true
		return true
	})
	if tracked {
		defer s.resetIfCurrent(generation)
	}

	result, err := s.client.Signup(ctx, request)
	if err != nil {
		s.notifier.Error(userMessage(err))
		return domain.SignupResult{}, fmt.Errorf("sign up: %w", err)
	}

	message := result.Message
	if message == "" {
		message = signupSucceededMessage
	}
	s.notifier.Success(message)

	return result, nil
}

// Logout never fails. Cache errors are logged.
func (s *SessionStore) Logout(ctx context.Context) {
	s.endSession(ctx)
	s.notifier.Success(logoutSucceededMessage)
}

func (s *SessionStore) endSession(ctx context.Context) {
	s.transition(func(session *domain.Session) {
		*session = domain.AnonymousSession(session.Generation + 1)
	})

	s.persistMu.Lock()
	s.deleteSessionEntries(ctx)
	s.persistMu.Unlock()
}

// clearCachedSession drops the cached token and profile while generation is
// current, so the cache never outlives the session held in memory.
func (s *SessionStore) clearCachedSession(ctx context.Context, generation uint64) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if !s.isCurrent(generation) {
		return
	}
	s.deleteSessionEntries(ctx)
}

// deleteSessionEntries must be called with persistMu held.
func (s *SessionStore) deleteSessionEntries(ctx context.Context) {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("clear session cache entry")
		}
	}
}

// storeLoginUser replaces the cached profile with the one the login response
// carried. Without one the entry is removed so a previous account's profile
// is never warm-started under the new token. Must be called with persistMu
// held.
func (s *SessionStore) storeLoginUser(ctx context.Context, user *domain.UserProfile) {
	if user == nil {
		if err := s.cache.Delete(ctx, UserKey); err != nil {
			log.Warn().Err(err).Msg("clear cached profile")
		}
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		log.Warn().Err(err).Msg("encode login profile")
		return
	}
	if err := s.cache.Put(ctx, UserKey, string(data)); err != nil {
		log.Warn().Err(err).Msg("mirror login profile")
	}
}

// UpdateProfile replaces the cached profile snapshot and mirrors it to the
// cache. The token is never touched.
func (s *SessionStore) UpdateProfile(ctx context.Context, profile domain.UserProfile) error {
	s.mu.Lock()
	if !s.session.IsAuthenticated {
		s.mu.Unlock()
		return fmt.Errorf("update profile: %w", domain.ErrNotAuthenticated)
	}
	generation := s.session.Generation
	token := s.session.Token
	s.mu.Unlock()

	return s.applyProfile(ctx, generation, token, profile)
}

// CheckSession reports whether a token is held. It performs no I/O.
func (s *SessionStore) CheckSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.IsAuthenticated
}

func (s *SessionStore) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Clone()
}

// RefreshProfile fetches the profile for the current token. An AuthError
// ends the session.
func (s *SessionStore) RefreshProfile(ctx context.Context) (domain.UserProfile, error) {
	generation, token, err := s.authenticatedToken("refresh profile")
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile, err := s.client.FetchProfile(ctx, token)
	if err != nil {
		return domain.UserProfile{}, s.profileRequestFailed(ctx, generation, "refresh profile", err)
	}

	if err := s.applyProfile(ctx, generation, token, profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// EditProfile sends a sparse update and adopts the profile the API returns.
func (s *SessionStore) EditProfile(ctx context.Context, update domain.ProfileUpdate) (domain.UserProfile, error) {
	generation, token, err := s.authenticatedToken("edit profile")
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile, err := s.client.UpdateProfile(ctx, token, update)
	if err != nil {
		return domain.UserProfile{}, s.profileRequestFailed(ctx, generation, "edit profile", err)
	}

	if err := s.applyProfile(ctx, generation, token, profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// Subscribe registers fn to be called after every published transition.
func (s *SessionStore) Subscribe(fn func(domain.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed || fn == nil {
		return func() {}
	}

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subscribers {
				if sub.id == id {
					s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// Wait blocks until background profile fetches have finished.
func (s *SessionStore) Wait() {
	s.inflight.Wait()
}

func (s *SessionStore) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.subscribers = nil
	s.mu.Unlock()

	s.cancel()
	s.inflight.Wait()
}

func (s *SessionStore) hydrate(generation uint64, token string) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()

		profile, err := s.client.FetchProfile(s.lifetime, token)
		if err != nil {
			applied := s.transitionIf(generation, func(session *domain.Session) bool {
				session.State = domain.SessionAuthenticatedPending
				session.Loading = false
				session.ProfileErr = err
				return true
			})
			if applied {
				log.Warn().Err(err).Msg("hydrate session profile")
			}
			return
		}

		if err := s.applyProfile(s.lifetime, generation, token, profile); err != nil {
			if errors.Is(err, domain.ErrSessionChanged) {
				log.Debug().Uint64("generation", generation).Msg("discard stale profile")
				return
			}
			log.Warn().Err(err).Msg("mirror hydrated profile")
		}
	}()
}

func (s *SessionStore) applyProfile(ctx context.Context, generation uint64, token string, profile domain.UserProfile) error {
	applied := s.transitionIf(generation, func(session *domain.Session) bool {
		if session.Token != token {
			return false
		}
		session.State = domain.SessionAuthenticatedReady
		session.User = profile.Clone()
		session.Loading = false
		session.ProfileErr = nil
		return true
	})
	if !applied {
		return fmt.Errorf("apply profile: %w", domain.ErrSessionChanged)
	}

	if err := s.mirrorUser(ctx, generation, profile); err != nil {
		return fmt.Errorf("mirror profile: %w", err)
	}
	return nil
}

func (s *SessionStore) profileRequestFailed(ctx context.Context, generation uint64, op string, err error) error {
	if domain.IsAuthError(err) {
		if s.isCurrent(generation) {
			s.endSession(ctx)
			s.notifier.Error(sessionExpiredMessage)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.transitionIf(generation, func(session *domain.Session) bool {
		session.State = domain.SessionAuthenticatedPending
		session.ProfileErr = err
		return true
	})
	return fmt.Errorf("%s: %w", op, err)
}

func (s *SessionStore) mirrorUser(ctx context.Context, generation uint64, profile domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	written, err := s.persist(generation, func() error {
		return s.cache.Put(ctx, UserKey, string(data))
	})
	if err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	if !written {
		return domain.ErrSessionChanged
	}
	return nil
}

func (s *SessionStore) cachedUser(ctx context.Context) *domain.UserProfile {
	raw, err := s.cache.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Debug().Err(err).Msg("read cached profile")
		}
		return nil
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil || profile.ID == "" {
		log.Debug().Err(err).Msg("ignore undecodable cached profile")
		return nil
	}
	return &profile
}

// persist runs write only while generation is still current.
func (s *SessionStore) persist(generation uint64, write func() error) (bool, error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if !s.isCurrent(generation) {
		return false, nil
	}
	return true, write()
}

func (s *SessionStore) authenticatedToken(op string) (uint64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAuthenticated {
		return 0, "", fmt.Errorf("%s: %w", op, domain.ErrNotAuthenticated)
	}
	return s.session.Generation, s.session.Token, nil
}

func (s *SessionStore) resetIfCurrent(generation uint64) {
	s.transitionIf(generation, func(session *domain.Session) bool {
		*session = domain.AnonymousSession(generation)
		return true
	})
}

func (s *SessionStore) isCurrent(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Generation == generation
}

func (s *SessionStore) transition(mutate func(*domain.Session)) {
	s.mu.Lock()
	mutate(&s.session)
	snapshot, subscribers := s.publishLocked()
	s.mu.Unlock()

	notifySubscribers(subscribers, snapshot)
}

// transitionIf applies mutate only while generation is current. mutate may
// decline by returning false, in which case nothing is published.
func (s *SessionStore) transitionIf(generation uint64, mutate func(*domain.Session) bool) bool {
	s.mu.Lock()
	if s.session.Generation != generation || !mutate(&s.session) {
		s.mu.Unlock()
		return false
	}
	snapshot, subscribers := s.publishLocked()
	s.mu.Unlock()

	notifySubscribers(subscribers, snapshot)
	return true
}

func (s *SessionStore) publishLocked() (domain.Session, []subscriber) {
	subscribers := make([]subscriber, len(s.subscribers))
	copy(subscribers, s.subscribers)
	return s.session.Clone(), subscribers
}

func notifySubscribers(subscribers []subscriber, snapshot domain.Session) {
	for _, sub := range subscribers {
		sub.fn(snapshot.Clone())
	}
}

func userMessage(err error) string {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Message != "" {
		return validationErr.Message
	}
	var serverErr *domain.ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return err.Error()
}
