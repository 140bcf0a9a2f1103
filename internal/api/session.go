// Package api is the REST client for the account and saved-game
// service, and the session state layered on top of it.
//
// Requests run on their own goroutines, but their results are applied
// through an internal completion queue drained by Tick, so all session
// state is only ever touched from the game's tick thread. When two
// requests overlap, whichever completion lands later wins.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// errorTimeout is how long a transient session error stays visible.
const errorTimeout = 5 * time.Second

const defaultRequestTimeout = 10 * time.Second

// Error is a failure reported by the service or the transport. Short,
// when the service provides one, is the compact form for display.
type Error struct {
	Short   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Session holds the login state and issues requests against the
// service. Create it with NewSession, call Start once before the game
// loop, and Tick every frame.
type Session struct {
	baseURL string
	client  *http.Client
	store   TokenStore
	now     func() time.Time

	completions chan func()
	inflight    int
	validating  bool

	token    string
	username string

	errShort    string
	errMessage  string
	errDeadline time.Time

	onLogin []func()
}

// NewSession creates a session against baseURL. A non-positive timeout
// picks the default request timeout.
func NewSession(baseURL string, store TokenStore, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Session{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: timeout},
		store:       store,
		now:         time.Now,
		completions: make(chan func(), 64),
	}
}

// Start restores a persisted token and validates it against the
// service. Validation failures never surface an error; a rejected
// token just logs the session out.
func (s *Session) Start() {
	token, err := s.store.Load()
	if err != nil {
		log.Printf("api: loading token: %v", err)
		return
	}
	if token == "" {
		return
	}
	s.validating = true
	s.begin()
	go func() {
		var user userResponse
		err := s.do(http.MethodGet, "/user/", token, nil, &user)
		s.post(func() {
			s.finish()
			s.validating = false
			if err != nil {
				log.Printf("api: stored token rejected: %v", err)
				s.Logout()
				return
			}
			s.handleLogin(token, user.Username)
		})
	}()
}

// Tick applies queued request completions and expires the transient
// error. Must be called from the tick thread.
func (s *Session) Tick(now time.Time) {
	for {
		select {
		case fn := <-s.completions:
			fn()
		default:
			if s.errMessage != "" && !now.Before(s.errDeadline) {
				s.errShort, s.errMessage = "", ""
			}
			return
		}
	}
}

func (s *Session) LoggedIn() bool   { return s.token != "" }
func (s *Session) Username() string { return s.username }

// Loading reports whether at least one request is in flight.
func (s *Session) Loading() bool { return s.inflight > 0 }

// Validating reports whether the startup token probe is still running.
func (s *Session) Validating() bool { return s.validating }

// ErrorMessage returns the transient session error, preferring the
// short form. Empty when there is none.
func (s *Session) ErrorMessage() string {
	if s.errShort != "" {
		return s.errShort
	}
	return s.errMessage
}

// RegisterOnLogin adds a login callback. If the session is already
// logged in the callback fires immediately.
func (s *Session) RegisterOnLogin(fn func()) {
	s.onLogin = append(s.onLogin, fn)
	if s.LoggedIn() {
		fn()
	}
}

// Login exchanges credentials for an access token. On success the
// token is persisted and the login callbacks fire.
func (s *Session) Login(username, password string) {
	s.begin()
	go func() {
		var resp loginResponse
		err := s.do(http.MethodPost, "/user/login", "", credentials{username, password}, &resp)
		s.post(func() {
			s.finish()
			if err != nil {
				s.fail(err)
				return
			}
			s.handleLogin(resp.AccessToken, username)
		})
	}()
}

// Register creates an account and, on success, logs straight in. A
// failed creation is logged but never shown to the player.
func (s *Session) Register(username, password string) {
	s.begin()
	go func() {
		err := s.do(http.MethodPost, "/user/", "", credentials{username, password}, nil)
		s.post(func() {
			s.finish()
			if err != nil {
				log.Printf("api: registration failed: %v", err)
				return
			}
			s.Login(username, password)
		})
	}()
}

// Logout drops the token locally. The service keeps no session state.
func (s *Session) Logout() {
	s.token = ""
	s.username = ""
	if err := s.store.Clear(); err != nil {
		log.Printf("api: clearing token: %v", err)
	}
}

// DeleteAccount removes the account server-side and logs out locally
// whether or not the request succeeded.
func (s *Session) DeleteAccount() {
	token := s.token
	s.begin()
	go func() {
		err := s.do(http.MethodDelete, "/user/", token, nil, nil)
		s.post(func() {
			s.finish()
			if err != nil {
				s.fail(err)
			}
			s.Logout()
		})
	}()
}

// CreateGame persists a new run and hands the assigned id to then.
// A no-op when logged out.
func (s *Session) CreateGame(g GameResource, then func(id int64)) {
	if !s.LoggedIn() {
		return
	}
	token := s.token
	s.begin()
	go func() {
		var created GameResource
		err := s.do(http.MethodPost, "/games/", token, g, &created)
		s.post(func() {
			s.finish()
			if err != nil {
				s.fail(err)
				return
			}
			if created.ID != nil && then != nil {
				then(*created.ID)
			}
		})
	}()
}

// SaveGame overwrites the persisted run. A no-op when logged out or
// when the resource carries no id yet.
func (s *Session) SaveGame(g GameResource) {
	if !s.LoggedIn() || g.ID == nil {
		return
	}
	token := s.token
	path := fmt.Sprintf("/games/%d", *g.ID)
	s.begin()
	go func() {
		err := s.do(http.MethodPut, path, token, g, nil)
		s.post(func() {
			s.finish()
			if err != nil {
				s.fail(err)
			}
		})
	}()
}

// SetGameEnded marks a persisted run as finished.
func (s *Session) SetGameEnded(id int64) {
	if !s.LoggedIn() {
		return
	}
	token := s.token
	path := fmt.Sprintf("/games/%d", id)
	s.begin()
	go func() {
		err := s.do(http.MethodPut, path, token, map[string]bool{"ended": true}, nil)
		s.post(func() {
			s.finish()
			if err != nil {
				s.fail(err)
			}
		})
	}()
}

// LoadLatestGame fetches the most recent saved run and hands it to
// then. then is not called when there is no saved run.
func (s *Session) LoadLatestGame(then func(*GameResource)) {
	if !s.LoggedIn() {
		return
	}
	token := s.token
	s.begin()
	go func() {
		var games []*GameResource
		err := s.do(http.MethodGet, "/games/?latest=true", token, nil, &games)
		s.post(func() {
			s.finish()
			if err != nil {
				s.fail(err)
				return
			}
			if len(games) > 0 && games[0] != nil && then != nil {
				then(games[0])
			}
		})
	}()
}

func (s *Session) handleLogin(token, username string) {
	s.token = token
	s.username = username
	if err := s.store.Save(token); err != nil {
		log.Printf("api: persisting token: %v", err)
	}
	log.Printf("api: logged in as %s", username)
	for _, fn := range s.onLogin {
		fn()
	}
}

func (s *Session) begin()  { s.inflight++ }
func (s *Session) finish() { s.inflight-- }

// post queues a completion for the next Tick. Safe to call from
// request goroutines.
func (s *Session) post(fn func()) {
	s.completions <- fn
}

// fail records a transient error and restarts its expiry timer. A new
// failure replaces the previous message outright.
func (s *Session) fail(err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Message: err.Error()}
	}
	s.errShort = apiErr.Short
	s.errMessage = apiErr.Message
	s.errDeadline = s.now().Add(errorTimeout)
	log.Printf("api: request failed: %s", apiErr.Message)
}

// do performs one request. It reads no session state, so it is safe on
// a request goroutine; callers capture the token beforehand.
func (s *Session) do(method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encoding request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("reading response: %v", err)}
	}

	// The service reports failures as a JSON body with an "error" key.
	var we wireError
	if len(data) > 0 && json.Unmarshal(data, &we) == nil && we.Err != "" {
		return &Error{Short: we.Short, Message: we.Err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{Message: resp.Status}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Message: fmt.Sprintf("decoding response: %v", err)}
		}
	}
	return nil
}
