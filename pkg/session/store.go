// Package session persists per-visitor view state between requests.
//
// With Redis configured, state lives server-side and only an encrypted
// session ID travels in the cookie. Without Redis the whole state is carried
// in a signed and encrypted cookie.
//
// Session keys should be 32 or 64 bytes for HMAC authentication,
// and 16, 24, or 32 bytes for AES encryption. Production deployments
// must use cryptographically random keys generated with:
//
//	openssl rand -base64 32
package session

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/lostfound/pkg/cache"
	"github.com/ghuser/lostfound/pkg/config"
)

const (
	// Name is the cookie name carrying the visitor session.
	Name = "lostfound_visitor"

	keyPrefix = "visitor:"
	maxAge    = 86400 // 1 day
)

// NewStore returns a Redis-backed store when rc is non-nil and a cookie store
// otherwise. Both share the same cookie options.
func NewStore(rc *cache.RedisClient, cfg *config.Config) sessions.Store {
	authKey := []byte(cfg.SessionAuthKey)
	encKey := []byte(cfg.SessionEncryptionKey)
	opts := cookieOptions(cfg.Environment == config.EnvProduction)

	if rc == nil {
		cs := sessions.NewCookieStore(authKey, encKey)
		cs.Options = opts
		return cs
	}
	return NewRedisStore(rc.Client(), authKey, encKey, opts)
}

func cookieOptions(secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,                 // No JavaScript access (XSS protection)
		Secure:   secure,               // HTTPS only in production
		SameSite: http.SameSiteLaxMode, // CSRF protection, allows top-level navigation
	}
}

// String returns the string stored under key, or "" when absent.
func String(s *sessions.Session, key string) string {
	v, _ := s.Values[key].(string)
	return v
}

// SetString stores v under key, deleting the key when v is empty so the
// encoded session stays small.
func SetString(s *sessions.Session, key, v string) {
	if v == "" {
		delete(s.Values, key)
		return
	}
	s.Values[key] = v
}

// RedisStore is a sessions.Store backed by Redis.
//
// Redis keys: "visitor:<id>" with TTL equal to the session MaxAge.
// Values are gob-encoded; register custom types via gob.Register before use.
type RedisStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewRedisStore creates a Redis-backed session store.
//
// Parameters:
//   - client: redis.Client instance (from pkg/cache.RedisClient.Client())
//   - authKey: 32 or 64 bytes for HMAC authentication (verifies cookie integrity)
//   - encryptionKey: 16, 24, or 32 bytes for AES encryption (encrypts session ID cookie)
//   - opts: cookie options; nil uses the package defaults for development
func NewRedisStore(client *redis.Client, authKey, encryptionKey []byte, opts *sessions.Options) *RedisStore {
	if opts == nil {
		opts = cookieOptions(false)
	}
	return &RedisStore{
		client:  client,
		codecs:  securecookie.CodecsFromPairs(authKey, encryptionKey),
		options: opts,
	}
}

// Get returns a session for the given name, loading from Redis if a valid
// session cookie exists.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New creates a session. If a valid cookie exists, it decodes the session ID
// and loads data from Redis. A missing/expired/invalid cookie yields a fresh session.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	session.ID = id
	if err := s.load(r.Context(), session); err != nil {
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

// Save persists the session to Redis and writes the encrypted session cookie.
// If MaxAge < 0, the session and its Redis key are deleted.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			_ = s.client.Del(r.Context(), keyPrefix+session.ID).Err()
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
			"=",
		)
	}

	if err := s.save(r.Context(), session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) save(ctx context.Context, session *sessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(ctx, keyPrefix+session.ID, buf.Bytes(), ttl).Err(); err != nil {
		return fmt.Errorf("set session in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) error {
	data, err := s.client.Get(ctx, keyPrefix+session.ID).Bytes()
	if err != nil {
		return fmt.Errorf("get session from redis: %w", err)
	}
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(&session.Values)
}
