package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	authsvc "github.com/hari7vansh/swipehire/internal/services/auth"
)

// Session state is spread over four key families: a hash per session, a
// hash per refresh token, a session-to-current-refresh pointer used to
// burn the token on logout, and a per-user set of session ids for mass
// logout. All of them share the session TTL.
const (
	keySessionHash  = "auth:session:"
	keyRefreshHash  = "auth:refresh:"
	keyCurrentToken = "auth:session_token:"
	keyUserSessions = "auth:user_sessions:"
	expiredFloorTTL = time.Minute
)

type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Create(ctx context.Context, session authsvc.SessionRecord, refreshToken string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(session.SID) == "" || strings.TrimSpace(refreshToken) == "" || session.UserID <= 0 {
		return authsvc.ErrInvalidInput
	}

	pipe := r.client.TxPipeline()
	r.persist(ctx, pipe, session, refreshToken)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create redis session: %w", err)
	}

	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sid string) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	hash, err := r.client.HGetAll(ctx, keySessionHash+sid).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get session hash: %w", err)
	}
	if len(hash) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	session, err := sessionFromHash(hash)
	if err != nil {
		return authsvc.SessionRecord{}, err
	}
	session.SID = sid
	return session, nil
}

func (r *SessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	hash, err := r.client.HGetAll(ctx, keyRefreshHash+refreshToken).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get refresh hash: %w", err)
	}
	if len(hash) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
	}

	session, err := sessionFromHash(hash)
	if err != nil {
		return authsvc.SessionRecord{}, err
	}
	session.SID = strings.TrimSpace(hash["sid"])
	if session.SID == "" {
		return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
	}

	return session, nil
}

// RotateRefresh burns the old refresh token and re-persists the session
// under the new one with a pushed-out expiry.
func (r *SessionRepo) RotateRefresh(ctx context.Context, sid, oldRefreshToken, newRefreshToken string, expiresAt time.Time) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	session, err := r.GetByRefreshToken(ctx, oldRefreshToken)
	if err != nil {
		return err
	}
	if sid != "" && sid != session.SID {
		return authsvc.ErrRefreshNotFound
	}
	session.ExpiresAt = expiresAt

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keyRefreshHash+oldRefreshToken)
	r.persist(ctx, pipe, session, newRefreshToken)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rotate refresh token: %w", err)
	}

	return nil
}

func (r *SessionRepo) DeleteSession(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return nil
	}

	hash, err := r.client.HGetAll(ctx, keySessionHash+sid).Result()
	if err != nil {
		return fmt.Errorf("load session for delete: %w", err)
	}

	refreshToken, err := r.client.Get(ctx, keyCurrentToken+sid).Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("load session refresh pointer: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keySessionHash+sid)
	pipe.Del(ctx, keyCurrentToken+sid)
	if refreshToken != "" {
		pipe.Del(ctx, keyRefreshHash+refreshToken)
	}
	if userID, parseErr := strconv.ParseInt(hash["user_id"], 10, 64); parseErr == nil && userID > 0 {
		pipe.SRem(ctx, userSessionsKey(userID), sid)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (r *SessionRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return authsvc.ErrInvalidInput
	}

	sids, err := r.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	for _, sid := range sids {
		if err := r.DeleteSession(ctx, sid); err != nil {
			return err
		}
	}

	if err := r.client.Del(ctx, userSessionsKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete user sessions set: %w", err)
	}

	return nil
}

// persist queues every key a live session needs onto the pipeline.
func (r *SessionRepo) persist(ctx context.Context, pipe goredis.Pipeliner, session authsvc.SessionRecord, refreshToken string) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = expiredFloorTTL
	}

	fields := map[string]interface{}{
		"user_id":    session.UserID,
		"role":       session.Role,
		"expires_at": session.ExpiresAt.Unix(),
	}

	pipe.HSet(ctx, keySessionHash+session.SID, fields)
	pipe.Expire(ctx, keySessionHash+session.SID, ttl)

	refreshFields := map[string]interface{}{"sid": session.SID}
	for k, v := range fields {
		refreshFields[k] = v
	}
	pipe.HSet(ctx, keyRefreshHash+refreshToken, refreshFields)
	pipe.Expire(ctx, keyRefreshHash+refreshToken, ttl)

	pipe.Set(ctx, keyCurrentToken+session.SID, refreshToken, ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.SID)
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)
}

func sessionFromHash(hash map[string]string) (authsvc.SessionRecord, error) {
	userID, err := strconv.ParseInt(hash["user_id"], 10, 64)
	if err != nil || userID <= 0 {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	expiresAt, err := strconv.ParseInt(hash["expires_at"], 10, 64)
	if err != nil {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	return authsvc.SessionRecord{
		UserID:    userID,
		Role:      hash["role"],
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}, nil
}

func userSessionsKey(userID int64) string {
	return keyUserSessions + strconv.FormatInt(userID, 10)
}
