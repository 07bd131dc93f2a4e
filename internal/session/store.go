// Package session persists the per-user conversation context in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "foodops-assistant/internal/common/errors"
	"foodops-assistant/internal/common/logger"
	"foodops-assistant/internal/models"
)

// Fixed key layout shared with the surrounding LOB system.
const (
	lastIntentKeyPrefix  = "chatbot_last_intent:"
	lastSectionKeyPrefix = "chatbot_last_section:"
	sessionKeyPrefix     = "chatbot_session:"
)

// ErrUnauthorized means the presented token does not map to a live session.
var ErrUnauthorized = errors.New("UNAUTHORIZED")

// Store reads the conversation context once at the start of a request and
// overwrites it once at the end. A load fault degrades to an absent
// context; it never fails the request.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(client *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// ResolveToken maps a bearer token to the identity the surrounding system
// stored at login. Any failure is reported as ErrUnauthorized; the caller
// cannot distinguish a missing session from a broken one, and should not.
func (s *Store) ResolveToken(ctx context.Context, token string) (*models.UserInfo, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("session lookup failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, ErrUnauthorized
	}

	var user models.UserInfo
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		s.logger.Warn("session record unreadable", map[string]interface{}{
			"error": fmt.Sprintf("%v", err),
		})
		return nil, ErrUnauthorized
	}

	return &user, nil
}

// Load fetches the stored context for a user. Missing keys mean a fresh
// conversation; Redis faults are logged and also produce a fresh context.
func (s *Store) Load(ctx context.Context, userID string) *models.ConversationContext {
	convCtx := &models.ConversationContext{}

	lastIntent, err := s.client.Get(ctx, lastIntentKeyPrefix+userID).Result()
	switch {
	case err == nil:
		convCtx.LastIntent = lastIntent
	case errors.Is(err, redis.Nil):
		// fresh conversation
	default:
		s.logger.Warn("failed to load last intent, starting fresh", map[string]interface{}{
			"userId":    userID,
			"errorCode": string(apperrors.ErrCodeSessionLoadFailed),
			"error":     err.Error(),
		})
		return convCtx
	}

	raw, err := s.client.Get(ctx, lastSectionKeyPrefix+userID).Result()
	switch {
	case err == nil:
		if n, convErr := strconv.Atoi(raw); convErr == nil && n >= 1 {
			convCtx.LastSection = models.Section(n)
		}
	case errors.Is(err, redis.Nil):
		// no remembered section
	default:
		s.logger.Warn("failed to load last section", map[string]interface{}{
			"userId":    userID,
			"errorCode": string(apperrors.ErrCodeSessionLoadFailed),
			"error":     err.Error(),
		})
	}

	return convCtx
}

// Save overwrites both context keys. An absent section deletes its key so a
// stale number can never leak into a later fallback.
func (s *Store) Save(ctx context.Context, userID string, convCtx *models.ConversationContext) error {
	if convCtx.LastIntent != "" {
		if err := s.client.Set(ctx, lastIntentKeyPrefix+userID, convCtx.LastIntent, s.ttl).Err(); err != nil {
			return apperrors.NewSessionSaveFailedError(userID, err)
		}
	}

	if convCtx.LastSection.Valid {
		value := strconv.Itoa(convCtx.LastSection.Number)
		if err := s.client.Set(ctx, lastSectionKeyPrefix+userID, value, s.ttl).Err(); err != nil {
			return apperrors.NewSessionSaveFailedError(userID, err)
		}
		return nil
	}

	if err := s.client.Del(ctx, lastSectionKeyPrefix+userID).Err(); err != nil {
		return apperrors.NewSessionSaveFailedError(userID, err)
	}
	return nil
}
