package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
	"twitter_app/internal/common"
	"twitter_app/internal/domain/model"
	"twitter_app/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type MicropostService struct {
	micropostRepo repository.MicropostRepository
	rdb           *redis.Client // nil disables the feed cache
	cacheTTL      time.Duration
}

func NewMicropostService(micropostRepo repository.MicropostRepository, rdb *redis.Client, cacheTTL time.Duration) *MicropostService {
	return &MicropostService{
		micropostRepo: micropostRepo,
		rdb:           rdb,
		cacheTTL:      cacheTTL,
	}
}

type FeedPage struct {
	Microposts []model.Micropost `json:"microposts"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

func (s *MicropostService) Create(ctx context.Context, userID int64, content string) (*model.Micropost, error) {
	if errs := model.ValidateMicropost(content); len(errs) > 0 {
		return nil, errs
	}

	post := &model.Micropost{Content: content, UserID: userID}
	if err := s.micropostRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create micropost: %w", err)
	}
	s.bumpFeedVersion(ctx, userID)
	return post, nil
}

// Destroy deletes a micropost on behalf of actingUserID. Only the owner may
// delete; an unknown id is ErrNotFound, someone else's post is ErrForbidden.
func (s *MicropostService) Destroy(ctx context.Context, actingUserID, id int64) error {
	post, err := s.micropostRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != actingUserID {
		return fmt.Errorf("micropost belongs to another user: %w", common.ErrForbidden)
	}
	if err := s.micropostRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.bumpFeedVersion(ctx, post.UserID)
	return nil
}

// Feed returns the user's microposts newest first, through the Redis page
// cache when one is configured. Cache failures fall back to the store.
func (s *MicropostService) Feed(ctx context.Context, userID int64, page, pageSize int) (*FeedPage, error) {
	key := s.feedKey(ctx, userID, page, pageSize)
	if key != "" {
		raw, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			feed := &FeedPage{}
			if json.Unmarshal([]byte(raw), feed) == nil {
				return feed, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("feed cache get failed: %v", err)
		}
	}

	posts, total, err := s.micropostRepo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list microposts: %w", err)
	}
	feed := &FeedPage{Microposts: posts, Total: total, Page: page, PageSize: pageSize}

	if key != "" {
		if raw, err := json.Marshal(feed); err == nil {
			if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				log.Printf("feed cache set failed: %v", err)
			}
		}
	}
	return feed, nil
}

// Page keys embed a per-user version counter; bumping the counter on every
// write retires all cached pages at once, no SCAN needed. Stale versions
// age out via the TTL.
func (s *MicropostService) feedKey(ctx context.Context, userID int64, page, pageSize int) string {
	if s.rdb == nil {
		return ""
	}
	ver, err := s.rdb.Get(ctx, feedVersionKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("feed cache version get failed: %v", err)
		return ""
	}
	return fmt.Sprintf("feed:u%d:v%d:p%d:n%d", userID, ver, page, pageSize)
}

func (s *MicropostService) bumpFeedVersion(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, feedVersionKey(userID)).Err(); err != nil {
		log.Printf("feed cache invalidation failed: %v", err)
	}
}

func feedVersionKey(userID int64) string {
	return fmt.Sprintf("feed:u%d:ver", userID)
}
