package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tkoide/memopad/internal/ai"
	"github.com/tkoide/memopad/internal/cache"
	"github.com/tkoide/memopad/internal/models"
	"github.com/tkoide/memopad/internal/store"
)

// Pinger reports backend connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies of every memo endpoint. cache, tagger,
// and db may be nil; the endpoints degrade accordingly.
type Handler struct {
	store  store.MemoStore
	cache  *cache.MemoCache
	tagger *ai.Client
	db     Pinger
}

func NewHandler(s store.MemoStore, c *cache.MemoCache, tagger *ai.Client, db Pinger) *Handler {
	return &Handler{store: s, cache: c, tagger: tagger, db: db}
}

// ListMemos returns all memos, or those in ?category=. The unfiltered
// listing is served from the cached collection view when present.
func (h *Handler) ListMemos(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	if category == "" || category == models.CategoryAll {
		if memos, ok := h.cache.GetList(ctx); ok {
			c.JSON(http.StatusOK, memos)
			return
		}

		memos, err := h.store.ListAll(ctx)
		if err != nil {
			h.storageError(c, err, "list memos")
			return
		}
		h.cache.SetList(ctx, memos)
		c.JSON(http.StatusOK, memos)
		return
	}

	memos, err := h.store.ListByCategory(ctx, category)
	if err != nil {
		h.storageError(c, err, "list memos by category")
		return
	}
	c.JSON(http.StatusOK, memos)
}

func (h *Handler) SearchMemos(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	memos, err := h.store.Search(c.Request.Context(), query)
	if err != nil {
		h.storageError(c, err, "search memos")
		return
	}
	c.JSON(http.StatusOK, memos)
}

func (h *Handler) GetMemo(c *gin.Context) {
	id, ok := memoID(c)
	if !ok {
		return
	}

	memo, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "memo not found"})
		return
	}
	if err != nil {
		h.storageError(c, err, "get memo")
		return
	}
	c.JSON(http.StatusOK, memo)
}

func (h *Handler) CreateMemo(c *gin.Context) {
	var in models.MemoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	memo, err := h.store.Create(ctx, in)
	if err != nil {
		h.storageError(c, err, "create memo")
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusCreated, memo)
}

func (h *Handler) UpdateMemo(c *gin.Context) {
	id, ok := memoID(c)
	if !ok {
		return
	}

	var in models.MemoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	memo, err := h.store.Update(ctx, id, in)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "memo not found"})
		return
	}
	if err != nil {
		h.storageError(c, err, "update memo")
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, memo)
}

func (h *Handler) DeleteMemo(c *gin.Context) {
	id, ok := memoID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Delete(ctx, id); err != nil {
		h.storageError(c, err, "delete memo")
		return
	}

	h.cache.Invalidate(ctx)
	c.Status(http.StatusNoContent)
}

// SuggestTags asks the AI client for tags describing an existing memo.
// The memo itself is not modified; the caller decides what to keep.
func (h *Handler) SuggestTags(c *gin.Context) {
	if h.tagger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tag suggestion is not configured"})
		return
	}

	id, ok := memoID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	memo, err := h.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "memo not found"})
		return
	}
	if err != nil {
		h.storageError(c, err, "get memo")
		return
	}

	tags, err := h.tagger.SuggestTags(ctx, memo.Title, memo.Content)
	if err != nil {
		logrus.WithError(err).Error("Failed to suggest tags")
		c.JSON(http.StatusBadGateway, gin.H{"error": "tag suggestion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// memoID validates the :id path param as a uuid. Responds 400 on failure.
func memoID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid memo id"})
		return "", false
	}
	return id, true
}

func (h *Handler) storageError(c *gin.Context, err error, op string) {
	logrus.WithError(err).Errorf("Failed to %s", op)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
}
