package api

import "github.com/gin-gonic/gin"

// SetupRouter wires the memo endpoints under /api/v1.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	r.GET("/healthz", h.Health)

	apiV1 := r.Group("/api/v1")
	{
		// /search lives beside /memos: a static segment under /memos would
		// collide with the :id wildcard in the routing tree.
		apiV1.GET("/search", h.SearchMemos)

		memos := apiV1.Group("/memos")
		{
			memos.GET("", h.ListMemos)
			memos.GET("/:id", h.GetMemo)
			memos.POST("", h.CreateMemo)
			memos.PUT("/:id", h.UpdateMemo)
			memos.DELETE("/:id", h.DeleteMemo)
			memos.POST("/:id/tags/suggest", h.SuggestTags)
		}
	}

	return r
}
