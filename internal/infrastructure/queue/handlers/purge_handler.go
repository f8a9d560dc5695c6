package handlers

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"finpress-backend/internal/domains/analysis"
	"finpress-backend/internal/domains/news"
	"finpress-backend/pkg/logger"
)

// Soft-deleted content is kept for 30 days before the purge job removes it
// permanently.
const retentionPeriod = 30 * 24 * time.Hour

// ContentPurgeHandler hard-deletes content whose soft-delete marker has aged
// past the retention window.
type ContentPurgeHandler struct {
	newsRepo     news.Repository
	analysisRepo analysis.Repository
}

func NewContentPurgeHandler(newsRepo news.Repository, analysisRepo analysis.Repository) *ContentPurgeHandler {
	return &ContentPurgeHandler{newsRepo: newsRepo, analysisRepo: analysisRepo}
}

func (h *ContentPurgeHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	cutoff := time.Now().UTC().Add(-retentionPeriod)

	purgedNews, err := h.newsRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("news purge failed", err)
		return err
	}

	purgedAnalysis, err := h.analysisRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("analysis purge failed", err)
		return err
	}

	logger.Info("content purge completed", map[string]interface{}{
		"news":     purgedNews,
		"analysis": purgedAnalysis,
		"cutoff":   cutoff.Format(time.RFC3339),
	})
	return nil
}
