package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/model"
	"go.uber.org/zap"
)

type ExportResult struct {
	ListID    uuid.UUID `json:"list_id"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService uploads shopping lists as plain text to object storage.
type ExportService struct {
	lists   IShoppingListService
	store   ObjectStore
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewExportService creates the service. A nil store disables exports.
func NewExportService(lists IShoppingListService, store ObjectStore, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{lists: lists, store: store, ttl: ttl, metrics: m, logger: logger}
}

func exportKey(id uuid.UUID) string {
	return "shopping-lists/" + id.String() + ".txt"
}

// RenderText lays a list out as a printable checklist grouped by category.
func RenderText(list *model.ShoppingList) string {
	var b strings.Builder
	b.WriteString(list.Name)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(list.Name)))
	b.WriteString("\n")

	category := ""
	for i, item := range list.Items {
		if i == 0 || item.Category != category {
			category = item.Category
			fmt.Fprintf(&b, "\n%s\n", category)
		}
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		line := item.Display
		if line == "" {
			line = itemDisplay(item)
		}
		fmt.Fprintf(&b, "  %s %s\n", box, line)
	}
	if len(list.Items) == 0 {
		b.WriteString("\n(no items)\n")
	}
	return b.String()
}

func (s *ExportService) Export(ctx context.Context, listID uuid.UUID) (*ExportResult, error) {
	if s.store == nil {
		return nil, apperrors.Unavailable("shopping list export is not configured", nil)
	}
	list, err := s.lists.GetShoppingList(ctx, listID)
	if err != nil {
		return nil, err
	}

	key := exportKey(list.ID)
	if err := s.store.PutObject(ctx, key, []byte(RenderText(list)), "text/plain; charset=utf-8"); err != nil {
		s.metrics.Export("error")
		s.logger.Error("failed to upload shopping list", zap.String("key", key), zap.Error(err))
		return nil, apperrors.Unavailable("failed to upload shopping list", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, s.ttl)
	if err != nil {
		s.metrics.Export("error")
		return nil, apperrors.Unavailable("failed to sign download link", err)
	}

	s.metrics.Export("ok")
	s.logger.Info("shopping list exported", zap.String("id", list.ID.String()), zap.String("key", key))
	return &ExportResult{
		ListID:    list.ID,
		Key:       key,
		URL:       url,
		ExpiresAt: time.Now().Add(s.ttl).UTC(),
	}, nil
}
