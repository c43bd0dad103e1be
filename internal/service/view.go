package service

import (
	"context"
	"strconv"
	"time"

	"github.com/skovtun/lightning-node-registry/internal/db"
	"go.uber.org/zap"
)

// rfc3339NumericZone renders UTC as +00:00 instead of Z, matching the
// public API contract.
const rfc3339NumericZone = "2006-01-02T15:04:05-07:00"

// NodeLister reads stored nodes ordered by capacity descending
type NodeLister interface {
	ListByCapacity(ctx context.Context) ([]db.NodeRanking, error)
}

// NodeView is the API-facing representation of a stored node. It is derived
// fresh on every read, never cached.
type NodeView struct {
	PublicKey string `json:"public_key"`
	Alias     string `json:"alias"`
	Capacity  string `json:"capacity"`
	FirstSeen string `json:"first_seen"`
}

// ViewService builds the display-ready node ranking
type ViewService struct {
	store  NodeLister
	logger *zap.Logger
}

// NewViewService creates a new view service
func NewViewService(store NodeLister, logger *zap.Logger) *ViewService {
	return &ViewService{store: store, logger: logger}
}

// ListNodes returns all stored nodes ordered by capacity descending, with
// capacity rendered in BTC at 8 fractional digits and first_seen rendered
// as an RFC 3339 timestamp in UTC.
func (s *ViewService) ListNodes(ctx context.Context) ([]NodeView, error) {
	rows, err := s.store.ListByCapacity(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]NodeView, 0, len(rows))
	for _, row := range rows {
		alias := ""
		if row.Alias != nil {
			alias = *row.Alias
		}
		nodes = append(nodes, NodeView{
			PublicKey: row.PublicKey,
			Alias:     alias,
			Capacity:  formatCapacity(row.Capacity),
			FirstSeen: formatFirstSeen(row.FirstSeen),
		})
	}

	return nodes, nil
}

// formatCapacity converts satoshis to a fixed-point BTC string with exactly
// 8 fractional digits.
func formatCapacity(sats int64) string {
	return strconv.FormatFloat(float64(sats)/1e8, 'f', 8, 64)
}

// formatFirstSeen renders a seconds-since-epoch value as RFC 3339 in UTC.
// Values outside the representable timestamp range fall back to the current
// time rather than failing the whole read.
func formatFirstSeen(epochSecs int64) string {
	t := time.Unix(epochSecs, 0).UTC()
	if t.Year() < 0 || t.Year() > 9999 {
		t = time.Now().UTC()
	}
	return t.Format(rfc3339NumericZone)
}
