// Package search mirrors active properties into a Meilisearch index for free-text queries.
// Without MEILI_HOST the Disabled index is installed and callers fall back to SQL matching.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/logger"
)

const PropertiesIndex = "properties"

var ErrDisabled = errors.New("search index not configured")

// Document is the indexed shape of a property.
type Document struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PropertyType string  `json:"propertyType"`
	ListingType  string  `json:"listingType"`
	IsCommercial bool    `json:"isCommercial"`
	Address      string  `json:"address"`
	Locality     string  `json:"locality"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Status       string  `json:"status"`
	IsFeatured   bool    `json:"isFeatured"`
	CreatedAt    int64   `json:"createdAt"`
}

// Query narrows a free-text search. Empty fields are ignored.
type Query struct {
	Text        string
	City        string
	ListingType string
	Limit       int64
	Offset      int64
}

type Index interface {
	Upsert(ctx context.Context, docs ...Document) error
	Remove(ctx context.Context, id string) error
	SearchIDs(ctx context.Context, q Query) ([]string, int64, error)
}

var defaultIndex Index = Disabled{}

func Default() Index { return defaultIndex }

func SetDefault(i Index) {
	if i == nil {
		i = Disabled{}
	}
	defaultIndex = i
}

// Init connects to Meilisearch and configures the properties index.
func Init() {
	host := configs.GetEnv("MEILI_HOST")
	if host == "" {
		logger.L().Info("meilisearch not configured, search uses the database")
		return
	}
	m := NewMeili(host, configs.GetEnv("MEILI_API_KEY"))
	if err := m.InitIndex(); err != nil {
		logger.L().Warn("meilisearch init failed, search uses the database", zap.Error(err))
		return
	}
	SetDefault(m)
	logger.L().Info("meilisearch enabled", zap.String("host", host))
}

type Meili struct {
	client *meilisearch.Client
	index  string
}

func NewMeili(host, apiKey string) *Meili {
	return &Meili{
		client: meilisearch.NewClient(meilisearch.ClientConfig{Host: host, APIKey: apiKey}),
		index:  PropertiesIndex,
	}
}

func (m *Meili) InitIndex() error {
	if _, err := m.client.CreateIndex(&meilisearch.IndexConfig{Uid: m.index, PrimaryKey: "id"}); err != nil &&
		!strings.Contains(err.Error(), "already exists") {
		return err
	}
	idx := m.client.Index(m.index)
	if _, err := idx.UpdateSearchableAttributes(&[]string{
		"title", "locality", "city", "address", "description", "propertyType",
	}); err != nil {
		return err
	}
	if _, err := idx.UpdateFilterableAttributes(&[]string{
		"city", "listingType", "propertyType", "isCommercial", "status", "bedrooms", "price",
	}); err != nil {
		return err
	}
	_, err := idx.UpdateSortableAttributes(&[]string{"price", "createdAt", "bedrooms"})
	return err
}

func (m *Meili) Upsert(_ context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := m.client.Index(m.index).AddDocuments(docs)
	return err
}

func (m *Meili) Remove(_ context.Context, id string) error {
	_, err := m.client.Index(m.index).DeleteDocument(id)
	return err
}

func (m *Meili) SearchIDs(_ context.Context, q Query) ([]string, int64, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	filters := []string{`status = "active"`}
	if q.City != "" {
		filters = append(filters, fmt.Sprintf("city = %q", q.City))
	}
	if q.ListingType != "" {
		filters = append(filters, fmt.Sprintf("listingType = %q", q.ListingType))
	}
	res, err := m.client.Index(m.index).Search(q.Text, &meilisearch.SearchRequest{
		Limit:                q.Limit,
		Offset:               q.Offset,
		Filter:               strings.Join(filters, " AND "),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hm, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := hm["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, res.EstimatedTotalHits, nil
}

type Disabled struct{}

func (Disabled) Upsert(context.Context, ...Document) error { return nil }
func (Disabled) Remove(context.Context, string) error      { return nil }
func (Disabled) SearchIDs(context.Context, Query) ([]string, int64, error) {
	return nil, 0, ErrDisabled
}
