package memory

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	wvmodels "github.com/weaviate/weaviate/entities/models"
)

// memoryClass is the vector collection holding assistant conversation turns.
const memoryClass = "ChatMemory"

// Store is the assistant's long-term memory. Recall and Remember failures
// are treated as soft by the caller; the assistant answers without memory
// rather than failing the request.
type Store interface {
	// Recall returns up to limit stored snippets semantically close to
	// query, scoped to the user.
	Recall(ctx context.Context, userID uint, query string, limit int) ([]string, error)
	// Remember stores one conversation turn and returns its object handle.
	Remember(ctx context.Context, userID uint, sessionID, text string) (string, error)
	// Forget removes stored objects by handle. Unknown handles are ignored.
	Forget(ctx context.Context, memoryIDs []string) error
}

type weaviateStore struct {
	client *weaviate.Client
}

// NewWeaviateStore connects to the Weaviate instance at rawURL and makes
// sure the memory collection exists.
func NewWeaviateStore(ctx context.Context, rawURL string) (Store, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weaviate url %q: %w", rawURL, err)
	}
	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "http"
	}

	client, err := weaviate.NewClient(weaviate.Config{
		Host:   parsed.Host,
		Scheme: scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("weaviate client: %w", err)
	}

	store := &weaviateStore{client: client}
	if err := store.ensureClass(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *weaviateStore) ensureClass(ctx context.Context) error {
	exists, err := s.client.Schema().ClassExistenceChecker().
		WithClassName(memoryClass).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("check %s class: %w", memoryClass, err)
	}
	if exists {
		return nil
	}

	class := &wvmodels.Class{
		Class:      memoryClass,
		Vectorizer: "text2vec-openai",
		Properties: []*wvmodels.Property{
			{Name: "text", DataType: []string{"text"}},
			{Name: "userId", DataType: []string{"text"}},
			{Name: "sessionId", DataType: []string{"text"}},
		},
	}
	if err := s.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create %s class: %w", memoryClass, err)
	}
	return nil
}

func (s *weaviateStore) Recall(ctx context.Context, userID uint, query string, limit int) ([]string, error) {
	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	where := filters.Where().
		WithPath([]string{"userId"}).
		WithOperator(filters.Equal).
		WithValueString(strconv.FormatUint(uint64(userID), 10))

	result, err := s.client.GraphQL().Get().
		WithClassName(memoryClass).
		WithFields(graphql.Field{Name: "text"}).
		WithWhere(where).
		WithNearText(nearText).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory recall: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("memory recall: %s", result.Errors[0].Message)
	}

	get, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	objects, ok := get[memoryClass].([]interface{})
	if !ok {
		return nil, nil
	}

	snippets := make([]string, 0, len(objects))
	for _, obj := range objects {
		fields, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}
		if text, ok := fields["text"].(string); ok && text != "" {
			snippets = append(snippets, text)
		}
	}
	return snippets, nil
}

func (s *weaviateStore) Remember(ctx context.Context, userID uint, sessionID, text string) (string, error) {
	created, err := s.client.Data().Creator().
		WithClassName(memoryClass).
		WithProperties(map[string]interface{}{
			"text":      text,
			"userId":    strconv.FormatUint(uint64(userID), 10),
			"sessionId": sessionID,
		}).
		Do(ctx)
	if err != nil {
		return "", fmt.Errorf("memory store: %w", err)
	}
	return string(created.Object.ID), nil
}

func (s *weaviateStore) Forget(ctx context.Context, memoryIDs []string) error {
	for _, id := range memoryIDs {
		err := s.client.Data().Deleter().
			WithClassName(memoryClass).
			WithID(id).
			Do(ctx)
		if err != nil {
			return fmt.Errorf("memory delete %s: %w", id, err)
		}
	}
	return nil
}
