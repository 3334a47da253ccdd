package embedding

import (
	"crypto/md5"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider wraps another provider with an in-memory read-through cache.
// Goal and product texts repeat heavily across turns, so this keeps alignment
// scoring from re-billing the embedding API on every plan build.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *cache.Cache
}

func NewCachedProvider(inner EmbeddingProvider) *CachedProvider {
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &CachedProvider{
		inner: inner,
		cache: c,
	}
}

func (p *CachedProvider) cacheKey(text, taskType string) string {
	return fmt.Sprintf("%s:%x", taskType, md5.Sum([]byte(text)))
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	key := p.cacheKey(text, taskType)
	if x, found := p.cache.Get(key); found {
		return &EmbeddingResponse{
			Embedding: EmbeddingResponseEmbedding{Values: x.([]float32)},
		}, nil
	}

	res, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, res.Embedding.Values, cache.DefaultExpiration)
	return res, nil
}

func (p *CachedProvider) GenerateBatch(texts []string, taskType string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		if x, found := p.cache.Get(p.cacheKey(text, taskType)); found {
			vectors[i] = x.([]float32)
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := p.inner.GenerateBatch(missing, taskType)
	if err != nil {
		return nil, err
	}
	for j, vec := range fetched {
		idx := missingIdx[j]
		vectors[idx] = vec
		p.cache.Set(p.cacheKey(texts[idx], taskType), vec, cache.DefaultExpiration)
	}
	return vectors, nil
}
