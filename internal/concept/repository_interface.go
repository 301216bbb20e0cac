package concept

import "context"

type Repository interface {
	GetConcept(ctx context.Context) (*Concept, error)
	UpdateConcept(ctx context.Context, c *Concept) (*Concept, error)
	GetConfig(ctx context.Context) (*SiteConfig, error)
	UpdateConfig(ctx context.Context, cfg *SiteConfig) (*SiteConfig, error)
}
