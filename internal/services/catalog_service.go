package services

import (
	"rewear/internal/catalog"
	"rewear/internal/domain"
	"rewear/internal/repos"
)

type CatalogService struct {
	Items *repos.ItemRepo
}

func NewCatalogService(items *repos.ItemRepo) *CatalogService {
	return &CatalogService{Items: items}
}

// Browse takes a snapshot of the catalog and runs it through the query
// engine. The engine is pure, so a browse never blocks or is blocked by a
// concurrent redemption; it sees either the pre- or post-redemption row.
func (s *CatalogService) Browse(p catalog.Params) ([]domain.Item, error) {
	items, err := s.Items.List()
	if err != nil {
		return nil, err
	}
	return catalog.Query(items, p), nil
}

func (s *CatalogService) GetItem(id string) (domain.Item, error) {
	return s.Items.Get(id)
}
