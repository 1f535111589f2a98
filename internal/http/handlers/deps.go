package handlers

import (
	"github.com/jmoiron/sqlx"

	"rewear/internal/config"
	"rewear/internal/repos"
	"rewear/internal/services"
)

type Deps struct {
	ItemHandler  *ItemHandler
	SwapHandler  *SwapHandler
	AdminHandler *AdminHandler
	MediaHandler *MediaHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	itemRepo := repos.NewItemRepo(db)
	userRepo := repos.NewUserRepo(db)
	swapRepo := repos.NewSwapRepo(db)

	policy := services.PolicyFreeItem
	if cfg.SwapPolicy == "transfer" {
		policy = services.PolicyTransferPoints
	}

	catalogSvc := services.NewCatalogService(itemRepo)
	listingSvc := services.NewListingService(itemRepo)
	swapSvc := services.NewSwapService(itemRepo, userRepo, swapRepo, policy)

	return &Deps{
		ItemHandler:  &ItemHandler{Catalog: catalogSvc, Listings: listingSvc},
		SwapHandler:  &SwapHandler{Swaps: swapSvc},
		AdminHandler: &AdminHandler{Items: itemRepo, Users: userRepo},
		MediaHandler: &MediaHandler{MediaDir: cfg.MediaDir},
	}
}
