package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"outfit-studio/app/controller"
	"outfit-studio/app/router"
	"outfit-studio/config"
	"outfit-studio/db"
	"outfit-studio/repository"
	"outfit-studio/service"
)

const (
	sessionSweepInterval = time.Minute
	previewTimeout       = 30 * time.Second
)

// Initialize initializes the application and registers its routes on mux
func Initialize(ctx context.Context, cfg *config.Config, mux *http.ServeMux) error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repository
	cartRepo := repository.NewCartRepository(db.DB)

	// Outbound calls to the product and auth services share one client
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	productService := service.NewProductService(cfg.ProductsAPIURL, httpClient)
	authService := service.NewAuthService(cfg.AuthAPIURL, httpClient)

	// Tab-scoped builder sessions and handoffs
	sessions := service.NewSessionStore(cfg.SessionTTL)
	sessions.StartJanitor(ctx, sessionSweepInterval)

	// Sticker artwork is optional
	var artwork service.ArtworkProvider
	var stickerController *controller.StickerController
	if cfg.StickerFolderID != "" && cfg.CredentialsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.CredentialsPath)
		if err != nil {
			return err
		}
		stickerSync := service.NewStickerSyncService(driveService)
		if _, err := stickerSync.Sync(ctx, cfg.StickerFolderID); err != nil {
			log.Printf("⚠️  Initial sticker sync failed, using emoji stickers: %v", err)
		}
		artwork = stickerSync
		stickerController = controller.NewStickerController(stickerSync, cfg.StickerFolderID)
	} else {
		log.Printf("⚠️  STICKER_DRIVE_FOLDER_ID or GOOGLE_APPLICATION_CREDENTIALS not set, using emoji stickers")
	}

	renderService := service.NewRenderService(artwork)

	imageCache := service.NewImageCache(cfg.PreviewCacheDir)
	if err := imageCache.EnsureDir(); err != nil {
		return err
	}
	previewService := service.NewPreviewService(service.NewChromeScreenshotter("", previewTimeout), imageCache)

	// Create controllers
	controllers := &router.Controllers{
		Auth:        controller.NewAuthController(authService),
		Product:     controller.NewProductController(productService),
		Outfit:      controller.NewOutfitController(sessions, renderService, previewService),
		Checkout:    controller.NewCheckoutController(sessions, cartRepo),
		Cart:        controller.NewCartController(cartRepo),
		Sticker:     stickerController,
		AuthService: authService,
	}

	router.SetupRoutes(mux, controllers)

	return nil
}
