package router

import (
	"net/http"

	"outfit-studio/app/controller"
	"outfit-studio/service"
)

type Controllers struct {
	Auth     *controller.AuthController
	Product  *controller.ProductController
	Outfit   *controller.OutfitController
	Checkout *controller.CheckoutController
	Cart     *controller.CartController
	// Sticker is nil when no Drive folder is configured
	Sticker *controller.StickerController

	// AuthService verifies bearer tokens for the protected routes
	AuthService service.AuthServiceInterface
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	requireAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return RequireAuth(controllers.AuthService, next)
	}

	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Auth routes
	mux.HandleFunc("/api/auth/login", controllers.Auth.Login)
	mux.HandleFunc("/api/auth/signup", controllers.Auth.Signup)
	mux.HandleFunc("/api/auth/me", requireAuth(controllers.Auth.Me))

	// Product search
	mux.HandleFunc("/api/products/search", controllers.Product.Search)

	// Base avatar - POST creates a new avatar and outfit, GET returns the current one
	mux.HandleFunc("/api/avatar", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Outfit.CreateAvatar(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Outfit.GetAvatar(w, r)
		} else {
			methodNotAllowed(w)
		}
	})

	// Outfit routes
	mux.HandleFunc("/api/outfit", controllers.Outfit.GetOutfit)
	mux.HandleFunc("/api/outfit/items", controllers.Outfit.ApplyItem)

	// Applied item by instance id - DELETE removes it, PATCH moves/resizes it
	mux.HandleFunc("/api/outfit/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Outfit.RemoveItem(w, r)
		} else if r.Method == http.MethodPatch {
			controllers.Outfit.MoveItem(w, r)
		} else {
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/outfit/avatar.svg", controllers.Outfit.AvatarSVG)
	mux.HandleFunc("/api/outfit/preview.png", controllers.Outfit.PreviewPNG)
	mux.HandleFunc("/api/outfit/finalize", controllers.Outfit.Finalize)

	// Checkout routes
	mux.HandleFunc("/api/checkout", controllers.Checkout.GetCheckout)
	mux.HandleFunc("/api/checkout/cart", requireAuth(controllers.Checkout.AddToCart))
	mux.HandleFunc("/api/checkout/buy-now", requireAuth(controllers.Checkout.BuyNow))

	// Sticker artwork sync
	if controllers.Sticker != nil {
		mux.HandleFunc("/admin/stickers/sync", controllers.Sticker.SyncStickers)
	}

	// Cart routes
	mux.HandleFunc("/api/cart", requireAuth(controllers.Cart.GetCart))

	// Cart line by product id - PUT sets the quantity, DELETE removes the line
	mux.HandleFunc("/api/cart/{productId}", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			controllers.Cart.UpdateQty(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Cart.RemoveLine(w, r)
		} else {
			methodNotAllowed(w)
		}
	}))
}
