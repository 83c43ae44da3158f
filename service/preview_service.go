package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Screenshotter captures a rendered HTML page as a PNG image
type Screenshotter interface {
	Capture(ctx context.Context, pageHTML []byte) ([]byte, error)
}

// PreviewService exports the avatar as a PNG preview in several sizes
type PreviewService struct {
	screenshotter Screenshotter
	cache         *ImageCache
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(screenshotter Screenshotter, cache *ImageCache) *PreviewService {
	return &PreviewService{
		screenshotter: screenshotter,
		cache:         cache,
	}
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)

// RenderPNG returns the PNG preview of pageHTML at the given size.
// Identical pages are served from the disk cache.
func (s *PreviewService) RenderPNG(ctx context.Context, pageHTML []byte, size string) ([]byte, error) {
	cachePath := s.cache.Path(pageHTML, size)
	if data, ok := s.cache.Read(cachePath); ok {
		log.Printf("✓ RenderPNG: Cache hit %s", cachePath)
		return data, nil
	}

	shot, err := s.screenshotter.Capture(ctx, pageHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to capture preview: %w", err)
	}

	optimized, err := OptimizeImage(shot, size)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(cachePath, optimized); err != nil {
		// Serving the preview matters more than caching it
		log.Printf("⚠️  RenderPNG: Failed to cache preview: %v", err)
	}
	return optimized, nil
}

// ChromeScreenshotter renders pages in headless Chrome through chromedp
type ChromeScreenshotter struct {
	chromePath string
	timeout    time.Duration
}

// NewChromeScreenshotter creates a ChromeScreenshotter; an empty chromePath is auto-detected
func NewChromeScreenshotter(chromePath string, timeout time.Duration) *ChromeScreenshotter {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &ChromeScreenshotter{chromePath: chromePath, timeout: timeout}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Capture loads pageHTML into a blank tab and screenshots its <svg> element
func (c *ChromeScreenshotter) Capture(ctx context.Context, pageHTML []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	log.Printf("📸 Capture: Rendering preview (%d bytes of HTML)", len(pageHTML))

	var pngBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(300, 600),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(pageHTML)).Do(ctx)
		}),
		chromedp.WaitVisible("svg", chromedp.ByQuery),
		// Wait for sticker artwork to load
		chromedp.Evaluate(`
			Promise.all(Array.from(document.querySelectorAll('image')).map(img => new Promise(resolve => {
				const timeout = setTimeout(resolve, 3000);
				img.addEventListener('load', () => { clearTimeout(timeout); resolve(); });
				img.addEventListener('error', () => { clearTimeout(timeout); resolve(); });
			})));
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Screenshot("svg", &pngBuf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to screenshot preview: %w", err)
	}

	return pngBuf, nil
}
