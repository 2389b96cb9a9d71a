package di

import (
	"context"
	"log/slog"

	"rentease_backend/internal/feature/property/adapters/cloudinary"
	"rentease_backend/internal/feature/property/adapters/gemini"
	"rentease_backend/internal/feature/property/adapters/vision"
	propertyusecase "rentease_backend/internal/feature/property/usecase"
	"rentease_backend/internal/platform/config"
)

// NewImageStore は Cloudinary の画像ストアを生成します。
// 認証情報が無い場合は nil を返し、画像付きの投稿はエラーになります。
func NewImageStore(cfg *config.Config) (propertyusecase.ImageStore, error) {
	if !cfg.HasCloudinary() {
		slog.Warn("cloudinary is not configured; image uploads are disabled")
		return nil, nil
	}
	store, err := cloudinary.NewImageStore(cloudinary.Config{
		URL:       cfg.CloudinaryURL,
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryFolder,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewImageScreener は VISION_SCREENING が有効な場合に Vision の審査クライアントを生成します。
// 生成に失敗しても起動は継続し、審査なしで動作します。返り値の close は常に呼び出し可能です。
func NewImageScreener(ctx context.Context, cfg *config.Config) (propertyusecase.ImageScreener, func() error) {
	noop := func() error { return nil }
	if !cfg.VisionScreening {
		return nil, noop
	}
	s, err := vision.NewVisionScreener(ctx)
	if err != nil {
		slog.Warn("vision screening disabled", "error", err)
		return nil, noop
	}
	return s, s.Close
}

// NewDescriber は GEMINI_ENABLED が有効な場合に説明文生成クライアントを生成します。
func NewDescriber(ctx context.Context, cfg *config.Config) propertyusecase.Describer {
	if !cfg.GeminiEnabled {
		return nil
	}
	d, err := gemini.NewGeminiDescriber(ctx, nil, cfg.GeminiModel)
	if err != nil {
		slog.Warn("description drafts disabled", "error", err)
		return nil
	}
	return d
}
