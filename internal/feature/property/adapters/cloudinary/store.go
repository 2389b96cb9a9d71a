// Package cloudinary はCloudinaryを使用した物件画像ストアを提供します。
package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"rentease_backend/internal/feature/property/usecase"
)

// DefaultFolder はアップロード先のデフォルトフォルダです。
const DefaultFolder = "rentease_properties"

// AllowedFormats はアップロードを許可する画像形式です。
var AllowedFormats = []string{"jpg", "jpeg", "png"}

// ErrNotCloudinaryURL は Cloudinary の配信URLでない場合のエラーです。
var ErrNotCloudinaryURL = errors.New("not a cloudinary delivery url")

// Config はCloudinaryの接続設定です。URL が設定されている場合は他の認証情報より優先します。
type Config struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// ImageStore はImageStoreインターフェースのCloudinary実装です。
type ImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// ImageStoreがImageStoreを実装していることをコンパイル時に検証します。
var _ usecase.ImageStore = (*ImageStore)(nil)

// NewImageStore はCloudinaryクライアントを生成します。
func NewImageStore(cfg Config) (*ImageStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	folder := cfg.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	return &ImageStore{cld: cld, folder: folder}, nil
}

// Upload は画像をアップロードし、HTTPSの配信URLを返します。
func (s *ImageStore) Upload(ctx context.Context, img usecase.Image) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(img.Data), uploader.UploadParams{
		Folder:         s.folder,
		AllowedFormats: api.CldAPIArray(AllowedFormats),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed for %q: %w", img.Filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed for %q: %s", img.Filename, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Delete は Upload が返したURLの画像を削除します。
func (s *ImageStore) Delete(ctx context.Context, imageURL string) error {
	id, err := PublicID(imageURL)
	if err != nil {
		return err
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed for %q: %w", id, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy failed for %q: %s", id, resp.Error.Message)
	}
	return nil
}

// PublicID は配信URLから public id（フォルダ込み、拡張子なし）を取り出します。
//
//	https://res.cloudinary.com/demo/image/upload/v1712/rentease_properties/abc.jpg
//	→ rentease_properties/abc
func PublicID(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotCloudinaryURL, err)
	}
	_, rest, ok := strings.Cut(u.Path, "/upload/")
	if !ok || rest == "" {
		return "", ErrNotCloudinaryURL
	}

	segments := strings.Split(rest, "/")
	if isVersion(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "", ErrNotCloudinaryURL
	}
	last := segments[len(segments)-1]
	segments[len(segments)-1] = strings.TrimSuffix(last, path.Ext(last))

	id := strings.Join(segments, "/")
	if id == "" {
		return "", ErrNotCloudinaryURL
	}
	return id, nil
}

// isVersion は "v1712345" 形式のバージョンセグメントかどうかを返します。
func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
