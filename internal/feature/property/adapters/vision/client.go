// Package vision はGoogle Cloud Vision APIのSafeSearchを使用した画像審査クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"rentease_backend/internal/feature/property/usecase"
)

// annotateFunc は BatchAnnotateImages の呼び出しです。テストで差し替えます。
type annotateFunc func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)

// VisionScreener はSafeSearch判定で掲載できない画像を検出します。
type VisionScreener struct {
	client   *gvision.ImageAnnotatorClient
	annotate annotateFunc
	// threshold 以上の尤度を不適切とみなします。
	threshold visionpb.Likelihood
}

// VisionScreenerがImageScreenerを実装していることをコンパイル時に検証します。
var _ usecase.ImageScreener = (*VisionScreener)(nil)

// NewVisionScreener はADCを使用してVisionScreenerの新しいインスタンスを生成します。
func NewVisionScreener(ctx context.Context) (*VisionScreener, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionScreener{
		client: client,
		annotate: func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
			return client.BatchAnnotateImages(ctx, req)
		},
		threshold: visionpb.Likelihood_LIKELY,
	}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionScreener) Close() error {
	if v.client == nil {
		return nil
	}
	return v.client.Close()
}

// Screen は画像が掲載可能かどうかを返します。
func (v *VisionScreener) Screen(ctx context.Context, imageData []byte) (bool, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_SAFE_SEARCH_DETECTION},
				},
			},
		},
	}

	resp, err := v.annotate(ctx, req)
	if err != nil {
		return false, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return true, nil
	}

	if resp.Responses[0].Error != nil {
		return false, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	return acceptable(resp.Responses[0].SafeSearchAnnotation, v.threshold), nil
}

// acceptable は adult / violence / racy のいずれかが threshold 以上なら false を返します。
func acceptable(a *visionpb.SafeSearchAnnotation, threshold visionpb.Likelihood) bool {
	if a == nil {
		return true
	}
	for _, l := range []visionpb.Likelihood{a.Adult, a.Violence, a.Racy} {
		if l >= threshold {
			return false
		}
	}
	return true
}
