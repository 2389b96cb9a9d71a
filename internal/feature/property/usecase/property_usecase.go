package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"rentease_backend/internal/feature/property/domain/entity"
	"rentease_backend/internal/feature/property/domain/price"
)

const (
	// MaxImages is the number of image files accepted per request.
	MaxImages = 5
)

// PropertyRepository abstracts listing persistence.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PropertyRepository interface {
	// Create persists a new listing and fills in its ID and timestamps.
	Create(ctx context.Context, p *entity.Property) error

	// List returns every listing, newest first.
	List(ctx context.Context) ([]entity.Property, error)

	// ListByOwner returns the listings created by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error)

	// FindByID returns ErrPropertyNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*entity.Property, error)

	// FindByIDAndOwner returns ErrPropertyNotFound unless ownerID owns the listing.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error)

	// Update replaces the stored listing matching p.ID and p.UserID.
	Update(ctx context.Context, p *entity.Property) error

	// DeleteByIDAndOwner removes the listing and returns what was stored.
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error)

	// UpdatePrice overwrites the headline price only.
	UpdatePrice(ctx context.Context, id, price string) error
}

// Image is one uploaded file.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStore keeps listing images on a remote CDN.
type ImageStore interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, img Image) (string, error)
	// Delete removes the image behind a URL previously returned by Upload.
	Delete(ctx context.Context, url string) error
}

// ImageScreener flags images that must not be published.
type ImageScreener interface {
	// Screen reports whether the image is acceptable.
	Screen(ctx context.Context, data []byte) (bool, error)
}

// Describer drafts listing descriptions from a prompt.
type Describer interface {
	Describe(ctx context.Context, prompt string) (string, error)
}

// Throttle paces bulk maintenance writes.
type Throttle interface {
	Wait(ctx context.Context) error
}

// propertyUsecase implements listing business logic.
type propertyUsecase struct {
	repo      PropertyRepository
	images    ImageStore
	screener  ImageScreener
	describer Describer
}

// NewPropertyUsecase creates a propertyUsecase. screener and describer may be nil.
func NewPropertyUsecase(repo PropertyRepository, images ImageStore, screener ImageScreener, describer Describer) *propertyUsecase {
	return &propertyUsecase{
		repo:      repo,
		images:    images,
		screener:  screener,
		describer: describer,
	}
}

// Create normalizes a submission, uploads its images and persists the listing for ownerID.
// Images already uploaded are not removed if a later step fails.
func (u *propertyUsecase) Create(ctx context.Context, ownerID string, sub Submission, uploads []Image) (*entity.Property, error) {
	if len(uploads) > MaxImages {
		return nil, ErrTooManyImages
	}
	p, err := Normalize(sub)
	if err != nil {
		return nil, err
	}

	urls, err := u.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	p.UserID = ownerID
	p.Images = urls
	p.Verified = false
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}
	return p, nil
}

// List returns all listings.
func (u *propertyUsecase) List(ctx context.Context) ([]entity.Property, error) {
	return u.repo.List(ctx)
}

// ListByOwner returns the caller's listings.
func (u *propertyUsecase) ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

// Get returns a single listing.
func (u *propertyUsecase) Get(ctx context.Context, id string) (*entity.Property, error) {
	return u.repo.FindByID(ctx, id)
}

// Update re-normalizes an owned listing. Images become existing followed by new uploads.
func (u *propertyUsecase) Update(ctx context.Context, ownerID, id string, sub Submission, existing []string, uploads []Image) (*entity.Property, error) {
	if len(uploads) > MaxImages {
		return nil, ErrTooManyImages
	}
	current, err := u.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	next, err := Normalize(sub)
	if err != nil {
		return nil, err
	}

	urls, err := u.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	next.ID = current.ID
	next.UserID = current.UserID
	next.Verified = current.Verified
	next.CreatedAt = current.CreatedAt
	if len(next.Rooms) == 0 {
		next.Rooms = current.Rooms
	}
	if len(next.Details) == 0 {
		next.Details = current.Details
	}
	if !sub.Has("amenities") && !sub.Has("amenities[]") {
		next.Amenities = current.Amenities
	}
	next.Images = compact(append(append([]string{}, existing...), urls...))

	if err := u.repo.Update(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes an owned listing, then deletes its images on a best-effort basis.
func (u *propertyUsecase) Delete(ctx context.Context, ownerID, id string) error {
	deleted, err := u.repo.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if u.images == nil {
		return nil
	}
	for _, url := range deleted.Images {
		if err := u.images.Delete(ctx, url); err != nil {
			slog.Warn("image delete failed", "error", err, "property_id", id, "url", url)
		}
	}
	return nil
}

// DraftDescription asks the describer for a listing description.
func (u *propertyUsecase) DraftDescription(ctx context.Context, sub Submission) (string, error) {
	if u.describer == nil {
		return "", ErrDescriberUnavailable
	}
	title := sub.Get("title")
	location := sub.Get("location")
	if title == "" || location == "" {
		return "", ErrMissingDescribeFields
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a friendly two-paragraph rental listing description in English for %q in %s.", title, location)
	if t := sub.Get("type"); t != "" {
		fmt.Fprintf(&b, " Property type: %s.", t)
	}
	if raw := sub.Get("price"); raw != "" {
		fmt.Fprintf(&b, " Rent: %s.", price.Format(raw, price.UnitNone))
	}
	if amenities := sub.List("amenities", "amenities[]"); len(amenities) > 0 {
		fmt.Fprintf(&b, " Amenities: %s.", strings.Join(amenities, ", "))
	}
	b.WriteString(" Do not invent facts that are not listed.")

	text, err := u.describer.Describe(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("describer failed for %q: %w", title, err)
	}
	return strings.TrimSpace(text), nil
}

// Reprice re-derives every stored headline price from its digits and type.
// It returns how many listings changed.
func (u *propertyUsecase) Reprice(ctx context.Context, throttle Throttle) (int, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, p := range all {
		next := price.Reformat(p.Price, p.Type)
		if next == p.Price {
			continue
		}
		if throttle != nil {
			if err := throttle.Wait(ctx); err != nil {
				return updated, err
			}
		}
		if err := u.repo.UpdatePrice(ctx, p.ID, next); err != nil {
			return updated, fmt.Errorf("failed to update price of %s: %w", p.ID, err)
		}
		slog.Info("price updated", "property_id", p.ID, "old", p.Price, "new", next)
		updated++
	}
	return updated, nil
}

// uploadAll screens and uploads images concurrently, keeping input order.
// The first failure cancels the remaining uploads.
func (u *propertyUsecase) uploadAll(ctx context.Context, uploads []Image) ([]string, error) {
	urls := make([]string, len(uploads))
	if len(uploads) == 0 {
		return urls, nil
	}
	if u.images == nil {
		return nil, errors.New("image storage is not configured")
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range uploads {
		g.Go(func() error {
			if u.screener != nil {
				ok, err := u.screener.Screen(gctx, img.Data)
				if err != nil {
					return fmt.Errorf("failed to screen %s: %w", img.Filename, err)
				}
				if !ok {
					return fmt.Errorf("%w: %s", ErrImageRejected, img.Filename)
				}
			}
			url, err := u.images.Upload(gctx, img)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", img.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// ParseImageList decodes the JSON list of image URLs a client keeps on update.
// Malformed input yields an empty list.
func ParseImageList(raw string) []string {
	var out []string
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("existing images ignored", "error", err)
		return []string{}
	}
	return compact(out)
}

// ImageListFrom reads the kept image URLs from the values of one form field.
// A single value holding a JSON array is decoded; any other values are the URLs themselves.
func ImageListFrom(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		return ParseImageList(values[0])
	}
	return compact(values)
}

// compact drops blank entries.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
