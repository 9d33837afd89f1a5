package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_admin/internal/domain"
)

// ReferenceDataMessage is shown to the operator when reference lists cannot be loaded.
const ReferenceDataMessage = "Failed to load master data. Try refreshing."

const referenceCacheKey = "reference:v1"

type ReferenceService struct {
	api      domain.HotelAPI
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewReferenceService wires the reference loader. cache may be nil.
func NewReferenceService(api domain.HotelAPI, c domain.Cache, ttl time.Duration) *ReferenceService {
	return &ReferenceService{api: api, cache: c, cacheTTL: ttl}
}

// Load fetches the four reference lists concurrently and joins them. Any
// single failure fails the whole load; there is no partial result and no retry.
func (s *ReferenceService) Load(ctx context.Context) (domain.ReferenceLists, error) {
	if s.cache != nil {
		var cached domain.ReferenceLists
		ok, err := s.cache.Get(ctx, referenceCacheKey, &cached)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("reference cache unreadable, reloading")
			_ = s.cache.Del(ctx, referenceCacheKey)
		case ok:
			return cached, nil
		}
	}

	var out domain.ReferenceLists

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Districts, err = s.api.ListDistricts(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.HotelTypes, err = s.api.ListHotelTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Landscapes, err = s.api.ListLandscapes(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Amenities, err = s.api.ListAmenities(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("reference data load failed")
		return domain.ReferenceLists{}, fmt.Errorf("%w: %w", domain.ErrReferenceData, err)
	}

	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, referenceCacheKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Invalidate drops the cached lists, e.g. after an amenity changed.
func (s *ReferenceService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, referenceCacheKey)
	}
}
