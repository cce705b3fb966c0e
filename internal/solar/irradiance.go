package solar

import (
	"context"

	"github.com/rs/zerolog/log"

	"rooftop-solar/internal/model"
)

// IrradianceSource looks up a location's monthly climatology.
type IrradianceSource interface {
	MonthlyIrradiance(ctx context.Context, lat, lon float64) (model.SeriesIrradiance, error)
}

// ResolveIrradiance picks the irradiance for an analysis. Explicit values win;
// otherwise the location's climatology is looked up when lookup is set. A nil
// loc means no place was chosen; (0, 0) is a real point and is looked up. A
// failed or impossible lookup yields nil (flat mode) plus a notice saying so.
func ResolveIrradiance(ctx context.Context, src IrradianceSource, loc *model.Location, explicit model.Irradiance, lookup bool) (model.Irradiance, []model.Notice) {
	if explicit != nil {
		return explicit, nil
	}
	if !lookup || loc == nil {
		return nil, nil
	}
	if src == nil {
		return nil, []model.Notice{{
			Kind:    model.NoticeUpstreamUnavailable,
			Message: "irradiance lookup is not configured; using flat irradiance",
		}}
	}
	series, err := src.MonthlyIrradiance(ctx, loc.Lat, loc.Lon)
	if err != nil {
		log.Warn().Err(err).Float64("lat", loc.Lat).Float64("lon", loc.Lon).Msg("irradiance lookup failed, using flat irradiance")
		return nil, []model.Notice{{
			Kind:    model.NoticeUpstreamUnavailable,
			Message: err.Error() + "; using flat irradiance",
		}}
	}
	return series, nil
}
