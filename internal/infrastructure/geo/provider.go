// Package geo resuelve una posición aproximada cuando el dispositivo no envía
// coordenadas con el check-in. Usa un servicio de geolocalización por IP
// (formato ip-api.com/json); es best effort y con timeout corto para no
// retrasar el fichaje.
package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/attendance"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/pkg/config"
)

var _ attendance.GeoProvider = (*Provider)(nil)

// Provider implementación de attendance.GeoProvider sobre HTTP.
type Provider struct {
	client *resty.Client
}

// NewProvider construye el cliente con la URL base y timeout configurados.
func NewProvider(cfg config.GeoConfig) *Provider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutMS) * time.Millisecond).
		SetRetryCount(1)
	return &Provider{client: client}
}

type geoResponse struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Locate consulta el servicio y devuelve la coordenada aproximada.
func (p *Provider) Locate(ctx context.Context) (*entity.GPS, error) {
	var out geoResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/json")
	if err != nil {
		return nil, fmt.Errorf("geo lookup: %w", err)
	}
	if resp.IsError() || out.Status == "fail" {
		return nil, fmt.Errorf("geo lookup: estado %s", resp.Status())
	}
	return &entity.GPS{Lat: out.Lat, Lng: out.Lon}, nil
}
