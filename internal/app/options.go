package service

import (
	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/internal/domain/narrative"
	"github.com/okian/squadform/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry replaces the default metric registry.
func WithRegistry(reg *metric.Registry) Option {
	return func(s *Service) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithSquad replaces the built-in squad table.
func WithSquad(raw []model.RawPlayerInput) Option {
	return func(s *Service) {
		if raw != nil {
			s.squad = raw
		}
	}
}

// WithGenerator sets the narrative generator.
func WithGenerator(g narrative.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithTeam sets the team name and season shown on the team page.
func WithTeam(name, season string) Option {
	return func(s *Service) {
		if name != "" {
			s.teamName = name
		}
		if season != "" {
			s.season = season
		}
	}
}
