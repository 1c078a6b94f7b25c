package service

import (
	"portfolio-be/internal/dto"
	"portfolio-be/pkg/section"
)

type ISectionService interface {
	Active(req *dto.ActiveSectionRequest) *dto.ActiveSectionResponse
}

type sectionService struct{}

func NewSectionService() ISectionService {
	return &sectionService{}
}

// Active scores a geometry snapshot the same way the in-page tracker does.
func (s *sectionService) Active(req *dto.ActiveSectionRequest) *dto.ActiveSectionResponse {
	sections := make([]section.Section, 0, len(req.Sections))
	for _, g := range req.Sections {
		sections = append(sections, section.Section{
			ID:  g.Id,
			Box: section.Rect{Top: g.Top, Bottom: g.Bottom, Height: g.Height},
		})
	}

	headerOffset := section.DefaultHeaderOffset
	if req.HeaderOffset != nil {
		headerOffset = *req.HeaderOffset
	}

	opts := []section.Option{section.WithHeaderOffset(headerOffset)}
	if req.Current != "" {
		opts = append(opts, section.WithInitial(req.Current))
	}

	env := section.NewSnapshotEnvironment(sections, section.Viewport{Height: req.ViewportHeight})
	tracker := section.NewTracker(env, opts...)
	return &dto.ActiveSectionResponse{Active: tracker.Recompute()}
}
