package services

import (
	"bytes"
	"io"
	"sync"

	"github.com/Bipul-Dubey/health-index/predictor-service/models"
	"github.com/Bipul-Dubey/health-index/shared/dataset"
)

type DatasetService interface {
	// Bounds returns one slider per feature, in training column order.
	Bounds() []models.FeatureBounds
	Preview(limit int) *models.DatasetPreview
	Chart(w io.Writer) error
}

type datasetService struct {
	data *dataset.Dataset

	chartOnce sync.Once
	chart     []byte
	chartErr  error
}

func NewDatasetService(data *dataset.Dataset) DatasetService {
	return &datasetService{data: data}
}

func (s *datasetService) Bounds() []models.FeatureBounds {
	bounds := s.data.Bounds()
	out := make([]models.FeatureBounds, 0, len(bounds))
	for _, b := range bounds {
		out = append(out, models.FeatureBounds{
			Feature: b.Feature,
			Label:   b.Label,
			Min:     b.Min,
			Max:     b.Max,
			Default: b.Min,
		})
	}
	return out
}

func (s *datasetService) Preview(limit int) *models.DatasetPreview {
	records := s.data.Records(limit)
	return &models.DatasetPreview{
		Columns: records[0],
		Rows:    records[1:],
		Total:   s.data.Len(),
	}
}

// Chart writes the target histogram. The dataset never changes, so the PNG is
// rendered once.
func (s *datasetService) Chart(w io.Writer) error {
	s.chartOnce.Do(func() {
		var buf bytes.Buffer
		s.chartErr = s.data.WriteHistogram(&buf, dataset.DefaultHistogramBins)
		s.chart = buf.Bytes()
	})
	if s.chartErr != nil {
		return s.chartErr
	}
	_, err := w.Write(s.chart)
	return err
}
