package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_recommendations_total",
			Help: "Recommendation requests by kind and result status",
		},
		[]string{"kind", "status"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wardrobe_recommendation_duration_seconds",
			Help:    "Time spent in the outfit engine",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"kind"},
	)

	CatalogCacheLoads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_catalog_cache_loads_total",
			Help: "Catalog snapshots loaded from the database on a cache miss",
		},
	)

	WearTasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_wear_tasks_total",
			Help: "Processed clothing:worn tasks by outcome",
		},
		[]string{"outcome"},
	)
)
