// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package analytics assembles the dashboard's reporting views from athlete
registration data.

# Architecture

The package splits into three layers:

  - Repository aggregates raw counts from Postgres (one round trip per
    aggregate, trends grouped server-side).
  - Service turns raw counts into the report payloads and derives the
    platform-level engagement figures from them.
  - Handler exposes the reports over HTTP behind permission checks.

The full summary is cached in Redis for a short window since it fans out to
every aggregate; cache failures degrade to a live computation.
*/
package analytics

import "time"

// # Report Building Blocks

// TimePoint is one entry of a time series, keyed by ISO date (or RFC 3339
// timestamp for hourly series).
type TimePoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// LocationShare reports how many athletes registered from one city.
type LocationShare struct {
	Location   string  `json:"location"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SportShare reports how many athletes list one sport as primary.
type SportShare struct {
	Sport      string  `json:"sport"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Growth     float64 `json:"growth"`
}

// ExperienceShare reports the athlete count at one experience level.
type ExperienceShare struct {
	Level      string  `json:"level"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SportEngagement scores one sport's activity level.
type SportEngagement struct {
	Sport           string  `json:"sport"`
	EngagementScore float64 `json:"engagement_score"`
}

// FeatureUsage reports how many athletes used one onboarding feature.
type FeatureUsage struct {
	Feature    string `json:"feature"`
	UsageCount int    `json:"usage_count"`
}

// # Reports

// UserReport is the registration-focused analytics payload.
type UserReport struct {
	TotalUsers        int               `json:"total_users"`
	ActiveUsers       int               `json:"active_users"`
	NewUsersToday     int               `json:"new_users_today"`
	NewUsersThisWeek  int               `json:"new_users_this_week"`
	NewUsersThisMonth int               `json:"new_users_this_month"`
	UserGrowthRate    float64           `json:"user_growth_rate"`
	RegistrationTrend []TimePoint       `json:"registration_trend"`
	UsersByLocation   []LocationShare   `json:"users_by_location"`
	UsersBySport      []SportShare      `json:"users_by_sport"`
	UsersByExperience []ExperienceShare `json:"users_by_experience"`
}

// SportReport is the sport-popularity analytics payload.
type SportReport struct {
	SportPopularity   []SportShare      `json:"sport_popularity"`
	SportGrowthTrends []TimePoint       `json:"sport_growth_trends"`
	SportEngagement   []SportEngagement `json:"sport_engagement"`
	TopSports         []SportShare      `json:"top_sports"`
}

// EngagementReport carries the platform-level engagement figures. Session
// tracking is not instrumented yet, so most figures are derived from the
// registration base with fixed coefficients.
type EngagementReport struct {
	TotalSessions          int            `json:"total_sessions"`
	AverageSessionDuration float64        `json:"average_session_duration"`
	BounceRate             float64        `json:"bounce_rate"`
	RetentionRate          float64        `json:"retention_rate"`
	DailyActiveUsers       int            `json:"daily_active_users"`
	WeeklyActiveUsers      int            `json:"weekly_active_users"`
	MonthlyActiveUsers     int            `json:"monthly_active_users"`
	SessionTrend           []TimePoint    `json:"session_trend"`
	FeatureUsage           []FeatureUsage `json:"feature_usage"`
}

// Alert is one operational alert surfaced on the system dashboard.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Resolved  bool      `json:"resolved"`
}

// SystemReport is the operational health snapshot.
type SystemReport struct {
	APIMetrics        map[string]float64 `json:"api_metrics"`
	DatabaseMetrics   map[string]float64 `json:"database_metrics"`
	PerformanceAlerts []Alert            `json:"performance_alerts"`
	Uptime            float64            `json:"uptime"`
	ResponseTimes     []TimePoint        `json:"response_times"`
	ErrorRates        []TimePoint        `json:"error_rates"`
}

// Summary bundles every report into one dashboard payload.
type Summary struct {
	UserAnalytics     *UserReport       `json:"user_analytics"`
	SportAnalytics    *SportReport      `json:"sport_analytics"`
	EngagementMetrics *EngagementReport `json:"engagement_metrics"`
	SystemMetrics     *SystemReport     `json:"system_metrics"`
	GeneratedAt       time.Time         `json:"generated_at"`
}
