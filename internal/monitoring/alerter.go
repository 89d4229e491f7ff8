package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/config"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertOverdueDisclosures AlertType = "overdue_disclosures"
	AlertRedDealRate        AlertType = "red_deal_rate"
	AlertHighRiskDeals      AlertType = "high_risk_deals"
)

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter evaluates a MetricsSnapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap *MetricsSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	// Missed disclosure windows are the highest-stakes failure: eligibility
	// consequences attach to the athlete, not the system.
	if a.cfg.OverdueThreshold > 0 && snap.OverdueDisclosures >= a.cfg.OverdueThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertOverdueDisclosures,
			Severity: "high",
			Message: fmt.Sprintf(
				"%d deal(s) past their disclosure deadline and still unsubmitted",
				snap.OverdueDisclosures,
			),
			Details: map[string]any{
				"overdue": snap.OverdueDisclosures,
				"urgent":  snap.UrgentDisclosures,
			},
			Timestamp: now,
		})
	}

	// A high red rate suggests a systemic problem (bad rules data or a
	// booster-driven deal wave), not individual athlete mistakes.
	if snap.DealsTotal >= 5 && a.cfg.RedRateThreshold > 0 && snap.RedRate > a.cfg.RedRateThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertRedDealRate,
			Severity: "high",
			Message: fmt.Sprintf(
				"Red deal rate %.1f%% exceeds threshold %.1f%% (%d of %d deals)",
				snap.RedRate*100, a.cfg.RedRateThreshold*100,
				snap.RedDeals, snap.DealsTotal,
			),
			Details: map[string]any{
				"red_rate":  snap.RedRate,
				"threshold": a.cfg.RedRateThreshold,
				"red_deals": snap.RedDeals,
				"total":     snap.DealsTotal,
			},
			Timestamp: now,
		})
	}

	if snap.HighRiskDeals > 0 {
		alerts = append(alerts, Alert{
			Type:     AlertHighRiskDeals,
			Severity: "medium",
			Message: fmt.Sprintf(
				"%d active deal(s) flagged high pay-for-play risk",
				snap.HighRiskDeals,
			),
			Details: map[string]any{
				"high_risk": snap.HighRiskDeals,
			},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		if err := a.sendWebhook(ctx, alert); err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

// sendWebhook posts a single alert to the webhook URL.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
