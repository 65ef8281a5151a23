package ddns

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edvin/ddns/internal/metrics"
	"github.com/edvin/ddns/internal/model"
)

// TokenStatusActive is the only token status that allows updates.
const TokenStatusActive = "active"

// Provider is the subset of the DNS provider API the updater needs. A
// Provider is bound to one caller's credentials and must not be shared
// across requests.
type Provider interface {
	VerifyToken(ctx context.Context) (string, error)
	ListZones(ctx context.Context) ([]model.Zone, error)
	ListRecords(ctx context.Context, zoneID, name, recordType string) ([]model.ZoneRecord, error)
	UpdateRecord(ctx context.Context, update model.ZoneRecordUpdate) (*model.ZoneRecord, error)
}

// Notifier receives a message for every successfully updated record. It must
// not block the caller and never reports failure.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Updater applies a batch of record changes for a single request.
type Updater struct {
	provider Provider
	notifier Notifier
}

func NewUpdater(provider Provider, notifier Notifier) *Updater {
	return &Updater{provider: provider, notifier: notifier}
}

// Apply verifies the token, resolves the zones visible to it and updates one
// record per change, in order. It stops at the first failing change; records
// updated before the failure stay updated.
func (u *Updater) Apply(ctx context.Context, changes []model.RecordChange) error {
	logger := zerolog.Ctx(ctx)

	status, err := u.provider.VerifyToken(ctx)
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	if status != TokenStatusActive {
		return AuthError(fmt.Sprintf("API Token status: '%s'", status))
	}

	zones, err := u.provider.ListZones(ctx)
	if err != nil {
		return fmt.Errorf("list zones: %w", err)
	}
	if len(zones) == 0 {
		return OrchestrationError("No zones available in API Token.")
	}
	logger.Debug().Int("zones", len(zones)).Int("changes", len(changes)).Msg("token verified")

	for _, change := range changes {
		record, err := u.resolveRecord(ctx, zones, change)
		if err != nil {
			return err
		}

		if err := u.updateRecord(ctx, record, change); err != nil {
			metrics.RecordUpdates.WithLabelValues(change.Type, metrics.ResultError).Inc()
			return err
		}
		metrics.RecordUpdates.WithLabelValues(change.Type, metrics.ResultUpdated).Inc()

		logger.Info().
			Str("hostname", change.Hostname).
			Str("type", change.Type).
			Str("zone_id", record.ZoneID).
			Str("record_id", record.ID).
			Str("previous", record.Content).
			Str("content", change.IP).
			Msg("dns record updated")

		u.notifier.Notify(ctx, successMessage(record, change))
	}

	return nil
}

// resolveRecord finds the single record matching the change's hostname and
// type across all zones.
func (u *Updater) resolveRecord(ctx context.Context, zones []model.Zone, change model.RecordChange) (model.ZoneRecord, error) {
	var candidates []model.ZoneRecord
	for _, zone := range zones {
		records, err := u.provider.ListRecords(ctx, zone.ID, change.Hostname, change.Type)
		if err != nil {
			metrics.RecordUpdates.WithLabelValues(change.Type, metrics.ResultError).Inc()
			return model.ZoneRecord{}, fmt.Errorf("list records for %s in zone %s: %w", change.Hostname, zone.ID, err)
		}
		for _, rec := range records {
			if rec.ZoneID == "" {
				rec.ZoneID = zone.ID
			}
			candidates = append(candidates, rec)
		}
	}

	switch len(candidates) {
	case 0:
		metrics.RecordUpdates.WithLabelValues(change.Type, metrics.ResultNotFound).Inc()
		return model.ZoneRecord{}, OrchestrationError(fmt.Sprintf(
			"No matching record found for '%s'. Create it manually first.", change.Hostname))
	case 1:
		return candidates[0], nil
	default:
		metrics.RecordUpdates.WithLabelValues(change.Type, metrics.ResultAmbiguous).Inc()
		return model.ZoneRecord{}, OrchestrationError(fmt.Sprintf(
			"Multiple matching records found for '%s'. Specify a unique hostname per zone.", change.Hostname))
	}
}

func (u *Updater) updateRecord(ctx context.Context, record model.ZoneRecord, change model.RecordChange) error {
	_, err := u.provider.UpdateRecord(ctx, model.ZoneRecordUpdate{
		ZoneID:   record.ZoneID,
		RecordID: record.ID,
		Name:     record.Name,
		Type:     record.Type,
		Content:  change.IP,
		TTL:      record.TTL,
		Proxied:  record.Proxied != nil && *record.Proxied,
		Comment:  record.Comment,
	})
	if err != nil {
		return fmt.Errorf("update record %s (%s): %w", change.Hostname, record.ID, err)
	}
	return nil
}

func successMessage(record model.ZoneRecord, change model.RecordChange) string {
	return fmt.Sprintf("DNS record %s (%s) updated from %s to %s", record.Name, record.Type, record.Content, change.IP)
}
