package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dlyog/dl-creator-cli/internal/domain"
)

type recordPayload struct {
	ID            int64     `json:"id"`
	LicenseNumber string    `json:"licenseNumber"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	FullName      string    `json:"fullName"`
	VehicleType   string    `json:"vehicleType"`
	VehicleMake   string    `json:"vehicleMake"`
	Address       string    `json:"address"`
	LicenseStatus string    `json:"licenseStatus"`
	IssueDate     timestamp `json:"issueDate"`
	Expiration    timestamp `json:"expirationDate"`
	Expiry        timestamp `json:"expiryDate"`
}

func (p recordPayload) toDomain() domain.LicenseRecord {
	expiry := p.Expiration.Time
	if expiry.IsZero() {
		expiry = p.Expiry.Time
	}

	return domain.LicenseRecord{
		ID:            p.ID,
		LicenseNumber: p.LicenseNumber,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		FullName:      p.FullName,
		VehicleType:   p.VehicleType,
		VehicleMake:   p.VehicleMake,
		Address:       p.Address,
		Status:        p.LicenseStatus,
		IssueDate:     p.IssueDate.Time,
		ExpiryDate:    expiry,
	}
}

// Lookup returns domain.ErrLicenseNotFound for a 404, an empty body, a null
// data member or a record with no identifying fields.
func (c Client) Lookup(ctx context.Context, credential string) (domain.LicenseRecord, error) {
	if credential == "" {
		return domain.LicenseRecord{}, domain.ErrNotAuthenticated
	}

	status, data, err := c.do(ctx, http.MethodGet, LicenseLookupPath, credential, nil)
	if err != nil {
		return domain.LicenseRecord{}, fmt.Errorf("lookup license: %w", err)
	}
	if status == http.StatusNotFound {
		return domain.LicenseRecord{}, domain.ErrLicenseNotFound
	}
	if !successful(status) {
		return domain.LicenseRecord{}, fmt.Errorf("lookup license: %w", failure(status, data))
	}

	record, err := decodeRecord(data)
	if err != nil {
		return domain.LicenseRecord{}, fmt.Errorf("lookup license: %w", err)
	}
	return record, nil
}

func (c Client) Create(ctx context.Context, credential string, fields domain.LicenseFields) (domain.LicenseRecord, error) {
	if credential == "" {
		return domain.LicenseRecord{}, domain.ErrNotAuthenticated
	}

	status, data, err := c.do(ctx, http.MethodPost, CreateLicensePath, credential, fields)
	if err != nil {
		return domain.LicenseRecord{}, fmt.Errorf("create license: %w", err)
	}
	if status == http.StatusConflict {
		return domain.LicenseRecord{}, domain.ErrLicenseExists
	}
	if !successful(status) {
		return domain.LicenseRecord{}, fmt.Errorf("create license: %w", failure(status, data))
	}

	record, err := decodeRecord(data)
	if err != nil {
		if errors.Is(err, domain.ErrLicenseNotFound) {
			return domain.LicenseRecord{}, errors.New("create license: server returned no record")
		}
		return domain.LicenseRecord{}, fmt.Errorf("create license: %w", err)
	}
	return record, nil
}

func decodeRecord(data []byte) (domain.LicenseRecord, error) {
	raw := unwrapData(data)
	if isNullJSON(raw) {
		return domain.LicenseRecord{}, domain.ErrLicenseNotFound
	}

	var payload recordPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.LicenseRecord{}, fmt.Errorf("decode record: %w", err)
	}

	record := payload.toDomain()
	if record.Empty() {
		return domain.LicenseRecord{}, domain.ErrLicenseNotFound
	}
	return record, nil
}

// timestamp accepts the date encodings the backend has used: RFC 3339
// strings, bare dates and epoch milliseconds.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] != '"' {
		millis, err := strconv.ParseInt(string(trimmed), 10, 64)
		if err != nil {
			return fmt.Errorf("parse epoch timestamp %s: %w", trimmed, err)
		}
		t.Time = time.UnixMilli(millis).UTC()
		return nil
	}

	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q: unsupported format", raw)
}
