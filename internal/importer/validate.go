package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NormalizedRecord is a validated, typed row ready for persistence.
type NormalizedRecord struct {
	ShippingMark      string
	ContainerRef      string
	WarehouseLocation string
	Description       string
	Quantity          int32
	Volume            float64
	TrackingRef       string
	PrimaryDate       *time.Time
	SecondaryDate     *time.Time
}

// validateRow turns a mapped row into a NormalizedRecord or a row-level
// error with a message naming the offending field. It never panics and
// never aborts the batch.
func validateRow(row mappedRow, uploadType UploadType) (NormalizedRecord, error) {
	rec := NormalizedRecord{
		ShippingMark: row.ShippingMark,
		ContainerRef: row.ContainerRef,
		Description:  row.Description,
		TrackingRef:  row.TrackingRef,
	}

	if rec.ShippingMark == "" {
		return NormalizedRecord{}, fmt.Errorf("shipping mark is required")
	}

	switch uploadType {
	case UploadGoodsReceived:
		if row.PrimaryDate == "" {
			return NormalizedRecord{}, fmt.Errorf("received date is required")
		}
	case UploadSeaCargo:
		if rec.ContainerRef == "" {
			return NormalizedRecord{}, fmt.Errorf("container reference is required")
		}
	}

	if row.PrimaryDate != "" {
		parsed, err := parseFlexibleDate(row.PrimaryDate)
		if err != nil {
			return NormalizedRecord{}, fmt.Errorf("received date %q is not one of the accepted formats", row.PrimaryDate)
		}
		rec.PrimaryDate = &parsed
	}
	if row.SecondaryDate != "" {
		parsed, err := parseFlexibleDate(row.SecondaryDate)
		if err != nil {
			return NormalizedRecord{}, fmt.Errorf("date %q is not one of the accepted formats", row.SecondaryDate)
		}
		rec.SecondaryDate = &parsed
	}

	quantity, err := parseIntNonNegative(row.Quantity)
	if err != nil {
		return NormalizedRecord{}, fmt.Errorf("quantity must be a non-negative integer, got %q", row.Quantity)
	}
	rec.Quantity = int32(quantity)

	volume, err := parseFloatNonNegative(row.Volume)
	if err != nil {
		return NormalizedRecord{}, fmt.Errorf("volume must be a non-negative number, got %q", row.Volume)
	}
	rec.Volume = volume

	return rec, nil
}

var dateFormats = []string{"2006-01-02", "01/02/2006", "1/2/2006", "2006/01/02", "01-02-2006", "02.01.2006"}

func parseFlexibleDate(value string) (time.Time, error) {
	raw := strings.TrimSpace(value)
	for _, format := range dateFormats {
		parsed, err := time.Parse(format, raw)
		if err != nil {
			continue
		}
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date format")
}

func parseIntNonNegative(value string) (int, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative value")
	}
	return parsed, nil
}

func parseFloatNonNegative(value string) (float64, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative value")
	}
	return parsed, nil
}
