package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Fingerprint computes the deterministic idempotency key for a normalized
// row. The field set is fixed: shipping mark, parent reference (container
// or warehouse location), primary date, description, source file name and
// 1-based row index. Identical inputs always hash identically, so a
// re-uploaded file maps onto the same persisted rows.
func Fingerprint(rec NormalizedRecord, sourceFile string, rowNumber int) string {
	parent := rec.ContainerRef
	if parent == "" {
		parent = rec.WarehouseLocation
	}
	date := ""
	if rec.PrimaryDate != nil {
		date = rec.PrimaryDate.Format("2006-01-02")
	}

	base := strings.Join([]string{
		rec.ShippingMark,
		parent,
		date,
		rec.Description,
		sourceFile,
		strconv.Itoa(rowNumber),
	}, "|")

	sum := sha256.Sum256([]byte(base))
	return hex.EncodeToString(sum[:])
}
