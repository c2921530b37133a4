package importer

import (
	"fmt"
	"strings"
)

// UploadType selects the column schema and the persister for a batch.
type UploadType string

const (
	UploadGoodsReceived UploadType = "goods_received"
	UploadSeaCargo      UploadType = "sea_cargo"
)

func ParseUploadType(raw string) (UploadType, error) {
	switch UploadType(strings.TrimSpace(raw)) {
	case UploadGoodsReceived:
		return UploadGoodsReceived, nil
	case UploadSeaCargo:
		return UploadSeaCargo, nil
	default:
		return "", fmt.Errorf("upload_type must be %s or %s", UploadGoodsReceived, UploadSeaCargo)
	}
}

// columnSchema assigns fixed 0-indexed positions to named fields. Mapping
// is by position only; header text is never inspected. An index of -1
// means the field is absent from this layout.
type columnSchema struct {
	shippingMark  int
	containerRef  int
	primaryDate   int
	secondaryDate int
	description   int
	quantity      int
	volume        int
	trackingRef   int
}

// Column 5 of the goods-received sheet belongs to the supplier's internal
// numbering and is discarded regardless of content.
var goodsReceivedSchema = columnSchema{
	shippingMark:  0,
	containerRef:  -1,
	primaryDate:   1,
	secondaryDate: 2,
	description:   3,
	quantity:      4,
	volume:        6,
	trackingRef:   7,
}

var seaCargoSchema = columnSchema{
	containerRef:  0,
	shippingMark:  1,
	primaryDate:   -1,
	secondaryDate: 2,
	description:   3,
	quantity:      4,
	volume:        5,
	trackingRef:   6,
}

func schemaFor(uploadType UploadType) columnSchema {
	if uploadType == UploadSeaCargo {
		return seaCargoSchema
	}
	return goodsReceivedSchema
}

// mappedRow holds the raw string fields a schema pulled out of one row.
type mappedRow struct {
	ShippingMark  string
	ContainerRef  string
	PrimaryDate   string
	SecondaryDate string
	Description   string
	Quantity      string
	Volume        string
	TrackingRef   string
}

// mapColumns maps positional cells to named fields. Cells beyond the row's
// width read as empty strings, so short rows are padded rather than
// rejected.
func mapColumns(cells []string, uploadType UploadType) mappedRow {
	schema := schemaFor(uploadType)
	get := func(idx int) string {
		if idx < 0 || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}

	return mappedRow{
		ShippingMark:  get(schema.shippingMark),
		ContainerRef:  get(schema.containerRef),
		PrimaryDate:   get(schema.primaryDate),
		SecondaryDate: get(schema.secondaryDate),
		Description:   get(schema.description),
		Quantity:      get(schema.quantity),
		Volume:        get(schema.volume),
		TrackingRef:   get(schema.trackingRef),
	}
}
