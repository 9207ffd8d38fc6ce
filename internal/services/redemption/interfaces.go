package redemption

import (
	"context"

	"github.com/inanin-user/crm-system-sub001/internal/services/qrcode"
)

// CodeResolver resolves a scanned payload to its display record.
type CodeResolver interface {
	ResolveScan(ctx context.Context, rawPayload string) (*qrcode.ScanResult, error)
}

// AccountCache invalidates cached account views after a quota change.
type AccountCache interface {
	InvalidateAccount(ctx context.Context, accountID uint) error
}
