package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// EncodePositionToken creates an opaque cursor from a ledger-row position.
// Positions are globally monotonic, so the cursor is stable across pages
// even while new rows are being committed.
func EncodePositionToken(position int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(position, 10)))
}

// DecodePositionToken parses a cursor back into a ledger-row position.
func DecodePositionToken(token string) (int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	position, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (position parse): %w", err)
	}
	return position, nil
}
