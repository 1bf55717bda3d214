package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rc-tools/cost-ledger/pkg/adapters"
	"github.com/rc-tools/cost-ledger/pkg/models/domain"
)

// focusHeader is the fixed FOCUS column set, in order. Downstream loaders
// match on these names exactly.
var focusHeader = []string{
	"BillingPeriodStart", "BillingPeriodEnd",
	"ChargePeriodStart", "ChargePeriodEnd",
	"ListCost", "BilledCost",
	"ResourceId", "ResourceName", "ServiceName",
	"Tags",
}

// WriteFocusCSV writes the billing artifact: one header row, then one row
// per focus record. Tags become a compact JSON object inside the last CSV
// field; the csv writer takes care of the quoting.
func WriteFocusCSV(w io.Writer, records []domain.FocusRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(focusHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		row, err := focusRow(rec)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", rec.ResourceID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func focusRow(rec domain.FocusRecord) ([]string, error) {
	apiRec := adapters.MapFocusRecordDomainToApi(rec)

	tags, err := json.Marshal(apiRec.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags for %s: %w", rec.ResourceID, err)
	}

	return []string{
		apiRec.BillingPeriodStart,
		apiRec.BillingPeriodEnd,
		apiRec.ChargePeriodStart,
		apiRec.ChargePeriodEnd,
		apiRec.ListCost,
		apiRec.BilledCost,
		apiRec.ResourceID,
		apiRec.ResourceName,
		apiRec.ServiceName,
		string(tags),
	}, nil
}
