package stock

import "github.com/kegflow/kegflow-stock-service/internal/model"

// ResolveBatchID picks the batch id for a unit arriving on a given day.
// units must already be filtered to the receiving company and intake date.
//
// A unit joins the batch of the first existing unit whose product, price and
// volume all match; otherwise it opens a new batch one past the highest id
// seen that day. Two batches that coincidentally share product, price and
// volume on one date are not detected; the first encountered wins.
func ResolveBatchID(units []model.StockUnit, productID string, price float64, volumeLiters int) int {
	maxSeen := 0
	matched := 0
	found := false

	for _, u := range units {
		if u.BatchID > maxSeen {
			maxSeen = u.BatchID
		}
		if !found && u.ProductID == productID && u.UnitPrice == price && u.VolumeLiters == volumeLiters {
			matched = u.BatchID
			found = true
		}
	}

	if found {
		return matched
	}
	return maxSeen + 1
}
