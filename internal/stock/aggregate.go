package stock

import "github.com/kegflow/kegflow-stock-service/internal/model"

// GroupedProduct is a display-ready rollup of the units sharing one product
// and intake date. Descriptive fields are nil when the product record is
// gone.
type GroupedProduct struct {
	ProductID     string  `json:"product_id"`
	IntakeDate    string  `json:"intake_date"`
	Name          string  `json:"name"`
	Brand         *string `json:"brand"`
	Category      *string `json:"category"`
	Size          *string `json:"size"`
	Unit          *string `json:"unit"`
	TotalQuantity int     `json:"total_quantity"`
	AveragePrice  float64 `json:"average_price"`
}

// GroupByProductAndBatch folds raw units into per-(product, intake date)
// summaries. Pure and synchronous; groups come out in the order their key
// was first seen. The average is maintained incrementally so one pass over
// the units is enough.
func GroupByProductAndBatch(units []model.StockUnit, products []model.Product) []GroupedProduct {
	productsByID := make(map[string]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	type key struct {
		productID  string
		intakeDate string
	}

	groups := []GroupedProduct{}
	index := make(map[key]int)

	for _, u := range units {
		k := key{productID: u.ProductID, intakeDate: u.IntakeDate}
		i, ok := index[k]
		if !ok {
			g := GroupedProduct{
				ProductID:  u.ProductID,
				IntakeDate: u.IntakeDate,
			}
			if p, found := productsByID[u.ProductID]; found {
				g.Name = p.Name
				g.Brand = p.Brand
				g.Category = p.Category
				g.Size = p.Size
				g.Unit = p.Unit
			}
			groups = append(groups, g)
			i = len(groups) - 1
			index[k] = i
		}

		g := &groups[i]
		g.TotalQuantity++
		n := float64(g.TotalQuantity)
		g.AveragePrice = (g.AveragePrice*(n-1) + u.UnitPrice) / n
	}

	return groups
}
