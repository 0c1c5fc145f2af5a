package handlers

import (
	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/service/orders"
	"quickbite-orders/internal/service/quote"
)

func (r checkoutRequest) toInput() orders.CheckoutInput {
	items := make([]domain.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.Item{Title: it.Title, Qty: it.Qty, Price: it.Price})
	}
	return orders.CheckoutInput{
		VendorID: r.VendorID,
		Items:    items,
		Dropoff:  domain.Coordinate{Lat: r.Dropoff.Lat, Lng: r.Dropoff.Lng},
	}
}

func itemsToResponse(items []domain.Item) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, itemDTO{Title: it.Title, Qty: it.Qty, Price: it.Price})
	}
	return out
}

func modelToResponse(o *domain.Order) orderDTO {
	return orderDTO{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		VendorID:    o.VendorID,
		VendorName:  o.VendorName,
		Items:       itemsToResponse(o.Items),
		DeliveryFee: o.DeliveryFee,
		EtaLowMin:   o.EtaLowMin,
		EtaHighMin:  o.EtaHighMin,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		CompletedAt: o.CompletedAt,
	}
}

func modelsToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for i := range list {
		out = append(out, modelToResponse(&list[i]))
	}
	return out
}

func checkoutToResponse(o *domain.Order) checkoutResponse {
	return checkoutResponse{
		ID:           o.ID,
		DeliveryCode: o.DeliveryCode,
		DeliveryFee:  o.DeliveryFee,
		EtaLowMin:    o.EtaLowMin,
		EtaHighMin:   o.EtaHighMin,
		Status:       string(o.Status),
	}
}

func quoteToResponse(res quote.Result) quoteResponse {
	out := quoteResponse{
		VendorName: res.VendorName,
		DistanceKm: res.DistanceKm,
		Fee:        res.Fee,
	}
	if res.HasEta {
		out.Eta = res.Eta.String()
		out.EtaLowMin = res.Eta.LowMin
		out.EtaHighMin = res.Eta.HighMin
	}
	return out
}
