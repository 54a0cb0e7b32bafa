package order

func mapNewOrderToRow(in NewOrder) row {
	items := make([]itemRow, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, itemRow{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	return row{
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Items:           items,
		Total:           in.Total,
		Status:          string(StatusPending),
		Notes:           in.Notes,
	}
}

func mapRowToOrder(r row) Order {
	items := make([]Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, Item{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	status := Status(r.Status)
	if status == "" {
		status = StatusPending
	}

	o := Order{
		ID:              r.ID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		Items:           items,
		Total:           r.Total,
		Status:          status,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
	if r.Priority != nil {
		o.Priority = *r.Priority
	}
	return o
}

func mapRowsToOrders(rows []row) []Order {
	orders := make([]Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, mapRowToOrder(r))
	}
	return orders
}
