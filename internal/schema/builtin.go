package schema

import "time"

// Built-in schemas mirror the four entities every test database seems
// to need. Date windows are anchored to the current day so request
// defaults stay sensible without configuration; callers wanting
// byte-stable windows across days supply explicit date overrides.
func builtinSchemas() []*SchemaDef {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	yearAgo := now.AddDate(-1, 0, 0)
	twoYearsAgo := now.AddDate(-2, 0, 0)

	return []*SchemaDef{
		{
			Name: "user",
			Fields: []FieldDef{
				{Name: "id", Kind: KindSerial},
				{Name: "name", Kind: KindName},
				{Name: "email", Kind: KindEmail},
				{Name: "phone", Kind: KindPhone},
				{Name: "address", Kind: KindAddress},
				{Name: "created_at", Kind: KindDate, Start: twoYearsAgo, End: now},
			},
		},
		{
			Name: "order",
			Fields: []FieldDef{
				{Name: "id", Kind: KindSerial},
				{Name: "user_id", Kind: KindRef, Ref: "user", RefField: "id"},
				{Name: "amount", Kind: KindDecimal, Min: 10, Max: 500},
				{Name: "status", Kind: KindEnum, Values: []string{"pending", "completed", "cancelled", "shipped"}},
				{Name: "order_date", Kind: KindDate, Start: yearAgo, End: now},
				{Name: "product_name", Kind: KindWord},
				{Name: "quantity", Kind: KindInt, Min: 1, Max: 10},
			},
		},
		{
			Name: "payment",
			Fields: []FieldDef{
				{Name: "id", Kind: KindSerial},
				{Name: "order_id", Kind: KindRef, Ref: "order", RefField: "id"},
				{Name: "amount", Kind: KindDecimal, Min: 5, Max: 1000},
				{Name: "payment_method", Kind: KindEnum, Values: []string{"credit_card", "debit_card", "paypal", "bank_transfer"}},
				{Name: "status", Kind: KindEnum, Values: []string{"completed", "pending", "refunded", "failed"}},
				{Name: "transaction_date", Kind: KindDate, Start: yearAgo, End: now},
				{Name: "gateway", Kind: KindEnum, Values: []string{"stripe", "paypal", "square", "authorize_net"}},
				{Name: "failure_reason", Kind: KindEnum,
					Values: []string{"insufficient_funds", "card_declined", "network_error"},
					OnlyIf: &Condition{Field: "status", Equals: "failed"}},
			},
		},
		{
			Name: "product",
			Fields: []FieldDef{
				{Name: "id", Kind: KindSerial},
				{Name: "name", Kind: KindWord},
				{Name: "description", Kind: KindText, MaxChars: 200},
				{Name: "price", Kind: KindDecimal, Min: 10, Max: 1000},
				{Name: "category", Kind: KindEnum, Values: []string{"Electronics", "Clothing", "Books", "Home & Garden", "Sports", "Beauty"}},
				{Name: "sku", Kind: KindPattern, Pattern: "???-###-???"},
				{Name: "stock_quantity", Kind: KindInt, Min: 0, Max: 100},
				{Name: "created_at", Kind: KindDate, Start: yearAgo, End: now},
			},
		},
	}
}
