package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRunID         = "run_id"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldBackend       = "backend"
	FieldSaleID        = "sale_id"
	FieldProduct       = "product"
	FieldQuantity      = "quantity"
	FieldAmountCents   = "amount_cents"
	FieldSaleCount     = "sale_count"
	FieldCategoryCount = "category_count"
	FieldDayCount      = "day_count"
	FieldTopProduct    = "top_product"
	FieldTopQuantity   = "top_quantity"
	FieldSeed          = "seed"
	FieldDuration      = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentGenerator = "generator"
	ComponentStorage   = "storage"
	ComponentReport    = "report"
	ComponentBackend   = "backend"
	ComponentService   = "service"
)

// Operations defines standard operation names
const (
	OpSeed       = "seed"
	OpList       = "list"
	OpAggregate  = "aggregate"
	OpCrossCheck = "cross_check"
	OpStartup    = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRunID adds run ID field
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithSale adds sale-related fields
func (f LogFields) WithSale(id int64, product string, quantity int, amountCents int64) LogFields {
	f[FieldSaleID] = id
	f[FieldProduct] = product
	f[FieldQuantity] = quantity
	f[FieldAmountCents] = amountCents
	return f
}

// WithReport adds report summary fields
func (f LogFields) WithReport(sales, categories, days int, topProduct string, topQuantity int) LogFields {
	f[FieldSaleCount] = sales
	f[FieldCategoryCount] = categories
	f[FieldDayCount] = days
	if topProduct != "" {
		f[FieldTopProduct] = topProduct
		f[FieldTopQuantity] = topQuantity
	}
	return f
}

// WithDuration adds the elapsed time in milliseconds
func (f LogFields) WithDuration(durationMs int64) LogFields {
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
