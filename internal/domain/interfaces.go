package domain

// ─── Store Interface ────────────────────────────────────────────────────────
// The repository boundary between the sales service and persistence.
// Infrastructure implements it; the application layer depends on it.
//
// Lookups return (nil, nil) when the entity does not exist — absent
// entities degrade to defaults or no-ops in the callers, they are not
// failures.

// Store abstracts persistent application state.
type Store interface {
	// Catalog
	UpsertBattery(b Battery) error
	GetBattery(id string) (*Battery, error)
	ListBatteries() ([]Battery, error)

	// Technicians
	UpsertTechnician(t Technician) error
	GetTechnician(id string) (*Technician, error)
	ListTechnicians() ([]Technician, error)

	// Customers
	UpsertCustomer(c Customer) error
	GetCustomer(id string) (*Customer, error)
	FindCustomerByName(name string) (*Customer, error)
	ListCustomers() ([]Customer, error)

	// Discount policies (replaced wholesale, per the admin form)
	ReplacePolicies(ps []DiscountPolicy) error
	ListPolicies() ([]DiscountPolicy, error)

	// Orders
	GetOrder(id string) (*Order, error)
	ListOrders() ([]Order, error)
	UpdateOrder(o Order) error

	// Compound transitions. Each runs as a single transaction: inventory,
	// debt and volume mutations commit atomically with the order write.
	InsertOrder(o Order, c *Customer) error
	SettlePayment(o Order, c *Customer) error
}
