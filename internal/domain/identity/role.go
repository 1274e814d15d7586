package identity

// Role represents a user role
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Label returns the human-facing Spanish label for the role
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleManager:
		return "Encargado"
	case RoleEmployee:
		return "Empleado"
	}
	return "Sin rol"
}

// Permission represents a single capability that can be granted to a role
type Permission string

const (
	// Dashboard
	PermViewDashboard Permission = "view_dashboard"
	PermViewAllStats  Permission = "view_all_stats"

	// Products
	PermViewProducts   Permission = "view_products"
	PermCreateProduct  Permission = "create_product"
	PermEditProduct    Permission = "edit_product"
	PermDeleteProduct  Permission = "delete_product"
	PermSyncStorefront Permission = "sync_woocommerce"
	PermBulkActions    Permission = "bulk_actions"
	PermExportProducts Permission = "export_products"

	// Orders
	PermViewOrders    Permission = "view_orders"
	PermCreateOrder   Permission = "create_order"
	PermEditOrder     Permission = "edit_order"
	PermDeleteOrder   Permission = "delete_order"
	PermViewAllOrders Permission = "view_all_orders"

	// POS
	PermAccessPOS             Permission = "access_pos"
	PermProcessSale           Permission = "process_sale"
	PermApplyDiscount         Permission = "apply_discount"
	PermCreateDiscountCoupons Permission = "create_discount_coupons"

	// Invoices
	PermViewInvoices   Permission = "view_invoices"
	PermCreateInvoice  Permission = "create_invoice"
	PermDeleteInvoice  Permission = "delete_invoice"
	PermSyncAccounting Permission = "sync_holded"

	// Employees
	PermViewEmployees     Permission = "view_employees"
	PermCreateEmployee    Permission = "create_employee"
	PermEditEmployee      Permission = "edit_employee"
	PermDeleteEmployee    Permission = "delete_employee"
	PermAssignRoles       Permission = "assign_roles"
	PermViewEmployeeStats Permission = "view_employee_stats"

	// Time entries
	PermViewTimeEntries   Permission = "view_time_entries"
	PermClockInOut        Permission = "clock_in_out"
	PermEditTimeEntries   Permission = "edit_time_entries"
	PermDeleteTimeEntries Permission = "delete_time_entries"

	// Incidents
	PermViewIncidents   Permission = "view_incidents"
	PermCreateIncident  Permission = "create_incident"
	PermEditIncident    Permission = "edit_incident"
	PermResolveIncident Permission = "resolve_incident"
	PermDeleteIncident  Permission = "delete_incident"
	PermAssignIncident  Permission = "assign_incident"

	// Notifications
	PermViewNotifications           Permission = "view_notifications"
	PermSendNotifications           Permission = "send_notifications"
	PermManageNotificationTemplates Permission = "manage_notification_templates"

	// System settings
	PermManageSettings Permission = "manage_settings"
)

// PermissionsFor returns the fixed permission set granted to a role. The
// mapping is a pure function of the role; it is not stored or editable at
// runtime.
func PermissionsFor(role Role) []Permission {
	switch role {
	case RoleAdmin:
		return []Permission{
			PermViewDashboard, PermViewAllStats,
			PermViewProducts, PermCreateProduct, PermEditProduct, PermDeleteProduct,
			PermSyncStorefront, PermBulkActions, PermExportProducts,
			PermViewOrders, PermCreateOrder, PermEditOrder, PermDeleteOrder, PermViewAllOrders,
			PermAccessPOS, PermProcessSale, PermApplyDiscount, PermCreateDiscountCoupons,
			PermViewInvoices, PermCreateInvoice, PermDeleteInvoice, PermSyncAccounting,
			PermViewEmployees, PermCreateEmployee, PermEditEmployee, PermDeleteEmployee,
			PermAssignRoles, PermViewEmployeeStats,
			PermViewTimeEntries, PermClockInOut, PermEditTimeEntries, PermDeleteTimeEntries,
			PermViewIncidents, PermCreateIncident, PermEditIncident, PermResolveIncident,
			PermDeleteIncident, PermAssignIncident,
			PermViewNotifications, PermSendNotifications, PermManageNotificationTemplates,
			PermManageSettings,
		}
	case RoleManager:
		return []Permission{
			PermViewDashboard, PermViewAllStats,
			PermViewProducts, PermCreateProduct, PermEditProduct, PermExportProducts,
			PermViewOrders, PermCreateOrder, PermEditOrder, PermDeleteOrder, PermViewAllOrders,
			PermAccessPOS, PermProcessSale, PermApplyDiscount,
			PermViewInvoices, PermCreateInvoice,
			PermViewEmployees, PermViewEmployeeStats,
			PermViewTimeEntries, PermClockInOut, PermEditTimeEntries,
			PermViewIncidents, PermCreateIncident, PermEditIncident, PermResolveIncident,
			PermAssignIncident,
			PermViewNotifications, PermSendNotifications,
		}
	case RoleEmployee:
		return []Permission{
			PermViewDashboard,
			PermViewProducts,
			PermViewOrders, PermCreateOrder,
			PermAccessPOS, PermProcessSale, PermApplyDiscount,
			PermViewTimeEntries, PermClockInOut,
			PermViewIncidents, PermCreateIncident,
			PermViewNotifications,
		}
	}
	return nil
}

// HasPermission reports whether the role grants the permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range PermissionsFor(role) {
		if p == permission {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role grants every listed permission
func HasAllPermissions(role Role, permissions []Permission) bool {
	for _, p := range permissions {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// HasAnyPermission reports whether the role grants at least one listed permission
func HasAnyPermission(role Role, permissions []Permission) bool {
	for _, p := range permissions {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}
