package auth

const (
	RoleAdmin    = "Admin"
	RoleHR       = "HR"
	RoleEmployee = "Employee"
)

const (
	PermEmployeesRead     = "employees.read"
	PermEmployeesWrite    = "employees.write"
	PermUsersRead         = "users.read"
	PermUsersWrite        = "users.write"
	PermRatingsRead       = "ratings.read"
	PermRatingsWrite      = "ratings.write"
	PermPayrollRead       = "payroll.read"
	PermPayrollWrite      = "payroll.write"
	PermSalarySelfRead    = "salary.self.read"
	PermIncentivesRead    = "incentives.read"
	PermIncentivesWrite   = "incentives.write"
	PermDisciplinaryRead  = "disciplinary.read"
	PermDisciplinaryWrite = "disciplinary.write"
	PermHolidaysRead      = "holidays.read"
	PermHolidaysWrite     = "holidays.write"
	PermDashboardRead     = "dashboard.read"
	PermAuditRead         = "audit.read"
)

// RolePermissions is the static permission matrix; roles are fixed in this
// system, so no database-backed lookup is needed.
var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermUsersRead,
		PermUsersWrite,
		PermRatingsRead,
		PermRatingsWrite,
		PermPayrollRead,
		PermPayrollWrite,
		PermSalarySelfRead,
		PermIncentivesRead,
		PermIncentivesWrite,
		PermDisciplinaryRead,
		PermDisciplinaryWrite,
		PermHolidaysRead,
		PermHolidaysWrite,
		PermDashboardRead,
		PermAuditRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermRatingsRead,
		PermRatingsWrite,
		PermPayrollRead,
		PermPayrollWrite,
		PermSalarySelfRead,
		PermIncentivesRead,
		PermIncentivesWrite,
		PermDisciplinaryRead,
		PermDisciplinaryWrite,
		PermHolidaysRead,
		PermHolidaysWrite,
		PermDashboardRead,
	},
	RoleEmployee: {
		PermEmployeesRead,
		PermRatingsRead,
		PermSalarySelfRead,
		PermHolidaysRead,
		PermDashboardRead,
	},
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

func HasPermission(role, permission string) bool {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}
