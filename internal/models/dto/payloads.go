package dto

// AuthPayload is returned by login and signup.
type AuthPayload struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *AccountView `json:"user"`
}

// EmployeePayload wraps a single employee.
type EmployeePayload struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Employee *EmployeeView `json:"employee"`
}

// EmployeesPayload wraps a list of employees.
type EmployeesPayload struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Employees []EmployeeView `json:"employees"`
}

// DeletePayload reports the identifier of a removed employee.
type DeletePayload struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	DeletedID string `json:"deletedId"`
}
