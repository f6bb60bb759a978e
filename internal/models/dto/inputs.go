package dto

import "encoding/json"

// LoginInput authenticates by username or email.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Username Text `json:"username"`
		Email    Text `json:"email"`
		Password Text `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*in = LoginInput{Username: string(raw.Username), Email: string(raw.Email), Password: string(raw.Password)}
	return nil
}

// SignupInput registers a new account.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *SignupInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Username Text `json:"username"`
		Email    Text `json:"email"`
		Password Text `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*in = SignupInput{Username: string(raw.Username), Email: string(raw.Email), Password: string(raw.Password)}
	return nil
}

// SearchInput filters employees; at least one field must be supplied.
type SearchInput struct {
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

func (in *SearchInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Designation Text `json:"designation"`
		Department  Text `json:"department"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*in = SearchInput{Designation: string(raw.Designation), Department: string(raw.Department)}
	return nil
}

// EmployeeInput carries employee fields for both create and partial update.
// On update only fields whose keys are present are applied.
type EmployeeInput struct {
	FirstName     Field[string]  `json:"first_name"`
	LastName      Field[string]  `json:"last_name"`
	Email         Field[string]  `json:"email"`
	Gender        Field[string]  `json:"gender"`
	Designation   Field[string]  `json:"designation"`
	Salary        Field[Numeric] `json:"salary"`
	DateOfJoining Field[string]  `json:"date_of_joining"`
	Department    Field[string]  `json:"department"`
	EmployeePhoto Field[string]  `json:"employee_photo"`
}
